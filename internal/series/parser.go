package series

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nizsak/wikiseries/internal/wikipedia"
)

var (
	seasonHeadingRe = regexp.MustCompile(`(?i)season\s+(\d+)(?:\s*\((\d{4})[^)]*\))?`)
	isoDateRe       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	leadingIntRe    = regexp.MustCompile(`\d+`)
)

// Parse extracts the season/episode structure from an article page. The
// page must contain at least one episode table; a page without one is not
// a parseable series article.
func Parse(pageHTML []byte, match *wikipedia.SearchResult, miniseries bool) (*Series, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse article HTML: %w", err)
	}

	s := &Series{
		Title:      strings.TrimSpace(doc.Find("h1#firstHeading").First().Text()),
		URL:        match.URL,
		QueryType:  string(match.QueryType),
		Miniseries: miniseries,
	}
	if s.Title == "" {
		s.Title = match.Title
	}

	parseInfobox(doc, s)

	tables := doc.Find("table.wikiepisodetable")
	if tables.Length() == 0 {
		return nil, fmt.Errorf("no episode tables found in %q", s.Title)
	}

	tables.Each(func(i int, table *goquery.Selection) {
		episodes := parseEpisodeTable(table)
		if len(episodes) == 0 {
			return
		}
		number, year := seasonForTable(table, len(s.Seasons)+1)
		s.Seasons = append(s.Seasons, Season{
			Number:   number,
			Year:     year,
			Episodes: episodes,
		})
	})

	if len(s.Seasons) == 0 {
		return nil, fmt.Errorf("no episodes found in %q", s.Title)
	}

	if miniseries {
		collapseToSingleSeason(s)
	}

	return s, nil
}

// parseInfobox pulls the cover image and the declared counts from the
// article infobox. Everything here is best effort; an article without an
// infobox still parses.
func parseInfobox(doc *goquery.Document, s *Series) {
	infobox := doc.Find("table.infobox.vevent").First()
	if infobox.Length() == 0 {
		return
	}

	if src, ok := infobox.Find("img").First().Attr("src"); ok {
		// Wikipedia serves protocol-relative image URLs
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		s.CoverURL = src
	}

	infobox.Find("tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(row.Find("th").First().Text()))
		value := strings.TrimSpace(row.Find("td").First().Text())
		switch {
		case strings.Contains(label, "no. of seasons"):
			s.DeclaredSeasons = firstInt(value)
		case strings.Contains(label, "no. of episodes"):
			s.DeclaredEpisodes = firstInt(value)
		}
	})
}

// columnKind identifies what an episode table column holds.
type columnKind int

const (
	columnIgnore columnKind = iota
	columnOverall
	columnInSeason
	columnTitle
	columnDirectors
	columnWriters
	columnAirDate
)

func classifyColumn(header string) columnKind {
	h := strings.ToLower(strings.Join(strings.Fields(header), " "))
	switch {
	case strings.Contains(h, "no. overall") || strings.Contains(h, "no.overall"):
		return columnOverall
	case strings.Contains(h, "no. in season") || strings.Contains(h, "no. in series"):
		return columnInSeason
	case h == "no." || h == "ep" || h == "episode":
		return columnInSeason
	case strings.Contains(h, "title"):
		return columnTitle
	case strings.Contains(h, "directed"):
		return columnDirectors
	case strings.Contains(h, "written"):
		return columnWriters
	case strings.Contains(h, "air date") || strings.Contains(h, "release date"):
		return columnAirDate
	default:
		return columnIgnore
	}
}

func parseEpisodeTable(table *goquery.Selection) []Episode {
	headerCells := table.Find("tr").First().Find("th")
	columns := make([]columnKind, headerCells.Length())
	headerCells.Each(func(i int, cell *goquery.Selection) {
		columns[i] = classifyColumn(cell.Text())
	})

	var episodes []Episode
	table.Find("tr.vevent").Each(func(_ int, row *goquery.Selection) {
		ep := parseEpisodeRow(row, columns)
		if ep.Title == "" && ep.Number == 0 {
			return
		}
		if ep.Number == 0 {
			ep.Number = len(episodes) + 1
		}
		ep.Summary = episodeSummary(row)
		episodes = append(episodes, ep)
	})
	return episodes
}

func parseEpisodeRow(row *goquery.Selection, columns []columnKind) Episode {
	var ep Episode
	// Number cells are th, the rest td; Find returns them in document
	// order so indexes line up with the header row.
	row.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		if i >= len(columns) {
			return
		}
		switch columns[i] {
		case columnOverall:
			ep.OverallNumber = firstInt(cell.Text())
		case columnInSeason:
			ep.Number = firstInt(cell.Text())
		case columnTitle:
			ep.Title = unquoteTitle(cellText(cell))
		case columnDirectors:
			ep.Directors = cellNames(cell)
		case columnWriters:
			ep.Writers = cellNames(cell)
		case columnAirDate:
			ep.AirDate = normalizeAirDate(cellText(cell))
		}
	})
	return ep
}

// episodeSummary reads the description row that follows an episode row in
// expanded episode tables.
func episodeSummary(row *goquery.Selection) string {
	next := row.Next()
	if next.Length() == 0 || !next.HasClass("expand-child") {
		return ""
	}
	return strings.TrimSpace(next.Find("td").First().Text())
}

// seasonForTable finds the nearest preceding "Season N (YYYY)" heading.
// Tables without one get positional numbering.
func seasonForTable(table *goquery.Selection, fallback int) (number, year int) {
	heading := table.PrevAllFiltered("h2, h3, h4, div.mw-heading").First()
	if heading.Length() > 0 {
		if m := seasonHeadingRe.FindStringSubmatch(heading.Text()); m != nil {
			number, _ = strconv.Atoi(m[1])
			if m[2] != "" {
				year, _ = strconv.Atoi(m[2])
			}
			return number, year
		}
	}
	return fallback, 0
}

func collapseToSingleSeason(s *Series) {
	var all []Episode
	for _, season := range s.Seasons {
		all = append(all, season.Episodes...)
	}
	year := s.Seasons[0].Year
	for i := range all {
		all[i].Number = i + 1
	}
	s.Seasons = []Season{{Number: 1, Year: year, Episodes: all}}
}

// cellText returns the cell text with <br> separators preserved as
// newlines, which goquery's Text() would otherwise swallow.
func cellText(cell *goquery.Selection) string {
	var b strings.Builder
	for _, node := range cell.Nodes {
		writeNodeText(&b, node)
	}
	return strings.TrimSpace(b.String())
}

func writeNodeText(b *strings.Builder, node *html.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == html.TextNode:
			b.WriteString(child.Data)
		case child.Type == html.ElementNode && child.Data == "br":
			b.WriteString("\n")
		case child.Type == html.ElementNode:
			writeNodeText(b, child)
		}
	}
}

// cellNames splits a credits cell into individual names. Wikipedia uses
// line breaks, list items or ampersands depending on the article.
func cellNames(cell *goquery.Selection) []string {
	var raw []string
	if items := cell.Find("li"); items.Length() > 0 {
		items.Each(func(_ int, item *goquery.Selection) {
			raw = append(raw, item.Text())
		})
	} else {
		raw = strings.Split(cellText(cell), "\n")
	}

	var names []string
	for _, part := range raw {
		for _, name := range strings.FieldsFunc(part, func(r rune) bool {
			return r == '&' || r == ';'
		}) {
			name = strings.TrimSpace(name)
			if name != "" && name != "and" {
				names = append(names, name)
			}
		}
	}
	return names
}

func unquoteTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.Trim(title, `"`)
	// Curly quotes show up on some articles
	title = strings.TrimPrefix(title, "“")
	title = strings.TrimSuffix(title, "”")
	return strings.TrimSpace(title)
}

// normalizeAirDate prefers the machine-readable ISO date that episode
// tables embed in parentheses, falling back to the display text.
func normalizeAirDate(text string) string {
	if iso := isoDateRe.FindString(text); iso != "" {
		return iso
	}
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

func firstInt(text string) int {
	m := leadingIntRe.FindString(text)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}
