package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nizsak/wikiseries/internal/fileutil"
	"github.com/nizsak/wikiseries/internal/frontmatter"
	"github.com/nizsak/wikiseries/internal/series"
)

func (p *Pipeline) writeMarkdown(s *series.Series, cover *fileutil.CoverDownloadResult, result *Result) error {
	path := fileutil.GetMarkdownFilePath(s.Title, p.opts.MarkdownDir)
	result.MarkdownPath = path

	if p.opts.Overwrite && fileutil.FileExists(path) {
		// An existing note for a different article at the same filename
		// is worth flagging before it gets replaced
		if existing := noteURL(path); existing != "" && existing != s.URL {
			p.logger.Warn("Overwriting note that points at a different article",
				"path", path, "existing_url", existing, "new_url", s.URL)
		}
	}

	doc := renderMarkdown(s, cover)
	written, err := fileutil.WriteFileWithOverwrite(path, []byte(doc), 0644, p.opts.Overwrite)
	if err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	if !written {
		p.logger.Info("Markdown file already exists, skipping", "path", path)
	}
	return nil
}

// noteURL reads the url field from an existing note's frontmatter.
func noteURL(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	note, err := frontmatter.ParseMarkdown(data)
	if err != nil {
		return ""
	}
	return note.GetString("url")
}

func renderMarkdown(s *series.Series, cover *fileutil.CoverDownloadResult) string {
	mb := fileutil.NewMarkdownBuilder().
		AddTitle(s.Title).
		AddType(noteType(s)).
		AddYear(firstYear(s)).
		AddField("url", s.URL).
		AddField("seasons", len(s.Seasons)).
		AddField("episodes", s.EpisodeCount()).
		AddStringArray("directors", s.AllDirectors())

	tags := []string{"tv/" + noteType(s)}
	if year := firstYear(s); year > 0 {
		tags = append(tags, mb.GetDecadeTag(year))
	}
	mb.AddTags(tags...)

	if cover != nil {
		mb.AddField("cover", cover.RelativePath)
		mb.AddImage(cover.RelativePath)
	}

	for _, season := range s.Seasons {
		heading := fmt.Sprintf("Season %d", season.Number)
		if season.Year > 0 {
			heading = fmt.Sprintf("Season %d (%d)", season.Number, season.Year)
		}
		mb.AddHeading(2, heading)
		mb.AddTable(episodeHeaders, episodeRows(season))
	}

	mb.AddExternalLink("Wikipedia", s.URL)
	return mb.Build()
}

var episodeHeaders = []string{"#", "Title", "Directed by", "Written by", "Air date"}

func episodeRows(season series.Season) [][]string {
	rows := make([][]string, 0, len(season.Episodes))
	for _, ep := range season.Episodes {
		rows = append(rows, []string{
			strconv.Itoa(ep.Number),
			ep.Title,
			joinNames(ep.Directors),
			joinNames(ep.Writers),
			ep.AirDate,
		})
	}
	return rows
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func noteType(s *series.Series) string {
	if s.Miniseries {
		return "miniseries"
	}
	return "series"
}

func firstYear(s *series.Series) int {
	if len(s.Seasons) == 0 {
		return 0
	}
	return s.Seasons[0].Year
}
