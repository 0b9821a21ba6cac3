package resolve

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	wikierrors "github.com/nizsak/wikiseries/internal/errors"
	"github.com/nizsak/wikiseries/internal/wikipedia"
)

// ConsolePrompter implements the plain numbered selection protocol: one
// line per candidate as "<index>:<title>" in result order, then a single
// integer read from the input stream.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer
	// Timeout bounds how long the prompt may block; zero means no limit.
	Timeout time.Duration
}

// NewConsolePrompter creates a prompter reading stdin and writing stdout.
func NewConsolePrompter(timeout time.Duration) *ConsolePrompter {
	return &ConsolePrompter{
		In:      os.Stdin,
		Out:     os.Stdout,
		Timeout: timeout,
	}
}

// Choose lists the candidates and blocks for one integer selection. The
// index is validated for integer-ness here; range checking belongs to the
// caller, which owns the candidate slice.
func (p *ConsolePrompter) Choose(ctx context.Context, name string, results []wikipedia.SearchResult) (int, error) {
	for i, r := range results {
		fmt.Fprintf(p.Out, "%d:%s\n", i, r.Title)
	}
	fmt.Fprint(p.Out, "Found multiple results, please choose the correct one: ")

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, wikierrors.NewNonIntegerSelectionError(strings.TrimSpace(line))
	}
	return choice, nil
}

type readResult struct {
	line string
	err  error
}

func (p *ConsolePrompter) readLine(ctx context.Context) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && err != io.EOF {
			ch <- readResult{err: err}
			return
		}
		if line == "" && err == io.EOF {
			ch <- readResult{err: wikierrors.NewAbortedByUserError("input closed before a selection was made")}
			return
		}
		ch <- readResult{line: line}
	}()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", wikierrors.NewAbortedByUserError("selection prompt timed out")
		}
		return "", wikierrors.NewAbortedByUserError("resolution interrupted")
	case res := <-ch:
		return res.line, res.err
	}
}
