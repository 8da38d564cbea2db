// Package tui implements engine.Frontend on top of short-lived bubbletea
// programs, one per dialog.
package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/modai/cmd/modai/internal/collectorview"
	"github.com/germanamz/modai/cmd/modai/internal/diffview"
	"github.com/germanamz/modai/cmd/modai/internal/responseview"
	"github.com/germanamz/modai/cmd/modai/internal/status"
	"github.com/germanamz/modai/cmd/modai/internal/styles"
	"github.com/germanamz/modai/pkg/collector"
	"github.com/germanamz/modai/pkg/engine"
	"github.com/germanamz/modai/pkg/review"
)

var _ engine.Frontend = (*Frontend)(nil)

// Frontend drives dialogs on a terminal. Output goes to out so that stdout
// stays free for the document when it is piped.
type Frontend struct {
	in    io.Reader
	out   io.Writer
	plain bool
}

// New creates a Frontend. A nil in reads from the terminal. With plain set
// diffs are marked with brackets instead of colour.
func New(in io.Reader, out io.Writer, plain bool) *Frontend {
	return &Frontend{in: in, out: out, plain: plain}
}

func (f *Frontend) options(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(f.out)}
	if f.in != nil {
		opts = append(opts, tea.WithInput(f.in))
	}
	return opts
}

func (f *Frontend) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(m, f.options(ctx)...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("tui: %w", err)
	}
	return final, nil
}

// Collect shows the custom-instructions prompt.
func (f *Frontend) Collect(ctx context.Context, suggestions []collector.Suggestion) (collector.Submission, bool, error) {
	form := collector.New(suggestions)
	if _, err := f.run(ctx, collectorview.New(form)); err != nil {
		return collector.Submission{}, false, err
	}
	sub, ok := form.Result()
	return sub, ok, nil
}

// Review shows the word diff and returns the user's verdict.
func (f *Frontend) Review(ctx context.Context, p *review.Proposal) (review.Decision, error) {
	final, err := f.run(ctx, diffview.New(p, f.plain))
	if err != nil {
		return review.Discard, err
	}
	m, ok := final.(diffview.Model)
	if !ok {
		return review.Discard, nil
	}
	return m.Decision(), nil
}

// ShowResponse shows an answer until the user closes it.
func (f *Frontend) ShowResponse(ctx context.Context, model, text string) error {
	_, err := f.run(ctx, responseview.New(model, text))
	return err
}

// Notify prints msg on its own line.
func (f *Frontend) Notify(msg string) {
	_, _ = fmt.Fprintln(f.out, styles.NoticeStyle.Render(msg))
}

// Status shows a spinner until dismiss is called. The spinner program reads
// no input so Ctrl+C still reaches the process.
func (f *Frontend) Status(msg string) func() {
	p := tea.NewProgram(status.New(msg), tea.WithOutput(f.out), tea.WithInput(nil))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.Send(status.DoneMsg{})
			<-done
		})
	}
}
