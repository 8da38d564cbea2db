// Package editor defines the document surface a transformation reads from and
// writes to, plus an in-memory implementation.
//
// Positions are 0-based. Ch counts runes within a line, not bytes.
package editor

import (
	"fmt"
	"strings"
)

// Edge selects which end of the selection [Editor.Cursor] reports.
type Edge int

const (
	From Edge = iota // Start of the selection.
	To               // End of the selection.
)

// Position is a location in a document.
type Position struct {
	Line int
	Ch   int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Ch) }

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Ch < q.Ch)
}

// Editor is the host document. Implementations need not be safe for use by
// several invocations at once.
type Editor interface {
	Selection() string
	Cursor(edge Edge) Position
	Value() string
	SetValue(text string)
	ReplaceRange(text string, from, to Position)
	LineCount() int
	Line(n int) string
}

// Range is the span a result applies to. When Whole is set From and To are
// ignored and the entire document is meant.
type Range struct {
	From  Position
	To    Position
	Whole bool
}

// WholeDocument is the range used when no selection existed.
var WholeDocument = Range{Whole: true}

func (r Range) String() string {
	if r.Whole {
		return "whole document"
	}
	return r.From.String() + "-" + r.To.String()
}

// Bounds returns concrete positions for r against ed. For WholeDocument that
// is the start of the first line through the end of the last.
func (r Range) Bounds(ed Editor) (Position, Position) {
	if !r.Whole {
		return r.From, r.To
	}
	last := ed.LineCount() - 1
	if last < 0 {
		return Position{}, Position{}
	}
	return Position{}, Position{Line: last, Ch: len([]rune(ed.Line(last)))}
}

// Capture is a snapshot of what a transformation should act on.
type Capture struct {
	Text         string
	Range        Range
	HasSelection bool
}

// Empty reports whether the captured text is blank.
func (c Capture) Empty() bool { return strings.TrimSpace(c.Text) == "" }

// CaptureFrom reads the selection from ed. A blank selection falls back to the
// whole document.
func CaptureFrom(ed Editor) Capture {
	if sel := ed.Selection(); strings.TrimSpace(sel) != "" {
		return Capture{
			Text:         sel,
			Range:        Range{From: ed.Cursor(From), To: ed.Cursor(To)},
			HasSelection: true,
		}
	}
	return Capture{Text: ed.Value(), Range: WholeDocument}
}
