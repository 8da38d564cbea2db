// Package review holds a proposed edit between the model's answer and the
// document. The word diff is for a human to inspect; accepting applies the
// whole proposed text to the captured range in one edit.
package review

import (
	"errors"

	"github.com/germanamz/modai/pkg/diff"
	"github.com/germanamz/modai/pkg/editor"
)

// Decision is the reviewer's verdict on a Proposal.
type Decision int

const (
	Discard Decision = iota
	Accept
)

func (d Decision) String() string {
	if d == Accept {
		return "accept"
	}
	return "discard"
}

// ErrNoEditor is returned by Apply when there is no document to write to.
var ErrNoEditor = errors.New("review: no editor")

// Proposal is a pending replacement of Range with Proposed.
type Proposal struct {
	Original string
	Proposed string
	Range    editor.Range
	Segments []diff.Segment
}

// New computes the word diff and returns the pending proposal.
func New(original, proposed string, r editor.Range) *Proposal {
	return &Proposal{
		Original: original,
		Proposed: proposed,
		Range:    r,
		Segments: diff.Compute(original, proposed),
	}
}

// Stats summarizes the proposal's diff.
func (p *Proposal) Stats() diff.Summary { return diff.Stats(p.Segments) }

// Accept writes Proposed over Range. The range is used exactly as captured;
// edits made to the document since capture are not reconciled.
func (p *Proposal) Accept(ed editor.Editor) error {
	if ed == nil {
		return ErrNoEditor
	}
	if p.Range.Whole {
		ed.SetValue(p.Proposed)
		return nil
	}
	ed.ReplaceRange(p.Proposed, p.Range.From, p.Range.To)
	return nil
}

// Discard leaves the document as it is.
func (p *Proposal) Discard() {}

// Apply carries out d against ed and reports whether the document changed.
func (p *Proposal) Apply(d Decision, ed editor.Editor) (bool, error) {
	if d != Accept {
		p.Discard()
		return false, nil
	}
	if err := p.Accept(ed); err != nil {
		return false, err
	}
	return true, nil
}
