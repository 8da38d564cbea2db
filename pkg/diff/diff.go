package diff

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rivo/uniseg"
)

// Kind classifies a segment.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Segment is one contiguous run of text of a single kind. Text is never empty.
type Segment struct {
	Kind Kind
	Text string
}

// Compute returns the word-level diff from original to proposed. Within a
// replaced block the removed run precedes the added run.
func Compute(original, proposed string) []Segment {
	a := Tokenize(original)
	b := Tokenize(proposed)

	m := difflib.NewMatcherWithJunk(a, b, false, nil)

	var segs []Segment
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			segs = appendRun(segs, Unchanged, a[op.I1:op.I2])
		case 'd':
			segs = appendRun(segs, Removed, a[op.I1:op.I2])
		case 'i':
			segs = appendRun(segs, Added, b[op.J1:op.J2])
		case 'r':
			segs = appendRun(segs, Removed, a[op.I1:op.I2])
			segs = appendRun(segs, Added, b[op.J1:op.J2])
		}
	}

	return segs
}

// Tokenize splits s at Unicode word boundaries. The tokens concatenate to s.
func Tokenize(s string) []string {
	var tokens []string
	state := -1
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		tokens = append(tokens, word)
	}
	return tokens
}

// appendRun appends tokens as a segment of kind k, merging with the previous
// segment when it has the same kind.
func appendRun(segs []Segment, k Kind, tokens []string) []Segment {
	text := strings.Join(tokens, "")
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Kind == k {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Kind: k, Text: text})
}

// Original rebuilds the original text from segs.
func Original(segs []Segment) string {
	return join(segs, Removed)
}

// Proposed rebuilds the proposed text from segs.
func Proposed(segs []Segment) string {
	return join(segs, Added)
}

func join(segs []Segment, side Kind) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Kind == Unchanged || s.Kind == side {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

// Summary counts the words touched by a diff.
type Summary struct {
	Added   int
	Removed int
}

// Changed reports whether the diff contains any added or removed text.
func (s Summary) Changed() bool { return s.Added > 0 || s.Removed > 0 }

// Stats counts added and removed words. Whitespace and punctuation tokens are
// not counted.
func Stats(segs []Segment) Summary {
	var sum Summary
	for _, s := range segs {
		switch s.Kind {
		case Added:
			sum.Added += countWords(s.Text)
		case Removed:
			sum.Removed += countWords(s.Text)
		}
	}
	return sum
}

func countWords(s string) int {
	n := 0
	for _, tok := range Tokenize(s) {
		if strings.IndexFunc(tok, isWordRune) >= 0 {
			n++
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
