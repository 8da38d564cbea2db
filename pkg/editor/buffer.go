package editor

import (
	"strings"
	"sync"
	"unicode/utf8"
)

var _ Editor = (*Buffer)(nil)

// Buffer is an in-memory Editor. Positions outside the document are clipped
// to the nearest valid location.
type Buffer struct {
	mu     sync.Mutex
	text   string
	anchor Position
	head   Position
}

// NewBuffer returns a Buffer holding text with an empty selection at 0:0.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Select sets the selection. The ends may be given in either order.
func (b *Buffer) Select(from, to Position) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.anchor = b.clip(from)
	b.head = b.clip(to)
}

// Selection returns the selected text, or "" when the selection is empty.
func (b *Buffer) Selection() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	from, to := b.ordered()
	return b.text[b.offset(from):b.offset(to)]
}

// Cursor returns the requested end of the selection.
func (b *Buffer) Cursor(edge Edge) Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	from, to := b.ordered()
	if edge == To {
		return to
	}
	return from
}

func (b *Buffer) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.text
}

// SetValue replaces the whole document and collapses the selection to 0:0.
func (b *Buffer) SetValue(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = text
	b.anchor, b.head = Position{}, Position{}
}

// ReplaceRange replaces the text between from and to. The selection collapses
// to the end of the inserted text.
func (b *Buffer) ReplaceRange(text string, from, to Position) {
	b.mu.Lock()
	defer b.mu.Unlock()

	from, to = b.clip(from), b.clip(to)
	if to.Before(from) {
		from, to = to, from
	}

	start, end := b.offset(from), b.offset(to)
	b.text = b.text[:start] + text + b.text[end:]

	pos := b.position(start + len(text))
	b.anchor, b.head = pos, pos
}

func (b *Buffer) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return strings.Count(b.text, "\n") + 1
}

// Line returns line n without its newline, or "" when n is out of range.
func (b *Buffer) Line(n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := strings.Split(b.text, "\n")
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}

// Offset converts p to a byte offset into Value, clipping p first.
func (b *Buffer) Offset(p Position) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.offset(b.clip(p))
}

func (b *Buffer) ordered() (Position, Position) {
	if b.head.Before(b.anchor) {
		return b.head, b.anchor
	}
	return b.anchor, b.head
}

// clip moves p to the closest position that exists in the document.
func (b *Buffer) clip(p Position) Position {
	lines := strings.Split(b.text, "\n")
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(lines) {
		last := len(lines) - 1
		return Position{Line: last, Ch: utf8.RuneCountInString(lines[last])}
	}
	if p.Ch < 0 {
		p.Ch = 0
	}
	if n := utf8.RuneCountInString(lines[p.Line]); p.Ch > n {
		p.Ch = n
	}
	return p
}

// offset expects a clipped position.
func (b *Buffer) offset(p Position) int {
	off := 0
	rest := b.text
	for range p.Line {
		i := strings.IndexByte(rest, '\n')
		off += i + 1
		rest = rest[i+1:]
	}
	for range p.Ch {
		_, size := utf8.DecodeRuneInString(rest)
		off += size
		rest = rest[size:]
	}
	return off
}

func (b *Buffer) position(off int) Position {
	before := b.text[:off]
	line := strings.Count(before, "\n")
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return Position{Line: line, Ch: utf8.RuneCountInString(before)}
}
