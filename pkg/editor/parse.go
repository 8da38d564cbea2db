package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errRangeFormat = errors.New("want LINE:CH-LINE:CH")

// ParseRange parses "LINE:CH-LINE:CH" using the same 0-based numbering as
// Position, e.g. "2:0-4:10".
func ParseRange(s string) (Range, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Range{}, fmt.Errorf("editor: invalid range %q: %w", s, errRangeFormat)
	}

	from, err := parsePosition(left)
	if err != nil {
		return Range{}, fmt.Errorf("editor: invalid range %q: %w", s, err)
	}

	to, err := parsePosition(right)
	if err != nil {
		return Range{}, fmt.Errorf("editor: invalid range %q: %w", s, err)
	}

	if to.Before(from) {
		from, to = to, from
	}

	return Range{From: from, To: to}, nil
}

func parsePosition(s string) (Position, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return Position{}, errRangeFormat
	}

	line, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil {
		return Position{}, fmt.Errorf("line: %w", err)
	}

	ch, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return Position{}, fmt.Errorf("ch: %w", err)
	}

	if line < 0 || ch < 0 {
		return Position{}, errors.New("negative position")
	}

	return Position{Line: line, Ch: ch}, nil
}
