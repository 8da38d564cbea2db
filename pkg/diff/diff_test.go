package diff_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/germanamz/modai/pkg/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Identical(t *testing.T) {
	for _, text := range []string{"a", "hello world", "  spaced\n\nlines  ", "émoji 👍🏽 ok."} {
		segs := diff.Compute(text, text)
		require.Len(t, segs, 1, text)
		assert.Equal(t, diff.Segment{Kind: diff.Unchanged, Text: text}, segs[0])
	}
}

func TestCompute_SingleWordReplace(t *testing.T) {
	segs := diff.Compute("the quick fox", "the slow fox")

	assert.Equal(t, []diff.Segment{
		{Kind: diff.Unchanged, Text: "the "},
		{Kind: diff.Removed, Text: "quick"},
		{Kind: diff.Added, Text: "slow"},
		{Kind: diff.Unchanged, Text: " fox"},
	}, segs)
}

func TestCompute_NoCommonTokens(t *testing.T) {
	segs := diff.Compute("alpha", "omega")

	assert.Equal(t, []diff.Segment{
		{Kind: diff.Removed, Text: "alpha"},
		{Kind: diff.Added, Text: "omega"},
	}, segs)
}

func TestCompute_EmptyInputs(t *testing.T) {
	assert.Empty(t, diff.Compute("", ""))

	assert.Equal(t, []diff.Segment{{Kind: diff.Added, Text: "new text"}}, diff.Compute("", "new text"))
	assert.Equal(t, []diff.Segment{{Kind: diff.Removed, Text: "old text"}}, diff.Compute("old text", ""))
}

func TestCompute_Insertion(t *testing.T) {
	segs := diff.Compute("a cat", "a black cat")

	assert.Equal(t, "a cat", diff.Original(segs))
	assert.Equal(t, "a black cat", diff.Proposed(segs))

	var added []string
	for _, s := range segs {
		if s.Kind == diff.Added {
			added = append(added, s.Text)
		}
		assert.NotEqual(t, diff.Removed, s.Kind)
	}
	assert.Equal(t, "black ", strings.Join(added, ""))
}

func TestCompute_NoEmptyOrAdjacentDuplicateSegments(t *testing.T) {
	segs := diff.Compute(
		"One two three four five. Six seven!",
		"One 2 3 four five, six seven?",
	)

	for i, s := range segs {
		assert.NotEmpty(t, s.Text)
		if i > 0 {
			assert.NotEqual(t, segs[i-1].Kind, s.Kind, "segments %d and %d share a kind", i-1, i)
		}
	}
}

func TestCompute_RoundTrip(t *testing.T) {
	cases := []struct{ original, proposed string }{
		{"", ""},
		{"old rest", "new rest"},
		{"Line one.\nLine two.\n", "Line one!\n\nLine 2.\n"},
		{"tabs\tand  double  spaces", "tabs and double spaces"},
		{"naïve café", "naive cafe"},
		{"日本語のテキスト", "日本語の文章"},
		{"a, b, c", "c, b, a"},
	}

	for _, tc := range cases {
		segs := diff.Compute(tc.original, tc.proposed)
		assert.Equal(t, tc.original, diff.Original(segs), "original for %q -> %q", tc.original, tc.proposed)
		assert.Equal(t, tc.proposed, diff.Proposed(segs), "proposed for %q -> %q", tc.original, tc.proposed)
	}
}

func TestCompute_RoundTripRandom(t *testing.T) {
	words := []string{"the", "a", "cat", "dog", ",", ".", " ", "  ", "\n", "run", "ran", "é", "42"}
	rng := rand.New(rand.NewSource(7))

	gen := func() string {
		var sb strings.Builder
		for range rng.Intn(30) {
			sb.WriteString(words[rng.Intn(len(words))])
		}
		return sb.String()
	}

	for range 200 {
		original, proposed := gen(), gen()
		segs := diff.Compute(original, proposed)
		require.Equal(t, original, diff.Original(segs))
		require.Equal(t, proposed, diff.Proposed(segs))
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"Hello", ",", " ", "world", "!"}, diff.Tokenize("Hello, world!"))
	assert.Equal(t, []string{"can't", " ", "stop"}, diff.Tokenize("can't stop"))
	assert.Empty(t, diff.Tokenize(""))
}

func TestStats(t *testing.T) {
	segs := diff.Compute("the quick brown fox", "the slow fox jumps")
	sum := diff.Stats(segs)

	assert.Equal(t, 2, sum.Added)
	assert.Equal(t, 2, sum.Removed)
	assert.True(t, sum.Changed())

	assert.False(t, diff.Stats(diff.Compute("same", "same")).Changed())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unchanged", diff.Unchanged.String())
	assert.Equal(t, "added", diff.Added.String())
	assert.Equal(t, "removed", diff.Removed.String())
	assert.Equal(t, "unknown", diff.Kind(9).String())
}
