package prompt_test

import (
	"strings"
	"testing"

	"github.com/germanamz/modai/pkg/prompt"
	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	got := prompt.Compose("Fix grammar.", "teh cat")
	assert.Equal(t, "Fix grammar.\n\n### INPUT TEXT\n\nteh cat", got)
}

func TestCompose_SourceVerbatim(t *testing.T) {
	source := "  leading spaces\n\t<b>&amp;</b>\r\né́ trailing  \n\n"

	got := prompt.Compose("x", source)

	assert.True(t, strings.HasSuffix(got, source))
	assert.Equal(t, len("x")+len("\n\n"+prompt.InputHeader+"\n\n")+len(source), len(got))
}

func TestCompose_Empty(t *testing.T) {
	assert.Equal(t, "\n\n### INPUT TEXT\n\n", prompt.Compose("", ""))
}

func TestCompose_HeaderAppearsOnceBeforeSource(t *testing.T) {
	got := prompt.Compose("Rewrite the text below.", "body")

	idx := strings.Index(got, prompt.InputHeader)
	assert.Positive(t, idx)
	assert.Equal(t, "body", got[idx+len(prompt.InputHeader)+2:])
}
