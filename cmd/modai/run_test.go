package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/modai/cmd/modai/internal/tui"
	"github.com/germanamz/modai/pkg/engine"
)

func TestDocumentOptions_Validate(t *testing.T) {
	g := &globalOptions{}

	assert.Error(t, documentOptions{globalOptions: g, role: "Author"}.validate())
	assert.Error(t, documentOptions{globalOptions: g, file: "a.md"}.validate())
	assert.NoError(t, documentOptions{globalOptions: g, file: "a.md", role: "Author"}.validate())
	assert.NoError(t, documentOptions{globalOptions: g, file: "a.md", custom: true}.validate())
}

func TestFinish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0o600))
	o := documentOptions{globalOptions: &globalOptions{}, file: path}

	require.NoError(t, finish(engine.Result{Outcome: engine.Discarded}, o, "ignored"))
	data, _ := os.ReadFile(path)
	assert.Equal(t, "before", string(data))

	require.NoError(t, finish(engine.Result{Outcome: engine.Applied}, o, "after"))
	data, _ = os.ReadFile(path)
	assert.Equal(t, "after", string(data))

	cause := errors.New("boom")
	err := finish(engine.Result{Outcome: engine.Failed, Err: cause}, o, "")
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), path)
}

func TestSelectCommand(t *testing.T) {
	var notices bytes.Buffer
	ws, err := newFileWorkspace("draft", "")
	require.NoError(t, err)

	eng, err := engine.New(engine.DefaultConfig(), engine.Host{Workspace: ws, Frontend: tui.New(nil, &notices, true)})
	require.NoError(t, err)

	g := &globalOptions{}

	c := selectCommand(eng, documentOptions{globalOptions: g, role: "SEO Engineer"})
	assert.Equal(t, "modai-seo-engineer", c.ID)
	assert.Equal(t, "use SEO Engineer", c.Name)

	c = selectCommand(eng, documentOptions{globalOptions: g, custom: true})
	assert.Equal(t, engine.CustomCommandID, c.ID)
	assert.Equal(t, "Use custom instructions", c.Name)

	c = selectCommand(eng, documentOptions{globalOptions: g, role: "Autor"})
	res := c.Run(context.Background())
	assert.Equal(t, engine.Failed, res.Outcome)

	var unknown *engine.UnknownRoleError
	require.ErrorAs(t, res.Err, &unknown)
	assert.Equal(t, "Author", unknown.Suggestion)
	assert.Contains(t, notices.String(), engine.NoticeUnknownRole)
}
