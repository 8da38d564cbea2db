package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/modai/pkg/engine"
)

func TestEditRoles_WritesDefaultsOnFirstEdit(t *testing.T) {
	t.Chdir(t.TempDir())
	g := &globalOptions{modaiDir: ".modai"}

	require.NoError(t, runRoles(g, []string{"add", "Translator"}, "Translate to Spanish."))

	cfg, err := engine.LoadConfigRaw(filepath.Join(".modai", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Text editor", "SEO Engineer", "Author", "Translator"}, cfg.RoleNames())

	r, ok := cfg.Role("Translator")
	require.True(t, ok)
	assert.Equal(t, "Translate to Spanish.", r.Instructions)
}

func TestEditRoles_KeepsEnvReferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modai.yaml")
	cfg := engine.DefaultConfig()
	cfg.Providers.OpenAI.APIKey = "${OPENAI_API_KEY}"
	require.NoError(t, engine.SaveConfig(path, cfg))
	t.Setenv("OPENAI_API_KEY", "sk-live")

	g := &globalOptions{configPath: path}
	require.NoError(t, runRoles(g, []string{"rm", "Author"}, ""))

	saved, err := engine.LoadConfigRaw(path)
	require.NoError(t, err)
	assert.Equal(t, "${OPENAI_API_KEY}", saved.Providers.OpenAI.APIKey)
	assert.Equal(t, []string{"Text editor", "SEO Engineer"}, saved.RoleNames())
}

func TestEditRoles_SetUpdatesInstructions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modai.yaml")
	require.NoError(t, engine.SaveConfig(path, engine.DefaultConfig()))
	g := &globalOptions{configPath: path}

	require.NoError(t, runRoles(g, []string{"set", "Author"}, "Write like a novelist."))
	require.NoError(t, runRoles(g, []string{"set", "Critic"}, "Point out weak arguments."))

	saved, err := engine.LoadConfigRaw(path)
	require.NoError(t, err)

	r, ok := saved.Role("Author")
	require.True(t, ok)
	assert.Equal(t, "Write like a novelist.", r.Instructions)
	assert.Equal(t, []string{"Text editor", "SEO Engineer", "Author", "Critic"}, saved.RoleNames())
}

func TestRunRoles_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	g := &globalOptions{modaiDir: ".modai"}

	var unknown *engine.UnknownRoleError
	require.ErrorAs(t, runRoles(g, []string{"rm", "Autor"}, ""), &unknown)
	assert.Equal(t, "Author", unknown.Suggestion)

	assert.Error(t, runRoles(g, []string{"add", "Author"}, "dup"))
	assert.Error(t, runRoles(g, []string{"add", "Custom"}, "clashes with modai-custom"))
	assert.Error(t, runRoles(g, []string{"set", "author"}, "same command ID as Author"))
	assert.Error(t, runRoles(g, []string{"rename", "Author"}, ""))
	assert.Error(t, runRoles(g, []string{"add"}, ""))
	assert.NoFileExists(t, filepath.Join(".modai", "config.yaml"))
}

func TestPrintRoles(t *testing.T) {
	var out bytes.Buffer
	printRoles(&out, engine.DefaultConfig())

	assert.Equal(t,
		"Text editor\tmodai-text-editor\nSEO Engineer\tmodai-seo-engineer\nAuthor\tmodai-author\n",
		out.String())
}
