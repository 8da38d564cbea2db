package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/germanamz/modai/pkg/engine"
	"github.com/germanamz/modai/pkg/modaidir"
)

// initAnswers holds what the init wizard asks for. Keys are stored as
// environment references so secrets stay in .env.
type initAnswers struct {
	Model       string
	Temperature string
	OpenAIKey   string //nolint:gosec // env var reference, not a secret
	GeminiKey   string //nolint:gosec // env var reference, not a secret
	LlamaURL    string
}

func defaultAnswers() initAnswers {
	def := engine.DefaultConfig()
	return initAnswers{
		Model:       def.Model,
		Temperature: strconv.FormatFloat(def.Temperature, 'f', -1, 64),
		OpenAIKey:   "${OPENAI_API_KEY}",
		GeminiKey:   "${GEMINI_API_KEY}",
		LlamaURL:    def.Providers.Llama.BaseURL,
	}
}

// suggestedModels are offered by the wizard, one or more per provider family.
var suggestedModels = []huh.Option[string]{
	huh.NewOption("gpt-5-mini (OpenAI)", "gpt-5-mini"),
	huh.NewOption("gpt-4o (OpenAI)", "gpt-4o"),
	huh.NewOption("o4-mini (OpenAI)", "o4-mini"),
	huh.NewOption("gemini-2.0-flash (Google)", "gemini-2.0-flash"),
	huh.NewOption("gemini-1.5-pro (Google)", "gemini-1.5-pro"),
	huh.NewOption("llama3.1 (local)", "llama3.1"),
}

func runInit(g *globalOptions, force bool) error {
	d := modaidir.New(g.modaiDir)

	if existing := d.FindConfig(); existing != "" && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", existing)
	}

	a := defaultAnswers()
	if err := runInitWizard(&a); err != nil {
		return err
	}

	cfg, err := a.config()
	if err != nil {
		return err
	}

	if err := modaidir.EnsureStructure(d); err != nil {
		return err
	}

	if err := engine.SaveConfig(d.ConfigPath(), cfg); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", d.Root())
	return nil
}

func runInitWizard(a *initAnswers) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model").
				Description("The provider is picked from the model name.").
				Options(suggestedModels...).
				Value(&a.Model),
			huh.NewInput().
				Title("Temperature").
				Description(fmt.Sprintf("Between %.1f and %.1f.", engine.MinTemperature, engine.MaxTemperature)).
				Validate(validTemperature).
				Value(&a.Temperature),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API key").
				Description("An ${ENV_VAR} reference keeps the key out of the file.").
				Value(&a.OpenAIKey),
			huh.NewInput().
				Title("Gemini API key").
				Value(&a.GeminiKey),
			huh.NewInput().
				Title("Local server URL").
				Description("OpenAI-compatible endpoint used for llama models.").
				Value(&a.LlamaURL),
		),
	).WithAccessible(accessibleForms()).Run()
}

func validTemperature(s string) error {
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("must be a number")
	}
	if t < engine.MinTemperature || t > engine.MaxTemperature {
		return fmt.Errorf("must be between %.1f and %.1f", engine.MinTemperature, engine.MaxTemperature)
	}
	return nil
}

// config builds settings from the answers on top of the defaults.
func (a initAnswers) config() (engine.Config, error) {
	cfg := engine.DefaultConfig()

	t, err := strconv.ParseFloat(a.Temperature, 64)
	if err != nil {
		return engine.Config{}, fmt.Errorf("temperature: %w", err)
	}

	cfg.Model = a.Model
	cfg.Temperature = t
	cfg.Providers.OpenAI.APIKey = a.OpenAIKey
	cfg.Providers.Gemini.APIKey = a.GeminiKey
	if a.LlamaURL != "" {
		cfg.Providers.Llama.BaseURL = a.LlamaURL
	}

	if _, err := engine.FamilyOf(cfg.Model); err != nil {
		return engine.Config{}, err
	}

	return cfg, cfg.Validate()
}

// accessibleForms switches huh to line-oriented prompts when stdin is not a
// terminal.
func accessibleForms() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice == 0
}
