package engine

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Temperature bounds accepted by Validate.
const (
	MinTemperature = 0.1
	MaxTemperature = 1.0
)

// Config is the top-level engine configuration.
type Config struct {
	ModaiDir    string          `yaml:"-" toml:"-"` // Set by CLI, not from the file.
	Model       string          `yaml:"model" toml:"model"`
	Temperature float64         `yaml:"temperature" toml:"temperature"`
	Providers   ProvidersConfig `yaml:"providers" toml:"providers"`
	Roles       []RoleConfig    `yaml:"roles" toml:"roles"`
}

// ProvidersConfig holds one credential block per provider family.
type ProvidersConfig struct {
	OpenAI ProviderConfig `yaml:"openai" toml:"openai"`
	Gemini ProviderConfig `yaml:"gemini" toml:"gemini"`
	Llama  ProviderConfig `yaml:"llama" toml:"llama"`
}

// ProviderConfig describes how to reach one provider family.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key" toml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
}

// RoleConfig is a named set of fixed instructions.
type RoleConfig struct {
	Name         string `yaml:"name" toml:"name"`
	Instructions string `yaml:"instructions" toml:"instructions"`
}

// DefaultConfig returns the built-in settings: three roles, gpt-5-mini and a
// temperature of 0.7.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("engine: embedded defaults: %v", err))
	}
	return cfg
}

// LoadConfig reads a YAML (or .toml) settings file over DefaultConfig.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing so API keys can stay in the environment or a .env file.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, true)
}

// LoadConfigRaw is LoadConfig without environment expansion. Editors use it so
// that saving does not write resolved secrets back to disk.
func LoadConfigRaw(path string) (Config, error) {
	return loadConfig(path, false)
}

func loadConfig(path string, expand bool) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	text := string(data)
	if expand {
		text = os.ExpandEnv(text)
	}

	cfg := DefaultConfig()
	if isTOML(path) {
		defaults := cfg.Roles
		cfg.Roles = nil

		md, err := toml.Decode(text, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("engine: parse config: %w", err)
		}
		if !md.IsDefined("roles") {
			cfg.Roles = defaults
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal([]byte(text), &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories. The format
// follows the file extension.
func SaveConfig(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)

	if isTOML(path) {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("engine: encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("engine: save config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("engine: save config: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("engine: config: model is required")
	}

	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return fmt.Errorf("engine: config: temperature %.2f outside [%.1f, %.1f]", c.Temperature, MinTemperature, MaxTemperature)
	}

	ids := make(map[string]string, len(c.Roles))
	for _, r := range c.Roles {
		if strings.TrimSpace(r.Name) == "" {
			return errors.New("engine: config: role name is required")
		}

		id := RoleCommandID(r.Name)
		if id == CustomCommandID {
			return fmt.Errorf("engine: config: role %q clashes with the custom instructions command", r.Name)
		}
		if other, dup := ids[id]; dup {
			if other == r.Name {
				return fmt.Errorf("engine: config: duplicate role name %q", r.Name)
			}
			return fmt.Errorf("engine: config: roles %q and %q share command ID %q", other, r.Name, id)
		}
		ids[id] = r.Name
	}

	return nil
}

// Credentials returns the per-family credentials the resolver needs.
func (c Config) Credentials() Credentials {
	return Credentials{
		OpenAI: Credential(c.Providers.OpenAI),
		Gemini: Credential(c.Providers.Gemini),
		Local:  Credential(c.Providers.Llama),
	}
}

// Role returns the role named name.
func (c Config) Role(name string) (RoleConfig, bool) {
	for _, r := range c.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return RoleConfig{}, false
}

// RoleNames returns role names in configuration order.
func (c Config) RoleNames() []string {
	names := make([]string, len(c.Roles))
	for i, r := range c.Roles {
		names[i] = r.Name
	}
	return names
}

// AddRole appends a new role. It fails when name is blank or taken.
func (c *Config) AddRole(name, instructions string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("engine: config: role name is required")
	}
	if _, ok := c.Role(name); ok {
		return fmt.Errorf("engine: config: role %q already exists", name)
	}
	c.Roles = append(c.Roles, RoleConfig{Name: name, Instructions: instructions})
	return nil
}

// SetRole updates the instructions of name, adding the role if it is new.
func (c *Config) SetRole(name, instructions string) error {
	for i := range c.Roles {
		if c.Roles[i].Name == name {
			c.Roles[i].Instructions = instructions
			return nil
		}
	}
	return c.AddRole(name, instructions)
}

// RemoveRole deletes the role named name.
func (c *Config) RemoveRole(name string) error {
	for i, r := range c.Roles {
		if r.Name == name {
			c.Roles = append(c.Roles[:i], c.Roles[i+1:]...)
			return nil
		}
	}
	return &UnknownRoleError{Name: name, Suggestion: suggestRole(name, c.RoleNames())}
}
