package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/germanamz/modai/pkg/engine"
	"github.com/germanamz/modai/pkg/modaidir"
)

func runRoles(g *globalOptions, args []string, instructions string) error {
	if len(args) == 0 {
		cfg, _, err := loadSettings(g, false)
		if err != nil {
			return err
		}
		printRoles(os.Stdout, cfg)
		return nil
	}

	if len(args) != 2 {
		return errors.New("usage: modai roles [add <name> | set <name> | rm <name>]")
	}

	switch args[0] {
	case "add":
		if strings.TrimSpace(instructions) == "" {
			var err error
			if instructions, err = promptInstructions(args[1], ""); err != nil {
				return err
			}
		}
		return editRoles(g, func(cfg *engine.Config) error {
			return cfg.AddRole(args[1], instructions)
		})
	case "set", "edit":
		if strings.TrimSpace(instructions) == "" {
			cfg, _, err := loadSettings(g, false)
			if err != nil {
				return err
			}
			current, _ := cfg.Role(args[1])
			if instructions, err = promptInstructions(args[1], current.Instructions); err != nil {
				return err
			}
		}
		return editRoles(g, func(cfg *engine.Config) error {
			return cfg.SetRole(args[1], instructions)
		})
	case "rm", "remove":
		return editRoles(g, func(cfg *engine.Config) error {
			return cfg.RemoveRole(args[1])
		})
	default:
		return fmt.Errorf("unknown roles action %q", args[0])
	}
}

// promptInstructions asks for a role's instructions, starting from current.
func promptInstructions(name, current string) (string, error) {
	instructions := current
	err := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(fmt.Sprintf("Instructions for %q", name)).
			Description("Sent ahead of the text every time the role runs.").
			Validate(notBlank("instructions")).
			Value(&instructions),
	)).WithAccessible(accessibleForms()).Run()
	return instructions, err
}

// editRoles applies edit to the unexpanded settings and saves them. When no
// settings file exists yet the defaults are written to .modai/config.yaml.
func editRoles(g *globalOptions, edit func(*engine.Config) error) error {
	cfg, path, err := loadSettings(g, false)
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		path = modaidir.New(g.modaiDir).ConfigPath()
	}

	if err := edit(&cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return engine.SaveConfig(path, cfg)
}

func printRoles(w io.Writer, cfg engine.Config) {
	for _, r := range cfg.Roles {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, engine.RoleCommandID(r.Name))
	}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
