package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/germanamz/modai/cmd/modai/internal/tui"
	"github.com/germanamz/modai/pkg/engine"
)

// documentOptions are the flags of run and custom.
type documentOptions struct {
	*globalOptions
	role      string
	file      string
	selection string
	stdout    bool
	plain     bool
	custom    bool
}

func (o documentOptions) validate() error {
	if o.file == "" {
		return errors.New("--file is required")
	}
	if !o.custom && o.role == "" {
		return errors.New("--role is required")
	}
	return nil
}

func runDocument(ctx context.Context, o documentOptions) error {
	if err := o.validate(); err != nil {
		return err
	}

	if err := loadDotEnv(o.envFile); err != nil {
		return err
	}

	cfg, _, err := loadSettings(o.globalOptions, true)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(o.globalOptions, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	data, err := os.ReadFile(o.file)
	if err != nil {
		return err
	}

	ws, err := newFileWorkspace(string(data), o.selection)
	if err != nil {
		return err
	}

	// Dialogs draw on stderr so --stdout output stays clean.
	host := engine.Host{Workspace: ws, Frontend: tui.New(nil, os.Stderr, o.plain)}

	events := engine.NewEventBus()
	stopTrace := traceEvents(events, logger)
	defer stopTrace()

	eng, err := engine.New(cfg, host, engine.WithLogger(logger), engine.WithEventBus(events))
	if err != nil {
		return err
	}

	cmd := selectCommand(eng, o)
	logger.Debug("running command", "id", cmd.ID, "file", o.file)

	return finish(cmd.Run(ctx), o, ws.buf.Value())
}

// selectCommand finds the registered command for the flags. An unknown role
// still runs through RunRole so the engine reports it with a suggestion.
func selectCommand(eng *engine.Engine, o documentOptions) engine.Command {
	id := engine.CustomCommandID
	if !o.custom {
		id = engine.RoleCommandID(o.role)
	}

	if c, ok := eng.Command(id); ok {
		return c
	}

	role := o.role
	return engine.Command{
		ID:   id,
		Name: "use " + role,
		Run:  func(ctx context.Context) engine.Result { return eng.RunRole(ctx, role) },
	}
}

// finish maps an invocation result to the process outcome.
func finish(res engine.Result, o documentOptions, text string) error {
	switch res.Outcome {
	case engine.Applied:
		var out io.Writer
		if o.stdout {
			out = os.Stdout
		}
		return writeDocument(o.file, text, out)
	case engine.Failed:
		return fmt.Errorf("%s: %w", o.file, res.Err)
	default:
		return nil
	}
}
