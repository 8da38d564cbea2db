package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/germanamz/modai/pkg/engine"
	"github.com/germanamz/modai/pkg/modaidir"
)

// legacyConfig is read when no .modai settings file exists.
const legacyConfig = "modai.yaml"

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// resolveConfigPath returns the settings file to use. Priority:
// 1. Explicit --config flag (non-empty)
// 2. .modai/config.yaml, then .modai/config.toml (if present)
// 3. modai.yaml
func resolveConfigPath(explicit, modaiDirPath string) string {
	if explicit != "" {
		return explicit
	}

	if p := modaidir.New(modaiDirPath).FindConfig(); p != "" {
		return p
	}

	return legacyConfig
}

// loadSettings loads the resolved settings file. Without an explicit --config
// a missing file yields the built-in defaults.
func loadSettings(g *globalOptions, expand bool) (engine.Config, string, error) {
	path := resolveConfigPath(g.configPath, g.modaiDir)

	load := engine.LoadConfigRaw
	if expand {
		load = engine.LoadConfig
	}

	cfg, err := load(path)
	switch {
	case err == nil:
	case g.configPath == "" && errors.Is(err, os.ErrNotExist):
		cfg = engine.DefaultConfig()
	default:
		return engine.Config{}, path, err
	}

	cfg.ModaiDir = g.modaiDir
	return cfg, path, nil
}

// setupLogger writes to .modai/local/modai.log when the project directory
// exists, and to stderr as well with --verbose. The returned func closes the
// log file.
func setupLogger(g *globalOptions, stderr io.Writer) (*slog.Logger, func(), error) {
	var (
		writers []io.Writer
		closer  = func() {}
	)

	d := modaidir.New(g.modaiDir)
	if d.Exists() {
		f, err := modaidir.OpenLog(d)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, f)
		closer = func() { _ = f.Close() }
	}

	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
		writers = append(writers, stderr)
	}

	if len(writers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closer, nil
	}

	h := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}

// writeDocument stores the accepted text in path, or prints it to out.
func writeDocument(path, text string, out io.Writer) error {
	if out != nil {
		_, err := io.WriteString(out, text)
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
