// Package modaidir encapsulates path knowledge for the .modai/ project
// directory: the settings file and the gitignored local/ directory that holds
// the developer log.
package modaidir

import (
	"os"
	"path/filepath"
)

// DefaultName is the directory name used when none is given.
const DefaultName = ".modai"

// Dir is a value object that resolves paths within a .modai/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .modai/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the YAML settings file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// TOMLConfigPath returns the path to the TOML settings file.
func (d Dir) TOMLConfigPath() string { return filepath.Join(d.root, "config.toml") }

// LocalDir returns the path to the local (gitignored) runtime directory.
func (d Dir) LocalDir() string { return filepath.Join(d.root, "local") }

// LogPath returns the path to the developer log.
func (d Dir) LogPath() string { return filepath.Join(d.root, "local", "modai.log") }

// GitignorePath returns the path to the .gitignore file inside .modai/.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// Exists reports whether the root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}

// FindConfig returns the first settings file that exists: config.yaml, then
// config.toml. It returns "" when neither does.
func (d Dir) FindConfig() string {
	for _, p := range []string{d.ConfigPath(), d.TOMLConfigPath()} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}

	return ""
}
