package modaidir

import (
	"fmt"
	"os"
)

const gitignoreContent = "local/\n"

// EnsureStructure creates the local/ directory and .gitignore file if they are
// missing. It is idempotent and does not create the root itself unless local/
// requires it.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.LocalDir(), 0o750); err != nil {
		return fmt.Errorf("modaidir: create local dir: %w", err)
	}

	if err := ensureGitignore(d); err != nil {
		return fmt.Errorf("modaidir: gitignore: %w", err)
	}

	return nil
}

func ensureGitignore(d Dir) error {
	path := d.GitignorePath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(gitignoreContent), 0o600)
}

// OpenLog opens the developer log for appending, creating local/ first.
func OpenLog(d Dir) (*os.File, error) {
	if err := EnsureStructure(d); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(d.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path derives from the project directory
	if err != nil {
		return nil, fmt.Errorf("modaidir: open log: %w", err)
	}

	return f, nil
}
