package main

import (
	"github.com/germanamz/modai/pkg/editor"
	"github.com/germanamz/modai/pkg/engine"
)

var _ engine.Workspace = (*fileWorkspace)(nil)

// fileWorkspace exposes a single document loaded from disk.
type fileWorkspace struct {
	buf *editor.Buffer
}

func newFileWorkspace(text, selection string) (*fileWorkspace, error) {
	buf := editor.NewBuffer(text)
	if selection != "" {
		r, err := editor.ParseRange(selection)
		if err != nil {
			return nil, err
		}
		buf.Select(r.From, r.To)
	}
	return &fileWorkspace{buf: buf}, nil
}

func (w *fileWorkspace) ActiveEditor() (editor.Editor, bool) {
	if w.buf == nil {
		return nil, false
	}
	return w.buf, true
}
