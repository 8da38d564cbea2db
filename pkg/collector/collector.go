// Package collector models the custom-instruction prompt: a set of role
// suggestions, one editable instruction field and two ways to submit it.
//
// Form holds no UI. A frontend feeds it text edits and key names and reads
// back a single outcome, either a Submission or a cancellation.
package collector

import (
	"errors"
	"strings"
)

// Intent is what the user wants done with the instructions.
type Intent int

const (
	// Replace runs the instructions and reviews the result as a document edit.
	Replace Intent = iota
	// Ask runs the instructions and shows the answer without touching the document.
	Ask
)

func (i Intent) String() string {
	if i == Ask {
		return "ask"
	}
	return "replace"
}

// ErrEmptySubmission is reported by Validate when the instruction text is blank.
var ErrEmptySubmission = errors.New("collector: empty submission")

// shortcuts binds key names, as reported by bubbletea, to intents. The first
// key of each intent is the one shown in help text.
var shortcuts = []struct {
	key    string
	intent Intent
}{
	{"ctrl+r", Replace},
	{"alt+r", Replace},
	{"ctrl+enter", Replace},
	{"alt+enter", Replace},
	{"ctrl+a", Ask},
	{"alt+a", Ask},
}

// ShortcutKeys returns the keys that submit with intent, in help order.
func ShortcutKeys(intent Intent) []string {
	var keys []string
	for _, s := range shortcuts {
		if s.intent == intent {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// Suggestion is a canned instruction shown as a chip.
type Suggestion struct {
	Label        string
	Instructions string
}

// Submission is the payload of a successful submit.
type Submission struct {
	Instructions string
	Intent       Intent
}

// Form is the collector state. It is not safe for concurrent use.
type Form struct {
	suggestions []Suggestion
	text        string
	done        bool
	result      *Submission
}

// New returns an open form offering suggestions.
func New(suggestions []Suggestion) *Form {
	return &Form{suggestions: suggestions}
}

// Suggestions returns the chips in display order.
func (f *Form) Suggestions() []Suggestion { return f.suggestions }

// SetText replaces the instruction text.
func (f *Form) SetText(s string) {
	if f.done {
		return
	}
	f.text = s
}

// Text returns the current instruction text.
func (f *Form) Text() string { return f.text }

// Choose copies the instructions of the suggestion named label into the text
// field, overwriting it. The form stays open.
func (f *Form) Choose(label string) bool {
	if f.done {
		return false
	}
	for _, s := range f.suggestions {
		if s.Label == label {
			f.text = s.Instructions
			return true
		}
	}
	return false
}

// Validate reports ErrEmptySubmission when the text is blank.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.text) == "" {
		return ErrEmptySubmission
	}
	return nil
}

// Submit closes the form with intent. A blank text is refused and the form
// stays open.
func (f *Form) Submit(intent Intent) (Submission, bool) {
	if f.done || f.Validate() != nil {
		return Submission{}, false
	}
	f.done = true
	f.result = &Submission{Instructions: f.text, Intent: intent}
	return *f.result, true
}

// Shortcut reports the intent bound to key, if any.
func (f *Form) Shortcut(key string) (Intent, bool) {
	for _, s := range shortcuts {
		if s.key == key {
			return s.intent, true
		}
	}
	return 0, false
}

// HandleKey submits when key is a shortcut. It returns true when the key was
// a shortcut, whether or not the submission was accepted, so the caller can
// keep it away from the text field.
func (f *Form) HandleKey(key string) bool {
	intent, ok := f.Shortcut(key)
	if !ok {
		return false
	}
	f.Submit(intent)
	return true
}

// Cancel closes the form without a submission.
func (f *Form) Cancel() {
	f.done = true
	f.result = nil
}

// Done reports whether the form has been submitted or cancelled.
func (f *Form) Done() bool { return f.done }

// Result returns the submission, or false when the form was cancelled or is
// still open.
func (f *Form) Result() (Submission, bool) {
	if f.result == nil {
		return Submission{}, false
	}
	return *f.result, true
}
