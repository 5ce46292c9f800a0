// Package editor models in-place editing: a committed value, a draft, and the
// commit/discard transitions between them.
package editor

type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Field is an edit-in-place value. Only Commit moves the draft into the
// committed value; every other exit from Editing throws the draft away.
type Field struct {
	committed string
	draft     string
	state     State
}

func NewField(committed string) Field {
	return Field{committed: committed, draft: committed}
}

func (f Field) State() State      { return f.state }
func (f Field) Editing() bool     { return f.state == Editing }
func (f Field) Committed() string { return f.committed }
func (f Field) Draft() string     { return f.draft }

// Value is what a view shows.
func (f Field) Value() string {
	if f.state == Editing {
		return f.draft
	}
	return f.committed
}

// Dirty reports an unsaved change; it gates the save affordance.
func (f Field) Dirty() bool {
	return f.state == Editing && f.draft != f.committed
}

// Begin enters Editing with a fresh copy of the committed value. It is a
// no-op while already editing.
func (f *Field) Begin() {
	if f.state == Editing {
		return
	}
	f.draft = f.committed
	f.state = Editing
}

// SetDraft records a keystroke, entering Editing first if needed.
func (f *Field) SetDraft(v string) {
	if f.state != Editing {
		f.Begin()
	}
	f.draft = v
}

// Commit promotes the draft and returns it with whether it differs from the
// previous committed value. Committing while Viewing returns the committed
// value unchanged.
func (f *Field) Commit() (string, bool) {
	if f.state != Editing {
		return f.committed, false
	}
	changed := f.draft != f.committed
	f.committed = f.draft
	f.state = Viewing
	return f.committed, changed
}

// Discard drops the draft. Escape, blur and the clear affordance all land
// here.
func (f *Field) Discard() {
	f.draft = f.committed
	f.state = Viewing
}

// Sync adopts a committed value from outside. A draft in progress is kept.
func (f *Field) Sync(committed string) {
	f.committed = committed
	if f.state != Editing {
		f.draft = committed
	}
}
