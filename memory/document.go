package memory

import "fmt"

// Reminder is a task the user asked to be reminded of.
// Task is trimmed and non-empty. Time is one or two digits followed by an
// optional AM/PM with no space, e.g. "9AM".
type Reminder struct {
	Task string `json:"task" jsonschema:"minLength=1,pattern=^\\S(.*\\S)?$"`
	Time string `json:"time" jsonschema:"pattern=^[0-9][0-9]?(AM|PM)?$"`
}

func (r Reminder) String() string {
	return fmt.Sprintf("%s at %s", r.Task, r.Time)
}

// Document is the session's memory: at most one remembered lunch and the
// reminders in insertion order.
type Document struct {
	LastLunch *string    `json:"lastLunch,omitempty" jsonschema:"nullable"`
	Reminders []Reminder `json:"reminders"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Reminders: []Reminder{}}
}

// SetLastLunch overwrites the remembered lunch.
func (d *Document) SetLastLunch(text string) {
	d.LastLunch = &text
}

// Lunch returns the remembered lunch, if any.
func (d *Document) Lunch() (string, bool) {
	if d.LastLunch == nil {
		return "", false
	}
	return *d.LastLunch, true
}

// AddReminder appends r, keeping insertion order.
func (d *Document) AddReminder(r Reminder) {
	d.Reminders = append(d.Reminders, r)
}

// Clone returns a deep copy so callers can replace a document wholesale
// without aliasing the reminder slice or the lunch pointer.
func (d *Document) Clone() *Document {
	if d == nil {
		return NewDocument()
	}
	out := &Document{Reminders: make([]Reminder, len(d.Reminders))}
	copy(out.Reminders, d.Reminders)
	if d.LastLunch != nil {
		lunch := *d.LastLunch
		out.LastLunch = &lunch
	}
	return out
}
