// Package activity defines the entries of the operational activity log.
package activity

import "time"

// Action classifies an activity entry.
type Action string

// Known actions.
const (
	ActionInfo   Action = "INFO"
	ActionError  Action = "ERROR"
	ActionInsert Action = "INSERT"
	ActionSearch Action = "SEARCH"
)

// TimestampLayout is the wall-clock format stored in entries.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is one append-only activity record.
type Entry struct {
	Action    Action `json:"action"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewEntry stamps an entry with the given time.
func NewEntry(action Action, message string, at time.Time) Entry {
	return Entry{
		Action:    action,
		Message:   message,
		Timestamp: at.Format(TimestampLayout),
	}
}

// Valid reports whether the action is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionInfo, ActionError, ActionInsert, ActionSearch:
		return true
	}
	return false
}
