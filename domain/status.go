package domain

import "strings"

// Status is the closed set of task states.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every known status in a stable order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// ParseStatus matches a free-text token against the known statuses,
// case-insensitively. The second return reports whether the token matched.
func ParseStatus(raw string) (Status, bool) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range Statuses() {
		if s == candidate {
			return s, true
		}
	}
	return "", false
}

// NormalizeCreateStatus resolves the status for a new task. An absent or
// unrecognized token falls back to TODO.
func NormalizeCreateStatus(raw *string) Status {
	if raw == nil {
		return StatusTodo
	}
	if s, ok := ParseStatus(*raw); ok {
		return s
	}
	return StatusTodo
}

// NormalizeUpdateStatus resolves the status for an existing task. An absent
// or unrecognized token keeps the previous status; the rest of the update
// still applies. This asymmetry with create is intentional.
func NormalizeUpdateStatus(raw *string, previous Status) Status {
	if raw == nil {
		return previous
	}
	if s, ok := ParseStatus(*raw); ok {
		return s
	}
	return previous
}
