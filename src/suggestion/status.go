package suggestion

import "strings"

// Status is the moderation state of a suggestion. A record with a nil
// Status field has never been moderated; that "unset" state can be left but
// never re-entered.
type Status string

const (
	StatusApproved    Status = "approved"
	StatusDenied      Status = "denied"
	StatusDuplicate   Status = "duplicate"
	StatusForwarded   Status = "forwarded"
	StatusInProgress  Status = "in-progress"
	StatusInformation Status = "information"
	StatusInvalid     Status = "invalid"
)

// statusLabels maps each named state to the past-tense action shown to
// users when the status is rendered.
var statusLabels = map[Status]string{
	StatusApproved:    "Approved",
	StatusDenied:      "Denied",
	StatusDuplicate:   "Marked as duplicate",
	StatusForwarded:   "Forwarded to the respective team",
	StatusInProgress:  "Marked as in progress",
	StatusInformation: "Marked as needing more information",
	StatusInvalid:     "Invalidated",
}

// Valid reports whether s is one of the named moderation states.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display text for a status ("Marked as duplicate").
func (s Status) Label() string { return statusLabels[s] }

// ParseStatus maps user input to a Status, case-insensitively.
func ParseStatus(text string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(text)))
	if !s.Valid() {
		return "", false
	}
	return s, true
}

// Statuses returns the named states in display order.
func Statuses() []Status {
	return []Status{
		StatusApproved,
		StatusDenied,
		StatusDuplicate,
		StatusForwarded,
		StatusInProgress,
		StatusInformation,
		StatusInvalid,
	}
}
