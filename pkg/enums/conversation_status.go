package enums

import "fmt"

// ConversationStatus tracks whether a chat conversation is still open.
type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
	ConversationStatusClosed ConversationStatus = "closed"
)

var validConversationStatuses = []ConversationStatus{
	ConversationStatusActive,
	ConversationStatusClosed,
}

// String implements fmt.Stringer.
func (c ConversationStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConversationStatus.
func (c ConversationStatus) IsValid() bool {
	for _, candidate := range validConversationStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConversationStatus converts raw input into a ConversationStatus.
func ParseConversationStatus(value string) (ConversationStatus, error) {
	for _, candidate := range validConversationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid conversation status %q", value)
}
