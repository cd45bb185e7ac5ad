package common

import "fmt"

// UserID is the opaque identifier the messaging platform assigns to a user.
// It is used verbatim as the registry key and, sanitized, as the partition name.
type UserID string

// String returns the string representation of the UserID
func (id UserID) String() string {
	return string(id)
}

// Sender identifies which side of the conversation authored a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of Sender
func (s Sender) String() string {
	return string(s)
}

// IsValid checks if the Sender is valid
func (s Sender) IsValid() bool {
	switch s {
	case SenderUser, SenderBot:
		return true
	default:
		return false
	}
}

// EmotionLabel is the classification attached to user-authored messages
type EmotionLabel string

const (
	EmotionPositive EmotionLabel = "positive"
	EmotionNegative EmotionLabel = "negative"
	EmotionNeutral  EmotionLabel = "neutral"
	EmotionUnknown  EmotionLabel = "unknown"
)

// String returns the string representation of EmotionLabel
func (e EmotionLabel) String() string {
	return string(e)
}

// IsValid checks if the EmotionLabel is valid
func (e EmotionLabel) IsValid() bool {
	switch e {
	case EmotionPositive, EmotionNegative, EmotionNeutral, EmotionUnknown:
		return true
	default:
		return false
	}
}

// Common error types
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
}

type InternalError struct {
	Operation string
	Cause     error
}

func (e InternalError) Error() string {
	return fmt.Sprintf("internal error during %s: %v", e.Operation, e.Cause)
}

func (e InternalError) Unwrap() error {
	return e.Cause
}
