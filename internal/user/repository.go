package user

import (
	"lume-api/internal/common"
)

// Repository owns all reads and writes for the user registry, the per-user
// message partitions, and the profile table.
type Repository interface {
	// EnsureUser inserts a registry row if absent and, on first insert,
	// provisions the user's message partition. Safe to call repeatedly.
	EnsureUser(userID common.UserID) error

	// GetConsent reports whether the user has accepted the privacy policy.
	// Unknown users have not consented.
	GetConsent(userID common.UserID) (bool, error)

	// SetConsent upserts consent = true. Idempotent.
	SetConsent(userID common.UserID) error

	// AppendMessage inserts one transcript row into the user's partition.
	// Emotion is only ever set for user-authored messages.
	AppendMessage(userID common.UserID, sender common.Sender, body string, emotion common.EmotionLabel) error

	// RecentHistory returns at most limit of the newest messages,
	// ordered oldest first, with senders mapped to display roles.
	RecentHistory(userID common.UserID, limit int) ([]HistoryEntry, error)

	// GetProfile returns the user's profile, or nil if none exists yet.
	GetProfile(userID common.UserID) (*UserProfile, error)

	// UpsertProfile creates the profile on first call and otherwise applies
	// only the fields set in the update.
	UpsertProfile(userID common.UserID, update ProfileUpdate) error
}
