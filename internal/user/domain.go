package user

import (
	"time"

	"lume-api/internal/common"
)

// BotDisplayName is the role label attached to bot-authored history entries
const BotDisplayName = "Lume"

// User is the registry row created on first contact. Consent flips
// false → true exactly once; rows are never deleted.
type User struct {
	UserID    common.UserID `json:"user_id" gorm:"primaryKey;type:varchar(64);column:user_id"`
	Consent   bool          `json:"consent" gorm:"type:boolean;not null;default:false"`
	CreatedAt time.Time     `json:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// UserProfile holds the four onboarding fields, 1:1 with User.
// All four fields non-empty means onboarding is complete.
type UserProfile struct {
	UserID    common.UserID `json:"user_id" gorm:"primaryKey;type:varchar(64);column:user_id"`
	Name      string        `json:"name" gorm:"type:varchar(255)"`
	BirthDate *time.Time    `json:"birth_date" gorm:"type:date"`
	Interests string        `json:"interests" gorm:"type:text"`
	Mood      string        `json:"mood" gorm:"type:text"`
	CreatedAt time.Time     `json:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// TableName returns the table name for the UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}

// IsComplete reports whether every onboarding field has been collected
func (p *UserProfile) IsComplete() bool {
	return p.Name != "" && p.BirthDate != nil && p.Interests != "" && p.Mood != ""
}

// ProfileUpdate is a partial profile write; nil fields are left untouched
type ProfileUpdate struct {
	Name      *string
	BirthDate *time.Time
	Interests *string
	Mood      *string
}

// Message is one transcript row inside a user's partition table.
// It carries no TableName: the partition name is supplied per query.
type Message struct {
	ID        uint                `json:"id" gorm:"primaryKey;autoIncrement"`
	Sender    common.Sender       `json:"sender" gorm:"type:varchar(10);not null"`
	Body      string              `json:"body" gorm:"type:text;not null"`
	Emotion   common.EmotionLabel `json:"emotion" gorm:"type:varchar(20)"`
	CreatedAt time.Time           `json:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// HistoryEntry is one turn of a context window handed to the responder
type HistoryEntry struct {
	Role string
	Body string
}
