package user

import (
	"errors"
	"time"

	"lume-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormRepository implements the Repository interface using GORM
type gormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormRepository creates a new GORM-based user repository
func NewGormRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureUser inserts the registry row if absent; on first insert it also
// provisions the user's message partition table
func (r *gormRepository) EnsureUser(userID common.UserID) error {
	var count int64
	if err := r.db.Model(&User{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return WrapRepositoryError(err, "check user exists")
	}

	if count > 0 {
		return nil
	}

	if err := r.db.Create(&User{UserID: userID, CreatedAt: time.Now()}).Error; err != nil {
		return WrapRepositoryError(err, "create user")
	}

	partition := PartitionName(userID)
	if err := r.db.Table(partition).AutoMigrate(&Message{}); err != nil {
		return WrapRepositoryError(err, "provision message partition")
	}

	r.logger.Info("User registered",
		zap.String("user_id", string(userID)),
		zap.String("partition", partition))

	return nil
}

// GetConsent reports whether the user has consented; unknown users have not
func (r *gormRepository) GetConsent(userID common.UserID) (bool, error) {
	var u User
	err := r.db.Where("user_id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, WrapRepositoryError(err, "get consent")
	}
	return u.Consent, nil
}

// SetConsent upserts consent = true; repeated calls are no-ops
func (r *gormRepository) SetConsent(userID common.UserID) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"consent": true}),
	}).Create(&User{UserID: userID, Consent: true, CreatedAt: time.Now()}).Error
	if err != nil {
		return WrapRepositoryError(err, "set consent")
	}

	r.logger.Info("Consent recorded", zap.String("user_id", string(userID)))
	return nil
}

// AppendMessage inserts one row into the user's partition
func (r *gormRepository) AppendMessage(userID common.UserID, sender common.Sender, body string, emotion common.EmotionLabel) error {
	msg := Message{
		Sender:    sender,
		Body:      body,
		Emotion:   emotion,
		CreatedAt: time.Now(),
	}

	if err := r.db.Table(PartitionName(userID)).Create(&msg).Error; err != nil {
		return WrapRepositoryError(err, "append message")
	}
	return nil
}

// RecentHistory returns the newest limit messages oldest-first
func (r *gormRepository) RecentHistory(userID common.UserID, limit int) ([]HistoryEntry, error) {
	var msgs []Message
	err := r.db.Table(PartitionName(userID)).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, WrapRepositoryError(err, "fetch recent history")
	}

	// Rows arrive newest-first; reverse into chronological order.
	history := make([]HistoryEntry, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		role := "User"
		if msgs[i].Sender == common.SenderBot {
			role = BotDisplayName
		}
		history = append(history, HistoryEntry{Role: role, Body: msgs[i].Body})
	}

	return history, nil
}

// GetProfile returns the profile or nil when none exists
func (r *gormRepository) GetProfile(userID common.UserID) (*UserProfile, error) {
	var profile UserProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapRepositoryError(err, "get profile")
	}
	return &profile, nil
}

// UpsertProfile creates the record on first call, otherwise updates only the
// supplied fields
func (r *gormRepository) UpsertProfile(userID common.UserID, update ProfileUpdate) error {
	existing, err := r.GetProfile(userID)
	if err != nil {
		return err
	}

	if existing == nil {
		profile := UserProfile{UserID: userID, CreatedAt: time.Now()}
		applyUpdate(&profile, update)
		if err := r.db.Create(&profile).Error; err != nil {
			return WrapRepositoryError(err, "create profile")
		}
		return nil
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.BirthDate != nil {
		updates["birth_date"] = *update.BirthDate
	}
	if update.Interests != nil {
		updates["interests"] = *update.Interests
	}
	if update.Mood != nil {
		updates["mood"] = *update.Mood
	}

	if len(updates) == 0 {
		return nil
	}

	err = r.db.Model(&UserProfile{}).Where("user_id = ?", userID).Updates(updates).Error
	if err != nil {
		return WrapRepositoryError(err, "update profile")
	}
	return nil
}

func applyUpdate(profile *UserProfile, update ProfileUpdate) {
	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.BirthDate != nil {
		profile.BirthDate = update.BirthDate
	}
	if update.Interests != nil {
		profile.Interests = *update.Interests
	}
	if update.Mood != nil {
		profile.Mood = *update.Mood
	}
}
