package user

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations ensures the registry and profile tables exist.
// Message partitions are provisioned lazily, one per user, by EnsureUser.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&UserProfile{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate user tables: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_user_profiles_created_at ON user_profiles(created_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
