package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lume-api/internal/common"
	"lume-api/internal/config"
	"lume-api/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

// setupTestRepository starts a PostgreSQL container and returns a migrated repository
func setupTestRepository(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed repository test in short mode")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("test_lume"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = postgresContainer.Terminate(ctx)
	})

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := database.NewPostgresConnection(config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "test_user",
		Password:        "test_password",
		DBName:          "test_lume",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 300,
	})
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, RunMigrations(db))

	return NewGormRepository(db, zaptest.NewLogger(t)), db
}

func TestGormRepository_EnsureUserIdempotent(t *testing.T) {
	repo, db := setupTestRepository(t)
	userID := common.UserID("U-fresh-user-1")

	require.NoError(t, repo.EnsureUser(userID))

	// Registry row exists and the partition is provisioned but empty.
	var count int64
	require.NoError(t, db.Model(&User{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	partition := PartitionName(userID)
	assert.True(t, db.Migrator().HasTable(partition))

	var msgCount int64
	require.NoError(t, db.Table(partition).Count(&msgCount).Error)
	assert.Equal(t, int64(0), msgCount)

	// Second call is a no-op.
	require.NoError(t, repo.EnsureUser(userID))
	require.NoError(t, db.Model(&User{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormRepository_Consent(t *testing.T) {
	repo, _ := setupTestRepository(t)
	userID := common.UserID("U-consent-user")

	require.NoError(t, repo.EnsureUser(userID))

	consent, err := repo.GetConsent(userID)
	require.NoError(t, err)
	assert.False(t, consent, "fresh user must not have consent")

	require.NoError(t, repo.SetConsent(userID))

	consent, err = repo.GetConsent(userID)
	require.NoError(t, err)
	assert.True(t, consent)

	// Repeated upsert is safe.
	require.NoError(t, repo.SetConsent(userID))
	consent, err = repo.GetConsent(userID)
	require.NoError(t, err)
	assert.True(t, consent)
}

func TestGormRepository_GetConsent_UnknownUser(t *testing.T) {
	repo, _ := setupTestRepository(t)

	consent, err := repo.GetConsent("U-never-seen")
	require.NoError(t, err)
	assert.False(t, consent)
}

func TestGormRepository_RecentHistoryWindow(t *testing.T) {
	repo, _ := setupTestRepository(t)
	userID := common.UserID("U-history-user")

	require.NoError(t, repo.EnsureUser(userID))

	for i := 1; i <= 15; i++ {
		sender := common.SenderUser
		emotion := common.EmotionNeutral
		if i%2 == 0 {
			sender = common.SenderBot
			emotion = ""
		}
		require.NoError(t, repo.AppendMessage(userID, sender, fmt.Sprintf("message %d", i), emotion))
	}

	history, err := repo.RecentHistory(userID, 10)
	require.NoError(t, err)
	require.Len(t, history, 10)

	// The window holds messages 6..15, oldest first.
	assert.Equal(t, "message 6", history[0].Body)
	assert.Equal(t, "message 15", history[9].Body)
	assert.Equal(t, BotDisplayName, history[0].Role)
	assert.Equal(t, "User", history[9].Role)
}

func TestGormRepository_ProfileLifecycle(t *testing.T) {
	repo, _ := setupTestRepository(t)
	userID := common.UserID("U-profile-user")

	require.NoError(t, repo.EnsureUser(userID))

	profile, err := repo.GetProfile(userID)
	require.NoError(t, err)
	assert.Nil(t, profile, "no profile before first upsert")

	// First upsert creates the record.
	name := "Alice"
	require.NoError(t, repo.UpsertProfile(userID, ProfileUpdate{Name: &name}))

	profile, err = repo.GetProfile(userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.Name)
	assert.False(t, profile.IsComplete())

	// Partial update leaves other fields untouched.
	birth := mustDate(t, "1990-01-01")
	interests := "reading"
	mood := "happy"
	require.NoError(t, repo.UpsertProfile(userID, ProfileUpdate{BirthDate: &birth}))
	require.NoError(t, repo.UpsertProfile(userID, ProfileUpdate{Interests: &interests, Mood: &mood}))

	profile, err = repo.GetProfile(userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Alice", profile.Name)
	require.NotNil(t, profile.BirthDate)
	assert.Equal(t, "1990-01-01", profile.BirthDate.Format("2006-01-02"))
	assert.Equal(t, "reading", profile.Interests)
	assert.Equal(t, "happy", profile.Mood)
	assert.True(t, profile.IsComplete())
}

func TestGormRepository_AppendMessageEmotion(t *testing.T) {
	repo, db := setupTestRepository(t)
	userID := common.UserID("U-emotion-user")

	require.NoError(t, repo.EnsureUser(userID))
	require.NoError(t, repo.AppendMessage(userID, common.SenderUser, "今天心情不錯", common.EmotionPositive))
	require.NoError(t, repo.AppendMessage(userID, common.SenderBot, "那真是太好了", ""))

	var msgs []Message
	require.NoError(t, db.Table(PartitionName(userID)).Order("id ASC").Find(&msgs).Error)
	require.Len(t, msgs, 2)

	assert.Equal(t, common.SenderUser, msgs[0].Sender)
	assert.Equal(t, common.EmotionPositive, msgs[0].Emotion)
	assert.Equal(t, common.SenderBot, msgs[1].Sender)
	assert.Empty(t, msgs[1].Emotion)
}
