package user

import (
	"sync"
	"time"

	"lume-api/internal/common"
)

// MockRepository provides an in-memory implementation of Repository for testing
type MockRepository struct {
	mu       sync.Mutex
	users    map[common.UserID]*User
	profiles map[common.UserID]*UserProfile
	messages map[common.UserID][]Message

	// Failure injection
	AppendMessageErr error
	EnsureUserErr    error
}

// NewMockRepository creates a new MockRepository instance
func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:    make(map[common.UserID]*User),
		profiles: make(map[common.UserID]*UserProfile),
		messages: make(map[common.UserID][]Message),
	}
}

func (m *MockRepository) EnsureUser(userID common.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EnsureUserErr != nil {
		return m.EnsureUserErr
	}

	if _, exists := m.users[userID]; !exists {
		m.users[userID] = &User{UserID: userID, CreatedAt: time.Now()}
		m.messages[userID] = []Message{}
	}
	return nil
}

func (m *MockRepository) GetConsent(userID common.UserID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, exists := m.users[userID]; exists {
		return u.Consent, nil
	}
	return false, nil
}

func (m *MockRepository) SetConsent(userID common.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, exists := m.users[userID]; exists {
		u.Consent = true
		return nil
	}
	m.users[userID] = &User{UserID: userID, Consent: true, CreatedAt: time.Now()}
	return nil
}

func (m *MockRepository) AppendMessage(userID common.UserID, sender common.Sender, body string, emotion common.EmotionLabel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AppendMessageErr != nil {
		return m.AppendMessageErr
	}

	msgs := m.messages[userID]
	m.messages[userID] = append(msgs, Message{
		ID:        uint(len(msgs) + 1),
		Sender:    sender,
		Body:      body,
		Emotion:   emotion,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *MockRepository) RecentHistory(userID common.UserID, limit int) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.messages[userID]
	start := len(msgs) - limit
	if start < 0 {
		start = 0
	}

	history := make([]HistoryEntry, 0, len(msgs)-start)
	for _, msg := range msgs[start:] {
		role := "User"
		if msg.Sender == common.SenderBot {
			role = BotDisplayName
		}
		history = append(history, HistoryEntry{Role: role, Body: msg.Body})
	}
	return history, nil
}

func (m *MockRepository) GetProfile(userID common.UserID) (*UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, exists := m.profiles[userID]; exists {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *MockRepository) UpsertProfile(userID common.UserID, update ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[userID]
	if !exists {
		p = &UserProfile{UserID: userID, CreatedAt: time.Now()}
		m.profiles[userID] = p
	}
	applyUpdate(p, update)
	return nil
}

// Messages returns a copy of the stored messages for assertions
func (m *MockRepository) Messages(userID common.UserID) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages[userID]...)
}

// HasUser reports whether a registry row exists for the user
func (m *MockRepository) HasUser(userID common.UserID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.users[userID]
	return exists
}
