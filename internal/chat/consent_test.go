package chat

import (
	"testing"

	"lume-api/internal/common"
	"lume-api/internal/events"
	"lume-api/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestGate(t *testing.T) (*consentGate, *user.MockRepository, *events.MockEventBus) {
	repo := user.NewMockRepository()
	bus := events.NewMockEventBus()
	return newConsentGate(repo, bus, zaptest.NewLogger(t)), repo, bus
}

func TestConsentGateRemindsUntilAgreement(t *testing.T) {
	gate, repo, bus := newTestGate(t)
	userID := common.UserID("U1234")
	require.NoError(t, repo.EnsureUser(userID))

	reply, handled, err := gate.evaluate(userID, "你好")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, consentReminderText, reply)

	consented, err := repo.GetConsent(userID)
	require.NoError(t, err)
	assert.False(t, consented)

	published := bus.PublishedEvents(events.TopicPushRequested)
	require.Len(t, published, 1)
	push, ok := published[0].(events.PushRequested)
	require.True(t, ok)
	assert.Equal(t, "U1234", push.UserID)
	assert.Equal(t, privacyPolicyText, push.Text)
	assert.NotEmpty(t, push.CorrelationID)
}

func TestConsentGateAcceptsAgreementTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "chinese token", text: "同意"},
		{name: "english token", text: "agree"},
		{name: "surrounding whitespace", text: "  同意  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, repo, bus := newTestGate(t)
			userID := common.UserID("U1234")
			require.NoError(t, repo.EnsureUser(userID))

			reply, handled, err := gate.evaluate(userID, tt.text)
			require.NoError(t, err)
			assert.True(t, handled)
			assert.Equal(t, consentThanksText, reply)

			consented, err := repo.GetConsent(userID)
			require.NoError(t, err)
			assert.True(t, consented)

			assert.Empty(t, bus.PublishedEvents(events.TopicPushRequested))
		})
	}
}

func TestConsentGatePassesThroughAfterConsent(t *testing.T) {
	gate, repo, _ := newTestGate(t)
	userID := common.UserID("U1234")
	require.NoError(t, repo.EnsureUser(userID))
	require.NoError(t, repo.SetConsent(userID))

	// Even the agreement token is ordinary chat once consent is on record.
	reply, handled, err := gate.evaluate(userID, "同意")
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, reply)
}
