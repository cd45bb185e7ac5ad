package chat

import (
	"strings"

	"lume-api/internal/common"
	"lume-api/internal/events"
	"lume-api/internal/user"

	"go.uber.org/zap"
)

// consentGate decides whether a user may use the chat feature. Until the user
// replies with the agreement token, every message short-circuits here.
type consentGate struct {
	repo   user.Repository
	bus    events.EventBus
	logger *zap.Logger
}

func newConsentGate(repo user.Repository, bus events.EventBus, logger *zap.Logger) *consentGate {
	return &consentGate{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// evaluate returns the gating reply and handled=true while the user has not
// consented. Once consent is on record it returns handled=false and the
// caller proceeds with normal handling.
func (g *consentGate) evaluate(userID common.UserID, text string) (string, bool, error) {
	consented, err := g.repo.GetConsent(userID)
	if err != nil {
		return "", false, err
	}
	if consented {
		return "", false, nil
	}

	if agreementTokens[strings.TrimSpace(text)] {
		// Idempotent: re-agreeing still gets the thank-you reply.
		if err := g.repo.SetConsent(userID); err != nil {
			return "", false, err
		}
		return consentThanksText, true, nil
	}

	// The short reminder rides the reply token; the full privacy policy is
	// unsolicited bulk content and goes out as an asynchronous push.
	if err := g.bus.Publish(events.TopicPushRequested, events.PushRequested{
		Event:  events.NewEvent(),
		UserID: string(userID),
		Text:   privacyPolicyText,
	}); err != nil {
		g.logger.Error("Failed to request privacy notice push",
			zap.String("user_id", string(userID)),
			zap.Error(err))
	}

	return consentReminderText, true, nil
}
