package chat

import (
	"context"
	"fmt"
	"strings"

	"lume-api/internal/common"
	"lume-api/internal/config"
	"lume-api/internal/events"
	"lume-api/internal/line"
	"lume-api/internal/llm"
	"lume-api/internal/sentiment"
	"lume-api/internal/user"

	"go.uber.org/zap"
)

// Service defines the interface for conversation handling
type Service interface {
	// HandleWebhook parses a verified webhook body and processes each event
	HandleWebhook(ctx context.Context, body []byte) error
}

// chatService implements the Service interface. Each inbound message is
// handled synchronously end-to-end; only pushes leave through the bus.
type chatService struct {
	repo       user.Repository
	lineClient line.Client
	bus        events.EventBus
	gate       *consentGate
	onboarding *onboarding
	responder  *responder
	tagger     *sentiment.Tagger
	logger     *zap.Logger
}

// NewService creates a new chat Service and registers the push subscriber
func NewService(
	cfg config.ChatConfig,
	repo user.Repository,
	lineClient line.Client,
	bus events.EventBus,
	llmProvider llm.Provider,
	tagger *sentiment.Tagger,
	clock common.Clock,
	logger *zap.Logger,
) (Service, error) {
	s := &chatService{
		repo:       repo,
		lineClient: lineClient,
		bus:        bus,
		gate:       newConsentGate(repo, bus, logger),
		onboarding: newOnboarding(repo, logger),
		responder:  newResponder(repo, llmProvider, clock, cfg.HistoryLimit, logger),
		tagger:     tagger,
		logger:     logger,
	}

	if err := bus.SubscribeAsync(events.TopicPushRequested, s.handlePushRequested); err != nil {
		return nil, fmt.Errorf("failed to subscribe to push requests: %w", err)
	}

	return s, nil
}

// HandleWebhook parses the body and dispatches each event by kind
func (s *chatService) HandleWebhook(ctx context.Context, body []byte) error {
	parsed, err := line.ParseWebhook(body)
	if err != nil {
		return fmt.Errorf("failed to parse webhook: %w", err)
	}

	for _, event := range parsed {
		switch e := event.(type) {
		case line.FollowEvent:
			s.handleFollow(e)
		case line.TextMessageEvent:
			s.handleTextMessage(ctx, e)
		}
	}

	return nil
}

// handleFollow registers the new contact and pushes the welcome message
func (s *chatService) handleFollow(e line.FollowEvent) {
	userID := common.UserID(e.UserID)

	if err := s.repo.EnsureUser(userID); err != nil {
		s.logger.Error("Failed to register user on follow",
			zap.String("user_id", e.UserID),
			zap.Error(err))
		return
	}

	if err := s.bus.Publish(events.TopicPushRequested, events.PushRequested{
		Event:  events.NewEvent(),
		UserID: e.UserID,
		Text:   welcomeText,
	}); err != nil {
		s.logger.Error("Failed to request welcome push",
			zap.String("user_id", e.UserID),
			zap.Error(err))
	}
}

// handleTextMessage runs the full pipeline: consent gate, onboarding,
// transcript storage, response generation
func (s *chatService) handleTextMessage(ctx context.Context, e line.TextMessageEvent) {
	userID := common.UserID(e.UserID)
	text := strings.TrimSpace(e.Text)

	if err := s.repo.EnsureUser(userID); err != nil {
		s.logger.Error("Failed to ensure user",
			zap.String("user_id", e.UserID),
			zap.Error(err))
		return
	}

	if reply, handled, err := s.gate.evaluate(userID, text); err != nil {
		s.logger.Error("Consent gate failed",
			zap.String("user_id", e.UserID),
			zap.Error(err))
		return
	} else if handled {
		s.reply(ctx, e.ReplyToken, reply)
		return
	}

	if reply, handled, err := s.onboarding.handle(userID, text); err != nil {
		s.logger.Error("Onboarding failed",
			zap.String("user_id", e.UserID),
			zap.Error(err))
		return
	} else if handled {
		s.reply(ctx, e.ReplyToken, reply)
		return
	}

	// Normal chat: store the user message with its emotion label. Message
	// loss is preferred over failing the whole request.
	emotion := s.tagger.Classify(ctx, text)
	if err := s.repo.AppendMessage(userID, common.SenderUser, text, emotion); err != nil {
		s.logger.Error("Failed to store user message",
			zap.String("user_id", e.UserID),
			zap.Error(err))
	}

	reply := s.responder.respond(ctx, userID, text)

	if err := s.repo.AppendMessage(userID, common.SenderBot, reply, ""); err != nil {
		s.logger.Error("Failed to store bot message",
			zap.String("user_id", e.UserID),
			zap.Error(err))
	}

	s.reply(ctx, e.ReplyToken, reply)
}

func (s *chatService) reply(ctx context.Context, replyToken, text string) {
	if err := s.lineClient.Reply(ctx, replyToken, text); err != nil {
		s.logger.Error("Failed to send reply", zap.Error(err))
	}
}

// handlePushRequested delivers queued pushes; runs detached from the
// originating webhook request
func (s *chatService) handlePushRequested(e events.PushRequested) {
	if err := s.lineClient.Push(context.Background(), e.UserID, e.Text); err != nil {
		s.logger.Error("Failed to send push",
			zap.String("user_id", e.UserID),
			zap.String("correlation_id", e.CorrelationID),
			zap.Error(err))
	}
}
