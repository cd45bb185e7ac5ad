package chat

import (
	"context"
	"fmt"
	"strings"

	"lume-api/internal/common"
	"lume-api/internal/llm"
	"lume-api/internal/user"

	"go.uber.org/zap"
)

// responder builds the composite prompt from recent history and the profile,
// and turns provider failures into the fixed apology so the user always gets
// a polite reply.
type responder struct {
	repo         user.Repository
	provider     llm.Provider
	clock        common.Clock
	historyLimit int
	logger       *zap.Logger
}

func newResponder(repo user.Repository, provider llm.Provider, clock common.Clock, historyLimit int, logger *zap.Logger) *responder {
	return &responder{
		repo:         repo,
		provider:     provider,
		clock:        clock,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// respond generates the bot reply for a user message
func (r *responder) respond(ctx context.Context, userID common.UserID, text string) string {
	history, err := r.repo.RecentHistory(userID, r.historyLimit)
	if err != nil {
		r.logger.Warn("Failed to load chat history",
			zap.String("user_id", string(userID)),
			zap.Error(err))
	}

	profile, err := r.repo.GetProfile(userID)
	if err != nil {
		r.logger.Warn("Failed to load profile",
			zap.String("user_id", string(userID)),
			zap.Error(err))
	}

	prompt := r.buildPrompt(history, profile, text)

	reply, err := r.provider.Complete(ctx, personaPrompt, prompt)
	if err != nil {
		r.logger.Error("Chat completion failed, sending apology",
			zap.String("user_id", string(userID)),
			zap.Error(err))
		return apologyText
	}

	return reply
}

func (r *responder) buildPrompt(history []user.HistoryEntry, profile *user.UserProfile, text string) string {
	var b strings.Builder

	if len(history) == 0 {
		b.WriteString(emptyHistoryText)
	} else {
		for _, entry := range history {
			b.WriteString(entry.Role)
			b.WriteString(": ")
			b.WriteString(entry.Body)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n【用戶資訊】")
	b.WriteString(r.profileSummary(profile))
	b.WriteString("\n\n【用戶問題】")
	b.WriteString(text)

	return b.String()
}

// profileSummary renders the profile with fallback placeholders; the age is
// derived from the birth year when one is known.
func (r *responder) profileSummary(profile *user.UserProfile) string {
	if profile == nil {
		return placeholderNoProfile
	}

	name := profile.Name
	if name == "" {
		name = placeholderUnknownName
	}
	interests := profile.Interests
	if interests == "" {
		interests = placeholderUnfilled
	}
	mood := profile.Mood
	if mood == "" {
		mood = placeholderUnfilled
	}

	if profile.BirthDate != nil {
		age := r.clock.Now().Year() - profile.BirthDate.Year()
		return fmt.Sprintf("姓名: %s, 年齡: %d, 興趣: %s, 心情: %s", name, age, interests, mood)
	}
	return fmt.Sprintf("姓名: %s, 興趣: %s, 心情: %s", name, interests, mood)
}
