package chat

import (
	"regexp"
	"strings"
	"time"

	"lume-api/internal/common"
	"lume-api/internal/user"

	"go.uber.org/zap"
)

// Step is the derived onboarding position. It is never stored: the current
// step is a pure function of the persisted profile, so the flow survives
// restarts and concurrent messages cannot clobber a counter.
type Step int

const (
	StepName Step = iota + 1
	StepBirthDate
	StepInterests
	StepMood
	StepComplete
)

// birthDatePattern accepts YYYY-MM-DD only
var birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DeriveStep maps a profile onto the step awaiting input: the first empty
// field in collection order. A complete profile derives StepComplete.
func DeriveStep(p *user.UserProfile) Step {
	switch {
	case p.Name == "":
		return StepName
	case p.BirthDate == nil:
		return StepBirthDate
	case p.Interests == "":
		return StepInterests
	case p.Mood == "":
		return StepMood
	default:
		return StepComplete
	}
}

// onboarding walks a consented user through the four profile prompts before
// normal chat is enabled.
type onboarding struct {
	repo   user.Repository
	logger *zap.Logger
}

func newOnboarding(repo user.Repository, logger *zap.Logger) *onboarding {
	return &onboarding{
		repo:   repo,
		logger: logger,
	}
}

// handle advances the flow by at most one step. It returns handled=false only
// when the profile is already complete; in every other case the message is
// consumed by onboarding and the returned prompt is the reply.
func (o *onboarding) handle(userID common.UserID, text string) (string, bool, error) {
	profile, err := o.repo.GetProfile(userID)
	if err != nil {
		return "", false, err
	}

	// First contact after consent: create the empty profile and prompt for
	// the name without consuming the current message as data.
	if profile == nil {
		if err := o.repo.UpsertProfile(userID, user.ProfileUpdate{}); err != nil {
			return "", false, err
		}
		return promptNameText, true, nil
	}

	if profile.IsComplete() {
		return "", false, nil
	}

	text = strings.TrimSpace(text)

	switch DeriveStep(profile) {
	case StepName:
		if err := o.repo.UpsertProfile(userID, user.ProfileUpdate{Name: &text}); err != nil {
			return "", false, err
		}
		return promptBirthDateText, true, nil

	case StepBirthDate:
		birthDate, ok := parseBirthDate(text)
		if !ok {
			// Re-prompt; nothing is stored.
			return promptBirthDateRetry, true, nil
		}
		if err := o.repo.UpsertProfile(userID, user.ProfileUpdate{BirthDate: &birthDate}); err != nil {
			return "", false, err
		}
		return promptInterestsText, true, nil

	case StepInterests:
		if err := o.repo.UpsertProfile(userID, user.ProfileUpdate{Interests: &text}); err != nil {
			return "", false, err
		}
		return promptMoodText, true, nil

	default: // StepMood
		if err := o.repo.UpsertProfile(userID, user.ProfileUpdate{Mood: &text}); err != nil {
			return "", false, err
		}
		o.logger.Info("Onboarding complete", zap.String("user_id", string(userID)))
		return onboardingCompleteText, true, nil
	}
}

func parseBirthDate(text string) (time.Time, bool) {
	if !birthDatePattern.MatchString(text) {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", text)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
