package moderation

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/user"
)

// Messages surfaced by the orchestrator. The fail-open policy: moderation
// failures never block the student; worst case they see these defaults and,
// for goal coaching, the principle's static questions.
const (
	msgUsernameAvailable     = "Username is available"
	msgUsernameInappropriate = "Username contains inappropriate content"
	msgUsernameTaken         = "Username is already taken"
	msgAvailabilityError     = "Error checking username availability"
	msgProviderUnavailable   = "AI is unavailable right now. Here are some guiding questions:"
	msgRewriteRespectfully   = "Please rewrite using respectful school-appropriate language."
	msgRefineGoal            = "Here are questions to help refine your goal:"
	msgStartWithQuestions    = "Start with these guiding questions:"
)

type (
	// ProfileDirectory answers username existence lookups. It never judges
	// content; it strictly answers existence.
	ProfileDirectory interface {
		GetProfileByUsername(ctx context.Context, username string) (user.Profile, error)
	}

	// Service orchestrates the moderation pipelines: local checks first,
	// the remote gateway last, fail-open on gateway unavailability.
	Service struct {
		profiles ProfileDirectory
		gateway  *Gateway
	}
)

func NewService(profiles ProfileDirectory, gateway *Gateway) *Service {
	return &Service{profiles: profiles, gateway: gateway}
}

// CheckUsername runs the username pipeline: format, availability,
// appropriateness. Each step short-circuits the next; the provider is only
// consulted for a well-formed, unclaimed name. When the provider is
// unavailable the name is reported appropriate (fail open): signup is never
// blocked solely because the AI is down.
func (svc *Service) CheckUsername(ctx context.Context, raw string) UsernameCheckResult {
	uname := core.CleanString(raw)

	if res := ValidateUsernameFormat(uname); !res.Valid {
		// not a usable name at all: report both unavailable and inappropriate
		return UsernameCheckResult{Available: false, Appropriate: false, Message: res.Message}
	}

	if available, msg := svc.checkAvailability(ctx, uname); !available {
		// format is fine; appropriateness is moot since the name cannot be used
		return UsernameCheckResult{Available: false, Appropriate: true, Message: msg}
	}

	verdict, err := svc.gateway.Moderate(ctx, Request{Kind: KindUsername, Text: uname})
	if err != nil {
		return UsernameCheckResult{Available: true, Appropriate: true, Message: msgUsernameAvailable}
	}

	msg := verdict.Message
	if msg == "" {
		if verdict.IsAppropriate {
			msg = msgUsernameAvailable
		} else {
			msg = msgUsernameInappropriate
		}
	}
	return UsernameCheckResult{Available: true, Appropriate: verdict.IsAppropriate, Message: msg}
}

// checkAvailability performs a single existence lookup on the lowercased
// candidate. A store error other than not-found fails closed: an unreadable
// store must not produce a false "available".
func (svc *Service) checkAvailability(ctx context.Context, uname string) (bool, string) {
	_, err := svc.profiles.GetProfileByUsername(ctx, core.CleanString(uname, true /* lower */))
	switch errors.Cause(err) {
	case user.ErrNotFound:
		return true, ""
	case nil:
		return false, msgUsernameTaken
	default:
		return false, msgAvailabilityError
	}
}

// GoalCoaching runs the goal pipeline: it moderates the draft (possibly
// empty) and returns guiding questions. An unknown principle is a caller
// contract violation and is the only error this method returns; every
// gateway failure is absorbed into the static fallback verdict.
//
// The provider is never trusted to have obeyed policy: a flagged draft gets
// its questions forced empty, an approved one always gets a non-empty
// question set.
func (svc *Service) GoalCoaching(ctx context.Context, principleID goal.PrincipleID, draft string) (Verdict, error) {
	principle, ok := goal.Principles[principleID]
	if !ok {
		return Verdict{}, core.NewValidationError(goal.ErrInvalidPrinciple,
			core.FieldError{Field: "principle_id", Error: goal.ErrInvalidPrinciple.Error()})
	}
	draft = core.CleanString(draft)

	verdict, err := svc.gateway.Moderate(ctx, Request{
		Kind:      KindGoalDraft,
		Text:      draft,
		Principle: &principle,
	})
	if err != nil {
		return Verdict{
			IsAppropriate: true,
			Flags:         []string{},
			Message:       msgProviderUnavailable,
			Questions:     FallbackQuestions(principleID),
		}, nil
	}

	if !verdict.IsAppropriate {
		msg := verdict.Message
		if msg == "" {
			msg = msgRewriteRespectfully
		}
		return Verdict{
			IsAppropriate: false,
			Flags:         verdict.Flags,
			Message:       msg,
			Questions:     []string{},
		}, nil
	}

	questions := verdict.Questions
	if len(questions) == 0 {
		questions = FallbackQuestions(principleID)
	}
	msg := verdict.Message
	if msg == "" {
		if draft != "" {
			msg = msgRefineGoal
		} else {
			msg = msgStartWithQuestions
		}
	}
	return Verdict{
		IsAppropriate: true,
		Flags:         []string{},
		Message:       msg,
		Questions:     questions,
	}, nil
}
