package moderation

import (
	"context"
	"errors"

	"github.com/tumaini/malengo/core/goal"
)

// ErrUnavailable signals that the text-completion provider could not produce a
// usable verdict: missing credential, transport failure, non-2xx status or a
// malformed reply. Callers must not distinguish further; they apply the
// fail-open policy instead.
var ErrUnavailable = errors.New("moderation provider unavailable")

// SubjectKind tells the gateway what kind of text it is judging.
type SubjectKind int

const (
	KindUsername SubjectKind = iota
	KindGoalDraft
)

// Request carries one piece of user text to be moderated. Text may be empty
// only for KindGoalDraft (meaning "no draft yet").
type Request struct {
	Kind      SubjectKind
	Text      string
	Principle *goal.Principle // set for goal drafts
}

// Verdict is the normalized moderation outcome. Whatever the provider sends is
// coerced into this shape; it is never trusted as-is.
type Verdict struct {
	IsAppropriate bool     `json:"isAppropriate"`
	Flags         []string `json:"flags"`
	Message       string   `json:"message"`
	Questions     []string `json:"questions"`
}

// UsernameCheckResult is the outcome of the full username pipeline
// (format, availability, appropriateness).
type UsernameCheckResult struct {
	Available   bool   `json:"available"`
	Appropriate bool   `json:"appropriate"`
	Message     string `json:"message"`
}

// TextCompletionProvider is a remote text-generation service: it takes a
// prompt and returns the model's raw text reply.
type TextCompletionProvider interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
