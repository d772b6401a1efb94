package goal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/tumaini/malengo/core"
)

var (
	// errors
	ErrNotFound         = errors.New("goal not found")
	ErrInvalidPrinciple = errors.New("invalid principle")
	ErrNotCompleted     = errors.New("goal is not completed yet")
)

type (
	Repository interface {
		CreateGoal(ctx context.Context, g Goal) (Goal, error)
		GetGoalByID(ctx context.Context, id string) (Goal, error)
		QueryGoalsByUser(ctx context.Context, userID string) ([]Goal, error)
		UpdateGoalProgress(ctx context.Context, g Goal) (Goal, error)
		CreateReflection(ctx context.Context, r Reflection) (Reflection, error)
		QueryReflectionsByUser(ctx context.Context, userID string) ([]Reflection, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new Goal for the given user. ng is expected to have been validated.
func (svc *Service) Create(ctx context.Context, userID string, ng NewGoal) (Goal, error) {
	now := time.Now().UTC()
	return svc.repo.CreateGoal(ctx, Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Principle: ng.Principle,
		Text:      ng.Text,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetByID(ctx context.Context, id string) (Goal, error) {
	return svc.repo.GetGoalByID(ctx, id)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string) ([]Goal, error) {
	return svc.repo.QueryGoalsByUser(ctx, userID)
}

// SetProgress records progress reported by the classroom integration.
// Values are clamped to [0, 100]; reaching 100 stamps CompletedAt.
func (svc *Service) SetProgress(ctx context.Context, id string, progress int) (Goal, error) {
	g, err := svc.repo.GetGoalByID(ctx, id)
	if err != nil {
		return Goal{}, err
	}

	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	g.Progress = progress
	g.UpdatedAt = time.Now().UTC()
	if progress == 100 {
		if !g.CompletedAt.Valid {
			g.CompletedAt = null.TimeFrom(g.UpdatedAt)
		}
	} else {
		g.CompletedAt = null.Time{}
	}
	return svc.repo.UpdateGoalProgress(ctx, g)
}

// WriteReflection records a Reflection on g. Only completed goals can be reflected on.
func (svc *Service) WriteReflection(ctx context.Context, g Goal, nr NewReflection) (Reflection, error) {
	if !g.Completed() {
		return Reflection{}, core.NewValidationError(ErrNotCompleted,
			core.FieldError{Field: "goal_id", Error: ErrNotCompleted.Error()})
	}
	return svc.repo.CreateReflection(ctx, Reflection{
		ID:        uuid.New().String(),
		GoalID:    g.ID,
		UserID:    g.UserID,
		Principle: nr.Principle,
		Text:      nr.Text,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) QueryReflectionsByUser(ctx context.Context, userID string) ([]Reflection, error) {
	return svc.repo.QueryReflectionsByUser(ctx, userID)
}
