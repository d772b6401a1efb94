package goal

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tumaini/malengo/core"
)

type Goal struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Principle PrincipleID `json:"principle_id"`
	Text      string      `json:"goal_text"`
	// Progress is read-only to students; it is written by the classroom
	// integration sync as linked assignments get completed.
	Progress    int       `json:"progress"`
	CompletedAt null.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (g Goal) Completed() bool { return g.Progress >= 100 }

type Reflection struct {
	ID        string      `json:"id"`
	GoalID    string      `json:"goal_id"`
	UserID    string      `json:"user_id"`
	Principle PrincipleID `json:"principle_id"`
	Text      string      `json:"reflection_text"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

// NewGoal contains information needed to create a new Goal.
type NewGoal struct {
	Principle PrincipleID `json:"principle_id" validate:"required"`
	Text      string      `json:"goal_text" validate:"required"`
}

func (ng *NewGoal) Validate() error {
	ng.Text = core.CleanString(ng.Text)

	if err := core.Validate.Struct(ng); err != nil {
		return err
	}
	if !ValidPrinciple(ng.Principle) {
		return core.NewValidationError(ErrInvalidPrinciple,
			core.FieldError{Field: "principle_id", Error: ErrInvalidPrinciple.Error()})
	}
	return nil
}

// NewReflection contains information needed to write a Reflection on a completed Goal.
type NewReflection struct {
	Principle PrincipleID `json:"principle_id" validate:"required"`
	Text      string      `json:"reflection_text" validate:"required"`
}

func (nr *NewReflection) Validate() error {
	nr.Text = core.CleanString(nr.Text)

	if err := core.Validate.Struct(nr); err != nil {
		return err
	}
	if !ValidPrinciple(nr.Principle) {
		return core.NewValidationError(ErrInvalidPrinciple,
			core.FieldError{Field: "principle_id", Error: ErrInvalidPrinciple.Error()})
	}
	return nil
}
