package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tumaini/malengo/core/goal"
)

type (
	goalRow struct {
		ID          string    `db:"id"`
		UserID      string    `db:"user_id"`
		PrincipleID string    `db:"principle_id"`
		GoalText    string    `db:"goal_text"`
		Progress    int       `db:"progress"`
		CompletedAt null.Time `db:"completed_at"`
		CreatedAt   time.Time `db:"created_at"`
		UpdatedAt   time.Time `db:"updated_at"`
	}

	reflectionRow struct {
		ID             string    `db:"id"`
		GoalID         string    `db:"goal_id"`
		UserID         string    `db:"user_id"`
		PrincipleID    string    `db:"principle_id"`
		ReflectionText string    `db:"reflection_text"`
		CreatedAt      time.Time `db:"created_at"`
	}

	goalRepository struct {
		db *sqlx.DB
	}
)

var _ goal.Repository = (*goalRepository)(nil) // interface compliance check

func NewGoalRepository(db *sqlx.DB) goal.Repository {
	return &goalRepository{db: db}
}

func (row goalRow) unpack() goal.Goal {
	return goal.Goal{
		ID:          row.ID,
		UserID:      row.UserID,
		Principle:   goal.PrincipleID(row.PrincipleID),
		Text:        row.GoalText,
		Progress:    row.Progress,
		CompletedAt: row.CompletedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func (row reflectionRow) unpack() goal.Reflection {
	return goal.Reflection{
		ID:        row.ID,
		GoalID:    row.GoalID,
		UserID:    row.UserID,
		Principle: goal.PrincipleID(row.PrincipleID),
		Text:      row.ReflectionText,
		CreatedAt: row.CreatedAt,
	}
}

func (repo goalRepository) CreateGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO goal (id, user_id, principle_id, goal_text, progress, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.UserID, string(g.Principle), g.Text, g.Progress, g.CompletedAt, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return goal.Goal{}, errors.Wrap(err, "creating goal")
	}
	return g, nil
}

func (repo goalRepository) GetGoalByID(ctx context.Context, id string) (goal.Goal, error) {
	var row goalRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM goal WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return goal.Goal{}, goal.ErrNotFound
		}
		return goal.Goal{}, errors.Wrap(err, "getting goal")
	}
	return row.unpack(), nil
}

func (repo goalRepository) QueryGoalsByUser(ctx context.Context, userID string) ([]goal.Goal, error) {
	var rows []goalRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM goal WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying goals")
	}

	goals := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.unpack())
	}
	return goals, nil
}

func (repo goalRepository) UpdateGoalProgress(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE goal SET progress = $1, completed_at = $2, updated_at = $3 WHERE id = $4`,
		g.Progress, g.CompletedAt, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return goal.Goal{}, errors.Wrap(err, "updating goal progress")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.Goal{}, goal.ErrNotFound
	}
	return g, nil
}

func (repo goalRepository) CreateReflection(ctx context.Context, r goal.Reflection) (goal.Reflection, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO reflection (id, goal_id, user_id, principle_id, reflection_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.GoalID, r.UserID, string(r.Principle), r.Text, r.CreatedAt,
	)
	if err != nil {
		return goal.Reflection{}, errors.Wrap(err, "creating reflection")
	}
	return r, nil
}

func (repo goalRepository) QueryReflectionsByUser(ctx context.Context, userID string) ([]goal.Reflection, error) {
	var rows []reflectionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM reflection WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying reflections")
	}

	refs := make([]goal.Reflection, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, row.unpack())
	}
	return refs, nil
}
