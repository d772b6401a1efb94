package dummydb

import (
	"context"
	"sort"

	"github.com/tumaini/malengo/core/goal"
)

type goalRepository struct {
	goals       *goalTable
	reflections *reflectionTable
}

var _ goal.Repository = (*goalRepository)(nil) // interface compliance check

func NewGoalRepository(db *DB) goal.Repository {
	return &goalRepository{goals: db.goal, reflections: db.reflection}
}

func (repo *goalRepository) CreateGoal(_ context.Context, g goal.Goal) (goal.Goal, error) {
	repo.goals.Lock()
	defer repo.goals.Unlock()

	repo.goals.table[g.ID] = &g
	return g, nil
}

func (repo *goalRepository) GetGoalByID(_ context.Context, id string) (goal.Goal, error) {
	repo.goals.RLock()
	defer repo.goals.RUnlock()

	if g, ok := repo.goals.table[id]; ok {
		return *g, nil
	}
	return goal.Goal{}, goal.ErrNotFound
}

func (repo *goalRepository) QueryGoalsByUser(_ context.Context, userID string) ([]goal.Goal, error) {
	repo.goals.RLock()
	defer repo.goals.RUnlock()

	goals := make([]goal.Goal, 0)
	for _, g := range repo.goals.table {
		if g.UserID == userID {
			goals = append(goals, *g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.After(goals[j].CreatedAt) })
	return goals, nil
}

func (repo *goalRepository) UpdateGoalProgress(_ context.Context, g goal.Goal) (goal.Goal, error) {
	repo.goals.Lock()
	defer repo.goals.Unlock()

	stored, ok := repo.goals.table[g.ID]
	if !ok {
		return goal.Goal{}, goal.ErrNotFound
	}
	stored.Progress = g.Progress
	stored.CompletedAt = g.CompletedAt
	stored.UpdatedAt = g.UpdatedAt
	return *stored, nil
}

func (repo *goalRepository) CreateReflection(_ context.Context, r goal.Reflection) (goal.Reflection, error) {
	repo.reflections.Lock()
	defer repo.reflections.Unlock()

	repo.reflections.table[r.ID] = &r
	return r, nil
}

func (repo *goalRepository) QueryReflectionsByUser(_ context.Context, userID string) ([]goal.Reflection, error) {
	repo.reflections.RLock()
	defer repo.reflections.RUnlock()

	refs := make([]goal.Reflection, 0)
	for _, r := range repo.reflections.table {
		if r.UserID == userID {
			refs = append(refs, *r)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].CreatedAt.After(refs[j].CreatedAt) })
	return refs, nil
}
