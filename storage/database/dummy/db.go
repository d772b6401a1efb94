package dummydb

import (
	"sync"

	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/user"
)

type (
	userTable struct {
		sync.RWMutex
		table map[string]*user.User // by ID
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*user.Profile // by UserID
	}

	goalTable struct {
		sync.RWMutex
		table map[string]*goal.Goal // by ID
	}

	reflectionTable struct {
		sync.RWMutex
		table map[string]*goal.Reflection // by ID
	}

	// DB is an in-memory store; used in tests.
	DB struct {
		user       *userTable
		profile    *profileTable
		goal       *goalTable
		reflection *reflectionTable
	}
)

func Open() *DB {
	return &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		profile:    &profileTable{table: make(map[string]*user.Profile)},
		goal:       &goalTable{table: make(map[string]*goal.Goal)},
		reflection: &reflectionTable{table: make(map[string]*goal.Reflection)},
	}
}
