package dummydb

import (
	"context"
	"time"

	"github.com/tumaini/malengo/core/user"
)

type userRepository struct {
	users    *userTable
	profiles *profileTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{users: db.user, profiles: db.profile}
}

func (repo *userRepository) CheckEmailUniqueness(_ context.Context, email string) error {
	repo.users.RLock()
	defer repo.users.RUnlock()

	for _, usr := range repo.users.table {
		if usr.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.users.Lock()
	defer repo.users.Unlock()

	repo.users.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.users.RLock()
	defer repo.users.RUnlock()

	if usr, ok := repo.users.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.users.RLock()
	defer repo.users.RUnlock()

	for _, usr := range repo.users.table {
		if usr.Email == email {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) SetUserLastLogin(ctx context.Context, id string, t time.Time) (user.User, error) {
	repo.users.Lock()
	defer repo.users.Unlock()

	usr, ok := repo.users.table[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.LastLogin = t
	return *usr, nil
}

func (repo *userRepository) CreateProfile(_ context.Context, prof user.Profile) (user.Profile, error) {
	repo.profiles.Lock()
	defer repo.profiles.Unlock()

	repo.profiles.table[prof.UserID] = &prof
	return prof, nil
}

func (repo *userRepository) GetProfileByUserID(_ context.Context, userID string) (user.Profile, error) {
	repo.profiles.RLock()
	defer repo.profiles.RUnlock()

	if prof, ok := repo.profiles.table[userID]; ok {
		return *prof, nil
	}
	return user.Profile{}, user.ErrNotFound
}

func (repo *userRepository) GetProfileByUsername(_ context.Context, username string) (user.Profile, error) {
	repo.profiles.RLock()
	defer repo.profiles.RUnlock()

	for _, prof := range repo.profiles.table {
		if prof.Username == username {
			return *prof, nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}
