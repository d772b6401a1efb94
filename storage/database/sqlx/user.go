package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tumaini/malengo/core/user"
)

type (
	userRow struct {
		ID           string    `db:"id"`
		Email        string    `db:"email"`
		IsActive     bool      `db:"is_active"`
		PasswordHash []byte    `db:"password_hash"`
		CreatedAt    time.Time `db:"created_at"`
		UpdatedAt    time.Time `db:"updated_at"`
		LastLogin    null.Time `db:"last_login"`
	}

	profileRow struct {
		UserID    string    `db:"user_id"`
		Username  string    `db:"username"`
		CreatedAt time.Time `db:"created_at"`
	}

	userRepository struct {
		db *sqlx.DB
	}
)

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (row userRow) unpack() user.User {
	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		LastLogin:    row.LastLogin.Time,
	}
}

func (row profileRow) unpack() user.Profile {
	return user.Profile{
		UserID:    row.UserID,
		Username:  row.Username,
		CreatedAt: row.CreatedAt,
	}
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM "user" WHERE email = $1)`, email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO "user" (id, email, is_active, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		usr.ID, usr.Email, usr.IsActive, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo userRepository) getUser(ctx context.Context, query string, arg interface{}) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.unpack(), nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.getUser(ctx, `SELECT * FROM "user" WHERE id = $1`, id)
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.getUser(ctx, `SELECT * FROM "user" WHERE email = $1`, email)
}

func (repo userRepository) SetUserLastLogin(ctx context.Context, id string, t time.Time) (user.User, error) {
	_, err := repo.db.ExecContext(ctx, `UPDATE "user" SET last_login = $1 WHERE id = $2`, t, id)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	return repo.GetUserByID(ctx, id)
}

func (repo userRepository) CreateProfile(ctx context.Context, prof user.Profile) (user.Profile, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO user_profile (user_id, username, created_at) VALUES ($1, $2, $3)`,
		prof.UserID, prof.Username, prof.CreatedAt,
	)
	if err != nil {
		return user.Profile{}, errors.Wrap(err, "creating profile")
	}
	return prof, nil
}

func (repo userRepository) getProfile(ctx context.Context, query string, arg interface{}) (user.Profile, error) {
	var row profileRow
	if err := repo.db.GetContext(ctx, &row, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, errors.Wrap(err, "getting profile")
	}
	return row.unpack(), nil
}

func (repo userRepository) GetProfileByUserID(ctx context.Context, userID string) (user.Profile, error) {
	return repo.getProfile(ctx, `SELECT * FROM user_profile WHERE user_id = $1`, userID)
}

func (repo userRepository) GetProfileByUsername(ctx context.Context, username string) (user.Profile, error) {
	return repo.getProfile(ctx, `SELECT * FROM user_profile WHERE username = $1`, username)
}
