package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/moderation"
	"github.com/tumaini/malengo/core/user"
)

// addUser creates a user.User and their Profile.
func (cli *commandLine) addUser(email, uname, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	uname = core.CleanString(uname, true /* lower */)

	if res := moderation.ValidateUsernameFormat(uname); !res.Valid {
		return core.NewValidationError(nil, core.FieldError{Field: "username", Error: res.Message})
	}
	if err := cli.usrRepo.CheckEmailUniqueness(ctx, email); err != nil {
		return err
	}
	if _, err := cli.usrRepo.GetProfileByUsername(ctx, uname); err == nil {
		return user.ErrUsernameExists
	} else if err != user.ErrNotFound {
		return err
	}

	now := time.Now().UTC()
	usr := user.User{
		ID:        uuid.New().String(),
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.CreateUser(ctx, usr); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateProfile(ctx, user.Profile{UserID: usr.ID, Username: uname, CreatedAt: now})
	return err
}
