package echoapi

import (
	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/user"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SignupResponse struct {
		User    user.User    `json:"user"`
		Profile user.Profile `json:"profile"`
		Token   string       `json:"token"`
	}

	MeResponse struct {
		User    user.User    `json:"user"`
		Profile user.Profile `json:"profile"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// moderation endpoints keep the field names the web client sends
	CheckUsernameRequest struct {
		Username string `json:"username" validate:"required"`
	}

	GoalCoachingRequest struct {
		PrincipleID goal.PrincipleID `json:"principleId" validate:"required"`
		Draft       string           `json:"draft"`
	}

	GoalProgressRequest struct {
		Progress int `json:"progress" validate:"min=0,max=100"`
	}
)

func (r *LoginRequest) Validate() error {
	r.Email = core.CleanString(r.Email, true /* lower */)
	return core.Validate.Struct(r)
}

func (r *CheckUsernameRequest) Validate() error {
	r.Username = core.CleanString(r.Username)
	return core.Validate.Struct(r)
}

func (r *GoalCoachingRequest) Validate() error {
	r.Draft = core.CleanString(r.Draft)
	return core.Validate.Struct(r)
}

func (r *GoalProgressRequest) Validate() error {
	return core.Validate.Struct(r)
}
