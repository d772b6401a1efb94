package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tumaini/malengo/core/moderation"
)

type moderationApi struct {
	svc *moderation.Service
}

func registerModerationAPI(g *echo.Group, svc *moderation.Service) {
	api := moderationApi{svc: svc}

	mg := g.Group("/moderation")

	// un-authed: the signup dialog checks usernames before an account exists
	mg.POST("/check-username", api.checkUsername)
	mg.POST("/goal-coaching", api.goalCoaching)
}

// Handlers

func (api *moderationApi) checkUsername(ctx echo.Context) error {
	var data CheckUsernameRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CheckUsernameRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res := api.svc.CheckUsername(ctx.Request().Context(), data.Username)
	return ctx.JSON(http.StatusOK, res)
}

func (api *moderationApi) goalCoaching(ctx echo.Context) error {
	var data GoalCoachingRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GoalCoachingRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	verdict, err := api.svc.GoalCoaching(ctx.Request().Context(), data.PrincipleID, data.Draft)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, verdict)
}
