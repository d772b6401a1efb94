package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tumaini/malengo/core/goal"
)

type goalApi struct {
	svc *goal.Service
}

func registerGoalAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *goal.Service) {
	api := goalApi{svc: svc}

	gg := g.Group("/goals", jwt)
	gg.POST("", api.create)
	gg.GET("", api.query)
	gg.GET("/:id", api.retrieve)
	gg.PUT("/:id/progress", api.setProgress) // classroom integration callback
	gg.POST("/:id/reflection", api.reflect)

	g.GET("/reflections", api.queryReflections, jwt)
}

// getOwnedGoal fetches the goal and hides it from anyone but its owner.
func (api *goalApi) getOwnedGoal(ctx echo.Context) (goal.Goal, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return goal.Goal{}, err
	}

	g, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return goal.Goal{}, err
	}
	if g.UserID != claims.Subject {
		return goal.Goal{}, errHttpNotFound
	}
	return g, nil
}

// Handlers

func (api *goalApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data goal.NewGoal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGoal")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	g, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating goal")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *goalApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	goals, err := api.svc.QueryByUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying goals")
	}
	return ctx.JSON(http.StatusOK, goals)
}

func (api *goalApi) retrieve(ctx echo.Context) error {
	g, err := api.getOwnedGoal(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *goalApi) setProgress(ctx echo.Context) error {
	g, err := api.getOwnedGoal(ctx)
	if err != nil {
		return err
	}

	var data GoalProgressRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GoalProgressRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	g, err = api.svc.SetProgress(ctx.Request().Context(), g.ID, data.Progress)
	if err != nil {
		return errors.Wrap(err, "setting goal progress")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *goalApi) reflect(ctx echo.Context) error {
	g, err := api.getOwnedGoal(ctx)
	if err != nil {
		return err
	}

	var data goal.NewReflection
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReflection")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ref, err := api.svc.WriteReflection(ctx.Request().Context(), g, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ref)
}

func (api *goalApi) queryReflections(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	refs, err := api.svc.QueryReflectionsByUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying reflections")
	}
	return ctx.JSON(http.StatusOK, refs)
}
