package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasa-app/backend/core/user"
)

type userApi struct {
	svc *user.Service
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := userApi{svc: svc}

	ug := g.Group("/user", jwt)
	ug.GET("/profile", api.getProfile)
	ug.PUT("/profile", api.updateProfile)
	ug.GET("/get-all-students", api.getAllStudents)
	ug.GET("/get-user-profile/:userId", api.getUserProfile)
}

func (api *userApi) getProfile(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	prof, err := api.svc.GetProfile(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return errors.Wrap(err, "finding profile")
	}
	if prof == nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found.")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *userApi) updateProfile(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data user.Profile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Profile")
	}
	if data.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusBadRequest,
			"User ID in the token does not match the user ID in the request body.")
	}

	prof, err := api.svc.UpdateProfile(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	if prof == nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found.")
	}
	return ctx.JSON(http.StatusOK, prof)
}

func (api *userApi) getAllStudents(ctx echo.Context) error {
	students, err := api.svc.GetAllStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *userApi) getUserProfile(ctx echo.Context) error {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		return err
	}
	prof, err := api.svc.GetProfile(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "finding profile")
	}
	if prof == nil {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found.")
	}
	return ctx.JSON(http.StatusOK, prof)
}
