package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/session"
	"github.com/trezcool/darasa/core/user"
)

type (
	HomeResponse struct {
		AppName  string        `json:"appName"`
		Identity user.Identity `json:"identity"`
		Greeting string        `json:"greeting"`
	}

	Section struct {
		Title string `json:"title"`
		Path  string `json:"path"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

var menuSections = []Section{
	{Title: "Online Lessons", Path: "/online-lessons"},
	{Title: "Homework", Path: "/homework"},
	{Title: "Grades", Path: "/grades"},
	{Title: "Recorded Lessons", Path: "/recorded-lessons"},
	{Title: "Calendar", Path: "/calendar"},
}

type authApi struct {
	holder  *session.Holder
	appName string
}

func registerAuthAPI(e *echo.Echo, authed echo.MiddlewareFunc, holder *session.Holder, appName string) {
	api := authApi{holder: holder, appName: appName}

	// un-authed endpoints
	e.POST("/login", api.login)
	e.POST("/signup", api.signup)

	// authed endpoints
	e.POST("/logout", api.logout, authed)
	e.GET("/", api.home, authed)
	e.GET("/menu", api.menu, authed)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	id, err := api.holder.Login(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	return ctx.JSON(http.StatusOK, id)
}

func (api *authApi) signup(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	id, err := api.holder.Signup(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "signing up")
	}
	return ctx.JSON(http.StatusCreated, id)
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.holder.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}

func (api *authApi) home(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	greeting := "Logged in as: " + strings.ToUpper(id.Role)
	if id.IsStudent() {
		greeting += " (" + id.Username + ")"
	}
	return ctx.JSON(http.StatusOK, HomeResponse{AppName: api.appName, Identity: id, Greeting: greeting})
}

func (api *authApi) menu(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, menuSections)
}
