package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

type userApi struct {
	svc *user.Service
}

func registerUserAPI(e *echo.Echo, authed echo.MiddlewareFunc, svc *user.Service) {
	api := userApi{svc: svc}

	g := e.Group("/students", authed, teacherMiddleware)
	g.GET("", api.students)
}

// students lists student usernames, for the teacher's selection lists.
func (api *userApi) students(ctx echo.Context) error {
	students, err := api.svc.Students(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}
