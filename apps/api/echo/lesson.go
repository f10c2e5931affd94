package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/lesson"
)

type lessonApi struct {
	svc *lesson.Service
}

func registerLessonAPI(e *echo.Echo, authed echo.MiddlewareFunc, svc *lesson.Service) {
	api := lessonApi{svc: svc}

	g := e.Group("/online-lessons", authed)
	g.GET("", api.query)
	g.POST("", api.assign, teacherMiddleware)
	g.DELETE("/:id", api.destroy, teacherMiddleware, confirmMiddleware)
}

func (api *lessonApi) query(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	lessons, err := api.svc.VisibleTo(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying online lessons")
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) assign(ctx echo.Context) error {
	var data lesson.NewOnlineLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOnlineLesson")
	}
	l, err := api.svc.Assign(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning online lesson")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	lessonID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), lessonID); err != nil {
		return errors.Wrap(err, "deleting online lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}
