package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/grade"
)

type gradeApi struct {
	svc *grade.Service
}

func registerGradeAPI(e *echo.Echo, authed echo.MiddlewareFunc, svc *grade.Service) {
	api := gradeApi{svc: svc}

	g := e.Group("/grades", authed)
	g.GET("", api.query)
	g.POST("", api.submit, teacherMiddleware)
	g.DELETE("/:id", api.destroy, teacherMiddleware, confirmMiddleware)
}

func (api *gradeApi) query(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	grades, err := api.svc.VisibleTo(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) submit(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	g, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	gradeID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), gradeID); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
