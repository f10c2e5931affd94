package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/homework"
)

type HomeworkResponse struct {
	Assignments []homework.Assignment `json:"assignments"`
	// Chosen is the student's current homework, "" when none.
	Chosen string `json:"chosen,omitempty"`
}

type homeworkApi struct {
	svc *homework.Service
}

func registerHomeworkAPI(e *echo.Echo, authed echo.MiddlewareFunc, svc *homework.Service) {
	api := homeworkApi{svc: svc}

	g := e.Group("/homework", authed)
	g.GET("", api.query)
	g.POST("", api.assign, teacherMiddleware)
	g.DELETE("/:id", api.destroy, teacherMiddleware, confirmMiddleware)
	g.POST("/:id/choose", api.choose, studentMiddleware)
}

func (api *homeworkApi) query(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	rctx := ctx.Request().Context()

	var resp HomeworkResponse
	if resp.Assignments, err = api.svc.VisibleTo(rctx, id); err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if id.IsStudent() {
		if resp.Chosen, err = api.svc.Chosen(rctx, id.Username); err != nil {
			return errors.Wrap(err, "loading chosen homework")
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *homeworkApi) assign(ctx echo.Context) error {
	var data homework.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	a, err := api.svc.Assign(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "assigning homework")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *homeworkApi) choose(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	assignmentID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	chosen, err := api.svc.Choose(ctx.Request().Context(), id, assignmentID)
	if err != nil {
		return errors.Wrap(err, "choosing homework")
	}
	return ctx.JSON(http.StatusOK, HomeworkResponse{Chosen: chosen})
}

func (api *homeworkApi) destroy(ctx echo.Context) error {
	assignmentID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), assignmentID); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
