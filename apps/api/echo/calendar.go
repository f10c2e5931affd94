package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/schedule"
)

type (
	DayResponse struct {
		Date      string         `json:"date"`
		Slots     schedule.Slots `json:"slots"`
		TimeSlots []string       `json:"timeSlots"`
	}

	ToggleRequest struct {
		Slot string `json:"slot"`
	}

	ToggleResponse struct {
		Date      string `json:"date"`
		Slot      string `json:"slot"`
		Available bool   `json:"available"`
	}
)

type calendarApi struct {
	svc *schedule.Service
}

func registerCalendarAPI(e *echo.Echo, authed echo.MiddlewareFunc, svc *schedule.Service) {
	api := calendarApi{svc: svc}

	g := e.Group("/calendar", authed)
	g.GET("", api.month)
	g.GET("/:date", api.day)
	g.POST("/:date/toggle", api.toggle, teacherMiddleware)
}

// month defaults to the current UTC month.
func (api *calendarApi) month(ctx echo.Context) error {
	now := core.NowFunc().UTC()
	year, month := now.Year(), int(now.Month())

	var fldErrs []core.FieldError
	if v := ctx.QueryParam("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: "year", Error: "year must be a number"})
		}
		year = y
	}
	if v := ctx.QueryParam("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: "month", Error: "month must be a number"})
		}
		month = m
	}
	if fldErrs != nil {
		return core.NewValidationError(nil, fldErrs...)
	}

	m, err := api.svc.Month(ctx.Request().Context(), year, time.Month(month))
	if err != nil {
		return errors.Wrap(err, "building month view")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *calendarApi) day(ctx echo.Context) error {
	date := ctx.Param("date")
	slots, err := api.svc.SlotsFor(ctx.Request().Context(), date)
	if err != nil {
		return errors.Wrap(err, "loading slots")
	}
	return ctx.JSON(http.StatusOK, DayResponse{Date: date, Slots: slots, TimeSlots: schedule.TimeSlots()})
}

func (api *calendarApi) toggle(ctx echo.Context) error {
	var data ToggleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ToggleRequest")
	}
	t := schedule.Toggle{Date: ctx.Param("date"), Slot: data.Slot}
	available, err := api.svc.Toggle(ctx.Request().Context(), t)
	if err != nil {
		return errors.Wrap(err, "toggling slot")
	}
	return ctx.JSON(http.StatusOK, ToggleResponse{Date: t.Date, Slot: t.Slot, Available: available})
}
