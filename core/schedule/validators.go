package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	timeSlotTag  = "timeslot"
	timeSlotText = "must be a half-hour slot between 08:00 and 23:00"
)

func init() {
	_ = core.Validate.RegisterValidation(timeSlotTag, timeSlotValidation)
	core.RegisterCustomTranslation(timeSlotTag, timeSlotText)
}

func timeSlotValidation(fl validator.FieldLevel) bool {
	return IsTimeSlot(fl.Field().String())
}

// Toggle identifies one slot of one day.
type Toggle struct {
	Date string `json:"date" validate:"required,isodate"`
	Slot string `json:"slot" validate:"required,timeslot"`
}

func (t *Toggle) Validate() error {
	t.Date = core.CleanString(t.Date)
	t.Slot = core.CleanString(t.Slot)
	return core.Validate.Struct(t)
}
