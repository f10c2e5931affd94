package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type (
	Repository interface {
		LoadSchedule(ctx context.Context) (Schedule, error)
		SaveSchedule(ctx context.Context, sched Schedule) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Toggle flips a slot: never set becomes available, then alternates. It returns the new value.
func (svc *Service) Toggle(ctx context.Context, t Toggle) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}
	sched, err := svc.repo.LoadSchedule(ctx)
	if err != nil {
		return false, err
	}
	if sched == nil {
		sched = Schedule{}
	}
	slots := sched[t.Date]
	if slots == nil {
		slots = Slots{}
		sched[t.Date] = slots
	}
	slots[t.Slot] = !slots[t.Slot]

	if err := svc.repo.SaveSchedule(ctx, sched); err != nil {
		return false, errors.Wrap(err, "saving schedule")
	}
	return slots[t.Slot], nil
}

// SlotsFor returns the toggled slots of a date, empty when none were.
func (svc *Service) SlotsFor(ctx context.Context, date string) (Slots, error) {
	if _, err := time.Parse(core.DateLayout, date); err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be formatted as YYYY-MM-DD"})
	}
	sched, err := svc.repo.LoadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if slots, ok := sched[date]; ok && slots != nil {
		return slots, nil
	}
	return Slots{}, nil
}

// Month summarises every day of the month.
func (svc *Service) Month(ctx context.Context, year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, core.NewValidationError(nil, core.FieldError{Field: "month", Error: "month must be between 1 and 12"})
	}
	sched, err := svc.repo.LoadSchedule(ctx)
	if err != nil {
		return Month{}, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	n := daysIn(year, month)
	m := Month{
		Year:         year,
		Month:        int(month),
		FirstWeekday: int(first.Weekday()),
		Days:         make([]Day, 0, n),
	}
	for d := 0; d < n; d++ {
		date := core.DateKey(first.AddDate(0, 0, d))
		m.Days = append(m.Days, Day{Date: date, Day: d + 1, Status: sched[date].Status()})
	}
	return m, nil
}
