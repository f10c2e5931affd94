package schedule

import (
	"fmt"
	"time"
)

// Day statuses of the month view.
const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusNeutral   = "neutral"
)

const (
	firstHour = 8
	lastHour  = 23
)

// Slots maps a slot label ("HH:MM") to its availability. Absent slots were never toggled.
type Slots map[string]bool

// Schedule maps a UTC calendar date (YYYY-MM-DD) to its toggled slots.
type Schedule map[string]Slots

// Status summarises the slots of a day: any available slot wins over busy ones.
func (s Slots) Status() string {
	status := StatusNeutral
	for _, available := range s {
		if available {
			return StatusAvailable
		}
		status = StatusBusy
	}
	return status
}

type Day struct {
	Date   string `json:"date"`
	Day    int    `json:"day"`
	Status string `json:"status"`
}

type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// FirstWeekday of the 1st of the month, 0 = Sunday.
	FirstWeekday int   `json:"firstWeekday"`
	Days         []Day `json:"days"`
}

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	slots := make([]string, 0, 2*(lastHour-firstHour)+1)
	for h := firstHour; h <= lastHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < lastHour {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}
	return slots
}

// TimeSlots lists the half-hour slot labels from 08:00 to 23:00.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func IsTimeSlot(label string) bool {
	for _, s := range timeSlots {
		if s == label {
			return true
		}
	}
	return false
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
