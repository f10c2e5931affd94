package grade

import (
	"github.com/trezcool/darasa/core"
)

const (
	MinGrade = 1
	MaxGrade = 12
)

type Grade struct {
	ID      int64  `json:"id"`
	Student string `json:"student"`
	Grade   int    `json:"grade"`
	Date    string `json:"date"`
	Reason  string `json:"reason"`
}

type NewGrade struct {
	Student string `json:"student" validate:"notblank"`
	Grade   int    `json:"grade" validate:"required,min=1,max=12"`
	Date    string `json:"date" validate:"required,isodate"`
	Reason  string `json:"reason" validate:"notblank"`
}

func (ng *NewGrade) Validate() error {
	ng.Student = core.CleanString(ng.Student)
	ng.Date = core.CleanString(ng.Date)
	ng.Reason = core.CleanString(ng.Reason)
	return core.Validate.Struct(ng)
}
