package lesson

import (
	"github.com/trezcool/darasa/core"
)

// AllStudents addresses a lesson link to every student.
const AllStudents = "all"

type OnlineLesson struct {
	ID      int64   `json:"id"`
	Student *string `json:"student"`
	Link    string  `json:"link"`
	Date    string  `json:"date"`
}

func (l OnlineLesson) VisibleTo(username string) bool {
	return l.Student == nil || *l.Student == username
}

type NewOnlineLesson struct {
	Student string `json:"student" validate:"notblank"`
	Link    string `json:"link" validate:"notblank"`
}

func (nl *NewOnlineLesson) Validate() error {
	nl.Student = core.CleanString(nl.Student)
	nl.Link = core.CleanString(nl.Link)
	return core.Validate.Struct(nl)
}
