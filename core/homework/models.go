package homework

import (
	"github.com/trezcool/darasa/core"
)

// AllStudents addresses an assignment to every student.
const AllStudents = "all"

// Assignment is a homework text, addressed to one student or (Student == nil) to all of them.
type Assignment struct {
	ID      int64   `json:"id"`
	Text    string  `json:"text"`
	Student *string `json:"student"`
}

// VisibleTo reports whether a student with the given username may see the assignment.
func (a Assignment) VisibleTo(username string) bool {
	return a.Student == nil || *a.Student == username
}

type NewAssignment struct {
	Text    string `json:"text" validate:"notblank"`
	Student string `json:"student" validate:"notblank"`
}

func (na *NewAssignment) Validate() error {
	na.Text = core.CleanString(na.Text)
	na.Student = core.CleanString(na.Student)
	return core.Validate.Struct(na)
}

// target maps the "all" selection to a nil student.
func (na NewAssignment) target() *string {
	if na.Student == AllStudents {
		return nil
	}
	s := na.Student
	return &s
}
