package grade

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type (
	Repository interface {
		LoadGrades(ctx context.Context) ([]Grade, error)
		SaveGrades(ctx context.Context, grades []Grade) error
	}

	Service struct {
		repo   Repository
		roster user.Roster
	}
)

func NewService(repo Repository, roster user.Roster) *Service {
	return &Service{repo: repo, roster: roster}
}

func (svc *Service) Submit(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(); err != nil {
		return Grade{}, err
	}
	if err := user.RequireStudent(ctx, svc.roster, ng.Student); err != nil {
		return Grade{}, err
	}
	grades, err := svc.repo.LoadGrades(ctx)
	if err != nil {
		return Grade{}, err
	}
	g := Grade{
		ID:      core.NewID(),
		Student: ng.Student,
		Grade:   ng.Grade,
		Date:    ng.Date,
		Reason:  ng.Reason,
	}
	if err := svc.repo.SaveGrades(ctx, append(grades, g)); err != nil {
		return Grade{}, errors.Wrap(err, "saving grades")
	}
	return g, nil
}

// VisibleTo lists all grades for teachers and a student's own grades otherwise,
// newest date first. Grades sharing a date keep their insertion order.
func (svc *Service) VisibleTo(ctx context.Context, id user.Identity) ([]Grade, error) {
	grades, err := svc.repo.LoadGrades(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]Grade, 0, len(grades))
	for _, g := range grades {
		if id.IsTeacher() || g.Student == id.Username {
			visible = append(visible, g)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date > visible[j].Date
	})
	return visible, nil
}

func (svc *Service) Delete(ctx context.Context, gradeID int64) error {
	grades, err := svc.repo.LoadGrades(ctx)
	if err != nil {
		return err
	}
	for i, g := range grades {
		if g.ID == gradeID {
			kept := append(grades[:i:i], grades[i+1:]...)
			return errors.Wrap(svc.repo.SaveGrades(ctx, kept), "saving grades")
		}
	}
	return core.ErrNotFound
}
