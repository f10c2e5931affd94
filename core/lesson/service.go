package lesson

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type (
	Repository interface {
		LoadOnlineLessons(ctx context.Context) ([]OnlineLesson, error)
		SaveOnlineLessons(ctx context.Context, lessons []OnlineLesson) error
	}

	Service struct {
		repo   Repository
		roster user.Roster
	}
)

func NewService(repo Repository, roster user.Roster) *Service {
	return &Service{repo: repo, roster: roster}
}

// Assign publishes a lesson link dated today.
func (svc *Service) Assign(ctx context.Context, nl NewOnlineLesson) (OnlineLesson, error) {
	if err := nl.Validate(); err != nil {
		return OnlineLesson{}, err
	}
	if nl.Student != AllStudents {
		if err := user.RequireStudent(ctx, svc.roster, nl.Student); err != nil {
			return OnlineLesson{}, err
		}
	}
	lessons, err := svc.repo.LoadOnlineLessons(ctx)
	if err != nil {
		return OnlineLesson{}, err
	}

	l := OnlineLesson{ID: core.NewID(), Link: nl.Link, Date: core.Today()}
	if nl.Student != AllStudents {
		student := nl.Student
		l.Student = &student
	}
	if err := svc.repo.SaveOnlineLessons(ctx, append(lessons, l)); err != nil {
		return OnlineLesson{}, errors.Wrap(err, "saving online lessons")
	}
	return l, nil
}

// VisibleTo returns every lesson in stored order for teachers. Students get the lessons
// addressed to all or to them, newest first.
func (svc *Service) VisibleTo(ctx context.Context, id user.Identity) ([]OnlineLesson, error) {
	lessons, err := svc.repo.LoadOnlineLessons(ctx)
	if err != nil {
		return nil, err
	}
	if id.IsTeacher() {
		return lessons, nil
	}
	visible := make([]OnlineLesson, 0, len(lessons))
	for _, l := range lessons {
		if l.VisibleTo(id.Username) {
			visible = append(visible, l)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date > visible[j].Date
	})
	return visible, nil
}

func (svc *Service) Delete(ctx context.Context, lessonID int64) error {
	lessons, err := svc.repo.LoadOnlineLessons(ctx)
	if err != nil {
		return err
	}
	for i, l := range lessons {
		if l.ID == lessonID {
			kept := append(lessons[:i:i], lessons[i+1:]...)
			return errors.Wrap(svc.repo.SaveOnlineLessons(ctx, kept), "saving online lessons")
		}
	}
	return core.ErrNotFound
}
