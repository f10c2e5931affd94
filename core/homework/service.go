package homework

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type (
	Repository interface {
		LoadAssignments(ctx context.Context) ([]Assignment, error)
		SaveAssignments(ctx context.Context, assignments []Assignment) error
		// LoadChosen returns "" when the student never chose a homework.
		LoadChosen(ctx context.Context, username string) (string, error)
		SaveChosen(ctx context.Context, username, text string) error
	}

	Service struct {
		repo   Repository
		roster user.Roster
	}
)

func NewService(repo Repository, roster user.Roster) *Service {
	return &Service{repo: repo, roster: roster}
}

func (svc *Service) Assign(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	if na.Student != AllStudents {
		if err := user.RequireStudent(ctx, svc.roster, na.Student); err != nil {
			return Assignment{}, err
		}
	}
	assignments, err := svc.repo.LoadAssignments(ctx)
	if err != nil {
		return Assignment{}, err
	}
	a := Assignment{ID: core.NewID(), Text: na.Text, Student: na.target()}
	if err := svc.repo.SaveAssignments(ctx, append(assignments, a)); err != nil {
		return Assignment{}, errors.Wrap(err, "saving assignments")
	}
	return a, nil
}

// VisibleTo lists every assignment for teachers; students only get the ones addressed
// to all or to themselves.
func (svc *Service) VisibleTo(ctx context.Context, id user.Identity) ([]Assignment, error) {
	assignments, err := svc.repo.LoadAssignments(ctx)
	if err != nil {
		return nil, err
	}
	if id.IsTeacher() {
		return assignments, nil
	}
	visible := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.VisibleTo(id.Username) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// Choose records the assignment text as the student's chosen homework, replacing any prior choice.
func (svc *Service) Choose(ctx context.Context, id user.Identity, assignmentID int64) (string, error) {
	if !id.IsStudent() {
		return "", core.ErrPermissionDenied
	}
	assignments, err := svc.repo.LoadAssignments(ctx)
	if err != nil {
		return "", err
	}
	for _, a := range assignments {
		if a.ID == assignmentID && a.VisibleTo(id.Username) {
			if err := svc.repo.SaveChosen(ctx, id.Username, a.Text); err != nil {
				return "", errors.Wrap(err, "saving chosen homework")
			}
			return a.Text, nil
		}
	}
	return "", core.ErrNotFound
}

func (svc *Service) Chosen(ctx context.Context, username string) (string, error) {
	return svc.repo.LoadChosen(ctx, username)
}

func (svc *Service) Delete(ctx context.Context, assignmentID int64) error {
	assignments, err := svc.repo.LoadAssignments(ctx)
	if err != nil {
		return err
	}
	for i, a := range assignments {
		if a.ID == assignmentID {
			kept := append(assignments[:i:i], assignments[i+1:]...)
			return errors.Wrap(svc.repo.SaveAssignments(ctx, kept), "saving assignments")
		}
	}
	return core.ErrNotFound
}
