package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type (
	// Repository loads and saves the whole users collection.
	Repository interface {
		LoadUsers(ctx context.Context) ([]User, error)
		SaveUsers(ctx context.Context, users []User) error
	}

	// Roster tells whether a username belongs to a registered student.
	Roster interface {
		IsStudent(ctx context.Context, uname string) (bool, error)
	}

	Service struct {
		repo Repository
	}
)

var _ Roster = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.LoadUsers(ctx)
}

// Students lists the usernames of every student, in signup order.
func (svc *Service) Students(ctx context.Context) ([]string, error) {
	users, err := svc.repo.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	students := make([]string, 0, len(users))
	for _, usr := range users {
		if usr.Role == RoleStudent {
			students = append(students, usr.Username)
		}
	}
	return students, nil
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	users, err := svc.repo.LoadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.Username == uname {
			return usr, nil
		}
	}
	return User{}, core.ErrNotFound
}

func (svc *Service) Exists(ctx context.Context, uname string) (bool, error) {
	_, err := svc.GetByUsername(ctx, uname)
	switch errors.Cause(err) {
	case nil:
		return true, nil
	case core.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (svc *Service) IsStudent(ctx context.Context, uname string) (bool, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	switch errors.Cause(err) {
	case nil:
		return usr.Role == RoleStudent, nil
	case core.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

// RequireStudent fails with a field error on `student` unless uname is a registered student.
func RequireStudent(ctx context.Context, roster Roster, uname string) error {
	ok, err := roster.IsStudent(ctx, uname)
	if err != nil {
		return errors.Wrap(err, "looking up student")
	}
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "student", Error: "unknown student"})
	}
	return nil
}

// Authenticate returns the user matching both username and password exactly.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		if errors.Cause(err) == core.ErrNotFound {
			return User{}, core.ErrAuthenticationFailed
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if !usr.CheckPassword(pwd) {
		return User{}, core.ErrAuthenticationFailed
	}
	return usr, nil
}

// Create appends a new User; the role defaults to student.
// A taken username fails with core.ErrUsernameTaken and leaves the collection untouched.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(); err != nil {
		return User{}, err
	}
	users, err := svc.repo.LoadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, usr := range users {
		if usr.Username == nu.Username {
			return User{}, core.ErrUsernameTaken
		}
	}

	role := nu.Role
	if role == "" {
		role = RoleStudent
	}
	usr := User{Username: nu.Username, Password: nu.Password, Role: role}
	if err := svc.repo.SaveUsers(ctx, append(users, usr)); err != nil {
		return User{}, errors.Wrap(err, "saving users")
	}
	return usr, nil
}

// SetPassword replaces the password of an existing user.
func (svc *Service) SetPassword(ctx context.Context, uname, pwd string) error {
	if pwd == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: "this field is required"})
	}
	users, err := svc.repo.LoadUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == uname {
			users[i].Password = pwd
			return errors.Wrap(svc.repo.SaveUsers(ctx, users), "saving users")
		}
	}
	return core.ErrNotFound
}
