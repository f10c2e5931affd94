package user

import (
	"github.com/trezcool/darasa/core"
)

// Roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var (
	AllRoles = []string{RoleTeacher, RoleStudent}

	Roles = []Role{
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Student", Value: RoleStudent},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is a portal account. Passwords are stored and compared in plain text.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (u User) CheckPassword(pwd string) bool {
	return u.Password == pwd
}

func (u User) Identity() Identity {
	return Identity{Username: u.Username, Role: u.Role}
}

// Identity is a User stripped of its password; it is what a session holds.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (id Identity) IsTeacher() bool { return id.Role == RoleTeacher }
func (id Identity) IsStudent() bool { return id.Role == RoleStudent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// Validate leaves the username as submitted: usernames are matched exactly.
func (nu *NewUser) Validate() error {
	return core.Validate.Struct(nu)
}

// Credentials are what a login form submits.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	return core.Validate.Struct(c)
}
