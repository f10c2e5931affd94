package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core/user"
)

// addUser creates a user.User; existing usernames are rejected.
func (cli *commandLine) addUser(uname, pwd, role string) error {
	usr, err := cli.usrSvc.Create(context.Background(), user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cli.out, "created %s %q\n", usr.Role, usr.Username)
	return err
}
