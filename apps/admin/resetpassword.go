package main

import (
	"context"
	"errors"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/auth"
)

var errUserNotFound = errors.New("user not found")

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if usr == nil {
		return errUserNotFound
	}
	updated, err := cli.gw.Update(ctx, "users",
		core.P("id", usr.ID),
		core.P("password_hash", auth.HashPassword(pwd)),
	)
	if err != nil {
		return err
	}
	if !updated {
		return errors.New("failed to update password")
	}
	return nil
}
