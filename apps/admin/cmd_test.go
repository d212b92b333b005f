package main

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/auth"
	"github.com/darasa-app/backend/core/user"
	testutil "github.com/darasa-app/backend/tests"
)

func setup(gw *testutil.FakeGateway) *commandLine {
	return &commandLine{
		conf:   &core.Config{},
		gw:     gw,
		usrSvc: user.NewService(gw),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_migrate(t *testing.T) {
	var created, migrated bool
	createDBFunc = func(conf *core.Config) error { created = true; return nil }
	migrateFunc = func(db *sql.DB) error { migrated = true; return nil }

	cli := setup(&testutil.FakeGateway{})

	require.NoError(t, cli.run([]string{"admin", "createdb"}))
	assert.True(t, created)

	require.NoError(t, cli.run([]string{"admin", "migrate"}))
	assert.True(t, migrated)
}

func Test_commandLine_resetPassword(t *testing.T) {
	gw := &testutil.FakeGateway{
		ReadRowFn: func(query string, params ...core.Param) ([]interface{}, error) {
			if testutil.ParamValue(params, "email") != "awe@test.cd" {
				return nil, nil
			}
			return []interface{}{int64(7), "awe", auth.HashPassword("old"), "awe@test.cd", int64(0), true}, nil
		},
	}
	cli := setup(gw)

	tests := []cliTest{
		{name: "no command", args: []string{"admin"}, wantErr: errHelp},
		{name: "unknown command", args: []string{"admin", "lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"admin", "resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"admin", "resetpassword", "-email", "awe@test.cd"}, wantErr: errHelp},
		{name: "user not found", args: []string{"admin", "resetpassword", "-email", "lol@test.cd"}, pwd: "lol", wantErr: errUserNotFound},
		{name: "reset", args: []string{"admin", "resetpassword", "-email", "awe@test.cd"}, pwd: "newPass123"},
	}
	for _, tt := range tests {
		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(tt.args)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)

			updates := gw.CallsTo("Update")
			require.Len(t, updates, 1)
			assert.Equal(t, "users", updates[0].Table)
			assert.Equal(t, 7, testutil.ParamValue(updates[0].Params, "id"))
			assert.Equal(t, auth.HashPassword("newPass123"), testutil.ParamValue(updates[0].Params, "password_hash"))
		})
	}
}
