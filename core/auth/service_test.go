package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
	testutil "github.com/darasa-app/backend/tests"
)

type fakeDirectory struct {
	users map[string]*user.User
}

func (d fakeDirectory) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return d.users[email], nil
}

func tokenRow(id, userID int64, token string, typ int64) []interface{} {
	return []interface{}{id, userID, token, typ}
}

const tokenQuery = "SELECT * FROM verify_tokens WHERE token = $1"

func TestAuthenticate(t *testing.T) {
	verified := &user.User{ID: 1, Email: "amina@test.cd", PasswordHash: HashPassword("password123"), IsVerified: true}
	unverified := &user.User{ID: 2, Email: "jose@test.cd", PasswordHash: HashPassword("password123")}
	svc := NewService(&testutil.FakeGateway{}, fakeDirectory{users: map[string]*user.User{
		"amina@test.cd": verified,
		"jose@test.cd":  unverified,
	}})
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		ok       bool
		message  string
	}{
		{"unknown user", "nobody@test.cd", "password123", false, "User does not exist"},
		{"unverified", "jose@test.cd", "password123", false, "Email is not confirmed"},
		{"wrong password", "amina@test.cd", "nope", false, "Invalid email or password"},
		{"ok", "amina@test.cd", "password123", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Authenticate(ctx, tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.message, res.Message)
			if tt.ok {
				require.NotNil(t, res.User)
				assert.Equal(t, tt.email, res.User.Email)
			} else {
				assert.Nil(t, res.User)
			}
		})
	}
}

func TestRegisterRejections(t *testing.T) {
	svc := NewService(&testutil.FakeGateway{}, fakeDirectory{users: map[string]*user.User{
		"taken@test.cd": {ID: 1, Email: "taken@test.cd"},
	}})
	ctx := context.Background()

	tests := []struct {
		name            string
		email           string
		password        string
		confirmPassword string
		message         string
	}{
		{"password mismatch", "amina@test.cd", "password123", "mismatch", "Passwords don't match!"},
		{"bad email", "notAnEmail", "password123", "password123", "Invalid email address!"},
		{"email taken", "taken@test.cd", "password123", "password123", "Email address already in use!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Register(ctx, "amina", tt.email, tt.password, tt.confirmPassword, user.RoleStudent)
			require.NoError(t, err)
			assert.False(t, res.OK)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestRegisterInsertFailure(t *testing.T) {
	// the gateway returns no generated id
	svc := NewService(&testutil.FakeGateway{}, fakeDirectory{})

	res, err := svc.Register(context.Background(), "amina", "amina@test.cd", "password123", "password123", user.RoleStudent)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to register user!", res.Message)
}

func TestRegisterSuccess(t *testing.T) {
	gw := &testutil.FakeGateway{
		InsertReturningFn: func(table, outputColumn string, values ...core.Param) (interface{}, error) {
			return int64(42), nil
		},
	}
	svc := NewService(gw, fakeDirectory{})

	res, err := svc.Register(context.Background(), "amina", "Amina@Test.CD", "password123", "password123", user.RoleStudent)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.NotEmpty(t, res.Token)

	inserts := gw.CallsTo("InsertReturning")
	require.Len(t, inserts, 1)
	assert.Equal(t, "users", inserts[0].Table)
	assert.Equal(t, "amina@test.cd", testutil.ParamValue(inserts[0].Params, "email"))
	assert.Equal(t, false, testutil.ParamValue(inserts[0].Params, "is_verified"))

	sideInserts := gw.CallsTo("Insert")
	require.Len(t, sideInserts, 2)
	assert.Equal(t, "verify_tokens", sideInserts[0].Table)
	assert.Equal(t, res.Token, testutil.ParamValue(sideInserts[0].Params, "token"))
	assert.Equal(t, TokenTypeVerify, testutil.ParamValue(sideInserts[0].Params, "token_type"))
	assert.Equal(t, "user_profiles", sideInserts[1].Table)
	assert.Equal(t, 42, testutil.ParamValue(sideInserts[1].Params, "user_id"))
}

func TestVerifyUserTokenNotFound(t *testing.T) {
	svc := NewService(&testutil.FakeGateway{}, fakeDirectory{})

	res, err := svc.VerifyUser(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Failed to verify token!", res.Message)
}

func TestVerifyUserSuccess(t *testing.T) {
	gw := &testutil.FakeGateway{Rows: map[string][][]interface{}{
		tokenQuery: {tokenRow(1, 2, "tok", 0)},
	}}
	svc := NewService(gw, fakeDirectory{})

	res, err := svc.VerifyUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, res.OK)

	updates := gw.CallsTo("Update")
	require.Len(t, updates, 1)
	assert.Equal(t, "users", updates[0].Table)
	assert.Equal(t, 2, testutil.ParamValue(updates[0].Params, "id"))
	assert.Equal(t, true, testutil.ParamValue(updates[0].Params, "is_verified"))

	deletes := gw.CallsTo("Delete")
	require.Len(t, deletes, 1)
	assert.Equal(t, "verify_tokens", deletes[0].Table)
	assert.Equal(t, 1, testutil.ParamValue(deletes[0].Params, "id"))
}

func TestForgotPassword(t *testing.T) {
	gw := &testutil.FakeGateway{}
	svc := NewService(gw, fakeDirectory{users: map[string]*user.User{
		"amina@test.cd": {ID: 5, Email: "amina@test.cd"},
	}})
	ctx := context.Background()

	res, err := svc.ForgotPassword(ctx, "nobody@test.cd")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Email not found!", res.Message)

	res, err = svc.ForgotPassword(ctx, "amina@test.cd")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.NotEmpty(t, res.Token)

	inserts := gw.CallsTo("Insert")
	require.Len(t, inserts, 1)
	assert.Equal(t, "verify_tokens", inserts[0].Table)
	assert.Equal(t, 5, testutil.ParamValue(inserts[0].Params, "user_id"))
	assert.Equal(t, TokenTypeReset, testutil.ParamValue(inserts[0].Params, "token_type"))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("password mismatch", func(t *testing.T) {
		svc := NewService(&testutil.FakeGateway{}, fakeDirectory{})
		res, err := svc.ChangePassword(ctx, "tok", "newPass123", "mismatch")
		require.NoError(t, err)
		assert.Equal(t, "Passwords don't match!", res.Message)
	})

	t.Run("token not found", func(t *testing.T) {
		svc := NewService(&testutil.FakeGateway{}, fakeDirectory{})
		res, err := svc.ChangePassword(ctx, "tok", "newPass123", "newPass123")
		require.NoError(t, err)
		assert.Equal(t, "Failed to verify token!", res.Message)
	})

	t.Run("update fails", func(t *testing.T) {
		gw := &testutil.FakeGateway{
			Rows:     map[string][][]interface{}{tokenQuery: {tokenRow(1, 2, "tok", 1)}},
			UpdateFn: func(string, core.Param, ...core.Param) (bool, error) { return false, nil },
		}
		svc := NewService(gw, fakeDirectory{})
		res, err := svc.ChangePassword(ctx, "tok", "newPass123", "newPass123")
		require.NoError(t, err)
		assert.Equal(t, "Failed to update password!", res.Message)
	})

	t.Run("ok", func(t *testing.T) {
		gw := &testutil.FakeGateway{
			Rows: map[string][][]interface{}{tokenQuery: {tokenRow(1, 2, "tok", 1)}},
		}
		svc := NewService(gw, fakeDirectory{})
		res, err := svc.ChangePassword(ctx, "tok", "newPass123", "newPass123")
		require.NoError(t, err)
		assert.True(t, res.OK)

		updates := gw.CallsTo("Update")
		require.Len(t, updates, 1)
		assert.Equal(t, HashPassword("newPass123"), testutil.ParamValue(updates[0].Params, "password_hash"))
		require.Len(t, gw.CallsTo("Delete"), 1)
	})
}

func TestHashPassword(t *testing.T) {
	// MD5("password123") uppercase hex
	assert.Equal(t, "482C811DA5D5B4BC6D497FFA98491E38", HashPassword("password123"))
	assert.Equal(t, HashPassword("a"), HashPassword("a"))
	assert.NotEqual(t, HashPassword("a"), HashPassword("b"))
}
