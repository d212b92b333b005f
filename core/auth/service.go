package auth

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
)

const (
	usersTable  = "users"
	tokensTable = "verify_tokens"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserDirectory is the account-lookup surface the auth flows need.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Service implements the account lifecycle: login, registration, email
// verification and password reset. An account starts unverified and stays so
// until its verify token is consumed.
type Service struct {
	gw    core.Gateway
	users UserDirectory
}

func NewService(gw core.Gateway, users UserDirectory) *Service {
	return &Service{gw: gw, users: users}
}

// Authenticate checks email/password against the stored credentials.
func (svc *Service) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	usr, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if usr == nil {
		return LoginResult{Message: "User does not exist"}, nil
	}
	if !usr.IsVerified {
		return LoginResult{Message: "Email is not confirmed"}, nil
	}
	if usr.PasswordHash != HashPassword(password) {
		return LoginResult{Message: "Invalid email or password"}, nil
	}
	return LoginResult{OK: true, User: usr}, nil
}

// Register creates an unverified account with an empty profile and returns the
// verify token the caller should mail out. The three inserts are not atomic;
// a crash in between leaves a dangling account.
func (svc *Service) Register(ctx context.Context, username, email, password, confirmPassword string, role user.Role) (RegisterResult, error) {
	if password != confirmPassword {
		return RegisterResult{Message: "Passwords don't match!"}, nil
	}
	email = core.CleanString(email, true)
	if !emailRx.MatchString(email) {
		return RegisterResult{Message: "Invalid email address!"}, nil
	}

	existing, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		return RegisterResult{}, err
	}
	if existing != nil {
		return RegisterResult{Message: "Email address already in use!"}, nil
	}

	id, ok, err := core.InsertWithReturn[int](ctx, svc.gw, usersTable, "id",
		core.P("username", username),
		core.P("password_hash", HashPassword(password)),
		core.P("email", email),
		core.P("role", int16(role)),
		core.P("is_verified", false),
	)
	if err != nil {
		return RegisterResult{}, err
	}
	if !ok || id <= 0 {
		return RegisterResult{Message: "Failed to register user!"}, nil
	}

	token, err := svc.createToken(ctx, id, TokenTypeVerify)
	if err != nil {
		return RegisterResult{}, err
	}
	if _, err = svc.gw.Insert(ctx, "user_profiles",
		core.P("user_id", id),
		core.P("first_name", ""),
		core.P("last_name", ""),
		core.P("bio", nil),
	); err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{OK: true, Token: token}, nil
}

// VerifyUser consumes token: it marks the owning account verified and deletes
// the token row, reporting that deletion as the outcome.
func (svc *Service) VerifyUser(ctx context.Context, token string) (Result, error) {
	vt, err := svc.getToken(ctx, token)
	if err != nil {
		return Result{}, err
	}
	if vt == nil {
		return Result{Message: "Failed to verify token!"}, nil
	}

	if _, err = svc.gw.Update(ctx, usersTable,
		core.P("id", vt.UserID), core.P("is_verified", true)); err != nil {
		return Result{}, err
	}
	deleted, err := svc.gw.Delete(ctx, tokensTable, core.P("id", vt.ID))
	if err != nil {
		return Result{}, err
	}
	return Result{OK: deleted}, nil
}

// ForgotPassword issues a reset token for the account registered under email.
func (svc *Service) ForgotPassword(ctx context.Context, email string) (TokenResult, error) {
	usr, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		return TokenResult{}, err
	}
	if usr == nil {
		return TokenResult{Message: "Email not found!"}, nil
	}
	token, err := svc.createToken(ctx, usr.ID, TokenTypeReset)
	if err != nil {
		return TokenResult{}, err
	}
	return TokenResult{OK: true, Token: token}, nil
}

// ChangePassword consumes a reset token and stores the new password's digest,
// reporting the token deletion as the outcome.
func (svc *Service) ChangePassword(ctx context.Context, token, password, confirmPassword string) (Result, error) {
	if password != confirmPassword {
		return Result{Message: "Passwords don't match!"}, nil
	}
	vt, err := svc.getToken(ctx, token)
	if err != nil {
		return Result{}, err
	}
	if vt == nil {
		return Result{Message: "Failed to verify token!"}, nil
	}

	updated, err := svc.gw.Update(ctx, usersTable,
		core.P("id", vt.UserID), core.P("password_hash", HashPassword(password)))
	if err != nil {
		return Result{}, err
	}
	if !updated {
		return Result{Message: "Failed to update password!"}, nil
	}
	deleted, err := svc.gw.Delete(ctx, tokensTable, core.P("id", vt.ID))
	if err != nil {
		return Result{}, err
	}
	return Result{OK: deleted}, nil
}

func (svc *Service) getToken(ctx context.Context, token string) (*VerifyToken, error) {
	return core.ReadObjectOfType(ctx, svc.gw,
		"SELECT * FROM verify_tokens WHERE token = $1", ConvertToken,
		core.P("token", token))
}

func (svc *Service) createToken(ctx context.Context, userID int, tokenType int16) (string, error) {
	token := uuid.New().String()
	if _, err := svc.gw.Insert(ctx, tokensTable,
		core.P("user_id", userID),
		core.P("token", token),
		core.P("token_type", tokenType),
	); err != nil {
		return "", err
	}
	return token, nil
}
