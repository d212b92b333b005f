package auth

import (
	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
)

// Token types stored in verify_tokens.token_type.
const (
	TokenTypeVerify int16 = 0
	TokenTypeReset  int16 = 1
)

// VerifyToken is a single-use token bound to an account, consumed either to
// confirm the account's email or to authorize a password reset.
type VerifyToken struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
	Type   int16  `json:"token_type"`
}

// ConvertToken maps a raw verify_tokens row (id, user_id, token, token_type)
// to a VerifyToken.
func ConvertToken(values []interface{}) (VerifyToken, error) {
	row := core.NewRow(values)
	tok := VerifyToken{
		ID:     row.Int(0),
		UserID: row.Int(1),
		Token:  row.String(2),
		Type:   row.Int16(3),
	}
	return tok, row.Err()
}

// LoginResult is the outcome of an authentication attempt. User is set only
// on success.
type LoginResult struct {
	OK      bool       `json:"is_success"`
	Message string     `json:"message,omitempty"`
	User    *user.User `json:"user,omitempty"`
}

// RegisterResult carries the fresh verify token on success so the caller can
// mail it out.
type RegisterResult struct {
	OK      bool   `json:"is_success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

// TokenResult carries a fresh reset token on success.
type TokenResult struct {
	OK      bool   `json:"is_success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Result is a bare success/failure outcome.
type Result struct {
	OK      bool   `json:"is_success"`
	Message string `json:"message,omitempty"`
}
