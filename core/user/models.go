package user

import (
	"github.com/volatiletech/null/v8"

	"github.com/darasa-app/backend/core"
)

// Role is a user's account role.
type Role int16

const (
	RoleStudent Role = 0
	RoleTeacher Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleTeacher:
		return "Teacher"
	}
	return "Unknown"
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	IsVerified   bool   `json:"is_verified"`
}

func (u User) IsStudent() bool { return u.Role == RoleStudent }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }

// Profile is the 1:1 editable profile owned by a User.
type Profile struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       null.String `json:"bio"`
}

// Convert maps a raw users row (id, username, password_hash, email, role,
// is_verified) to a User.
func Convert(values []interface{}) (User, error) {
	row := core.NewRow(values)
	usr := User{
		ID:           row.Int(0),
		Username:     row.String(1),
		PasswordHash: row.String(2),
		Email:        row.String(3),
		Role:         Role(row.Int16(4)),
		IsVerified:   row.Bool(5),
	}
	return usr, row.Err()
}

// ConvertProfile maps a raw user_profiles row (id, user_id, first_name,
// last_name, bio) to a Profile.
func ConvertProfile(values []interface{}) (Profile, error) {
	row := core.NewRow(values)
	prof := Profile{
		ID:        row.Int(0),
		UserID:    row.Int(1),
		FirstName: row.String(2),
		LastName:  row.String(3),
		Bio:       row.NullString(4),
	}
	return prof, row.Err()
}
