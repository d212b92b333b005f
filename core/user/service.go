package user

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-app/backend/core"
)

const (
	usersTable    = "users"
	profilesTable = "user_profiles"
)

// Service reads and updates accounts and profiles through the data gateway.
type Service struct {
	gw core.Gateway
}

func NewService(gw core.Gateway) *Service {
	return &Service{gw: gw}
}

// GetByID returns the account with the given id, or nil if absent.
func (svc *Service) GetByID(ctx context.Context, id int) (*User, error) {
	return core.ReadObjectOfType(ctx, svc.gw,
		"SELECT * FROM users WHERE id = $1", Convert, core.P("id", id))
}

// GetByEmail returns the account registered under email, or nil if absent.
func (svc *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return core.ReadObjectOfType(ctx, svc.gw,
		"SELECT * FROM users WHERE email = $1", Convert,
		core.P("email", core.CleanString(email, true)))
}

// GetProfile returns userID's profile, or nil if none exists yet.
func (svc *Service) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	return core.ReadObjectOfType(ctx, svc.gw,
		"SELECT * FROM user_profiles WHERE user_id = $1", ConvertProfile,
		core.P("user_id", userID))
}

// UpdateProfile writes prof's editable fields and returns the stored profile
// re-read from the database, or nil if no profile row matched.
func (svc *Service) UpdateProfile(ctx context.Context, prof Profile) (*Profile, error) {
	ok, err := svc.gw.Update(ctx, profilesTable,
		core.P("user_id", prof.UserID),
		core.P("first_name", prof.FirstName),
		core.P("last_name", prof.LastName),
		core.P("bio", nullableString(prof.Bio)),
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return svc.GetProfile(ctx, prof.UserID)
}

// GetAllStudents returns the profiles of every student account. Accounts
// without a profile row are skipped.
func (svc *Service) GetAllStudents(ctx context.Context) ([]Profile, error) {
	students, err := core.ReadListOfType(ctx, svc.gw,
		"SELECT * FROM users WHERE role = $1", Convert,
		core.P("role", int16(RoleStudent)))
	if err != nil {
		return nil, err
	}
	return svc.collectProfiles(ctx, students)
}

// GetStudentsInCourse returns the profiles of the students enrolled in
// courseID. Accounts without a profile row are skipped.
func (svc *Service) GetStudentsInCourse(ctx context.Context, courseID int) ([]Profile, error) {
	students, err := core.ReadListOfType(ctx, svc.gw,
		"SELECT users.* FROM users "+
			"JOIN course_student_links ON users.id = course_student_links.student_id "+
			"WHERE course_student_links.course_id = $1",
		Convert, core.P("course_id", courseID))
	if err != nil {
		return nil, err
	}
	return svc.collectProfiles(ctx, students)
}

func (svc *Service) collectProfiles(ctx context.Context, accounts []User) ([]Profile, error) {
	profiles := make([]Profile, 0, len(accounts))
	for _, acct := range accounts {
		prof, err := svc.GetProfile(ctx, acct.ID)
		if err != nil {
			return nil, err
		}
		if prof == nil {
			continue
		}
		profiles = append(profiles, *prof)
	}
	return profiles, nil
}

func nullableString(ns null.String) interface{} {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
