package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasa-app/backend/core"
)

var (
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to user attributes"
)

func init() {
	core.Validate.RegisterStructValidation(registerStructValidation, RegisterRequest{})
	core.RegisterCustomTranslation(core.Validate, core.Translator, pwdAttrSimTag, pwdAttrSimText)
}

// registerStructValidation rejects passwords too close to the other
// attributes of the account being created.
func registerStructValidation(sl validator.StructLevel) {
	r := sl.Current().Interface().(RegisterRequest)
	if core.PasswordTooSimilar(r.Password, r.Username, r.Email) {
		sl.ReportError(r.Password, "password", "Password", pwdAttrSimTag, "")
	}
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	RegisterRequest struct {
		Username        string `json:"username" validate:"required,alphanum_"`
		Email           string `json:"email" validate:"required"`
		Password        string `json:"password" validate:"required"`
		ConfirmPassword string `json:"confirm_password" validate:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required"`
	}

	ResetPasswordRequest struct {
		Token           string `json:"token" validate:"required"`
		Password        string `json:"password" validate:"required"`
		ConfirmPassword string `json:"confirm_password" validate:"required"`
	}

	EnrollmentRequest struct {
		CourseID   int   `json:"course_id" validate:"required"`
		StudentIDs []int `json:"student_ids" validate:"required"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (r LoginRequest) Validate() error          { return core.Validate.Struct(r) }
func (r RegisterRequest) Validate() error       { return core.Validate.Struct(r) }
func (r ForgotPasswordRequest) Validate() error { return core.Validate.Struct(r) }
func (r ResetPasswordRequest) Validate() error  { return core.Validate.Struct(r) }
func (r EnrollmentRequest) Validate() error     { return core.Validate.Struct(r) }
