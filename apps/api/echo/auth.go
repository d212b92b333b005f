package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/auth"
	"github.com/darasa-app/backend/core/user"
)

const contextTokenKey = "userToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserID    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      user.Role `json:"role"`
	IsStudent bool      `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsTeacher bool      `json:"is_teacher,omitempty"` // -> TEACHER PORTAL
}

// tokenHelper signs and verifies app JWTs.
type tokenHelper struct {
	conf   *core.Config
	config middleware.JWTConfig
}

func newTokenHelper(conf *core.Config) *tokenHelper {
	return &tokenHelper{
		conf: conf,
		config: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

func (t *tokenHelper) middlewareConfig() middleware.JWTConfig {
	return t.config
}

func (t *tokenHelper) userClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    t.conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(t.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID:    usr.ID,
		Username:  usr.Username,
		Email:     usr.Email,
		Role:      usr.Role,
		IsStudent: usr.IsStudent(),
		IsTeacher: usr.IsTeacher(),
	}
}

// generate signs a JWT token string representing claims.
func (t *tokenHelper) generate(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(t.config.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(t.config.SigningKey.([]byte))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// teacherMiddleware restricts a route to teacher accounts.
func teacherMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if !claims.IsTeacher {
				return errHTTPForbidden
			}
			return next(ctx)
		}
	}
}

type authApi struct {
	svc      *auth.Service
	tokens   *tokenHelper
	emailSvc core.EmailService
	conf     *core.Config
}

func registerAuthAPI(g *echo.Group, tokens *tokenHelper, svc *auth.Service, emailSvc core.EmailService, conf *core.Config) {
	api := authApi{
		svc:      svc,
		tokens:   tokens,
		emailSvc: emailSvc,
		conf:     conf,
	}

	ag := g.Group("/auth")

	// TODO: rate limit `/forgot-password` & `/reset-password`
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.GET("/verify", api.verify)
	ag.POST("/forgot-password", api.forgotPassword)
	ag.POST("/reset-password", api.resetPassword)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	if !res.OK {
		return echo.NewHTTPError(http.StatusUnauthorized, res.Message)
	}

	token, err := api.tokens.generate(api.tokens.userClaims(*res.User))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *authApi) register(ctx echo.Context) error {
	var data RegisterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Register(ctx.Request().Context(),
		data.Username, data.Email, data.Password, data.ConfirmPassword, user.RoleStudent)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	if !res.OK {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message)
	}

	api.sendVerificationEmail(data.Email, res.Token)
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "An email has been sent to verify your email address.",
	})
}

func (api *authApi) verify(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "token", Error: "this field is required"})
	}

	res, err := api.svc.VerifyUser(ctx.Request().Context(), token)
	if err != nil {
		return errors.Wrap(err, "verifying user")
	}
	if !res.OK {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message)
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Email address verified."})
}

func (api *authApi) forgotPassword(ctx echo.Context) error {
	var data ForgotPasswordRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ForgotPasswordRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.ForgotPassword(ctx.Request().Context(), data.Email)
	if err != nil {
		return errors.Wrap(err, "requesting password reset")
	}
	if !res.OK {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message)
	}

	api.sendPasswordResetEmail(data.Email, res.Token)
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "An email will arrive in your inbox shortly with instructions to reset your password.",
	})
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data ResetPasswordRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPasswordRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.ChangePassword(ctx.Request().Context(), data.Token, data.Password, data.ConfirmPassword)
	if err != nil {
		return errors.Wrap(err, "resetting password")
	}
	if !res.OK {
		return echo.NewHTTPError(http.StatusBadRequest, res.Message)
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password has been reset with the new password."})
}

func (api *authApi) sendVerificationEmail(email, token string) {
	link := fmt.Sprintf("%s/verify?token=%s", api.conf.FrontendBaseURL, token)
	api.emailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Address: email}},
		Subject:     "Email Verification",
		TextContent: "Welcome! Please verify your email address: " + link,
		HTMLContent: fmt.Sprintf(`<p>Welcome! Please <a href="%s">verify your email address</a>.</p>`, link),
	})
}

func (api *authApi) sendPasswordResetEmail(email, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", api.conf.FrontendBaseURL, token)
	api.emailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Address: email}},
		Subject:     "Password Reset",
		TextContent: "You requested a password reset. Follow this link to choose a new password: " + link,
		HTMLContent: fmt.Sprintf(`<p>You requested a password reset. <a href="%s">Choose a new password</a>.</p>`, link),
	})
}
