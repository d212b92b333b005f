package echoapi

import (
	"net/http"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/user"
	testutil "github.com/darasa-app/backend/tests"
)

func Test_userApi(t *testing.T) {
	gw := &testutil.FakeGateway{
		Rows: map[string][][]interface{}{
			"SELECT * FROM users WHERE role = $1": {
				{int64(1), "amina", "x", "amina@test.cd", int64(0), true},
			},
		},
		ReadRowFn: func(query string, params ...core.Param) ([]interface{}, error) {
			if query == "SELECT * FROM user_profiles WHERE user_id = $1" && testutil.ParamValue(params, "user_id") == 1 {
				return []interface{}{int64(20), int64(1), "Amina", "Kalala", "Loves math"}, nil
			}
			return nil, nil
		},
	}
	app, conf := setup(gw)

	aminaToken := getToken(t, conf, user.User{ID: 1, Username: "amina", Email: "amina@test.cd", Role: user.RoleStudent, IsVerified: true})
	joseToken := getToken(t, conf, user.User{ID: 2, Username: "jose", Email: "jose@test.cd", Role: user.RoleStudent, IsVerified: true})

	amina := user.Profile{ID: 20, UserID: 1, FirstName: "Amina", LastName: "Kalala", Bio: null.StringFrom("Loves math")}

	tests := []httpTest{
		{
			name: "auth required", method: http.MethodGet, path: "/api/user/profile",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "own profile", method: http.MethodGet, path: "/api/user/profile", token: aminaToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, amina),
		},
		{
			name: "own profile absent", method: http.MethodGet, path: "/api/user/profile", token: joseToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "User profile not found."}),
		},
		{
			name: "profile by id", method: http.MethodGet, path: "/api/user/get-user-profile/1", token: joseToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, amina),
		},
		{
			name: "update foreign profile", method: http.MethodPut, path: "/api/user/profile", token: joseToken,
			body:     marchallObj(t, user.Profile{UserID: 1, FirstName: "Evil", LastName: "Twin"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "User ID in the token does not match the user ID in the request body."}),
		},
		{
			name: "update profile", method: http.MethodPut, path: "/api/user/profile", token: aminaToken,
			body:     marchallObj(t, user.Profile{UserID: 1, FirstName: "Amina", LastName: "Kalala", Bio: null.StringFrom("Loves math")}),
			wantCode: http.StatusOK, wantData: marchallObj(t, amina),
		},
		{
			name: "all students", method: http.MethodGet, path: "/api/user/get-all-students", token: aminaToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, []user.Profile{amina}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
