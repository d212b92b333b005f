package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/darasa-app/backend/core"
	"github.com/darasa-app/backend/core/auth"
	"github.com/darasa-app/backend/core/course"
	"github.com/darasa-app/backend/core/grade"
	"github.com/darasa-app/backend/core/user"
	emailsvc "github.com/darasa-app/backend/services/email"
	testutil "github.com/darasa-app/backend/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:        true,
		AppName:         "Darasa",
		SecretKey:       "poq5-wer)$+s+4lo(#dsfkugy2t-$bc0di%^(everh3_u(#sa0=rn",
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			JWTExpirationDelta: 10 * time.Minute,
		},
	}
}

// setup wires a full Server around a scriptable gateway.
func setup(gw *testutil.FakeGateway) (*Server, *core.Config) {
	conf := testConfig()
	emailsvc.ClearSentMessages()

	usrSvc := user.NewService(gw)
	courseSvc := course.NewService(gw)

	return NewServer(ServerDeps{
		Conf:           conf,
		Logger:         core.NopLogger{},
		EmailSvc:       emailsvc.NewConsoleServiceMock(conf),
		AuthSvc:        auth.NewService(gw, usrSvc),
		UserSvc:        usrSvc,
		CourseSvc:      courseSvc,
		GradeSvc:       grade.NewService(gw, usrSvc, courseSvc, core.NopLogger{}),
		DisableReqLogs: true,
	}), conf
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	tokens := newTokenHelper(conf)
	token, err := tokens.generate(tokens.userClaims(usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
