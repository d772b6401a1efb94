package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/moderation"
	"github.com/tumaini/malengo/core/user"
	emailsvc "github.com/tumaini/malengo/services/email"
	dummydb "github.com/tumaini/malengo/storage/database/dummy"
)

var (
	app      Server
	usrSvc   *user.Service
	goalSvc  *goal.Service
	provider *scriptedProvider
)

// scriptedProvider stands in for the remote moderation model.
type scriptedProvider struct {
	reply string
	err   error
}

var _ moderation.TextCompletionProvider = (*scriptedProvider)(nil)

func (p *scriptedProvider) GenerateContent(context.Context, string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *scriptedProvider) set(reply string, err error) {
	p.reply, p.err = reply, err
}

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	db := dummydb.Open()
	usrRepo := dummydb.NewUserRepository(db)
	goalRepo := dummydb.NewGoalRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(core.Conf)
	usrSvc = user.NewService(core.Conf, usrRepo, mailSvc)
	goalSvc = goal.NewService(goalRepo)

	provider = new(scriptedProvider)
	modSvc := moderation.NewService(usrRepo, moderation.NewGateway(provider))

	app = NewServer(&Options{
		DisableReqLogs: true,
		Logger:         testLogger{},
		UserSvc:        usrSvc,
		GoalSvc:        goalSvc,
		ModSvc:         modSvc,
	})

	os.Exit(m.Run())
}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

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

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decodeBody(): %v; body: %s", err, rec.Body.String())
	}
}

// signupUser creates an account through the service layer and returns the user
// with a valid token.
func signupUser(t *testing.T, email, uname, pwd string) (user.User, user.Profile, string) {
	t.Helper()
	usr, prof, err := usrSvc.Signup(context.Background(), user.NewUser{
		Email:           email,
		Username:        uname,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	if err != nil {
		t.Fatalf("signupUser(): %v", err)
	}
	token, err := GenerateToken(GetUserClaims(usr, prof))
	if err != nil {
		t.Fatalf("signupUser(): %v", err)
	}
	return usr, prof, token
}
