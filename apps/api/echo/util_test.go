package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/homework"
	"github.com/trezcool/darasa/core/lesson"
	"github.com/trezcool/darasa/core/schedule"
	"github.com/trezcool/darasa/core/session"
	"github.com/trezcool/darasa/core/unit"
	"github.com/trezcool/darasa/core/user"
	mediasvc "github.com/trezcool/darasa/services/media"
	"github.com/trezcool/darasa/storage/kv"
	"github.com/trezcool/darasa/storage/kvrepos"
	"github.com/trezcool/darasa/tests"
)

type env struct {
	srv    *Server
	store  *kv.Store
	logger *testutil.Logger
	media  *mediasvc.Registry
}

func setup(t *testing.T, quota ...int64) *env {
	store, _, logger := testutil.NewStore(t, quota...)

	conf := &core.Config{AppName: "Darasa", TestMode: true}
	conf.Server.DisableReqLogs = true
	conf.Media.MaxUploadBytes = 1024

	usrSvc := user.NewService(kvrepos.NewUserRepository(store, testutil.SeedTeacher))
	holder := session.NewHolder(kvrepos.NewSessionRepository(store), usrSvc)
	require.NoError(t, holder.Restore(context.Background()))
	media := mediasvc.NewRegistry()

	srv := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		Session:     holder,
		UserSvc:     usrSvc,
		HomeworkSvc: homework.NewService(kvrepos.NewHomeworkRepository(store), usrSvc),
		GradeSvc:    grade.NewService(kvrepos.NewGradeRepository(store), usrSvc),
		ScheduleSvc: schedule.NewService(kvrepos.NewScheduleRepository(store)),
		LessonSvc:   lesson.NewService(kvrepos.NewLessonRepository(store), usrSvc),
		UnitSvc: unit.NewService(kvrepos.NewUnitRepository(store), unit.Options{
			MaxVideos:  10,
			VideoHosts: []string{"youtube.com", "youtu.be"},
		}),
		Media: media,
	})
	return &env{srv: srv, store: store, logger: logger, media: media}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     interface{}
	wantCode int
	wantData string // JSON, compared semantically when set
}

func (e *env) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func (e *env) login(t *testing.T, uname, pwd string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", user.Credentials{Username: uname, Password: pwd})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (e *env) signup(t *testing.T, uname string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/signup", user.Credentials{Username: uname, Password: "pw"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (e *env) loginTeacher(t *testing.T) {
	e.login(t, testutil.TeacherUsername, testutil.TeacherPassword)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
