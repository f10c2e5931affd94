package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/user"
)

func Test_authApi(t *testing.T) {
	e := setup(t)

	tests := []httpTest{
		{name: "home: logged out", method: http.MethodGet, path: "/", wantCode: http.StatusUnauthorized,
			wantData: `{"error":"login required","redirect":"/login"}`},
		{name: "menu: logged out", method: http.MethodGet, path: "/menu", wantCode: http.StatusUnauthorized},
		{name: "grades: logged out", method: http.MethodGet, path: "/grades", wantCode: http.StatusUnauthorized},
		{name: "login: missing password", method: http.MethodPost, path: "/login",
			body: user.Credentials{Username: "teacher"}, wantCode: http.StatusBadRequest,
			wantData: `{"password":"this field is required"}`},
		{name: "login: wrong password", method: http.MethodPost, path: "/login",
			body: user.Credentials{Username: "teacher", Password: "nope"}, wantCode: http.StatusBadRequest,
			wantData: `{"error":"wrong username or password"}`},
		{name: "login: seeded teacher", method: http.MethodPost, path: "/login",
			body: user.Credentials{Username: "teacher", Password: "pass123"}, wantCode: http.StatusOK,
			wantData: `{"username":"teacher","role":"teacher"}`},
		{name: "home", method: http.MethodGet, path: "/", wantCode: http.StatusOK,
			wantData: `{"appName":"Darasa","identity":{"username":"teacher","role":"teacher"},"greeting":"Logged in as: TEACHER"}`},
		{name: "menu", method: http.MethodGet, path: "/menu", wantCode: http.StatusOK,
			wantData: `[{"title":"Online Lessons","path":"/online-lessons"},{"title":"Homework","path":"/homework"},` +
				`{"title":"Grades","path":"/grades"},{"title":"Recorded Lessons","path":"/recorded-lessons"},` +
				`{"title":"Calendar","path":"/calendar"}]`},
		{name: "logout", method: http.MethodPost, path: "/logout", wantCode: http.StatusOK},
		{name: "home: after logout", method: http.MethodGet, path: "/", wantCode: http.StatusUnauthorized},
		{name: "signup", method: http.MethodPost, path: "/signup",
			body: user.Credentials{Username: "alice", Password: "pw"}, wantCode: http.StatusCreated,
			wantData: `{"username":"alice","role":"student"}`},
		{name: "signup: taken", method: http.MethodPost, path: "/signup",
			body: user.Credentials{Username: "alice", Password: "pw"}, wantCode: http.StatusBadRequest,
			wantData: `{"username":"a user with this username already exists"}`},
		{name: "home: student", method: http.MethodGet, path: "/", wantCode: http.StatusOK,
			wantData: `{"appName":"Darasa","identity":{"username":"alice","role":"student"},"greeting":"Logged in as: STUDENT (alice)"}`},
		{name: "students: forbidden to students", method: http.MethodGet, path: "/students", wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, rec.Body.String())
			}
		})
	}

	e.loginTeacher(t)
	rec := e.do(t, http.MethodGet, "/students", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["alice"]`, rec.Body.String())
}
