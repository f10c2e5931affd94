package echoapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core/homework"
)

func Test_homeworkApi(t *testing.T) {
	e := setup(t)
	e.signup(t, "alice")
	e.signup(t, "bob")

	// students cannot assign
	rec := e.do(t, http.MethodPost, "/homework", homework.NewAssignment{Text: "x", Student: "all"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	e.loginTeacher(t)
	rec = e.do(t, http.MethodPost, "/homework", homework.NewAssignment{Text: " ", Student: "all"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"text":"this field cannot be blank"}`, rec.Body.String())

	var forAll, forAlice homework.Assignment
	rec = e.do(t, http.MethodPost, "/homework", homework.NewAssignment{Text: "Read", Student: "all"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &forAll)
	rec = e.do(t, http.MethodPost, "/homework", homework.NewAssignment{Text: "Essay", Student: "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &forAlice)

	// teachers cannot choose
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/homework/%d/choose", forAll.ID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	e.login(t, "bob", "pw")
	var resp HomeworkResponse
	rec = e.do(t, http.MethodGet, "/homework", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.Len(t, resp.Assignments, 1)
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/homework/%d/choose", forAlice.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	e.login(t, "alice", "pw")
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/homework/%d/choose", forAlice.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/homework", nil)
	decode(t, rec, &resp)
	assert.Len(t, resp.Assignments, 2)
	assert.Equal(t, "Essay", resp.Chosen)

	// deletion requires confirmation
	e.loginTeacher(t)
	path := fmt.Sprintf("/homework/%d", forAll.ID)
	rec = e.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	rec = e.do(t, http.MethodGet, "/homework", nil)
	decode(t, rec, &resp)
	assert.Len(t, resp.Assignments, 2, "nothing deleted without confirmation")

	rec = e.do(t, http.MethodDelete, path+"?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodDelete, path+"?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(t, http.MethodDelete, "/homework/abc?confirm=true", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
