package echoapi_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/lesson"
	"github.com/trezcool/darasa/core/unit"
)

func (e *env) upload(t *testing.T, path, title string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", title))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="lecture.mp4"`)
	h.Set("Content-Type", "video/mp4")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(file)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func Test_unitApi(t *testing.T) {
	e := setup(t)
	e.signup(t, "alice")
	e.loginTeacher(t)

	var u unit.Unit
	rec := e.do(t, http.MethodPost, "/recorded-lessons", unit.NewUnit{Name: "Unit 1", TotalVideos: 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &u)
	videosPath := fmt.Sprintf("/recorded-lessons/%d/videos", u.ID)

	rec = e.do(t, http.MethodPost, videosPath, unit.NewVideo{Title: "v", Link: "https://vimeo.com/1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"please use a valid video link or upload a file"}`, rec.Body.String())

	var linked, uploaded unit.Video
	rec = e.do(t, http.MethodPost, videosPath, unit.NewVideo{Title: "Intro", Link: "https://youtu.be/abc"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &linked)

	rec = e.upload(t, videosPath, "Too big", make([]byte, 2048))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = e.upload(t, videosPath, "Lecture", []byte("fake mp4"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &uploaded)
	assert.True(t, uploaded.IsFile)

	rec = e.do(t, http.MethodGet, "/media/"+uploaded.Src, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
	assert.Equal(t, "fake mp4", rec.Body.String())

	rec = e.do(t, http.MethodPost, videosPath, unit.NewVideo{Title: "3rd", Link: "https://youtu.be/x"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"unit video capacity exceeded"}`, rec.Body.String())

	// a full unit rejects uploads too
	rec = e.upload(t, videosPath, "Overflow", []byte("more"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	e.login(t, "alice", "pw")
	var ov unit.Overview
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/videos/%d/watched", linked.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/recorded-lessons", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &ov)
	require.Len(t, ov.Units, 1)
	assert.Equal(t, 50, ov.Units[0].Progress)

	rec = e.do(t, http.MethodPost, fmt.Sprintf("/videos/%d/watched", uploaded.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`[%d,%d]`, linked.ID, uploaded.ID), rec.Body.String())
	rec = e.do(t, http.MethodGet, "/recorded-lessons", nil)
	decode(t, rec, &ov)
	assert.Equal(t, 100, ov.Units[0].Progress)

	e.loginTeacher(t)
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", videosPath, linked.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/recorded-lessons/%d", u.ID), nil)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	rec = e.do(t, http.MethodGet, "/media/"+uploaded.Src, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "still referenced by the unit")
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/recorded-lessons/%d?confirm=true", u.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// the unit's uploads go with it
	rec = e.do(t, http.MethodGet, "/media/"+uploaded.Src, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(t, http.MethodGet, "/media/blob:unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_unitApi_removeUploadedVideo(t *testing.T) {
	e := setup(t)
	e.loginTeacher(t)

	var u unit.Unit
	rec := e.do(t, http.MethodPost, "/recorded-lessons", unit.NewUnit{Name: "Unit 1", TotalVideos: 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &u)
	videosPath := fmt.Sprintf("/recorded-lessons/%d/videos", u.ID)

	var uploaded unit.Video
	rec = e.upload(t, videosPath, "Lecture", []byte("data"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &uploaded)

	rec = e.do(t, http.MethodDelete, fmt.Sprintf("%s/%d", videosPath, uploaded.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodGet, "/media/"+uploaded.Src, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the freed slot takes a new upload
	rec = e.upload(t, videosPath, "Lecture again", []byte("data"))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func Test_lessonApi(t *testing.T) {
	e := setup(t)
	e.signup(t, "alice")
	e.signup(t, "bob")
	e.loginTeacher(t)

	var l lesson.OnlineLesson
	rec := e.do(t, http.MethodPost, "/online-lessons", lesson.NewOnlineLesson{Student: "bob", Link: "https://meet/1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &l)
	rec = e.do(t, http.MethodPost, "/online-lessons", lesson.NewOnlineLesson{Student: "all", Link: "https://meet/2"})
	require.Equal(t, http.StatusCreated, rec.Code)

	e.login(t, "alice", "pw")
	var lessons []lesson.OnlineLesson
	rec = e.do(t, http.MethodGet, "/online-lessons", nil)
	decode(t, rec, &lessons)
	require.Len(t, lessons, 1)
	assert.Equal(t, "https://meet/2", lessons[0].Link)
	assert.Nil(t, lessons[0].Student)

	e.loginTeacher(t)
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/online-lessons/%d?confirm=true", l.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(t, http.MethodGet, "/online-lessons", nil)
	decode(t, rec, &lessons)
	assert.Len(t, lessons, 1)
}
