package echoapi

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/unit"
	mediasvc "github.com/trezcool/darasa/services/media"
)

const uploadField = "file"

type unitApi struct {
	svc            *unit.Service
	media          *mediasvc.Registry
	maxUploadBytes int64
}

func registerUnitAPI(
	e *echo.Echo,
	authed echo.MiddlewareFunc,
	svc *unit.Service,
	media *mediasvc.Registry,
	maxUploadBytes int64,
) {
	api := unitApi{svc: svc, media: media, maxUploadBytes: maxUploadBytes}

	ug := e.Group("/recorded-lessons", authed)
	ug.GET("", api.overview)
	ug.POST("", api.create, teacherMiddleware)
	ug.DELETE("/:id", api.destroy, teacherMiddleware, confirmMiddleware)
	ug.POST("/:id/videos", api.addVideo, teacherMiddleware)
	ug.DELETE("/:id/videos/:videoId", api.removeVideo, teacherMiddleware)

	vg := e.Group("/videos", authed)
	vg.POST("/:id/watched", api.markWatched)

	mg := e.Group("/media", authed)
	mg.GET("/:handle", api.serveMedia)
}

func (api *unitApi) overview(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	ov, err := api.svc.Overview(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "building units overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *unitApi) create(ctx echo.Context) error {
	var data unit.NewUnit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUnit")
	}
	u, err := api.svc.CreateUnit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating unit")
	}
	return ctx.JSON(http.StatusCreated, u)
}

func (api *unitApi) destroy(ctx echo.Context) error {
	unitID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	u, err := api.svc.DeleteUnit(ctx.Request().Context(), unitID)
	if err != nil {
		return errors.Wrap(err, "deleting unit")
	}
	for _, v := range u.Videos {
		api.forget(v)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// addVideo accepts either a JSON NewVideo or a multipart form carrying the video in `file`.
func (api *unitApi) addVideo(ctx echo.Context) error {
	unitID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data unit.NewVideo
	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		data.Title = ctx.FormValue("title")
		data.Link = ctx.FormValue("link")
		if data.File, err = api.upload(ctx); err != nil {
			return err
		}
	} else if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewVideo")
	}

	v, err := api.svc.AddVideo(ctx.Request().Context(), unitID, data)
	if err != nil {
		if data.File != "" {
			api.media.Forget(data.File)
		}
		return errors.Wrap(err, "adding video")
	}
	return ctx.JSON(http.StatusCreated, v)
}

// upload registers the multipart `file`, if any, and returns its media handle.
func (api *unitApi) upload(ctx echo.Context) (string, error) {
	fh, err := ctx.FormFile(uploadField)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "reading uploaded file")
	}
	if api.maxUploadBytes > 0 && fh.Size > api.maxUploadBytes {
		return "", errHttpFileTooBig
	}

	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening uploaded file")
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, "reading uploaded file")
	}
	return api.media.Register(fh.Filename, fh.Header.Get(echo.HeaderContentType), data), nil
}

func (api *unitApi) removeVideo(ctx echo.Context) error {
	unitID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	videoID, err := pathID(ctx, "videoId")
	if err != nil {
		return err
	}
	v, err := api.svc.RemoveVideo(ctx.Request().Context(), unitID, videoID)
	if err != nil {
		return errors.Wrap(err, "removing video")
	}
	api.forget(v)
	return ctx.NoContent(http.StatusNoContent)
}

// forget releases the uploaded bytes behind a dropped video.
func (api *unitApi) forget(v unit.Video) {
	if v.IsFile {
		api.media.Forget(v.Src)
	}
}

func (api *unitApi) markWatched(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context identity")
	}
	videoID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	watched, err := api.svc.MarkWatched(ctx.Request().Context(), id, videoID)
	if err != nil {
		return errors.Wrap(err, "marking video watched")
	}
	if watched == nil {
		watched = []int64{}
	}
	return ctx.JSON(http.StatusOK, watched)
}

func (api *unitApi) serveMedia(ctx echo.Context) error {
	f, err := api.media.Open(ctx.Param("handle"))
	if err != nil {
		return errors.Wrap(err, "opening media")
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return ctx.Blob(http.StatusOK, contentType, f.Data)
}
