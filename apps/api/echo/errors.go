package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/session"
)

const loginPath = "/login"

var (
	errLoginRequired  = echo.NewHTTPError(http.StatusUnauthorized, "login required")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound   = echo.NewHTTPError(http.StatusNotFound, "not found")
	errHttpConfirm    = echo.NewHTTPError(http.StatusPreconditionRequired, "confirmation required: repeat with ?confirm=true")
	errHttpQuota      = echo.NewHTTPError(http.StatusInsufficientStorage, "storage quota exceeded")
	errHttpBadID      = echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	errHttpFileTooBig = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "uploaded file is too large")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, holder *session.Holder, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
			if origErr == errLoginRequired {
				message = echo.Map{"error": origErr.Message, "redirect": loginPath}
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateErrors(origErr)
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			code, message = domainError(origErr)
			if code != http.StatusInternalServerError {
				break
			}
			// any other error is a server error
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var args []interface{}
			args = append(args, errors.Wrap(err, msg))
			if id, ok := holder.Current(); ok {
				args = append(args, id)
			}
			logger.Error(msg, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// domainError maps the core error sentinels to a status code and a response message.
func domainError(err error) (int, interface{}) {
	switch err {
	case core.ErrAuthenticationFailed:
		return http.StatusBadRequest, err.Error()
	case core.ErrUsernameTaken:
		return http.StatusBadRequest, map[string]string{"username": err.Error()}
	case core.ErrCapacityExceeded, core.ErrInvalidLink:
		return http.StatusUnprocessableEntity, err.Error()
	case core.ErrNotFound:
		return http.StatusNotFound, errHttpNotFound.Message
	case core.ErrPermissionDenied:
		return http.StatusForbidden, errHttpForbidden.Message
	case core.ErrConfirmationRequired:
		return http.StatusPreconditionRequired, errHttpConfirm.Message
	case core.ErrStorageQuotaExceeded:
		return http.StatusInsufficientStorage, errHttpQuota.Message
	}
	return http.StatusInternalServerError, nil
}
