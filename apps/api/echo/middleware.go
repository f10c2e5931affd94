package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/session"
	"github.com/trezcool/darasa/core/user"
)

const (
	contextIdentityKey = "identity"
	confirmParam       = "confirm"
)

var errIdentityNotFoundInCtx = errors.New("identity not found in echo.Context")

// sessionMiddleware rejects requests made while logged out and stores the identity in the context.
func sessionMiddleware(holder *session.Holder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, ok := holder.Current()
			if !ok {
				return errLoginRequired
			}
			ctx.Set(contextIdentityKey, id)
			return next(ctx)
		}
	}
}

func roleMiddleware(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := getContextIdentity(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context identity")
			}
			if id.Role == role {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

var (
	teacherMiddleware = roleMiddleware(user.RoleTeacher)
	studentMiddleware = roleMiddleware(user.RoleStudent)
)

// confirmMiddleware guards destructive endpoints behind an explicit `?confirm=true`.
func confirmMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if ok, _ := strconv.ParseBool(ctx.QueryParam(confirmParam)); !ok {
			return core.ErrConfirmationRequired
		}
		return next(ctx)
	}
}

func getContextIdentity(ctx echo.Context) (user.Identity, error) {
	if id, ok := ctx.Get(contextIdentityKey).(user.Identity); ok {
		return id, nil
	}
	return user.Identity{}, errIdentityNotFoundInCtx
}

func pathID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, errHttpBadID
	}
	return id, nil
}
