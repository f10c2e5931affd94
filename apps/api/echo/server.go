package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/homework"
	"github.com/trezcool/darasa/core/lesson"
	"github.com/trezcool/darasa/core/schedule"
	"github.com/trezcool/darasa/core/session"
	"github.com/trezcool/darasa/core/unit"
	"github.com/trezcool/darasa/core/user"
	mediasvc "github.com/trezcool/darasa/services/media"
)

type (
	ServerDeps struct {
		Conf        *core.Config
		Logger      core.Logger
		Session     *session.Holder
		UserSvc     *user.Service
		HomeworkSvc *homework.Service
		GradeSvc    *grade.Service
		ScheduleSvc *schedule.Service
		LessonSvc   *lesson.Service
		UnitSvc     *unit.Service
		Media       *mediasvc.Registry
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal

		// every request runs alone: the store has a single writer
		mu sync.Mutex
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.serializeMiddleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Session, s.SignalShutdown)
	s.app.Debug = conf.Debug

	authed := sessionMiddleware(s.deps.Session)
	registerAuthAPI(s.app, authed, s.deps.Session, conf.AppName)

	registerUserAPI(s.app, authed, s.deps.UserSvc)
	registerHomeworkAPI(s.app, authed, s.deps.HomeworkSvc)
	registerGradeAPI(s.app, authed, s.deps.GradeSvc)
	registerCalendarAPI(s.app, authed, s.deps.ScheduleSvc)
	registerLessonAPI(s.app, authed, s.deps.LessonSvc)
	registerUnitAPI(s.app, authed, s.deps.UnitSvc, s.deps.Media, conf.Media.MaxUploadBytes)
}

func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

// Errors reports the server failing to listen.
func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the process to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) serializeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return next(ctx)
	}
}
