package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/homework"
	"github.com/trezcool/darasa/core/lesson"
	"github.com/trezcool/darasa/core/schedule"
	"github.com/trezcool/darasa/core/session"
	"github.com/trezcool/darasa/core/unit"
	"github.com/trezcool/darasa/core/user"
	logsvc "github.com/trezcool/darasa/services/logger"
	mediasvc "github.com/trezcool/darasa/services/media"
	"github.com/trezcool/darasa/storage/kv"
	"github.com/trezcool/darasa/storage/kvrepos"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

type serverParams struct {
	dig.In

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

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStore(conf *core.Config, loggerParam StoreLoggerParam) *kv.Store {
	backend, err := kv.Open(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	return kv.New(backend, loggerParam.Logger)
}

func newUserRepository(conf *core.Config, store *kv.Store) user.Repository {
	return kvrepos.NewUserRepository(store, user.User{
		Username: conf.Seed.TeacherUsername,
		Password: conf.Seed.TeacherPassword,
		Role:     user.RoleTeacher,
	})
}

func newRoster(usrSvc *user.Service) user.Roster {
	return usrSvc
}

func newSession(repo session.Repository, usrSvc *user.Service, logger core.Logger) *session.Holder {
	h := session.NewHolder(repo, usrSvc)
	if err := h.Restore(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("restoring session: %v", err), err)
	}
	return h
}

func newUnitService(conf *core.Config, repo unit.Repository) *unit.Service {
	return unit.NewService(repo, unit.Options{
		MaxVideos:  conf.Units.MaxVideos,
		VideoHosts: conf.Units.VideoHosts,
	})
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:        p.Conf,
		Logger:      p.Logger,
		Session:     p.Session,
		UserSvc:     p.UserSvc,
		HomeworkSvc: p.HomeworkSvc,
		GradeSvc:    p.GradeSvc,
		ScheduleSvc: p.ScheduleSvc,
		LessonSvc:   p.LessonSvc,
		UnitSvc:     p.UnitSvc,
		Media:       p.Media,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newStore))

	must(c.Provide(newUserRepository))
	must(c.Provide(kvrepos.NewSessionRepository))
	must(c.Provide(kvrepos.NewHomeworkRepository))
	must(c.Provide(kvrepos.NewGradeRepository))
	must(c.Provide(kvrepos.NewScheduleRepository))
	must(c.Provide(kvrepos.NewLessonRepository))
	must(c.Provide(kvrepos.NewUnitRepository))

	must(c.Provide(user.NewService))
	must(c.Provide(newRoster))
	must(c.Provide(newSession))
	must(c.Provide(homework.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(lesson.NewService))
	must(c.Provide(newUnitService))
	must(c.Provide(mediasvc.NewRegistry))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
