package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/kv"
	"github.com/trezcool/darasa/storage/kvrepos"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up storage
	backend, err := kv.Open(context.Background(), conf)
	errAndDie(err)
	store := kv.New(backend, logsvc.NewRollbarLogger(logger, conf))

	// start CLI
	cli := commandLine{
		conf:  conf,
		store: store,
		usrSvc: user.NewService(kvrepos.NewUserRepository(store, user.User{
			Username: conf.Seed.TeacherUsername,
			Password: conf.Seed.TeacherPassword,
			Role:     user.RoleTeacher,
		})),
		out: os.Stdout,
	}
	err = cli.run(os.Args)
	_ = store.Close()
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
