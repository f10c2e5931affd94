package main

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/storage/kv/sqlkv"
)

var (
	migrateFunc = sqlkv.Migrate // mockable
	openDBFunc  = func(dsn string) (*sql.DB, error) { return sql.Open("postgres", dsn) }

	errNotPostgres = errors.New("migrations only apply to the postgres storage driver")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.conf.Storage.Driver != "postgres" {
		return errNotPostgres
	}
	db, err := openDBFunc(cli.conf.Storage.Postgres.URL)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	return migrateFunc(context.Background(), db, args[0], args[1:]...)
}
