package kv

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/storage/kv/boltkv"
	"github.com/trezcool/darasa/storage/kv/gormkv"
	"github.com/trezcool/darasa/storage/kv/memkv"
	"github.com/trezcool/darasa/storage/kv/rediskv"
	"github.com/trezcool/darasa/storage/kv/sqlkv"
)

// Open opens the backend selected by conf.Storage.Driver, wrapped with the storage quota.
func Open(ctx context.Context, conf *core.Config) (core.KVStore, error) {
	var (
		backend core.KVStore
		err     error
	)
	switch conf.Storage.Driver {
	case "memory":
		backend = memkv.New()
	case "bolt", "":
		backend, err = boltkv.Open(conf.Storage.Path)
	case "redis":
		backend, err = rediskv.Open(ctx, conf.Storage.Redis.URL, conf.Storage.Redis.Prefix)
	case "postgres":
		backend, err = sqlkv.Open(ctx, conf.Storage.Postgres.URL)
	case "sqlite":
		backend, err = gormkv.Open(conf.Storage.Path)
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s storage", conf.Storage.Driver)
	}
	return WithQuota(backend, conf.Storage.QuotaBytes), nil
}
