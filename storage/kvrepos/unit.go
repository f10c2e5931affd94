package kvrepos

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/unit"
	"github.com/trezcool/darasa/storage/kv"
)

type unitRepository struct {
	store *kv.Store
}

var _ unit.Repository = (*unitRepository)(nil)

func NewUnitRepository(store *kv.Store) unit.Repository {
	return &unitRepository{store: store}
}

func (repo *unitRepository) LoadUnits(ctx context.Context) ([]unit.Unit, error) {
	return kv.Load(ctx, repo.store, core.KeyUnits, []unit.Unit{})
}

func (repo *unitRepository) SaveUnits(ctx context.Context, units []unit.Unit) error {
	return repo.store.Save(ctx, core.KeyUnits, units)
}

func (repo *unitRepository) LoadWatched(ctx context.Context, username string) ([]int64, error) {
	return kv.Load(ctx, repo.store, core.UserKey(core.PrefixWatched, username), []int64{})
}

func (repo *unitRepository) SaveWatched(ctx context.Context, username string, watched []int64) error {
	return repo.store.Save(ctx, core.UserKey(core.PrefixWatched, username), watched)
}
