package kvrepos

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/schedule"
	"github.com/trezcool/darasa/storage/kv"
)

type scheduleRepository struct {
	store *kv.Store
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(store *kv.Store) schedule.Repository {
	return &scheduleRepository{store: store}
}

func (repo *scheduleRepository) LoadSchedule(ctx context.Context) (schedule.Schedule, error) {
	return kv.Load(ctx, repo.store, core.KeySchedule, schedule.Schedule{})
}

func (repo *scheduleRepository) SaveSchedule(ctx context.Context, sched schedule.Schedule) error {
	return repo.store.Save(ctx, core.KeySchedule, sched)
}
