package kvrepos

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/homework"
	"github.com/trezcool/darasa/storage/kv"
)

type homeworkRepository struct {
	store *kv.Store
}

var _ homework.Repository = (*homeworkRepository)(nil)

func NewHomeworkRepository(store *kv.Store) homework.Repository {
	return &homeworkRepository{store: store}
}

func (repo *homeworkRepository) LoadAssignments(ctx context.Context) ([]homework.Assignment, error) {
	return kv.Load(ctx, repo.store, core.KeyAssignments, []homework.Assignment{})
}

func (repo *homeworkRepository) SaveAssignments(ctx context.Context, assignments []homework.Assignment) error {
	return repo.store.Save(ctx, core.KeyAssignments, assignments)
}

func (repo *homeworkRepository) LoadChosen(ctx context.Context, username string) (string, error) {
	return kv.Load(ctx, repo.store, core.UserKey(core.PrefixHomework, username), "")
}

func (repo *homeworkRepository) SaveChosen(ctx context.Context, username, text string) error {
	return repo.store.Save(ctx, core.UserKey(core.PrefixHomework, username), text)
}
