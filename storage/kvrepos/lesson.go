package kvrepos

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/lesson"
	"github.com/trezcool/darasa/storage/kv"
)

type lessonRepository struct {
	store *kv.Store
}

var _ lesson.Repository = (*lessonRepository)(nil)

func NewLessonRepository(store *kv.Store) lesson.Repository {
	return &lessonRepository{store: store}
}

func (repo *lessonRepository) LoadOnlineLessons(ctx context.Context) ([]lesson.OnlineLesson, error) {
	return kv.Load(ctx, repo.store, core.KeyOnlineLessons, []lesson.OnlineLesson{})
}

func (repo *lessonRepository) SaveOnlineLessons(ctx context.Context, lessons []lesson.OnlineLesson) error {
	return repo.store.Save(ctx, core.KeyOnlineLessons, lessons)
}
