package kvrepos

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/storage/kv"
)

type gradeRepository struct {
	store *kv.Store
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(store *kv.Store) grade.Repository {
	return &gradeRepository{store: store}
}

func (repo *gradeRepository) LoadGrades(ctx context.Context) ([]grade.Grade, error) {
	return kv.Load(ctx, repo.store, core.KeyGrades, []grade.Grade{})
}

func (repo *gradeRepository) SaveGrades(ctx context.Context, grades []grade.Grade) error {
	return repo.store.Save(ctx, core.KeyGrades, grades)
}
