// Package kvrepos implements the domain repositories on top of a kv.Store,
// one JSON document per collection.
package kvrepos

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/session"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/storage/kv"
)

type userRepository struct {
	store *kv.Store
	seed  []user.User
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

// NewUserRepository returns a user.Repository whose collection defaults to the seed users
// until it is first saved.
func NewUserRepository(store *kv.Store, seed ...user.User) user.Repository {
	return &userRepository{store: store, seed: seed}
}

func (repo *userRepository) LoadUsers(ctx context.Context) ([]user.User, error) {
	def := make([]user.User, len(repo.seed))
	copy(def, repo.seed)
	return kv.Load(ctx, repo.store, core.KeyUsers, def)
}

func (repo *userRepository) SaveUsers(ctx context.Context, users []user.User) error {
	return repo.store.Save(ctx, core.KeyUsers, users)
}

type sessionRepository struct {
	store *kv.Store
}

var _ session.Repository = (*sessionRepository)(nil)

func NewSessionRepository(store *kv.Store) session.Repository {
	return &sessionRepository{store: store}
}

func (repo *sessionRepository) LoadCurrent(ctx context.Context) (*user.Identity, error) {
	return kv.Load[*user.Identity](ctx, repo.store, core.KeyCurrentUser, nil)
}

func (repo *sessionRepository) SaveCurrent(ctx context.Context, id *user.Identity) error {
	return repo.store.Save(ctx, core.KeyCurrentUser, id)
}
