// Package session holds the single current identity of the portal.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// Repository persists the current identity; nil means logged out.
type Repository interface {
	LoadCurrent(ctx context.Context) (*user.Identity, error)
	SaveCurrent(ctx context.Context, id *user.Identity) error
}

type Holder struct {
	repo    Repository
	userSvc *user.Service

	mu      sync.RWMutex
	current *user.Identity
}

func NewHolder(repo Repository, userSvc *user.Service) *Holder {
	return &Holder{repo: repo, userSvc: userSvc}
}

// Restore loads the persisted identity. An identity whose username is no longer
// among the users is discarded and `null` is persisted.
func (h *Holder) Restore(ctx context.Context) error {
	id, err := h.repo.LoadCurrent(ctx)
	if err != nil {
		return errors.Wrap(err, "loading current user")
	}
	if id != nil {
		exists, err := h.userSvc.Exists(ctx, id.Username)
		if err != nil {
			return errors.Wrap(err, "checking current user")
		}
		if !exists {
			if err := h.repo.SaveCurrent(ctx, nil); err != nil {
				return errors.Wrap(err, "clearing stale session")
			}
			id = nil
		}
	}
	h.set(id)
	return nil
}

// Login starts a session for the user matching both credentials exactly.
// On failure the session is left unchanged.
func (h *Holder) Login(ctx context.Context, creds user.Credentials) (user.Identity, error) {
	if err := creds.Validate(); err != nil {
		return user.Identity{}, err
	}
	usr, err := h.userSvc.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return user.Identity{}, err
	}
	return h.begin(ctx, usr.Identity())
}

// Signup creates a student account and logs it in.
func (h *Holder) Signup(ctx context.Context, creds user.Credentials) (user.Identity, error) {
	usr, err := h.userSvc.Create(ctx, user.NewUser{
		Username: creds.Username,
		Password: creds.Password,
		Role:     user.RoleStudent,
	})
	if err != nil {
		return user.Identity{}, err
	}
	return h.begin(ctx, usr.Identity())
}

func (h *Holder) Logout(ctx context.Context) error {
	if err := h.repo.SaveCurrent(ctx, nil); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	h.set(nil)
	return nil
}

// Current returns the logged in identity, if any.
func (h *Holder) Current() (user.Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return user.Identity{}, false
	}
	return *h.current, true
}

// MustCurrent is Current for callers that require a session.
func (h *Holder) MustCurrent() (user.Identity, error) {
	id, ok := h.Current()
	if !ok {
		return user.Identity{}, core.ErrPermissionDenied
	}
	return id, nil
}

func (h *Holder) begin(ctx context.Context, id user.Identity) (user.Identity, error) {
	if err := h.repo.SaveCurrent(ctx, &id); err != nil {
		return user.Identity{}, errors.Wrap(err, "saving session")
	}
	h.set(&id)
	return id, nil
}

func (h *Holder) set(id *user.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = id
}
