package core

import "context"

// Persisted keys. Per-user keys are built with UserKey.
const (
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	KeyGrades        = "grades"
	KeyAssignments   = "assignments"
	KeySchedule      = "schedule"
	KeyOnlineLessons = "onlineLessons"
	KeyUnits         = "units"

	PrefixHomework = "homework_"
	PrefixWatched  = "watched_"
)

// UserKey returns the per-user key `<prefix><username>`.
func UserKey(prefix, username string) string {
	return prefix + username
}

// KVStore is a flat, durable mapping from string key to raw (JSON) bytes.
// Every key is independently consistent; multi-key updates are not atomic.
type KVStore interface {
	// Get returns ErrKeyNotFound when the key was never saved (or was deleted).
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces any prior value under key.
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// ForEach calls fn for every stored key, stopping at the first error.
	ForEach(ctx context.Context, fn func(key string, value []byte) error) error
	Close() error
}
