package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/storage/kv"
	"github.com/trezcool/darasa/storage/kv/memkv"
	"github.com/trezcool/darasa/storage/kvrepos"
)

const (
	TeacherUsername = "teacher"
	TeacherPassword = "pass123"
)

// SeedTeacher is the account every fresh users collection starts with.
var SeedTeacher = user.User{Username: TeacherUsername, Password: TeacherPassword, Role: user.RoleTeacher}

// Logger records log entries instead of printing them.
type Logger struct {
	mu      sync.Mutex
	Entries []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, fmt.Sprintf("[%s] %s", level, msg))
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("FATAL", msg) }

// NewStore returns an empty memory-backed store, optionally limited to quota bytes.
func NewStore(t *testing.T, quota ...int64) (*kv.Store, *memkv.Store, *Logger) {
	t.Helper()
	backend := memkv.New()
	var limit int64
	if len(quota) > 0 {
		limit = quota[0]
	}
	logger := new(Logger)
	store := kv.New(kv.WithQuota(backend, limit), logger)
	t.Cleanup(func() { _ = store.Close() })
	return store, backend, logger
}

// PutRaw stores raw bytes under key, bypassing the JSON codec.
func PutRaw(t *testing.T, backend core.KVStore, key, raw string) {
	t.Helper()
	if err := backend.Put(context.Background(), key, []byte(raw)); err != nil {
		t.Fatalf("PutRaw(%q) failed: %v", key, err)
	}
}

func CreateUser(t *testing.T, repo user.Repository, uname, pwd, role string) user.User {
	t.Helper()
	ctx := context.Background()
	users, err := repo.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	usr := user.User{Username: uname, Password: pwd, Role: role}
	if err := repo.SaveUsers(ctx, append(users, usr)); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// NewRoster returns a user.Service over store holding the seeded teacher and the given students.
func NewRoster(t *testing.T, store *kv.Store, students ...string) *user.Service {
	t.Helper()
	repo := kvrepos.NewUserRepository(store, SeedTeacher)
	for _, uname := range students {
		CreateUser(t, repo, uname, "pw", user.RoleStudent)
	}
	return user.NewService(repo)
}

func Teacher() user.Identity {
	return SeedTeacher.Identity()
}

func Student(uname string) user.Identity {
	return user.Identity{Username: uname, Role: user.RoleStudent}
}
