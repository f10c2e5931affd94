package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	NowFunc = time.Now // mockable

	lastID   int64
	lastIDMu sync.Mutex
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NewID returns the current time in milliseconds since epoch.
// IDs are strictly increasing within the process: a collision is bumped by one.
func NewID() int64 {
	lastIDMu.Lock()
	defer lastIDMu.Unlock()

	id := NowFunc().UnixNano() / int64(time.Millisecond)
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// Today returns the current UTC calendar date as YYYY-MM-DD.
func Today() string {
	return DateKey(NowFunc())
}

// DateKey formats t as a UTC calendar date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

const DateLayout = "2006-01-02"

// Getwd tries to find the project root, i.e. the closest parent directory holding a go.mod.
// go-test changes the working directory to the package being tested,
// so falling back to the current directory keeps `config/.env.*` lookups harmless.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
