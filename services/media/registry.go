// Package mediasvc keeps uploaded video files in memory for the lifetime of the process.
package mediasvc

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
)

// HandlePrefix marks a video src that points at an uploaded file.
const HandlePrefix = "blob:"

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Registry maps `blob:<uuid>` handles to uploaded files. Handles do not survive a restart.
type Registry struct {
	mu    sync.RWMutex
	files map[string]File
}

func NewRegistry() *Registry {
	return &Registry{files: make(map[string]File)}
}

func IsHandle(src string) bool {
	return strings.HasPrefix(src, HandlePrefix)
}

// Register stores a copy of data and returns its handle.
func (r *Registry) Register(name, contentType string, data []byte) string {
	buf := make([]byte, len(data))
	copy(buf, data)
	handle := HandlePrefix + uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[handle] = File{Name: name, ContentType: contentType, Data: buf}
	return handle
}

// Open returns the file behind handle, or core.ErrNotFound once the process restarted.
func (r *Registry) Open(handle string) (File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[handle]
	if !ok {
		return File{}, core.ErrNotFound
	}
	return f, nil
}

func (r *Registry) Forget(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, handle)
}
