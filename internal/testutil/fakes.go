package testutil

import (
	"context"
	"sync"

	"github.com/atomicstack/cli-launcher/internal/kv"
)

// LaunchCall records one FakeHost.Launch invocation.
type LaunchCall struct {
	Command string
	Path    string
}

// GitCall records one FakeHost.RunGit invocation.
type GitCall struct {
	Cwd  string
	Args []string
}

// ResizeCall records one FakeHost.ResizeWindow invocation.
type ResizeCall struct {
	Width  int
	Height int
}

// FakeHost is an in-memory host.Host. Host calls arrive from tea.Cmd
// goroutines, so every field is guarded.
type FakeHost struct {
	mu        sync.Mutex
	launches  []LaunchCall
	gitCalls  []GitCall
	resizes   []ResizeCall
	LaunchErr error
	GitErr    error
	GitOutput string
	ResizeErr error
}

func (h *FakeHost) Launch(_ context.Context, command, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.launches = append(h.launches, LaunchCall{Command: command, Path: path})
	return h.LaunchErr
}

func (h *FakeHost) RunGit(_ context.Context, cwd string, args []string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gitCalls = append(h.gitCalls, GitCall{Cwd: cwd, Args: append([]string(nil), args...)})
	return h.GitOutput, h.GitErr
}

func (h *FakeHost) ResizeWindow(_ context.Context, width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resizes = append(h.resizes, ResizeCall{Width: width, Height: height})
	return h.ResizeErr
}

func (h *FakeHost) Launches() []LaunchCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LaunchCall(nil), h.launches...)
}

func (h *FakeHost) GitCalls() []GitCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]GitCall(nil), h.gitCalls...)
}

func (h *FakeHost) Resizes() []ResizeCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ResizeCall(nil), h.resizes...)
}

// MemoryStore is a kv.Store kept in a map.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	SetErr error
	GetErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", s.GetErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Value returns the raw stored string for key.
func (s *MemoryStore) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}
