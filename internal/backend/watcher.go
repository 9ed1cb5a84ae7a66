package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/cli-launcher/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindRepoStatus Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Repo is one configured git slot to watch.
type Repo struct {
	Index int
	Path  string
}

// RepoResult is the polled status of one Repo.
type RepoResult struct {
	Repo
	Branch string
	Dirty  bool
	Err    error
}

// StatusFunc reports the branch and dirty state of a working directory.
type StatusFunc func(ctx context.Context, dir string) (branch string, dirty bool, err error)

// Watcher polls the status of the configured repositories at a fixed
// interval and publishes events.
type Watcher struct {
	status   StatusFunc
	interval time.Duration
	throttle *throttle

	mu    sync.Mutex
	repos []Repo

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls every interval.
func NewWatcher(repos []Repo, status StatusFunc, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		status:   status,
		interval: interval,
		throttle: newThrottle(100 * time.Millisecond),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
	w.SetRepos(repos)

	w.wg.Add(1)
	go w.poll(KindRepoStatus, w.fetchRepos)

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// SetRepos replaces the watched repositories; the next poll uses them.
func (w *Watcher) SetRepos(repos []Repo) {
	dup := make([]Repo, len(repos))
	copy(dup, repos)
	w.mu.Lock()
	w.repos = dup
	w.mu.Unlock()
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) fetchRepos(ctx context.Context) (interface{}, error) {
	w.mu.Lock()
	repos := append([]Repo(nil), w.repos...)
	w.mu.Unlock()

	results := make([]RepoResult, 0, len(repos))
	for _, repo := range repos {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		w.throttle.wait()
		branch, dirty, err := w.status(ctx, repo.Path)
		events.Git.Poll(repo.Path, err)
		results = append(results, RepoResult{Repo: repo, Branch: branch, Dirty: dirty, Err: err})
	}
	return results, nil
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
