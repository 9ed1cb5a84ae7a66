package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherEmitsRepoStatus(t *testing.T) {
	var calls atomic.Int32
	status := func(_ context.Context, dir string) (string, bool, error) {
		calls.Add(1)
		if dir == "/broken" {
			return "", false, errors.New("not a repo")
		}
		return "main", dir == "/dirty", nil
	}
	w := NewWatcher([]Repo{{Index: 0, Path: "/dirty"}, {Index: 2, Path: "/broken"}}, status, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	select {
	case evt := <-w.Events():
		if evt.Kind != KindRepoStatus || evt.Err != nil {
			t.Fatalf("unexpected event %+v", evt)
		}
		results, ok := evt.Data.([]RepoResult)
		if !ok || len(results) != 2 {
			t.Fatalf("expected two results, got %#v", evt.Data)
		}
		if results[0].Branch != "main" || !results[0].Dirty {
			t.Fatalf("expected dirty main for slot 0, got %+v", results[0])
		}
		if results[1].Index != 2 || results[1].Err == nil {
			t.Fatalf("expected error for slot 2, got %+v", results[1])
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 status calls, got %d", calls.Load())
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	status := func(context.Context, string) (string, bool, error) { return "", false, nil }
	w := NewWatcher(nil, status, 10*time.Millisecond)
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %v", elapsed)
	}
	var nilThrottle *throttle
	nilThrottle.wait()
}
