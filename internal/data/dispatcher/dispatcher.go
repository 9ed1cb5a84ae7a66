package dispatcher

import (
	"github.com/atomicstack/cli-launcher/internal/backend"
	"github.com/atomicstack/cli-launcher/internal/state"
)

type Result struct {
	ReposUpdated bool
}

// Dispatcher applies backend events to the state stores. It runs on the UI
// event loop, which is the only writer of those stores.
type Dispatcher struct {
	repos state.RepoStatusStore
}

func New(r state.RepoStatusStore) *Dispatcher {
	return &Dispatcher{repos: r}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindRepoStatus:
		if results, ok := evt.Data.([]backend.RepoResult); ok {
			d.repos.SetEntries(repoStatusesFromBackend(results))
			res.ReposUpdated = true
		}
	}
	return res
}

func repoStatusesFromBackend(results []backend.RepoResult) []state.RepoStatus {
	out := make([]state.RepoStatus, 0, len(results))
	for _, r := range results {
		entry := state.RepoStatus{Index: r.Index, Path: r.Path, Branch: r.Branch, Dirty: r.Dirty}
		if r.Err != nil {
			entry.Err = r.Err.Error()
		}
		out = append(out, entry)
	}
	return out
}
