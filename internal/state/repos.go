package state

// RepoStatus is the last polled status of one configured git slot.
type RepoStatus struct {
	Index  int
	Path   string
	Branch string
	Dirty  bool
	Err    string
}

type RepoStatusStore interface {
	Entries() []RepoStatus
	SetEntries([]RepoStatus)
	Lookup(index int) (RepoStatus, bool)
}

type repoStatusStore struct {
	entries []RepoStatus
}

func NewRepoStatusStore() RepoStatusStore {
	return &repoStatusStore{}
}

func (r *repoStatusStore) Entries() []RepoStatus {
	return cloneRepoStatuses(r.entries)
}

func (r *repoStatusStore) SetEntries(entries []RepoStatus) {
	r.entries = cloneRepoStatuses(entries)
}

func (r *repoStatusStore) Lookup(index int) (RepoStatus, bool) {
	for _, entry := range r.entries {
		if entry.Index == index {
			return entry, true
		}
	}
	return RepoStatus{}, false
}

func cloneRepoStatuses(entries []RepoStatus) []RepoStatus {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]RepoStatus, len(entries))
	copy(dup, entries)
	return dup
}
