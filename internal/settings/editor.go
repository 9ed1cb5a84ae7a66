package settings

import "context"

// Editor separates the committed (persisted) Configuration from the draft
// being edited in the settings form. Nothing staged in the draft is visible
// through Committed until the draft is accepted.
//
// An Editor is confined to the UI event loop and is not safe for concurrent
// use.
type Editor struct {
	store     *Store
	committed Configuration
	draft     *Configuration
}

// NewEditor wraps an already loaded Configuration. store may be nil, in
// which case Commit only updates memory.
func NewEditor(store *Store, committed Configuration) *Editor {
	return &Editor{store: store, committed: Normalize(committed)}
}

// Committed returns the last saved Configuration.
func (e *Editor) Committed() Configuration { return e.committed }

// Draft returns the in-progress edits, or the committed Configuration when
// no edit is in progress.
func (e *Editor) Draft() Configuration {
	if e.draft == nil {
		return e.committed
	}
	return *e.draft
}

// Editing reports whether a draft exists.
func (e *Editor) Editing() bool { return e.draft != nil }

// Dirty reports whether the draft differs from the committed state.
func (e *Editor) Dirty() bool {
	return e.draft != nil && *e.draft != e.committed
}

// Begin starts a fresh draft from the committed Configuration, dropping any
// previous draft.
func (e *Editor) Begin() {
	draft := e.committed
	e.draft = &draft
}

// PreviewOpacity records a live opacity preview in the draft and returns the
// clamped value.
func (e *Editor) PreviewOpacity(v int) int {
	if e.draft == nil {
		e.Begin()
	}
	e.draft.Opacity = ClampOpacity(v)
	return e.draft.Opacity
}

// Stage replaces the draft with cfg.
func (e *Editor) Stage(cfg Configuration) {
	cfg = Normalize(cfg)
	e.draft = &cfg
}

// Pending returns the draft to persist, if any.
func (e *Editor) Pending() (Configuration, bool) {
	if e.draft == nil {
		return e.committed, false
	}
	return *e.draft, true
}

// Accept marks cfg as persisted: it becomes the committed Configuration and
// the draft is cleared.
func (e *Editor) Accept(cfg Configuration) {
	e.committed = Normalize(cfg)
	e.draft = nil
}

// SetCommitted records cfg as persisted and leaves any draft in place.
func (e *Editor) SetCommitted(cfg Configuration) {
	e.committed = Normalize(cfg)
}

// Discard drops the draft. The committed Configuration is untouched.
func (e *Editor) Discard() { e.draft = nil }

// Commit saves the draft through the store and accepts it. On failure the
// draft is kept so the user can retry or discard.
func (e *Editor) Commit(ctx context.Context) error {
	cfg, ok := e.Pending()
	if !ok {
		return nil
	}
	if e.store != nil {
		if err := e.store.Save(ctx, cfg); err != nil {
			return err
		}
	}
	e.Accept(cfg)
	return nil
}
