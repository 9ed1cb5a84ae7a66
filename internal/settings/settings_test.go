package settings

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/atomicstack/cli-launcher/internal/kv"
)

type memSlots struct {
	values map[string]string
	getErr error
	setErr error
}

func newMemSlots() *memSlots { return &memSlots{values: map[string]string{}} }

func (m *memSlots) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (m *memSlots) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memSlots) Close() error { return nil }

func checkInvariants(t *testing.T, cfg Configuration) {
	t.Helper()
	if cfg.Opacity < MinOpacity || cfg.Opacity > MaxOpacity {
		t.Fatalf("expected opacity in range, got %d", cfg.Opacity)
	}
	for _, tool := range Tools {
		if _, ok := cfg.Slots(tool); !ok {
			t.Fatalf("expected slots for %s", tool)
		}
	}
}

func TestLoadFreshInstallReturnsDefaults(t *testing.T) {
	store := NewStore(newMemSlots())
	cfg, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Opacity != 90 {
		t.Fatalf("expected opacity 90, got %d", cfg.Opacity)
	}
	for _, slot := range cfg.GitRepos {
		if slot.Name != "" || slot.Path != "" {
			t.Fatalf("expected empty git slot, got %+v", slot)
		}
	}
}

func TestDecodeMalformedInputDegradesToDefaults(t *testing.T) {
	cases := map[string]string{
		"garbage":          `{not json`,
		"array":            `[1,2,3]`,
		"string":           `"codex"`,
		"nulls":            `{"codex":null,"claude":null,"gemini":null,"gitRepos":null,"opacity":null}`,
		"wrong types":      `{"codex":"x","claude":7,"gemini":{},"gitRepos":true,"opacity":"high"}`,
		"short arrays":     `{"codex":[{"name":"a","path":"/a"}],"gitRepos":[{"name":"r","path":"/r"}]}`,
		"long arrays":      `{"codex":[{},{},{},{}],"gitRepos":[{},{},{},{},{}]}`,
		"empty arrays":     `{"codex":[],"gitRepos":[]}`,
		"null slot":        `{"claude":[null,{"name":"b","path":"/b"}]}`,
		"opacity too high": `{"opacity":250}`,
		"opacity negative": `{"opacity":-3}`,
		"opacity huge":     `{"opacity":1e300}`,
		"empty":            ``,
		"null":             `null`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Decode([]byte(input))
			if err != nil && !errors.Is(err, ErrConfigParse) {
				t.Fatalf("expected ErrConfigParse or nil, got %v", err)
			}
			checkInvariants(t, cfg)
		})
	}
}

func TestDecodeNonObjectReportsParseError(t *testing.T) {
	cfg, err := Decode([]byte(`{not json`))
	if !errors.Is(err, ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse, got %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults after parse failure, got %+v", cfg)
	}
}

func TestDecodeRepairsShortArrayPerSlot(t *testing.T) {
	cfg, err := Decode([]byte(`{"codex":[{"name":"Mine","path":"/mine"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if cfg.Codex[0] != (ToolSlot{Name: "Mine", Path: "/mine"}) {
		t.Fatalf("expected persisted slot 0 kept, got %+v", cfg.Codex[0])
	}
	if cfg.Codex[1] != def.Codex[1] {
		t.Fatalf("expected default slot 1, got %+v", cfg.Codex[1])
	}
	if cfg.Claude != def.Claude {
		t.Fatalf("expected claude untouched, got %+v", cfg.Claude)
	}
}

func TestDecodeReplacesPresentFieldWholesale(t *testing.T) {
	input := `{"gemini":[{"name":"","path":""},{"name":"W","path":"/w"}],"opacity":42.4}`
	cfg, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini[0] != (ToolSlot{}) {
		t.Fatalf("expected empty persisted slot kept, got %+v", cfg.Gemini[0])
	}
	if cfg.Gemini[1].Path != "/w" {
		t.Fatalf("expected /w, got %q", cfg.Gemini[1].Path)
	}
	if cfg.Opacity != 42 {
		t.Fatalf("expected opacity 42, got %d", cfg.Opacity)
	}
}

func TestDecodeKeepsDefaultForMalformedSlot(t *testing.T) {
	cfg, err := Decode([]byte(`{"gitRepos":[{"name":"a","path":"/a"},"oops",{"name":"c","path":"/c"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GitRepos[0].Path != "/a" || cfg.GitRepos[2].Path != "/c" {
		t.Fatalf("expected slots 0 and 2 kept, got %+v", cfg.GitRepos)
	}
	if cfg.GitRepos[1] != (GitRepoSlot{}) {
		t.Fatalf("expected slot 1 defaulted, got %+v", cfg.GitRepos[1])
	}
}

func TestSaveLoadIsIdempotent(t *testing.T) {
	slots := newMemSlots()
	slots.values[Key] = `{"codex":[{"name":"x","path":"/x"}],"opacity":12}`
	store := NewStore(slots)
	ctx := context.Background()

	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved := slots.values[Key]
	second, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if first != second {
		t.Fatalf("expected %+v, got %+v", first, second)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if slots.values[Key] != saved {
		t.Fatalf("expected identical serialization, got %s vs %s", slots.values[Key], saved)
	}
}

func TestLoadReadFailureFallsBackToDefaults(t *testing.T) {
	slots := newMemSlots()
	slots.getErr = errors.New("disk on fire")
	cfg, err := NewStore(slots).Load(context.Background())
	if !errors.Is(err, ErrConfigParse) {
		t.Fatalf("expected ErrConfigParse, got %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveErrorPropagates(t *testing.T) {
	slots := newMemSlots()
	slots.setErr = errors.New("read-only")
	if err := NewStore(slots).Save(context.Background(), Default()); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestOpacityRoundTripThroughFileStore(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/slots.json"
	fs, err := kv.Open(kv.BackendFile, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	editor := NewEditor(NewStore(fs), Default())
	editor.PreviewOpacity(42)
	if err := editor.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	reopened, err := kv.Open(kv.BackendFile, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cfg, err := NewStore(reopened).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Opacity != 42 {
		t.Fatalf("expected opacity 42, got %d", cfg.Opacity)
	}
	if tint := TintFor(cfg.Opacity); math.Abs(tint.Alpha-0.42) > 1e-9 {
		t.Fatalf("expected alpha 0.42, got %v", tint.Alpha)
	}
}

func TestEditorKeepsDraftOutOfCommitted(t *testing.T) {
	editor := NewEditor(nil, Default())
	editor.Begin()
	draft := editor.Draft()
	draft.Codex[0].Path = "/elsewhere"
	editor.Stage(draft)
	editor.PreviewOpacity(10)

	if editor.Committed().Codex[0].Path == "/elsewhere" {
		t.Fatalf("expected committed config untouched before commit")
	}
	if editor.Committed().Opacity != DefaultOpacity {
		t.Fatalf("expected committed opacity %d, got %d", DefaultOpacity, editor.Committed().Opacity)
	}
	if !editor.Dirty() {
		t.Fatalf("expected dirty draft")
	}

	editor.Discard()
	if editor.Editing() {
		t.Fatalf("expected draft dropped")
	}
	if editor.Draft().Opacity != DefaultOpacity {
		t.Fatalf("expected discard to restore opacity, got %d", editor.Draft().Opacity)
	}
}

func TestEditorCommitFailureKeepsDraft(t *testing.T) {
	slots := newMemSlots()
	slots.setErr = errors.New("nope")
	editor := NewEditor(NewStore(slots), Default())
	editor.PreviewOpacity(5)
	if err := editor.Commit(context.Background()); err == nil {
		t.Fatalf("expected commit error")
	}
	if !editor.Editing() || editor.Draft().Opacity != 5 {
		t.Fatalf("expected draft kept after failed commit")
	}
	if editor.Committed().Opacity != DefaultOpacity {
		t.Fatalf("expected committed untouched, got %d", editor.Committed().Opacity)
	}
}

func TestTintFormatting(t *testing.T) {
	tint := TintFor(42)
	if got := tint.CSS(); got != "rgba(15, 15, 20, 0.42)" {
		t.Fatalf("expected rgba(15, 15, 20, 0.42), got %s", got)
	}
	if got := TintFor(150).Opacity; got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
	if TintFor(100).Hex() != "#0f0f14" {
		t.Fatalf("expected opaque tint to equal base, got %s", TintFor(100).Hex())
	}
	if TintFor(0).Hex() != Backdrop.Hex() {
		t.Fatalf("expected transparent tint to equal backdrop, got %s", TintFor(0).Hex())
	}
	if tint.Label() != "42%" {
		t.Fatalf("expected 42%%, got %s", tint.Label())
	}
}

func TestParseTool(t *testing.T) {
	tool, ok := ParseTool("  Claude ")
	if !ok || tool != ToolClaude {
		t.Fatalf("expected claude, got %q %v", tool, ok)
	}
	if _, ok := ParseTool("vim"); ok {
		t.Fatalf("expected vim rejected")
	}
	if ToolGemini.Title() != "Gemini" {
		t.Fatalf("expected Gemini, got %s", ToolGemini.Title())
	}
}
