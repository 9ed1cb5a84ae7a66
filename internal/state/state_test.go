package state

import (
	"testing"

	"github.com/atomicstack/cli-launcher/internal/settings"
)

func TestSelectionDefaultsAndBounds(t *testing.T) {
	sel := NewSelection()
	if got := sel.ToolIndex(settings.ToolCodex); got != 0 {
		t.Fatalf("expected default index 0, got %d", got)
	}
	if !sel.SetToolIndex(settings.ToolCodex, 1) {
		t.Fatalf("expected index 1 accepted")
	}
	if sel.SetToolIndex(settings.ToolCodex, 2) {
		t.Fatalf("expected index 2 rejected")
	}
	if sel.SetToolIndex(settings.Tool("vim"), 0) {
		t.Fatalf("expected unknown tool rejected")
	}
	if got := sel.ToolIndex(settings.ToolCodex); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	sel.ResetTools()
	if got := sel.ToolIndex(settings.ToolCodex); got != 0 {
		t.Fatalf("expected reset to 0, got %d", got)
	}
}

func TestSelectionNormalizesToolName(t *testing.T) {
	sel := NewSelection()
	if !sel.SetToolIndex(settings.Tool("Codex"), 1) {
		t.Fatalf("expected mixed-case tool accepted")
	}
	if got := sel.ToolIndex(settings.ToolCodex); got != 1 {
		t.Fatalf("expected index 1 for codex, got %d", got)
	}
	if got := sel.ToolIndex(settings.Tool("CODEX")); got != 1 {
		t.Fatalf("expected index 1 for CODEX, got %d", got)
	}
}

func TestSelectionRepo(t *testing.T) {
	sel := NewSelection()
	if _, ok := sel.Repo(); ok {
		t.Fatalf("expected no repo selected initially")
	}
	if sel.SetRepo(3) {
		t.Fatalf("expected out of range repo rejected")
	}
	if !sel.SetRepo(2) {
		t.Fatalf("expected repo 2 accepted")
	}
	if idx, ok := sel.Repo(); !ok || idx != 2 {
		t.Fatalf("expected repo 2, got %d %v", idx, ok)
	}
	sel.ClearRepo()
	if _, ok := sel.Repo(); ok {
		t.Fatalf("expected repo cleared")
	}
}

func TestRepoStatusStoreCopies(t *testing.T) {
	store := NewRepoStatusStore()
	entries := []RepoStatus{{Index: 1, Path: "/r", Branch: "main"}}
	store.SetEntries(entries)
	entries[0].Branch = "mutated"
	got, ok := store.Lookup(1)
	if !ok || got.Branch != "main" {
		t.Fatalf("expected stored copy with branch main, got %+v", got)
	}
	if _, ok := store.Lookup(0); ok {
		t.Fatalf("expected slot 0 missing")
	}
}
