package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewState(t *testing.T) {
	s := NewState()

	if s.Drafts == nil {
		t.Error("Drafts map should be initialized")
	}
	if len(s.Drafts) != 0 {
		t.Error("Drafts map should be empty")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	statePath := filepath.Join(tmpDir, "nested", "state.json")

	drafted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state := NewState()
	state.Drafts["/notes/post.md"] = &DraftState{
		Hash:      "sha256:abc123",
		DraftID:   99,
		DraftURL:  "https://pub.substack.com/publish/post/99",
		Title:     "Post",
		DraftedAt: drafted,
		Body:      "Hello",
	}

	if err := state.Save(statePath); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}
	if _, err := os.Stat(statePath + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary state file should not be left behind")
	}

	loaded, err := Load(statePath)
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	d := loaded.Get("/notes/post.md")
	if d == nil {
		t.Fatal("Draft state not found")
	}
	if d.DraftID != 99 {
		t.Errorf("DraftID mismatch: got %d, want 99", d.DraftID)
	}
	if d.Hash != "sha256:abc123" {
		t.Errorf("Hash mismatch: got %s, want sha256:abc123", d.Hash)
	}
	if !d.DraftedAt.Equal(drafted) {
		t.Errorf("DraftedAt mismatch: got %v, want %v", d.DraftedAt, drafted)
	}
	if d.Body != "Hello" {
		t.Errorf("Body mismatch: got %q", d.Body)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()

	state, err := Load(filepath.Join(tmpDir, "nonexistent.json"))
	if err != nil {
		t.Fatalf("Load should not error on non-existent file: %v", err)
	}
	if state.Drafts == nil || len(state.Drafts) != 0 {
		t.Error("Should return an empty state")
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load should fail on a corrupt state file")
	}
}

func TestComputeHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	if err := os.WriteFile(path, []byte("# Title\n"), 0644); err != nil {
		t.Fatal(err)
	}

	hash1, err := ComputeHash(path)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if !strings.HasPrefix(hash1, "sha256:") {
		t.Errorf("hash should be prefixed, got %s", hash1)
	}

	hash2, _ := ComputeHash(path)
	if hash1 != hash2 {
		t.Error("Same content should produce same hash")
	}

	if err := os.WriteFile(path, []byte("# Other\n"), 0644); err != nil {
		t.Fatal(err)
	}
	hash3, _ := ComputeHash(path)
	if hash1 == hash3 {
		t.Error("Different content should produce different hash")
	}
}

func TestHasChangedAndRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	if err := os.WriteFile(path, []byte("# Title\n\nBody\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewState()

	changed, err := s.HasChanged(path)
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if !changed {
		t.Error("Never-drafted file should count as changed")
	}

	if err := s.Record(path, DraftState{DraftID: 1, Title: "Title"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if s.Get(path).DraftedAt.IsZero() {
		t.Error("Record should stamp DraftedAt")
	}

	changed, _ = s.HasChanged(path)
	if changed {
		t.Error("File should be unchanged right after Record")
	}

	if err := os.WriteFile(path, []byte("# Title\n\nEdited body\n"), 0644); err != nil {
		t.Fatal(err)
	}
	changed, _ = s.HasChanged(path)
	if !changed {
		t.Error("Edited file should count as changed")
	}
}

func TestHasChangedMissingFile(t *testing.T) {
	s := NewState()
	s.Drafts["/gone.md"] = &DraftState{Hash: "sha256:x"}

	if _, err := s.HasChanged("/gone.md"); err == nil {
		t.Error("HasChanged should report a missing tracked file")
	}
}

func TestEntriesOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewState()
	s.Drafts["old.md"] = &DraftState{DraftedAt: base}
	s.Drafts["new.md"] = &DraftState{DraftedAt: base.Add(time.Hour)}
	s.Drafts["also-old.md"] = &DraftState{DraftedAt: base}

	entries := s.Entries()
	got := []string{entries[0].Path, entries[1].Path, entries[2].Path}
	want := []string{"new.md", "also-old.md", "old.md"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
