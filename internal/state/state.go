package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DraftState is what was sent for a single source file
type DraftState struct {
	Hash      string    `json:"hash"`
	DraftID   int64     `json:"draft_id"`
	DraftURL  string    `json:"draft_url"`
	Title     string    `json:"title"`
	DraftedAt time.Time `json:"drafted_at"`
	// Body is the converted body at draft time, used for diffs
	Body string `json:"body"`
}

// State tracks drafted articles by absolute source path
type State struct {
	Drafts map[string]*DraftState `json:"drafts"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Drafts: make(map[string]*DraftState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Drafts == nil {
		state.Drafts = make(map[string]*DraftState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write then rename so an interrupted save leaves the old file intact
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged reports whether a file differs from its last draft.
// Files that were never drafted count as changed.
func (s *State) HasChanged(path string) (bool, error) {
	entry, exists := s.Drafts[path]
	if !exists {
		return true, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != entry.Hash, nil
}

// Record stores a draft for path, hashing the file's current contents
func (s *State) Record(path string, entry DraftState) error {
	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	entry.Hash = hash
	if entry.DraftedAt.IsZero() {
		entry.DraftedAt = time.Now()
	}
	s.Drafts[path] = &entry

	return nil
}

// Get returns the last draft for path, or nil
func (s *State) Get(path string) *DraftState {
	return s.Drafts[path]
}

// Entry pairs a source path with its draft
type Entry struct {
	Path string
	*DraftState
}

// Entries lists drafts, most recent first
func (s *State) Entries() []Entry {
	entries := make([]Entry, 0, len(s.Drafts))
	for path, d := range s.Drafts {
		entries = append(entries, Entry{Path: path, DraftState: d})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DraftedAt.Equal(entries[j].DraftedAt) {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].DraftedAt.After(entries[j].DraftedAt)
	})
	return entries
}
