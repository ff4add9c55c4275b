package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultUIState(t *testing.T) {
	state := DefaultUIState()
	if !state.Progress.Visible {
		t.Error("Expected progress to be visible by default")
	}
	if state.Help.Expanded {
		t.Error("Expected help to be collapsed by default")
	}
}

func TestLoadNonExistent(t *testing.T) {
	state := Load(filepath.Join(t.TempDir(), "missing"))
	if state == nil {
		t.Fatal("Load returned nil for non-existent file")
	}
	if !state.Progress.Visible {
		t.Error("Expected default progress visibility")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	state := &UIState{
		Progress: ProgressState{Visible: false},
		Help:     HelpState{Expanded: true},
	}
	if err := Save(tmpDir, state); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded := Load(tmpDir)
	if loaded.Progress.Visible || !loaded.Help.Expanded {
		t.Errorf("Loaded state %+v does not match saved state %+v", loaded, state)
	}
}

func TestLoadPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, fileName), []byte(`{"help":{"expanded":true}}`), 0644); err != nil {
		t.Fatal(err)
	}

	state := Load(tmpDir)
	if !state.Progress.Visible {
		t.Error("Missing progress key should keep its default")
	}
	if !state.Help.Expanded {
		t.Error("Expected help to be expanded")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "subdir", "data")

	if err := Save(dataDir, DefaultUIState()); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, fileName)); err != nil {
		t.Errorf("State file was not created: %v", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, fileName), []byte("invalid json {{{"), 0644); err != nil {
		t.Fatalf("Failed to write invalid JSON: %v", err)
	}

	state := Load(tmpDir)
	if state == nil {
		t.Fatal("Load returned nil for invalid JSON")
	}
	if !state.Progress.Visible {
		t.Error("Expected defaults when JSON is invalid")
	}
}
