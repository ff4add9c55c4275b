package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/sway/internal/logger"
)

const fileName = "ui-state.json"

// UIState holds persistent UI preferences that carry across runs.
type UIState struct {
	Progress ProgressState `json:"progress"`
	Help     HelpState     `json:"help"`
}

// ProgressState holds the progress bar visibility preference.
type ProgressState struct {
	Visible bool `json:"visible"`
}

// HelpState holds whether the key help line is expanded.
type HelpState struct {
	Expanded bool `json:"expanded"`
}

// DefaultUIState returns the default UI state.
func DefaultUIState() *UIState {
	return &UIState{
		Progress: ProgressState{Visible: true},
	}
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, fileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultUIState()
	}
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	// Missing keys keep their defaults.
	state := DefaultUIState()
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}
	return state
}

// Save writes the UI state to <dataDir>/ui-state.json, creating the data
// directory if needed.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, fileName)
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
