// Package history records performed releases in a JSON log under the state
// directory. Logging failures are warnings, never command failures: losing a
// history line must not abort a release.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyFileName is the log file inside the state directory.
const historyFileName = "releases.json"

// Entry is one recorded release.
type Entry struct {
	Version     string    `json:"version"`
	Previous    string    `json:"previous"`
	Increment   string    `json:"increment"`
	CommitCount int       `json:"commit_count"`
	Tag         string    `json:"tag"`
	Timestamp   time.Time `json:"timestamp"`
}

// History is the persisted log, oldest entry first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Writer provides release logging with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain; 0 disables
	// pruning.
	MaxEntries int
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
	}
}

// LogEntry adds a new entry to the history file. It loads the existing
// history, appends, prunes if needed, and saves. Errors are non-fatal: they
// are written to stderr and don't fail the release.
func (w *Writer) LogEntry(entry Entry) {
	if err := w.logEntryInternal(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to log release history: %v\n", err)
	}
}

func (w *Writer) logEntryInternal(entry Entry) error {
	history, err := Load(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := Save(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// Load reads the history file from stateDir. A missing file yields an empty
// history.
func Load(stateDir string) (*History, error) {
	path := filepath.Join(stateDir, historyFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &history, nil
}

// Save writes the history file, creating the state directory if needed.
func Save(stateDir string, history *History) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	path := filepath.Join(stateDir, historyFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}
