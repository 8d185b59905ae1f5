package config

import "fmt"

// Validate checks configuration values for consistency. Returned errors
// name the offending key so users can fix the right file.
func Validate(cfg *Configuration) error {
	if cfg.Remote == "" {
		return fmt.Errorf("config: remote must not be empty")
	}
	if cfg.ChangelogPath == "" {
		return fmt.Errorf("config: changelog_path must not be empty")
	}
	if cfg.StateDir == "" {
		return fmt.Errorf("config: state_dir must not be empty")
	}
	if cfg.MaxHistoryEntries < 0 {
		return fmt.Errorf("config: max_history_entries must be >= 0, got %d", cfg.MaxHistoryEntries)
	}
	return nil
}
