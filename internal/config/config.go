// Package config provides hierarchical configuration management for relver
// using koanf. Configuration is loaded with priority: environment variables
// (RELVER_*) > project config (.relver/config.yml) > user config
// (~/.config/relver/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// RELVER_TAG_PREFIX, RELVER_PUSH, RELVER_CHANGELOG_PATH.
const envPrefix = "RELVER_"

// Configuration holds the relver tool settings.
type Configuration struct {
	// TagPrefix is prepended to version numbers when tagging ("v1.2.3").
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix"`

	// Remote is the git remote pushes go to.
	Remote string `koanf:"remote" yaml:"remote"`

	// ChangelogPath is the changelog file location, relative to the
	// repository root unless absolute.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path"`

	// Push controls whether `relver release` pushes the tag and branch
	// after tagging.
	Push bool `koanf:"push" yaml:"push"`

	// StateDir holds relver state files (release history).
	StateDir string `koanf:"state_dir" yaml:"state_dir"`

	// MaxHistoryEntries caps the release history log; oldest entries are
	// pruned past the limit.
	MaxHistoryEntries int `koanf:"max_history_entries" yaml:"max_history_entries"`

	// StrictVersions rejects a latest tag that isn't a full X.Y.Z triple
	// instead of zero-filling the missing components.
	StrictVersions bool `koanf:"strict_versions" yaml:"strict_versions"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path
	// (default: .relver/config.yml).
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file, used in tests.
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with explicit options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	cfg := Default()
	k := koanf.New(".")

	if !opts.SkipUserConfig {
		if path, err := UserConfigPath(); err == nil {
			if err := loadFileIfExists(k, path); err != nil {
				return nil, err
			}
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
		// JSON is accepted as an alternative project config format.
		if _, err := os.Stat(projectPath); err != nil {
			if alt := projectJSONConfigPath(); fileExists(alt) {
				projectPath = alt
			}
		}
	}
	if err := loadFileIfExists(k, projectPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.StateDir = expandHome(cfg.StateDir)
	return &cfg, nil
}

// loadFileIfExists layers a config file onto k; missing files are fine.
// The parser is chosen by extension: .json uses the JSON parser, everything
// else is treated as YAML.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return nil
	}

	var parser koanf.Parser = yaml.Parser()
	if filepath.Ext(path) == ".json" {
		parser = json.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envToKey maps RELVER_TAG_PREFIX to "tag_prefix".
func envToKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// ProjectConfigPath returns the project-level config path relative to the
// current directory.
func ProjectConfigPath() string {
	return filepath.Join(".relver", "config.yml")
}

// projectJSONConfigPath is the JSON alternative to the project config.
func projectJSONConfigPath() string {
	return filepath.Join(".relver", "config.json")
}

// UserConfigPath returns the XDG-compliant user config path.
func UserConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "relver", "config.yml"), nil
}

// expandHome resolves a leading "~/" against the user home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
