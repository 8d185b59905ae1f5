package config

// Default returns the built-in configuration values.
func Default() Configuration {
	return Configuration{
		TagPrefix:         "v",
		Remote:            "origin",
		ChangelogPath:     "CHANGELOG.yaml",
		Push:              false,
		StateDir:          "~/.relver/state",
		MaxHistoryEntries: 500,
		StrictVersions:    false,
	}
}

// DefaultConfigTemplate returns a fully commented config template written by
// `relver config init`.
func DefaultConfigTemplate() string {
	return `# relver configuration
# Values can be overridden per key with RELVER_* environment variables,
# e.g. RELVER_TAG_PREFIX=release- or RELVER_PUSH=true.

tag_prefix: v                 # Prefix for version tags (v1.2.3)
remote: origin                # Git remote used by 'relver release' pushes
changelog_path: CHANGELOG.yaml # Changelog location, relative to repo root
push: false                   # Push tag and branch after tagging
state_dir: ~/.relver/state    # Directory for release history
max_history_entries: 500      # Max recorded releases (0 = unlimited)
strict_versions: false        # Reject partial latest tags like v1.2
`
}
