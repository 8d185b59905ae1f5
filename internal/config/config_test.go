package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
		SkipUserConfig:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "CHANGELOG.yaml", cfg.ChangelogPath)
	assert.False(t, cfg.Push)
	assert.Equal(t, 500, cfg.MaxHistoryEntries)
	assert.False(t, cfg.StrictVersions)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
tag_prefix: release-
remote: upstream
push: true
max_history_entries: 10
`), 0o644))

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
	require.NoError(t, err)

	assert.Equal(t, "release-", cfg.TagPrefix)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.True(t, cfg.Push)
	assert.Equal(t, 10, cfg.MaxHistoryEntries)
	// Untouched keys keep their defaults.
	assert.Equal(t, "CHANGELOG.yaml", cfg.ChangelogPath)
}

func TestLoad_EnvOverridesProjectConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("remote: upstream\n"), 0o644))

	t.Setenv("RELVER_REMOTE", "fork")
	t.Setenv("RELVER_STRICT_VERSIONS", "true")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
	require.NoError(t, err)

	assert.Equal(t, "fork", cfg.Remote)
	assert.True(t, cfg.StrictVersions)
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"remote": "upstream", "push": true}`), 0o644))

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Remote)
	assert.True(t, cfg.Push)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("remote: [unclosed\n"), 0o644))

	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipUserConfig: true})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"defaults are valid":     {func(*Configuration) {}, ""},
		"empty remote":           {func(c *Configuration) { c.Remote = "" }, "remote"},
		"empty changelog path":   {func(c *Configuration) { c.ChangelogPath = "" }, "changelog_path"},
		"empty state dir":        {func(c *Configuration) { c.StateDir = "" }, "state_dir"},
		"negative history limit": {func(c *Configuration) { c.MaxHistoryEntries = -1 }, "max_history_entries"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := Validate(&cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".relver", "state"), expandHome("~/.relver/state"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "relative", expandHome("relative"))
}

func TestEnvToKey(t *testing.T) {
	assert.Equal(t, "tag_prefix", envToKey("RELVER_TAG_PREFIX"))
	assert.Equal(t, "push", envToKey("RELVER_PUSH"))
}
