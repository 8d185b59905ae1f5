package cli

import (
	"path/filepath"

	"github.com/raveheart1/relver/internal/config"
	"github.com/raveheart1/relver/internal/errors"
	"github.com/raveheart1/relver/internal/git"
	"github.com/raveheart1/relver/internal/release"
)

// loadConfig loads the effective configuration, honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			"check .relver/config.yml for syntax errors",
			"run 'relver config' to inspect the effective configuration")
	}
	return cfg, nil
}

// openRepo opens the repository selected by --repo (or the working
// directory) with the configured tag prefix.
func openRepo(cfg *config.Configuration) (*git.Repo, error) {
	repo, err := git.Open(repoPathFlag, cfg.TagPrefix)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Repository, "not a git repository",
			"run relver inside a git repository",
			"or point it at one with --repo <path>")
	}
	return repo, nil
}

// newPlanner wires the resolution pipeline over an opened repository.
func newPlanner(repo *git.Repo, cfg *config.Configuration) *release.Planner {
	return &release.Planner{Source: repo, Strict: cfg.StrictVersions}
}

// changelogPath resolves the configured changelog location against the
// repository root unless it is absolute.
func changelogPath(repo *git.Repo, cfg *config.Configuration) (string, error) {
	if filepath.IsAbs(cfg.ChangelogPath) {
		return cfg.ChangelogPath, nil
	}
	root, err := repo.Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, cfg.ChangelogPath), nil
}

// projectName derives the changelog project identifier from the repository
// root directory name.
func projectName(repo *git.Repo) string {
	root, err := repo.Root()
	if err != nil {
		return ""
	}
	return filepath.Base(root)
}
