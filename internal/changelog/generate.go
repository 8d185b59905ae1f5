package changelog

import (
	"fmt"

	"github.com/raveheart1/relver/internal/classify"
	"github.com/raveheart1/relver/internal/release"
)

// Synthesize prepends a new version section built from a release plan.
// Commits are grouped by their classified impact: major into breaking,
// minor into features, patch into fixes, unmatched into other. Commit order
// within a category follows history order (oldest first). A plan with no
// commits gets a single placeholder entry so the section validates.
func Synthesize(c *Changelog, plan *release.Plan, date string) error {
	version := Version{
		Version: plan.Next.String(),
		Date:    date,
		Changes: groupCommits(plan.Commits),
	}

	if version.Changes.IsEmpty() {
		version.Changes.Other = []string{"Maintenance release"}
	}

	normalized := NormalizeVersion(version.Version)
	for _, existing := range c.Versions {
		if NormalizeVersion(existing.Version) == normalized {
			return fmt.Errorf("changelog already has a section for version %s", version.Version)
		}
	}

	c.Versions = append([]Version{version}, c.Versions...)
	return nil
}

// groupCommits buckets classified commits into changelog categories.
func groupCommits(commits []release.ClassifiedCommit) Changes {
	var changes Changes
	for _, commit := range commits {
		switch commit.Impact {
		case classify.ImpactMajor:
			changes.Breaking = append(changes.Breaking, commit.Subject)
		case classify.ImpactMinor:
			changes.Features = append(changes.Features, commit.Subject)
		case classify.ImpactPatch:
			changes.Fixes = append(changes.Fixes, commit.Subject)
		default:
			changes.Other = append(changes.Other, commit.Subject)
		}
	}
	return changes
}
