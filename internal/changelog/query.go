package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves a specific version from the changelog. Accepts both
// "v0.6.0" and "0.6.0" forms.
func (c *Changelog) GetVersion(version string) (*Version, error) {
	normalized := NormalizeVersion(version)

	for i := range c.Versions {
		if NormalizeVersion(c.Versions[i].Version) == normalized {
			return &c.Versions[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// ListVersions returns all version identifiers in changelog order
// (newest first).
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Versions))
	for i, v := range c.Versions {
		versions[i] = v.Version
	}
	return versions
}

// AllEntries returns every entry across all versions, newest version first.
func (c *Changelog) AllEntries() []Entry {
	var entries []Entry
	for _, v := range c.Versions {
		entries = append(entries, v.Entries()...)
	}
	return entries
}

// GetLastN retrieves the N most recent entries across all versions.
func (c *Changelog) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// GetEntryCount returns the total number of entries in the changelog.
func (c *Changelog) GetEntryCount() int {
	count := 0
	for _, v := range c.Versions {
		count += v.Changes.Count()
	}
	return count
}
