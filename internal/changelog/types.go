// Package changelog maintains the CHANGELOG.yaml model: loading, validation,
// synthesis of new version sections from classified commits, and rendering
// to Markdown or the terminal.
package changelog

// Changelog is the root structure of a CHANGELOG.yaml file. Versions are
// ordered newest first.
type Changelog struct {
	Project  string    `yaml:"project"`
	Versions []Version `yaml:"versions"`
}

// Version is a single release section. The Version field is a bare semantic
// version ("0.6.0"); the CLI normalizes "v" prefixes on input. Date is
// YYYY-MM-DD.
type Version struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date,omitempty"`
	Changes Changes `yaml:"changes"`
}

// Changes groups release entries by the impact level their commits carried.
// Commits without a recognized pattern land in Other.
type Changes struct {
	Breaking []string `yaml:"breaking,omitempty"`
	Features []string `yaml:"features,omitempty"`
	Fixes    []string `yaml:"fixes,omitempty"`
	Other    []string `yaml:"other,omitempty"`
}

// Entry is a flattened view of a single entry with its version and category
// context, used for terminal display.
type Entry struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
	Version  string `yaml:"version"`
}

// IsEmpty returns true if no category holds any entry.
func (c Changes) IsEmpty() bool {
	return len(c.Breaking) == 0 &&
		len(c.Features) == 0 &&
		len(c.Fixes) == 0 &&
		len(c.Other) == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	return len(c.Breaking) + len(c.Features) + len(c.Fixes) + len(c.Other)
}

// Entries returns a flattened list of all entries in this version.
func (v Version) Entries() []Entry {
	entries := make([]Entry, 0, v.Changes.Count())

	for _, text := range v.Changes.Breaking {
		entries = append(entries, Entry{Text: text, Category: "breaking", Version: v.Version})
	}
	for _, text := range v.Changes.Features {
		entries = append(entries, Entry{Text: text, Category: "features", Version: v.Version})
	}
	for _, text := range v.Changes.Fixes {
		entries = append(entries, Entry{Text: text, Category: "fixes", Version: v.Version})
	}
	for _, text := range v.Changes.Other {
		entries = append(entries, Entry{Text: text, Category: "other", Version: v.Version})
	}

	return entries
}

// ValidCategories returns the category names in their rendering order.
func ValidCategories() []string {
	return []string{"breaking", "features", "fixes", "other"}
}
