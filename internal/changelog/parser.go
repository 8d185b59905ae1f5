package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError reports a changelog schema violation with field context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NormalizeVersion strips a leading "v" so "v0.6.0" and "0.6.0" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(version, "v")
}

// Load reads and validates a CHANGELOG.yaml file from the given path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadOrEmpty loads the changelog at path, or returns a fresh changelog for
// the given project when the file doesn't exist yet.
func LoadOrEmpty(path, project string) (*Changelog, error) {
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Changelog{Project: project}, nil
	}
	if err != nil {
		return nil, err
	}
	if c.Project == "" {
		c.Project = project
	}
	return c, nil
}

// LoadFromReader reads and validates a changelog from an io.Reader.
func LoadFromReader(r io.Reader) (*Changelog, error) {
	var changelog Changelog

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&changelog); err != nil {
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}

	if err := Validate(&changelog); err != nil {
		return nil, err
	}

	return &changelog, nil
}

// Save writes the changelog as YAML to path.
func Save(c *Changelog, path string) error {
	if err := Validate(c); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling changelog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}

// Validate checks that a Changelog satisfies the schema constraints.
func Validate(c *Changelog) error {
	seenVersions := make(map[string]bool)

	for i, v := range c.Versions {
		if err := validateVersion(&v, i); err != nil {
			return err
		}

		normalized := NormalizeVersion(v.Version)
		if seenVersions[normalized] {
			return &ValidationError{
				Field:   fmt.Sprintf("versions[%d].version", i),
				Message: fmt.Sprintf("duplicate version %q", v.Version),
			}
		}
		seenVersions[normalized] = true
	}

	return nil
}

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// validateVersion checks constraints for a single version entry.
func validateVersion(v *Version, index int) error {
	if v.Version == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].version", index),
			Message: "required field is empty",
		}
	}

	if !semverPattern.MatchString(NormalizeVersion(v.Version)) {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].version", index),
			Message: fmt.Sprintf("invalid version format %q (expected: X.Y.Z)", v.Version),
		}
	}

	if v.Date != "" && !datePattern.MatchString(v.Date) {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].date", index),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", v.Date),
		}
	}

	if v.Changes.IsEmpty() {
		return &ValidationError{
			Field:   fmt.Sprintf("versions[%d].changes", index),
			Message: "at least one change entry is required",
		}
	}

	return nil
}
