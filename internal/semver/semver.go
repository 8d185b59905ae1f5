// Package semver provides the three-component version type relver computes
// and records. Parsing is deliberately tolerant: real-world tags are often
// partial ("v1.2") or slightly malformed, and the resolver treats missing
// trailing components as zero rather than refusing to release. Callers that
// want hard failures use ParseStrict.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic version triple. Components are non-negative;
// ordering is lexicographic on (Major, Minor, Patch).
type Version struct {
	Major int
	Minor int
	Patch int
}

// Zero is the baseline version used when a repository has no version tags yet.
var Zero = Version{}

// MalformedVersionError reports input that ParseStrict could not interpret
// as a full version triple.
type MalformedVersionError struct {
	Input  string
	Reason string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed version %q: %s", e.Input, e.Reason)
}

// Parse interprets s as a version, tolerating the common tag-name quirks:
// an optional "v" prefix, fewer than three components, and trailing garbage
// in a component (the component and everything after it degrade to zero).
// Parse never fails; unusable input yields the zero version.
func Parse(s string) Version {
	v, _ := parse(s)
	return v
}

// ParseStrict interprets s as a version and returns a MalformedVersionError
// unless all three components are present and parse as non-negative integers.
// The "v" prefix is still accepted.
func ParseStrict(s string) (Version, error) {
	v, ok := parse(s)
	if !ok {
		return Version{}, &MalformedVersionError{
			Input:  s,
			Reason: "want three non-negative integer components",
		}
	}
	return v, nil
}

// parse returns the best-effort version and whether the input was a clean
// three-component triple.
func parse(s string) (Version, bool) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "v")
	if trimmed == "" {
		return Version{}, false
	}

	parts := strings.Split(trimmed, ".")
	nums := [3]int{}
	clean := len(parts) == 3

	for i := 0; i < 3 && i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			// This component and everything after it is unusable.
			clean = false
			break
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, clean
}

// String returns the bare "major.minor.patch" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// TagName returns the external tag representation using the given prefix
// (typically "v").
func (v Version) TagName(prefix string) string {
	return prefix + v.String()
}

// Compare orders versions lexicographically on (Major, Minor, Patch).
// It returns -1 if v < other, 0 if equal, and 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmp(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmp(v.Minor, other.Minor)
	}
	return cmp(v.Patch, other.Patch)
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// NextPatch returns the version with the patch component incremented.
// Used by the collision-avoidance loop in the resolver.
func (v Version) NextPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
