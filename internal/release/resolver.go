// Package release computes the next version for a repository from its
// recorded version tags and the commits made since the last release.
// The version-control system is consumed through small interfaces so the
// resolution pipeline stays a pure function of its inputs.
package release

import (
	"errors"

	"github.com/raveheart1/relver/internal/classify"
	"github.com/raveheart1/relver/internal/semver"
)

// ErrVersionSpaceExhausted is returned when collision avoidance cannot find
// a free version within the probe bound. In practice this means the tag set
// is pathological.
var ErrVersionSpaceExhausted = errors.New("version space exhausted: no free version found during collision avoidance")

// maxCollisionProbes bounds the collision-avoidance loop.
const maxCollisionProbes = 10000

// ExistsFunc reports whether a candidate version is already recorded as a
// marker. A nil func is treated as an empty set.
type ExistsFunc func(semver.Version) bool

// Apply produces the version that results from applying an increment to
// latest. Any impact other than major or minor falls through to a patch
// bump; that covers both ImpactPatch and the default bias toward always
// shipping at least a patch.
func Apply(latest semver.Version, inc classify.ReleaseImpact) semver.Version {
	switch inc {
	case classify.ImpactMajor:
		return semver.Version{Major: latest.Major + 1}
	case classify.ImpactMinor:
		return semver.Version{Major: latest.Major, Minor: latest.Minor + 1}
	default:
		return latest.NextPatch()
	}
}

// NextVersion applies inc to latest and then advances the patch component
// until the result is not a member of the existing version set. The returned
// version is always novel relative to exists; when the probe bound is hit,
// ErrVersionSpaceExhausted is returned instead.
func NextVersion(latest semver.Version, inc classify.ReleaseImpact, exists ExistsFunc) (semver.Version, error) {
	next := Apply(latest, inc)
	if exists == nil {
		return next, nil
	}

	for probes := 0; exists(next); probes++ {
		if probes >= maxCollisionProbes {
			return semver.Version{}, ErrVersionSpaceExhausted
		}
		next = next.NextPatch()
	}
	return next, nil
}
