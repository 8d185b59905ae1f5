package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relver/internal/classify"
	"github.com/raveheart1/relver/internal/semver"
)

func setOf(versions ...semver.Version) ExistsFunc {
	members := make(map[semver.Version]struct{}, len(versions))
	for _, v := range versions {
		members[v] = struct{}{}
	}
	return func(v semver.Version) bool {
		_, ok := members[v]
		return ok
	}
}

func TestApply(t *testing.T) {
	latest := semver.Version{Major: 1, Minor: 2, Patch: 3}

	tests := map[string]struct {
		inc      classify.ReleaseImpact
		expected semver.Version
	}{
		"major resets minor and patch": {classify.ImpactMajor, semver.Version{Major: 2}},
		"minor resets patch":           {classify.ImpactMinor, semver.Version{Major: 1, Minor: 3}},
		"patch increments":             {classify.ImpactPatch, semver.Version{Major: 1, Minor: 2, Patch: 4}},
		"none falls through to patch":  {classify.ImpactNone, semver.Version{Major: 1, Minor: 2, Patch: 4}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Apply(latest, tc.inc))
		})
	}
}

func TestNextVersion(t *testing.T) {
	latest := semver.Version{Major: 1, Minor: 2, Patch: 3}

	t.Run("patch without collisions", func(t *testing.T) {
		v, err := NextVersion(latest, classify.ImpactPatch, nil)
		require.NoError(t, err)
		assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 4}, v)
	})

	t.Run("minor without collisions", func(t *testing.T) {
		v, err := NextVersion(latest, classify.ImpactMinor, setOf())
		require.NoError(t, err)
		assert.Equal(t, semver.Version{Major: 1, Minor: 3}, v)
	})

	t.Run("major without collisions", func(t *testing.T) {
		v, err := NextVersion(latest, classify.ImpactMajor, setOf())
		require.NoError(t, err)
		assert.Equal(t, semver.Version{Major: 2}, v)
	})

	t.Run("collision skips to next patch", func(t *testing.T) {
		v, err := NextVersion(latest, classify.ImpactPatch, setOf(semver.Version{Major: 1, Minor: 2, Patch: 4}))
		require.NoError(t, err)
		assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 5}, v)
	})

	t.Run("consecutive collisions keep probing", func(t *testing.T) {
		v, err := NextVersion(latest, classify.ImpactMinor, setOf(
			semver.Version{Major: 1, Minor: 3},
			semver.Version{Major: 1, Minor: 3, Patch: 1},
			semver.Version{Major: 1, Minor: 3, Patch: 2},
		))
		require.NoError(t, err)
		assert.Equal(t, semver.Version{Major: 1, Minor: 3, Patch: 3}, v)
	})

	t.Run("minor bump from zero baseline", func(t *testing.T) {
		v, err := NextVersion(semver.Zero, classify.ImpactMinor, setOf())
		require.NoError(t, err)
		assert.Equal(t, semver.Version{Minor: 1}, v)
	})

	t.Run("exhausted version space reports typed error", func(t *testing.T) {
		_, err := NextVersion(latest, classify.ImpactPatch, func(semver.Version) bool { return true })
		require.ErrorIs(t, err, ErrVersionSpaceExhausted)
	})
}

func TestTagSet(t *testing.T) {
	set := NewTagSet([]Tag{
		{Name: "v0.1.0", Version: semver.Version{Minor: 1}, Clean: true},
		{Name: "v0.2.0", Version: semver.Version{Minor: 2}, Clean: true},
		{Name: "v0.1.1", Version: semver.Version{Minor: 1, Patch: 1}, Clean: true},
	})

	latest, ok := set.Latest()
	require.True(t, ok)
	assert.Equal(t, "v0.2.0", latest.Name)

	assert.True(t, set.Contains(semver.Version{Minor: 1, Patch: 1}))
	assert.False(t, set.Contains(semver.Version{Minor: 3}))
	assert.Equal(t, 3, set.Len())
}

func TestTagSet_Empty(t *testing.T) {
	set := NewTagSet(nil)
	_, ok := set.Latest()
	assert.False(t, ok)
	assert.Equal(t, 0, set.Len())
}
