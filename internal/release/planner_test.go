package release

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relver/internal/classify"
	"github.com/raveheart1/relver/internal/semver"
)

// fakeSource is an in-memory Source for planner tests.
type fakeSource struct {
	tags     []Tag
	subjects map[string][]string
	tagsErr  error
	listErr  error

	sinceSeen string
}

func (f *fakeSource) VersionTags(ctx context.Context) ([]Tag, error) {
	return f.tags, f.tagsErr
}

func (f *fakeSource) CommitSubjectsSince(ctx context.Context, tag string) ([]string, error) {
	f.sinceSeen = tag
	return f.subjects[tag], f.listErr
}

func TestPlanner_Plan(t *testing.T) {
	src := &fakeSource{
		tags: []Tag{
			{Name: "v1.1.0", Version: semver.Version{Major: 1, Minor: 1}, Clean: true},
			{Name: "v1.2.0", Version: semver.Version{Major: 1, Minor: 2}, Clean: true},
		},
		subjects: map[string][]string{
			"v1.2.0": {"fix: tag ordering", "feat: watch mode"},
		},
	}

	plan, err := (&Planner{Source: src}).Plan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", plan.PreviousTag)
	assert.Equal(t, "v1.2.0", src.sinceSeen)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2}, plan.Previous)
	assert.Equal(t, classify.ImpactMinor, plan.Increment)
	assert.Equal(t, semver.Version{Major: 1, Minor: 3}, plan.Next)
	assert.False(t, plan.FirstRelease())

	require.Len(t, plan.Commits, 2)
	assert.Equal(t, classify.ImpactPatch, plan.Commits[0].Impact)
	assert.Equal(t, classify.ImpactMinor, plan.Commits[1].Impact)
}

func TestPlanner_Plan_NoTags(t *testing.T) {
	src := &fakeSource{
		subjects: map[string][]string{
			"": {"chore: scaffold repo"},
		},
	}

	plan, err := (&Planner{Source: src}).Plan(context.Background())
	require.NoError(t, err)

	assert.True(t, plan.FirstRelease())
	assert.Equal(t, semver.Zero, plan.Previous)
	assert.Equal(t, classify.ImpactPatch, plan.Increment)
	assert.Equal(t, semver.Version{Patch: 1}, plan.Next)
}

func TestPlanner_Plan_EmptyHistorySinceTag(t *testing.T) {
	src := &fakeSource{
		tags: []Tag{{Name: "v0.3.0", Version: semver.Version{Minor: 3}, Clean: true}},
	}

	plan, err := (&Planner{Source: src}).Plan(context.Background())
	require.NoError(t, err)

	// No commits still ships a patch by the default bias.
	assert.Equal(t, classify.ImpactPatch, plan.Increment)
	assert.Equal(t, semver.Version{Minor: 3, Patch: 1}, plan.Next)
	assert.Empty(t, plan.Commits)
}

func TestPlanner_Plan_CollisionAgainstRecordedTags(t *testing.T) {
	src := &fakeSource{
		tags: []Tag{
			{Name: "v1.2.3", Version: semver.Version{Major: 1, Minor: 2, Patch: 3}, Clean: true},
			{Name: "v1.2.4", Version: semver.Version{Major: 1, Minor: 2, Patch: 4}, Clean: true},
		},
		subjects: map[string][]string{
			"v1.2.4": {"docs: nothing of note"},
		},
	}

	plan, err := (&Planner{Source: src}).Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 5}, plan.Next)
}

func TestPlanner_Plan_StrictRejectsPartialTag(t *testing.T) {
	src := &fakeSource{
		tags: []Tag{{Name: "v1.2", Version: semver.Version{Major: 1, Minor: 2}, Clean: false}},
	}

	_, err := (&Planner{Source: src, Strict: true}).Plan(context.Background())
	var malformed *semver.MalformedVersionError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "v1.2", malformed.Input)
}

func TestPlanner_Plan_TolerantAcceptsPartialTag(t *testing.T) {
	src := &fakeSource{
		tags: []Tag{{Name: "v1.2", Version: semver.Version{Major: 1, Minor: 2}, Clean: false}},
		subjects: map[string][]string{
			"v1.2": {"fix: pad missing components"},
		},
	}

	plan, err := (&Planner{Source: src}).Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2, Patch: 1}, plan.Next)
}

func TestPlanner_Plan_SourceErrors(t *testing.T) {
	t.Run("tag listing failure", func(t *testing.T) {
		src := &fakeSource{tagsErr: errors.New("refs unreadable")}
		_, err := (&Planner{Source: src}).Plan(context.Background())
		require.ErrorContains(t, err, "listing version tags")
	})

	t.Run("commit listing failure", func(t *testing.T) {
		src := &fakeSource{listErr: errors.New("log walk failed")}
		_, err := (&Planner{Source: src}).Plan(context.Background())
		require.ErrorContains(t, err, "listing commits")
	})
}
