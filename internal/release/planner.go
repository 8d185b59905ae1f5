package release

import (
	"context"
	"fmt"

	"github.com/raveheart1/relver/internal/classify"
	"github.com/raveheart1/relver/internal/semver"
)

// TagLister provides the version markers recorded in the repository.
type TagLister interface {
	VersionTags(ctx context.Context) ([]Tag, error)
}

// CommitLister provides commit subjects after the given tag, oldest first.
// An empty tag name means the entire history.
type CommitLister interface {
	CommitSubjectsSince(ctx context.Context, tag string) ([]string, error)
}

// Source is the external version-control collaborator the planner consumes.
type Source interface {
	TagLister
	CommitLister
}

// ClassifiedCommit pairs a commit subject with its release impact.
type ClassifiedCommit struct {
	Subject string
	Impact  classify.ReleaseImpact
}

// Plan is the outcome of one resolution pass: where the repository is, what
// the commits since then imply, and the version the next release gets.
type Plan struct {
	// Previous is the latest recorded version, zero when no marker exists.
	Previous semver.Version
	// PreviousTag is the tag name Previous came from, "" when none.
	PreviousTag string
	// Next is the computed next version, guaranteed novel in the tag set.
	Next semver.Version
	// Increment is the aggregate decision over the commits.
	Increment classify.ReleaseImpact
	// Commits are the classified subjects since PreviousTag, oldest first.
	Commits []ClassifiedCommit
}

// FirstRelease reports whether the plan starts a repository's version history.
func (p *Plan) FirstRelease() bool {
	return p.PreviousTag == ""
}

// Planner composes the resolution pipeline over a Source.
type Planner struct {
	Source Source
	// Strict rejects a latest tag that is not a full version triple instead
	// of zero-filling it.
	Strict bool
}

// Plan runs the pipeline: latest tag and tag set from the source, commits
// since, classification and aggregation, then collision-avoided version
// computation.
func (p *Planner) Plan(ctx context.Context) (*Plan, error) {
	tags, err := p.Source.VersionTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing version tags: %w", err)
	}

	set := NewTagSet(tags)

	plan := &Plan{}
	if latest, ok := set.Latest(); ok {
		if p.Strict && !latest.Clean {
			return nil, &semver.MalformedVersionError{
				Input:  latest.Name,
				Reason: "latest tag is not a full version triple",
			}
		}
		plan.Previous = latest.Version
		plan.PreviousTag = latest.Name
	}

	subjects, err := p.Source.CommitSubjectsSince(ctx, plan.PreviousTag)
	if err != nil {
		return nil, fmt.Errorf("listing commits since %q: %w", plan.PreviousTag, err)
	}

	plan.Commits = make([]ClassifiedCommit, len(subjects))
	for i, s := range subjects {
		plan.Commits[i] = ClassifiedCommit{Subject: s, Impact: classify.Classify(s)}
	}
	plan.Increment = classify.Aggregate(subjects)

	next, err := NextVersion(plan.Previous, plan.Increment, set.Contains)
	if err != nil {
		return nil, err
	}
	plan.Next = next

	return plan, nil
}
