package release

import "github.com/raveheart1/relver/internal/semver"

// Tag is one version marker as recorded in the repository.
type Tag struct {
	// Name is the full tag name including any prefix (e.g. "v1.2.3").
	Name string
	// Version is the parsed version, zero-filled for partial tags.
	Version semver.Version
	// Clean reports whether Name parsed as a full three-component triple.
	// Partial tags like "v1.2" are usable but not clean.
	Clean bool
}

// TagSet is the membership oracle over recorded versions plus the maximum
// version seen, which serves as the latest release.
type TagSet struct {
	members    map[semver.Version]struct{}
	latest     Tag
	haveLatest bool
}

// NewTagSet builds a TagSet from recorded tags. The latest release is the
// maximum by version order, not by tag date.
func NewTagSet(tags []Tag) *TagSet {
	s := &TagSet{members: make(map[semver.Version]struct{}, len(tags))}
	for _, t := range tags {
		s.members[t.Version] = struct{}{}
		if !s.haveLatest || s.latest.Version.Less(t.Version) {
			s.latest = t
			s.haveLatest = true
		}
	}
	return s
}

// Contains reports whether v is already recorded.
func (s *TagSet) Contains(v semver.Version) bool {
	_, ok := s.members[v]
	return ok
}

// Latest returns the highest recorded tag, or false when the set is empty.
func (s *TagSet) Latest() (Tag, bool) {
	return s.latest, s.haveLatest
}

// Len returns the number of distinct recorded versions.
func (s *TagSet) Len() int {
	return len(s.members)
}
