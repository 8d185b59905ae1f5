// Package classify maps commit subjects to release impact levels and folds
// a batch of subjects into a single version increment. The matching rules
// mirror the semantic-release default conventions: ordered, case-sensitive
// substring tests with first-match-wins semantics. Matching is substring
// containment, not word boundaries, so "prefix" matches the "fix" rule;
// that looseness is kept intentionally for compatibility with histories
// already versioned under these rules.
package classify

import "strings"

// ReleaseImpact is the semantic-versioning consequence of a commit.
// Values are ordered: ImpactNone < ImpactPatch < ImpactMinor < ImpactMajor.
type ReleaseImpact int

const (
	ImpactNone ReleaseImpact = iota
	ImpactPatch
	ImpactMinor
	ImpactMajor
)

// String returns the lowercase name of the impact level.
func (i ReleaseImpact) String() string {
	switch i {
	case ImpactMajor:
		return "major"
	case ImpactMinor:
		return "minor"
	case ImpactPatch:
		return "patch"
	default:
		return "none"
	}
}

// Rule pairs the substrings that trigger it with the impact they signal.
// Rules are evaluated in order; the first rule with any matching substring
// decides the classification.
type Rule struct {
	Substrings []string
	Impact     ReleaseImpact
}

// rules is the classification priority table. Case variants listed are the
// only ones recognized; there is no case folding.
var rules = []Rule{
	{Substrings: []string{"breaking", "Breaking"}, Impact: ImpactMajor},
	{Substrings: []string{"revert", "Revert"}, Impact: ImpactPatch},
	{Substrings: []string{"feat", "FEAT"}, Impact: ImpactMinor},
	{Substrings: []string{
		"fix", "FIX", "bug", "BUGFIX", "perf", "Perf", "deps", "Deps",
		"penguin", "apple", "racehorse", "checkered_flag",
	}, Impact: ImpactPatch},
	{Substrings: []string{"FEATURE", "Update", "New"}, Impact: ImpactMinor},
	{Substrings: []string{"SECURITY"}, Impact: ImpactPatch},
}

// Rules returns a copy of the classification table in evaluation order.
// Exposed so callers (and tests) can audit the priority ordering.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// shorthandReplacer rewrites emoji shorthand into the plain words the rule
// table matches on, so classification is oblivious to the original encoding.
var shorthandReplacer = strings.NewReplacer(
	"\U0001F41B", "bug",            // 🐛
	"\U0001F427", "penguin",        // 🐧
	"\U0001F34E", "apple",          // 🍎
	"\U0001F40E", "racehorse",      // 🐎
	"\U0001F3C1", "checkered_flag", // 🏁
)

// Normalize replaces the recognized emoji shorthand tokens in message with
// their plain-word equivalents. All other content passes through unchanged.
func Normalize(message string) string {
	return shorthandReplacer.Replace(message)
}

// Classify maps a single commit subject to its release impact. It is total:
// any string, including empty, yields a result and never an error.
func Classify(message string) ReleaseImpact {
	normalized := Normalize(message)
	for _, rule := range rules {
		for _, sub := range rule.Substrings {
			if strings.Contains(normalized, sub) {
				return rule.Impact
			}
		}
	}
	return ImpactNone
}

// Aggregate folds a batch of commit subjects into one increment decision by
// taking the maximum classification over the impact order. The fold starts
// at ImpactPatch, not ImpactNone: a release always ships at least a patch
// even when no subject matches a known pattern, so the result is never
// ImpactNone. Order of the input does not affect the result; evaluation
// stops early once a major-impact subject is seen.
func Aggregate(messages []string) ReleaseImpact {
	result := ImpactPatch
	for _, m := range messages {
		switch Classify(m) {
		case ImpactMajor:
			return ImpactMajor
		case ImpactMinor:
			result = ImpactMinor
		}
	}
	return result
}
