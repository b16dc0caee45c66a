package domain

import (
	"sort"
	"strings"
)

// InterestSet is a normalized, de-duplicated set of interest tags.
// Tags are trimmed and lower-cased on construction, so comparisons never
// need to normalize again.
type InterestSet []string

const interestSeparator = ","

// NormalizeTag maps a tag to its canonical comparison key.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NewInterestSet builds a set from raw tags. Empty tags are dropped.
func NewInterestSet(tags ...string) InterestSet {
	seen := make(map[string]struct{}, len(tags))
	out := make(InterestSet, 0, len(tags))
	for _, t := range tags {
		k := NormalizeTag(t)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DecodeInterestSet parses the comma-joined storage form.
func DecodeInterestSet(s string) InterestSet {
	if strings.TrimSpace(s) == "" {
		return InterestSet{}
	}
	return NewInterestSet(strings.Split(s, interestSeparator)...)
}

// Encode renders the set in its comma-joined storage form.
func (s InterestSet) Encode() string {
	return strings.Join(s, interestSeparator)
}

func (s InterestSet) Len() int { return len(s) }

func (s InterestSet) Empty() bool { return len(s) == 0 }

func (s InterestSet) Contains(tag string) bool {
	k := NormalizeTag(tag)
	i := sort.SearchStrings(s, k)
	return i < len(s) && s[i] == k
}

// Overlap counts tags present in both sets.
func (s InterestSet) Overlap(other InterestSet) int {
	// both sides are sorted
	n, i, j := 0, 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			n++
			i++
			j++
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return n
}
