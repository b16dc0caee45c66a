package domain

import "fmt"

// Vocabulary is the closed set of interest tags members may pick from.
// It is fixed per deployment.
type Vocabulary struct {
	labels []string
	byKey  map[string]string
}

func NewVocabulary(labels []string) *Vocabulary {
	v := &Vocabulary{byKey: make(map[string]string, len(labels))}
	for _, l := range labels {
		k := NormalizeTag(l)
		if k == "" {
			continue
		}
		if _, dup := v.byKey[k]; dup {
			continue
		}
		v.byKey[k] = l
		v.labels = append(v.labels, l)
	}
	return v
}

// Labels returns the tags in configured order.
func (v *Vocabulary) Labels() []string {
	return append([]string(nil), v.labels...)
}

func (v *Vocabulary) Contains(tag string) bool {
	_, ok := v.byKey[NormalizeTag(tag)]
	return ok
}

// Label returns the display label for a tag, or the tag itself if unknown.
func (v *Vocabulary) Label(tag string) string {
	if l, ok := v.byKey[NormalizeTag(tag)]; ok {
		return l
	}
	return tag
}

// LabelsOf renders a set with display labels, in vocabulary order.
func (v *Vocabulary) LabelsOf(s InterestSet) []string {
	out := make([]string, 0, len(s))
	for _, l := range v.labels {
		if s.Contains(l) {
			out = append(out, l)
		}
	}
	// tags dropped from the vocabulary after they were stored
	for _, k := range s {
		if !v.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}

// Check reports the first tag outside the vocabulary as a ValidationError.
func (v *Vocabulary) Check(s InterestSet) error {
	for _, k := range s {
		if !v.Contains(k) {
			return &ValidationError{Field: "interests", Reason: fmt.Sprintf("unknown interest %q", k)}
		}
	}
	return nil
}
