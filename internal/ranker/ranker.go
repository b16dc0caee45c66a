// Package ranker picks the next candidate to present to a viewer.
package ranker

import "github.com/oggyb/campus-match/internal/domain"

// Candidate is one pool entry with its exposure flag for the viewer.
type Candidate struct {
	Member       domain.Member
	AlreadyShown bool
}

// SelectNext returns the unseen candidate sharing the most interests with
// the viewer. Equal scores keep pool order, so the first seen wins.
// ok is false when every candidate has been shown.
func SelectNext(viewer domain.InterestSet, pool []Candidate) (best domain.CandidateView, ok bool) {
	for _, c := range pool {
		if c.AlreadyShown {
			continue
		}
		score := viewer.Overlap(c.Member.Interests)
		if !ok || score > best.Score {
			best = domain.CandidateView{Member: c.Member, Score: score}
			ok = true
		}
	}
	return best, ok
}

// BuildPool flags members found in shown.
func BuildPool(members []domain.Member, shown map[uint64]struct{}) []Candidate {
	pool := make([]Candidate, 0, len(members))
	for _, m := range members {
		_, seen := shown[m.ID]
		pool = append(pool, Candidate{Member: m, AlreadyShown: seen})
	}
	return pool
}
