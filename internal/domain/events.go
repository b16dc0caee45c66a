package domain

import "time"

// CandidateView is what a viewer sees for a presented candidate.
type CandidateView struct {
	Member Member
	// Score is the number of interests shared with the viewer.
	Score int
}

// MatchFormed is emitted once, when the second of two reciprocal approvals
// is recorded. ContactHintA lets B reach A and vice versa.
type MatchFormed struct {
	MemberA      Member
	MemberB      Member
	ContactHintA string
	ContactHintB string
	FormedAt     time.Time
}

// Partner returns the other side of the match and the hint to reach them.
func (m MatchFormed) Partner(of uint64) (Member, string) {
	if of == m.MemberA.ID {
		return m.MemberB, m.ContactHintB
	}
	return m.MemberA, m.ContactHintA
}

// Report is a moderation complaint. Nothing acts on it beyond the sink.
type Report struct {
	Reporter Member
	Target   Member
	At       time.Time
}
