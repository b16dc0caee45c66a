// Package match holds the MatchService RPC contract: messages, the service
// descriptor, a client and the JSON codec the service is spoken in.
package match

// Profile is a member's own profile.
type Profile struct {
	ExternalID string   `json:"external_id"`
	Name       string   `json:"name"`
	Age        int32    `json:"age"`
	Faculty    string   `json:"faculty"`
	Course     string   `json:"course"`
	PhotoRef   string   `json:"photo_ref,omitempty"`
	Interests  []string `json:"interests"`
	Registered bool     `json:"registered"`
}

// Candidate is a presented profile plus the shared-interest score.
type Candidate struct {
	CandidateID     string   `json:"candidate_id"`
	Name            string   `json:"name"`
	Age             int32    `json:"age"`
	Faculty         string   `json:"faculty"`
	Course          string   `json:"course"`
	PhotoRef        string   `json:"photo_ref,omitempty"`
	Interests       []string `json:"interests"`
	SharedInterests int32    `json:"shared_interests"`
}

// Match is a formed mutual match as seen by one of its members.
type Match struct {
	Partner      *Profile `json:"partner"`
	ContactHint  string   `json:"contact_hint"`
	FormedAtUnix int64    `json:"formed_at_unix"`
}

// RegisterOrUpdateRequest is a partial profile write. Absent (null) fields
// are left untouched.
type RegisterOrUpdateRequest struct {
	ExternalID string    `json:"external_id"`
	Name       *string   `json:"name,omitempty"`
	Age        *int32    `json:"age,omitempty"`
	Faculty    *string   `json:"faculty,omitempty"`
	Course     *string   `json:"course,omitempty"`
	PhotoRef   *string   `json:"photo_ref,omitempty"`
	Interests  *[]string `json:"interests,omitempty"`
}

type RegisterOrUpdateResponse struct {
	Profile *Profile `json:"profile"`
}

type GetProfileRequest struct {
	ExternalID string `json:"external_id"`
}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type RequestNextCandidateRequest struct {
	ExternalID string `json:"external_id"`
}

type RequestNextCandidateResponse struct {
	Candidate        *Candidate `json:"candidate,omitempty"`
	NoMoreCandidates bool       `json:"no_more_candidates"`
}

// SubmitActionRequest acts on a presented candidate. Action is one of
// "skip", "approve", "report". CandidateID is required and echoes the
// candidate_id of the presentation being acted on.
type SubmitActionRequest struct {
	ExternalID  string `json:"external_id"`
	Action      string `json:"action"`
	CandidateID string `json:"candidate_id"`
}

type SubmitActionResponse struct {
	Outcome          string     `json:"outcome"`
	Match            *Match     `json:"match,omitempty"`
	Advanced         bool       `json:"advanced"`
	Next             *Candidate `json:"next,omitempty"`
	NoMoreCandidates bool       `json:"no_more_candidates"`
}

type ListInterestsRequest struct{}

type ListInterestsResponse struct {
	Interests []string `json:"interests"`
}

type ListMatchesRequest struct {
	ExternalID      string  `json:"external_id"`
	PaginationToken *string `json:"pagination_token,omitempty"`
}

type ListMatchesResponse struct {
	Matches             []*Match `json:"matches"`
	NextPaginationToken *string  `json:"next_pagination_token,omitempty"`
}

type CountMatchesRequest struct {
	ExternalID string `json:"external_id"`
}

type CountMatchesResponse struct {
	Count uint64 `json:"count"`
}
