package matching

import (
	"context"
	"strings"

	pb "github.com/oggyb/campus-match/internal/api/match"
	"github.com/oggyb/campus-match/internal/app"
	"github.com/oggyb/campus-match/internal/domain"
	svcErr "github.com/oggyb/campus-match/internal/errors"
	"github.com/oggyb/campus-match/internal/notify"
	"github.com/oggyb/campus-match/internal/repository"
)

// matchesPageSize is the fixed page size of ListMatches.
const matchesPageSize = 10

// Service implements the MatchService gRPC API on top of the Engine.
// Each method corresponds to an RPC in internal/api/match.
type Service struct {
	appCtx *app.AppContext
	engine *Engine

	pb.UnimplementedMatchServiceServer
}

// NewMatchService creates a new Match service with dependencies from AppContext.
// Dependencies include:
//   - DB connection (member, exposure and approval repositories)
//   - RedisCache for pending presentations, match counts and notifications
func NewMatchService(appCtx *app.AppContext) *Service {
	deps := Deps{
		Members:     repository.NewMemberRepository(appCtx.DB),
		Exposures:   repository.NewExposureRepository(appCtx.DB),
		Approvals:   repository.NewApprovalRepository(appCtx.DB),
		Reports:     notify.LogReports{Logger: appCtx.Logger},
		Vocabulary:  appCtx.Vocabulary,
		Logger:      appCtx.Logger,
		PendingTTL:  appCtx.Match.PendingTTL,
		ContactHint: appCtx.Match.ContactHint,
	}
	if appCtx.RedisCache != nil {
		deps.Pending = appCtx.RedisCache
		deps.Notifier = notify.NewRedisPublisher(appCtx.RedisCache.Client, appCtx.Vocabulary)
	}
	return &Service{appCtx: appCtx, engine: NewEngine(deps)}
}

// Engine exposes the underlying engine, mainly for tests and tooling.
func (s *Service) Engine() *Engine { return s.engine }

// RegisterOrUpdate creates or edits the caller's profile.
//
// Behavior:
//   - First registration needs name, age, faculty and course.
//   - Later calls are partial: omitted fields stay as they are.
//   - Invalid fields fail with InvalidArgument and a BadRequest detail.
func (s *Service) RegisterOrUpdate(ctx context.Context, req *pb.RegisterOrUpdateRequest) (*pb.RegisterOrUpdateResponse, error) {
	s.appCtx.Logger.Debug("RegisterOrUpdate called", "external_id", req.ExternalID)

	update := domain.MemberUpdate{
		Name:     req.Name,
		Faculty:  req.Faculty,
		Course:   req.Course,
		PhotoRef: req.PhotoRef,
	}
	if req.Age != nil {
		age := int(*req.Age)
		update.Age = &age
	}
	if req.Interests != nil {
		set := domain.NewInterestSet(*req.Interests...)
		update.Interests = &set
	}

	m, err := s.engine.RegisterOrUpdate(ctx, req.ExternalID, update)
	if err != nil {
		if !domain.IsValidation(err) {
			s.appCtx.Logger.Error("RegisterOrUpdate failed", "external_id", req.ExternalID, "err", err)
		}
		return nil, svcErr.Map(err)
	}
	return &pb.RegisterOrUpdateResponse{Profile: s.profile(m)}, nil
}

func (s *Service) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {
	s.appCtx.Logger.Debug("GetProfile called", "external_id", req.ExternalID)

	m, err := s.engine.GetProfile(ctx, req.ExternalID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.GetProfileResponse{Profile: s.profile(m)}, nil
}

// RequestNextCandidate presents the next unseen candidate, or reports that
// none are left. Members without interests get FailedPrecondition.
func (s *Service) RequestNextCandidate(ctx context.Context, req *pb.RequestNextCandidateRequest) (*pb.RequestNextCandidateResponse, error) {
	s.appCtx.Logger.Debug("RequestNextCandidate called", "external_id", req.ExternalID)

	view, err := s.engine.RequestNextCandidate(ctx, req.ExternalID)
	if err != nil {
		s.appCtx.Logger.Debug("RequestNextCandidate failed", "external_id", req.ExternalID, "err", err)
		return nil, svcErr.Map(err)
	}
	if view == nil {
		return &pb.RequestNextCandidateResponse{NoMoreCandidates: true}, nil
	}
	return &pb.RequestNextCandidateResponse{Candidate: s.candidate(view)}, nil
}

// SubmitAction applies skip/approve/report to the presented candidate.
//
// Behavior:
//   - candidate_id must echo the open presentation; missing ids fail with
//     InvalidArgument, stale ones with FailedPrecondition.
//   - Skip and approve return the next candidate (or no_more_candidates).
//   - Report only acknowledges; the caller requests the next candidate.
//   - A completed mutual approval returns the match with a contact hint and
//     drops both members' cached match counts.
func (s *Service) SubmitAction(ctx context.Context, req *pb.SubmitActionRequest) (*pb.SubmitActionResponse, error) {
	s.appCtx.Logger.Debug(
		"SubmitAction called",
		"external_id", req.ExternalID,
		"action", req.Action,
		"candidate_id", req.CandidateID,
	)

	action, err := domain.ParseAction(req.Action)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	res, err := s.engine.SubmitAction(ctx, req.ExternalID, action, req.CandidateID)
	if res == nil && err != nil {
		return nil, svcErr.Map(err)
	}
	if res.Match != nil {
		s.invalidateCounts(ctx, res.Match.MemberA.ID, res.Match.MemberB.ID)
	}
	if err != nil {
		// action is durable, only the advance failed
		s.appCtx.Logger.Error("SubmitAction advance failed", "external_id", req.ExternalID, "err", err)
	}

	resp := &pb.SubmitActionResponse{
		Outcome:  string(res.Outcome),
		Advanced: res.Advanced,
	}
	if res.Match != nil {
		partner, hint := res.Match.Partner(res.Match.MemberA.ID)
		resp.Match = &pb.Match{
			Partner:      s.profile(&partner),
			ContactHint:  hint,
			FormedAtUnix: res.Match.FormedAt.Unix(),
		}
	}
	if res.Advanced {
		if res.Next != nil {
			resp.Next = s.candidate(res.Next)
		} else {
			resp.NoMoreCandidates = true
		}
	}
	return resp, nil
}

func (s *Service) ListInterests(ctx context.Context, _ *pb.ListInterestsRequest) (*pb.ListInterestsResponse, error) {
	return &pb.ListInterestsResponse{Interests: s.engine.Vocabulary().Labels()}, nil
}

// ListMatches returns the caller's matches, newest first.
// Supports cursor-based pagination with pagination_token.
func (s *Service) ListMatches(ctx context.Context, req *pb.ListMatchesRequest) (*pb.ListMatchesResponse, error) {
	s.appCtx.Logger.Debug("ListMatches called", "external_id", req.ExternalID, "token", req.PaginationToken)

	matches, next, err := s.engine.ListMatches(ctx, req.ExternalID, req.PaginationToken, matchesPageSize)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListMatchesResponse{Matches: make([]*pb.Match, 0, len(matches)), NextPaginationToken: next}
	for _, m := range matches {
		partner := m.Partner
		resp.Matches = append(resp.Matches, &pb.Match{
			Partner:      s.profile(&partner),
			ContactHint:  m.ContactHint,
			FormedAtUnix: m.FormedAt.Unix(),
		})
	}
	return resp, nil
}

// CountMatches returns how many matches the caller has.
// Cache-first strategy:
//  1. Attempts to read from Redis (matches:count:memberID).
//  2. On miss, counts in the DB.
//  3. On DB fetch, updates Redis with the configured TTL.
func (s *Service) CountMatches(ctx context.Context, req *pb.CountMatchesRequest) (*pb.CountMatchesResponse, error) {
	s.appCtx.Logger.Debug("CountMatches called", "external_id", req.ExternalID)

	m, err := s.engine.GetProfile(ctx, req.ExternalID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	rc := s.appCtx.RedisCache
	ttl := s.appCtx.Match.CountTTL
	if rc != nil {
		if n, ok, _ := rc.GetMatchCount(ctx, m.ID, ttl); ok {
			return &pb.CountMatchesResponse{Count: uint64(n)}, nil
		}
	}

	count, err := s.engine.CountMatches(ctx, m.ID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if rc != nil {
		_ = rc.SetMatchCount(ctx, m.ID, count, ttl)
	}
	return &pb.CountMatchesResponse{Count: uint64(count)}, nil
}

func (s *Service) invalidateCounts(ctx context.Context, ids ...uint64) {
	if s.appCtx.RedisCache == nil {
		return
	}
	if err := s.appCtx.RedisCache.InvalidateMatchCount(ctx, ids...); err != nil {
		s.appCtx.Logger.Warn("failed to invalidate match counts", "err", err)
	}
}

func (s *Service) profile(m *domain.Member) *pb.Profile {
	return &pb.Profile{
		ExternalID: m.ExternalID,
		Name:       m.Name,
		Age:        int32(m.Age),
		Faculty:    m.Faculty,
		Course:     m.Course,
		PhotoRef:   m.PhotoRef,
		Interests:  s.engine.Vocabulary().LabelsOf(m.Interests),
		Registered: m.Registered(),
	}
}

func (s *Service) candidate(v *domain.CandidateView) *pb.Candidate {
	return &pb.Candidate{
		CandidateID:     v.Member.ExternalID,
		Name:            strings.TrimSpace(v.Member.Name),
		Age:             int32(v.Member.Age),
		Faculty:         v.Member.Faculty,
		Course:          v.Member.Course,
		PhotoRef:        v.Member.PhotoRef,
		Interests:       s.engine.Vocabulary().LabelsOf(v.Member.Interests),
		SharedInterests: int32(v.Score),
	}
}
