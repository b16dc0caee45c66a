package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oggyb/campus-match/internal/domain"
	"github.com/oggyb/campus-match/internal/notify"
	"github.com/oggyb/campus-match/internal/ranker"
	"github.com/oggyb/campus-match/internal/repository"
)

// PendingStore keeps the short-lived "currently presented" record per viewer.
// ClaimPending must be atomic: at most one caller claims a presentation.
type PendingStore interface {
	SetPending(ctx context.Context, viewerID, candidateID uint64, ttl time.Duration) error
	ClaimPending(ctx context.Context, viewerID, candidateID uint64) (bool, error)
}

// Outcome is the state a (viewer, candidate) pair ends in after an action.
type Outcome string

const (
	OutcomeSkipped         Outcome = "skipped"
	OutcomeReported        Outcome = "reported"
	OutcomeApprovedNoMatch Outcome = "approved_no_match"
	OutcomeApprovedMatched Outcome = "approved_matched"
)

// ActionResult describes what an action did.
type ActionResult struct {
	Outcome Outcome
	Target  domain.Member
	// Match is set only for OutcomeApprovedMatched.
	Match *domain.MatchFormed
	// Advanced is true when the engine moved on to a new selection.
	// Next is nil then if no candidates are left.
	Advanced bool
	Next     *domain.CandidateView
}

// MatchSummary is one entry of a member's match list.
type MatchSummary struct {
	Partner     domain.Member
	ContactHint string
	FormedAt    time.Time
}

// Deps wires the engine. Pending, Notifier and Reports may be nil; a nil
// Pending keeps presentations in process memory.
type Deps struct {
	Members     *repository.MemberRepository
	Exposures   *repository.ExposureRepository
	Approvals   *repository.ApprovalRepository
	Pending     PendingStore
	Notifier    notify.Notifier
	Reports     notify.ReportSink
	Vocabulary  *domain.Vocabulary
	Logger      *slog.Logger
	PendingTTL  time.Duration
	ContactHint string
}

// Engine drives candidate presentation and approval bookkeeping.
// It holds no per-request state; the database is the only shared state.
type Engine struct {
	members   *repository.MemberRepository
	exposures *repository.ExposureRepository
	approvals *repository.ApprovalRepository
	pending   PendingStore
	notifier  notify.Notifier
	reports   notify.ReportSink
	vocab     *domain.Vocabulary
	log       *slog.Logger

	pendingTTL  time.Duration
	contactHint string
	now         func() time.Time
}

func NewEngine(d Deps) *Engine {
	e := &Engine{
		members:     d.Members,
		exposures:   d.Exposures,
		approvals:   d.Approvals,
		pending:     d.Pending,
		notifier:    d.Notifier,
		reports:     d.Reports,
		vocab:       d.Vocabulary,
		log:         d.Logger,
		pendingTTL:  d.PendingTTL,
		contactHint: d.ContactHint,
		now:         func() time.Time { return time.Now().UTC() },
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.vocab == nil {
		e.vocab = domain.NewVocabulary(nil)
	}
	if e.reports == nil {
		e.reports = notify.LogReports{Logger: e.log}
	}
	if e.pending == nil {
		e.pending = newMemoryPending(e.now)
	}
	if e.pendingTTL <= 0 {
		e.pendingTTL = 10 * time.Minute
	}
	if e.contactHint == "" {
		e.contactHint = "tg://user?id=%s"
	}
	return e
}

func (e *Engine) Vocabulary() *domain.Vocabulary { return e.vocab }

// RegisterOrUpdate validates and stores a profile write. The first write
// that gives a member a name must carry a complete profile.
func (e *Engine) RegisterOrUpdate(ctx context.Context, externalID string, update domain.MemberUpdate) (*domain.Member, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, &domain.ValidationError{Field: "external_id", Reason: "required"}
	}

	existing, err := e.members.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := update.Validate(e.vocab, !existing.Registered()); err != nil {
		return nil, err
	}

	m, err := e.members.Upsert(ctx, externalID, update)
	if err != nil {
		return nil, err
	}
	e.log.Debug("profile stored", "external_id", externalID, "member_id", m.ID, "created", existing == nil)
	return m, nil
}

// GetProfile returns ErrMemberNotFound for unknown ids.
func (e *Engine) GetProfile(ctx context.Context, externalID string) (*domain.Member, error) {
	m, err := e.members.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMemberNotFound
	}
	return m, nil
}

// RequestNextCandidate presents the best unseen candidate to the viewer.
// A nil view with a nil error means no candidates are left.
func (e *Engine) RequestNextCandidate(ctx context.Context, externalID string) (*domain.CandidateView, error) {
	viewer, err := e.members.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanMatch() {
		return nil, domain.ErrNotRegistered
	}
	return e.presentNext(ctx, viewer)
}

// presentNext selects a candidate and durably marks it shown before
// returning it. A candidate is returned only if this call inserted the
// exposure row; losing that race to a concurrent request re-selects.
func (e *Engine) presentNext(ctx context.Context, viewer *domain.Member) (*domain.CandidateView, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		others, err := e.members.ListOthers(ctx, viewer.ExternalID)
		if err != nil {
			return nil, err
		}
		shown, err := e.exposures.ShownSet(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}

		pick, ok := ranker.SelectNext(viewer.Interests, ranker.BuildPool(others, shown))
		if !ok {
			e.log.Debug("no more candidates", "viewer", viewer.ExternalID)
			return nil, nil
		}

		inserted, err := e.exposures.MarkShown(ctx, viewer.ID, pick.Member.ID)
		if err != nil {
			return nil, err
		}
		if !inserted {
			e.log.Debug("candidate taken by concurrent request", "viewer", viewer.ExternalID, "candidate", pick.Member.ExternalID)
			continue
		}

		if err := e.pending.SetPending(ctx, viewer.ID, pick.Member.ID, e.pendingTTL); err != nil {
			// the exposure is durable; the viewer just cannot act on this one
			e.log.Warn("failed to store pending presentation", "viewer", viewer.ExternalID, "err", err)
		}

		e.log.Debug("candidate presented", "viewer", viewer.ExternalID, "candidate", pick.Member.ExternalID, "score", pick.Score)
		return &pick, nil
	}
}

// SubmitAction applies skip, approve or report to a presented candidate.
//
// Behavior:
//   - candidateExternalID is required and must name the viewer's open
//     presentation. Acting claims it, so a repeated tap, an older candidate
//     or an expired presentation fails instead of landing elsewhere.
//   - Skip and approve advance to the next candidate; report does not.
//   - An approval that completes a reciprocal pair emits MatchFormed to both
//     members. Delivery failures are logged and never retried.
func (e *Engine) SubmitAction(
	ctx context.Context,
	externalID string,
	action domain.Action,
	candidateExternalID string,
) (*ActionResult, error) {
	viewer, err := e.members.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanMatch() {
		return nil, domain.ErrNotRegistered
	}

	target, err := e.resolveTarget(ctx, viewer, strings.TrimSpace(candidateExternalID))
	if err != nil {
		return nil, err
	}

	res := &ActionResult{Target: *target}

	switch action {
	case domain.ActionSkip:
		res.Outcome = OutcomeSkipped

	case domain.ActionReport:
		res.Outcome = OutcomeReported
		if err := e.reports.Report(ctx, domain.Report{Reporter: *viewer, Target: *target, At: e.now()}); err != nil {
			e.log.Error("report sink failed", "reporter", viewer.ExternalID, "target", target.ExternalID, "err", err)
		}
		return res, nil

	case domain.ActionApprove:
		outcome, err := e.approvals.RecordAndCheck(ctx, viewer.ID, target.ID)
		if err != nil {
			return nil, err
		}
		res.Outcome = OutcomeApprovedNoMatch
		if outcome.Matched() {
			evt := e.matchFormed(*viewer, *target)
			res.Outcome = OutcomeApprovedMatched
			res.Match = &evt
			e.log.Info("match formed", "member_a", viewer.ExternalID, "member_b", target.ExternalID)
			e.deliver(ctx, evt)
		}

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}

	next, err := e.presentNext(ctx, viewer)
	if err != nil {
		// the action itself is durable; report the advance failure
		return res, fmt.Errorf("advance after %s: %w", res.Outcome, err)
	}
	res.Advanced = true
	res.Next = next
	return res, nil
}

// resolveTarget claims the viewer's open presentation of the named candidate.
func (e *Engine) resolveTarget(ctx context.Context, viewer *domain.Member, candidateExternalID string) (*domain.Member, error) {
	if candidateExternalID == "" {
		return nil, &domain.ValidationError{Field: "candidate_id", Reason: "required"}
	}

	target, err := e.members.GetByExternalID(ctx, candidateExternalID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrMemberNotFound
	}

	claimed, err := e.pending.ClaimPending(ctx, viewer.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if claimed {
		return target, nil
	}

	shown, err := e.exposures.HasBeenShown(ctx, viewer.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if !shown {
		return nil, domain.ErrCandidateNotShown
	}
	return nil, domain.ErrNoPendingCandidate
}

func (e *Engine) matchFormed(a, b domain.Member) domain.MatchFormed {
	return domain.MatchFormed{
		MemberA:      a,
		MemberB:      b,
		ContactHintA: e.ContactHint(a.ExternalID),
		ContactHintB: e.ContactHint(b.ExternalID),
		FormedAt:     e.now(),
	}
}

// deliver notifies both parties. The match is already durable, so a failed
// notification is a lost message, not something to re-derive later.
func (e *Engine) deliver(ctx context.Context, evt domain.MatchFormed) {
	if e.notifier == nil {
		return
	}
	for _, recipient := range []domain.Member{evt.MemberA, evt.MemberB} {
		if err := e.notifier.NotifyMatch(ctx, recipient, evt); err != nil {
			partner, _ := evt.Partner(recipient.ID)
			e.log.Error("match notification lost",
				"recipient", recipient.ExternalID,
				"partner", partner.ExternalID,
				"err", err,
			)
		}
	}
}

// ContactHint renders the out-of-band contact hint for a member.
func (e *Engine) ContactHint(externalID string) string {
	if strings.Contains(e.contactHint, "%s") {
		return fmt.Sprintf(e.contactHint, externalID)
	}
	return e.contactHint + externalID
}

// ListMatches pages through the member's mutual approvals, newest first.
func (e *Engine) ListMatches(ctx context.Context, externalID string, pageToken *string, limit int) ([]MatchSummary, *string, error) {
	m, err := e.GetProfile(ctx, externalID)
	if err != nil {
		return nil, nil, err
	}

	rows, next, err := e.approvals.ListMatches(ctx, m.ID, pageToken, limit)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PartnerID)
	}
	partners, err := e.members.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	out := make([]MatchSummary, 0, len(rows))
	for _, r := range rows {
		p, ok := partners[r.PartnerID]
		if !ok {
			continue
		}
		out = append(out, MatchSummary{
			Partner:     p,
			ContactHint: e.ContactHint(p.ExternalID),
			FormedAt:    r.FormedAt(),
		})
	}
	return out, next, nil
}

// CountMatches counts the member's mutual approvals straight from the DB.
func (e *Engine) CountMatches(ctx context.Context, memberID uint64) (int64, error) {
	return e.approvals.CountMatches(ctx, memberID)
}
