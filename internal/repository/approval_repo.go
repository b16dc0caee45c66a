package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/campus-match/internal/db"
	"github.com/oggyb/campus-match/internal/utils/pagination"
)

// ApprovalRepository is the directed "A approves B" ledger.
type ApprovalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(database *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{db: database}
}

// ApprovalOutcome is the result of recording one approval.
type ApprovalOutcome struct {
	// Inserted is false when the directed pair already existed.
	Inserted bool
	// Mutual is true when the reverse pair exists.
	Mutual bool
}

// Matched reports whether this call completed a reciprocal pair. It is true
// for exactly one of the two approvals of a pair.
func (o ApprovalOutcome) Matched() bool {
	return o.Inserted && o.Mutual
}

// MatchRow is one mutual approval as seen from a member.
type MatchRow struct {
	ApprovalID     uint64
	PartnerID      uint64
	ApprovedAt     time.Time
	ApprovedBackAt time.Time
}

// FormedAt is when the second approval of the pair was recorded.
func (m MatchRow) FormedAt() time.Time {
	if m.ApprovedBackAt.After(m.ApprovedAt) {
		return m.ApprovedBackAt
	}
	return m.ApprovedAt
}

// RecordApproval idempotently inserts approver -> target.
// Returns true only when the row was created by this call.
func (r *ApprovalRepository) RecordApproval(ctx context.Context, approverID, targetID uint64) (bool, error) {
	return insertApproval(r.db.WithContext(ctx), approverID, targetID)
}

// IsMutual reports whether target already approved approver.
func (r *ApprovalRepository) IsMutual(ctx context.Context, approverID, targetID uint64) (bool, error) {
	return hasApproval(r.db.WithContext(ctx), targetID, approverID)
}

// RecordAndCheck records approver -> target and checks the reverse pair in
// one transaction.
//
// Behavior:
//   - Both member rows are locked in ascending id order first, so the two
//     approvals of a pair serialize and the second always observes the first.
//   - The insert is idempotent; repeating an approval reports Inserted=false
//     and therefore never re-fires a match.
func (r *ApprovalRepository) RecordAndCheck(ctx context.Context, approverID, targetID uint64) (ApprovalOutcome, error) {
	var out ApprovalOutcome

	lo, hi := approverID, targetID
	if lo > hi {
		lo, hi = hi, lo
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []db.Member
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id IN ?", []uint64{lo, hi}).
			Order("id ASC").
			Find(&locked).Error; err != nil {
			return fmt.Errorf("lock members %d,%d: %w", lo, hi, err)
		}

		inserted, err := insertApproval(tx, approverID, targetID)
		if err != nil {
			return err
		}
		mutual, err := hasApproval(tx.Clauses(clause.Locking{Strength: "SHARE"}), targetID, approverID)
		if err != nil {
			return err
		}

		out = ApprovalOutcome{Inserted: inserted, Mutual: mutual}
		return nil
	})
	if err != nil {
		return ApprovalOutcome{}, err
	}
	return out, nil
}

// ListMatches returns members that share a mutual approval with memberID.
//
// Behavior:
//   - Ordered by the member's own approval, newest first.
//   - Supports cursor-based pagination via paginationToken.
func (r *ApprovalRepository) ListMatches(
	ctx context.Context,
	memberID uint64,
	paginationToken *string,
	limit int,
) ([]MatchRow, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.mutualQuery(ctx, memberID).
		Select("a.id AS approval_id, a.target_id AS partner_id, a.created_at AS approved_at, b.created_at AS approved_back_at").
		Order("a.id DESC").
		Limit(limit + 1)

	if cursor.AfterID > 0 {
		query = query.Where("a.id < ?", cursor.AfterID)
	}

	var rows []MatchRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("list matches for %d: %w", memberID, err)
	}

	var nextToken *string
	if len(rows) > limit {
		token, _ := pagination.Encode(pagination.Cursor{AfterID: rows[limit-1].ApprovalID})
		nextToken = &token
		rows = rows[:limit]
	}
	return rows, nextToken, nil
}

// CountMatches returns how many mutual approvals memberID takes part in.
func (r *ApprovalRepository) CountMatches(ctx context.Context, memberID uint64) (int64, error) {
	var count int64
	if err := r.mutualQuery(ctx, memberID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count matches for %d: %w", memberID, err)
	}
	return count, nil
}

func (r *ApprovalRepository) mutualQuery(ctx context.Context, memberID uint64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("approvals a").
		Joins("JOIN approvals b ON b.approver_id = a.target_id AND b.target_id = a.approver_id").
		Where("a.approver_id = ?", memberID)
}

func insertApproval(tx *gorm.DB, approverID, targetID uint64) (bool, error) {
	approval := db.Approval{ApproverID: approverID, TargetID: targetID}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "approver_id"}, {Name: "target_id"}},
		DoNothing: true,
	}).Create(&approval)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if res.Error != nil {
		return false, fmt.Errorf("record approval %d->%d: %w", approverID, targetID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func hasApproval(tx *gorm.DB, approverID, targetID uint64) (bool, error) {
	var count int64
	err := tx.Model(&db.Approval{}).
		Where("approver_id = ? AND target_id = ?", approverID, targetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check approval %d->%d: %w", approverID, targetID, err)
	}
	return count > 0, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
