package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/campus-match/internal/db"
	"github.com/oggyb/campus-match/internal/domain"
)

// MemberRepository is the profile store. It never caches: every read
// reflects the latest committed row.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(database *gorm.DB) *MemberRepository {
	return &MemberRepository{db: database}
}

// Upsert creates the member for externalID or merges the supplied fields
// into the existing row.
//
// Behavior:
//   - Only non-nil fields of the update are written; omitted fields keep
//     their stored value.
//   - An empty update creates a blank (unregistered) row if none exists and
//     is otherwise a no-op.
//   - Insert and merge are one statement, so concurrent first writes for the
//     same external id converge on a single row.
//
// Callers validate the update; the store trusts it.
func (r *MemberRepository) Upsert(
	ctx context.Context,
	externalID string,
	update domain.MemberUpdate,
) (*domain.Member, error) {
	row := db.Member{ExternalID: externalID}
	var columns []string

	if update.Name != nil {
		row.Name = *update.Name
		columns = append(columns, "name")
	}
	if update.Age != nil {
		row.Age = *update.Age
		columns = append(columns, "age")
	}
	if update.Faculty != nil {
		row.Faculty = *update.Faculty
		columns = append(columns, "faculty")
	}
	if update.Course != nil {
		row.CourseYear = *update.Course
		columns = append(columns, "course_year")
	}
	if update.PhotoRef != nil {
		row.PhotoRef = *update.PhotoRef
		columns = append(columns, "photo_ref")
	}
	if update.Interests != nil {
		row.Interests = update.Interests.Encode()
		columns = append(columns, "interests")
	}

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "external_id"}}}
	if len(columns) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(append(columns, "updated_at"))
	}

	if err := r.db.WithContext(ctx).Clauses(conflict).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("upsert member %s: %w", externalID, err)
	}

	m, err := r.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("upsert member %s: %w", externalID, domain.ErrMemberNotFound)
	}
	return m, nil
}

// GetByExternalID returns nil, nil when no member exists.
func (r *MemberRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Member, error) {
	var row db.Member
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member %s: %w", externalID, err)
	}
	m := toDomain(row)
	return &m, nil
}

// GetByID returns nil, nil when no member exists.
func (r *MemberRepository) GetByID(ctx context.Context, id uint64) (*domain.Member, error) {
	var row db.Member
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	m := toDomain(row)
	return &m, nil
}

// GetByIDs loads members keyed by internal id. Missing ids are skipped.
func (r *MemberRepository) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Member, error) {
	out := make(map[uint64]domain.Member, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []db.Member
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = toDomain(row)
	}
	return out, nil
}

// ListOthers returns every registered member except excludingExternalID,
// in registration order.
func (r *MemberRepository) ListOthers(ctx context.Context, excludingExternalID string) ([]domain.Member, error) {
	var rows []db.Member
	err := r.db.WithContext(ctx).
		Where("external_id <> ? AND name <> ''", excludingExternalID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func toDomain(row db.Member) domain.Member {
	return domain.Member{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Age:        row.Age,
		Faculty:    row.Faculty,
		Course:     row.CourseYear,
		PhotoRef:   row.PhotoRef,
		Interests:  domain.DecodeInterestSet(row.Interests),
		CreatedAt:  row.CreatedAt,
	}
}
