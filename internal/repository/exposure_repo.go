package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/campus-match/internal/db"
)

// ExposureRepository is the "never show twice" ledger.
type ExposureRepository struct {
	db *gorm.DB
}

func NewExposureRepository(database *gorm.DB) *ExposureRepository {
	return &ExposureRepository{db: database}
}

// MarkShown records that candidateID was presented to viewerID.
//
// Behavior:
//   - Idempotent: a repeated pair is a no-op, never an error.
//   - Returns true only when this call created the row, which lets callers
//     that race on the same pair agree on a single winner.
func (r *ExposureRepository) MarkShown(ctx context.Context, viewerID, candidateID uint64) (bool, error) {
	exposure := db.Exposure{ViewerID: viewerID, CandidateID: candidateID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "candidate_id"}},
			DoNothing: true,
		}).
		Create(&exposure)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if res.Error != nil {
		return false, fmt.Errorf("mark shown %d->%d: %w", viewerID, candidateID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ExposureRepository) HasBeenShown(ctx context.Context, viewerID, candidateID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Exposure{}).
		Where("viewer_id = ? AND candidate_id = ?", viewerID, candidateID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("has been shown %d->%d: %w", viewerID, candidateID, err)
	}
	return count > 0, nil
}

// LastShown returns the candidate from the viewer's most recent exposure,
// by insertion order. ok is false when nothing was shown yet.
func (r *ExposureRepository) LastShown(ctx context.Context, viewerID uint64) (candidateID uint64, ok bool, err error) {
	var exposure db.Exposure
	err = r.db.WithContext(ctx).
		Where("viewer_id = ?", viewerID).
		Order("id DESC").
		Take(&exposure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("last shown for %d: %w", viewerID, err)
	}
	return exposure.CandidateID, true, nil
}

// ShownSet returns every candidate already presented to the viewer.
func (r *ExposureRepository) ShownSet(ctx context.Context, viewerID uint64) (map[uint64]struct{}, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.Exposure{}).
		Where("viewer_id = ?", viewerID).
		Pluck("candidate_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("shown set for %d: %w", viewerID, err)
	}
	out := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}
