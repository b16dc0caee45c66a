package db

import (
	"time"
)

// Member table. Interests are stored comma-joined in normalized form.
type Member struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ExternalID string    `gorm:"uniqueIndex;size:64;not null"`
	Name       string    `gorm:"size:64;not null;default:''"`
	Age        int       `gorm:"not null;default:0"`
	Faculty    string    `gorm:"size:128;not null;default:''"`
	CourseYear string    `gorm:"size:8;not null;default:''"`
	PhotoRef   string    `gorm:"size:512;not null;default:''"`
	Interests  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Exposure records that Candidate was presented to Viewer.
//
// Unique (ViewerID, CandidateID): a candidate is shown at most once.
// ID is monotonic, so the highest ID per viewer is the last presentation.
type Exposure struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	ViewerID    uint64    `gorm:"not null;uniqueIndex:idx_exposure_viewer_candidate,priority:1"`
	CandidateID uint64    `gorm:"not null;uniqueIndex:idx_exposure_viewer_candidate,priority:2"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Approval is a directed "Approver likes Target" fact.
//
// Unique (ApproverID, TargetID); (A,B) and (B,A) are distinct rows.
// Index idx_approval_target_approver serves the reverse-pair lookup.
type Approval struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ApproverID uint64    `gorm:"not null;uniqueIndex:idx_approval_approver_target,priority:1"`
	TargetID   uint64    `gorm:"not null;uniqueIndex:idx_approval_approver_target,priority:2;index:idx_approval_target_approver,priority:1"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// AllModels lists every table for AutoMigrate.
func AllModels() []any {
	return []any{&Member{}, &Exposure{}, &Approval{}}
}
