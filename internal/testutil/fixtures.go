package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oggyb/campus-match/internal/db"
	"github.com/oggyb/campus-match/internal/domain"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *gorm.DB
	t  *testing.T
	n  int
}

func NewFixtures(t *testing.T, database *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: database, t: t}
}

// CreateMember inserts a registered member with the given external id and
// interests. Returns the stored row.
func (f *Fixtures) CreateMember(externalID string, interests ...string) db.Member {
	f.t.Helper()
	f.n++
	m := db.Member{
		ExternalID: externalID,
		Name:       fmt.Sprintf("Member %s", externalID),
		Age:        18 + f.n%5,
		Faculty:    "Finance",
		CourseYear: "2",
		PhotoRef:   "photo-" + externalID,
		Interests:  domain.NewInterestSet(interests...).Encode(),
	}
	require.NoError(f.t, f.db.Create(&m).Error)
	return m
}

// CreateUnregistered inserts a member row without a name.
func (f *Fixtures) CreateUnregistered(externalID string) db.Member {
	f.t.Helper()
	m := db.Member{ExternalID: externalID}
	require.NoError(f.t, f.db.Create(&m).Error)
	return m
}
