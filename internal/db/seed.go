package db

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/campus-match/internal/domain"
)

var (
	seedNames     = []string{"Anna", "Boris", "Dasha", "Egor", "Irina", "Kirill", "Lena", "Maks", "Nina", "Oleg", "Polina", "Roman"}
	seedFaculties = []string{"Finance", "Economics", "IT and Data Analysis", "Law", "Management"}
)

// SeedTestData resets the tables and fills them with demo members.
//
// Behavior:
//  1. Clears approvals, exposures and members.
//  2. Creates len(seedNames) members with 2-5 random interests from labels.
//  3. Adds a few one-way approvals so the first approve in a demo can match.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB, labels []string, log *slog.Logger) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := reset(db); err != nil {
		return err
	}
	log.Info("cleared existing data")

	ids := make([]uint64, 0, len(seedNames))
	for i, name := range seedNames {
		picked := make([]string, 0, 5)
		for _, idx := range r.Perm(len(labels))[:2+r.Intn(4)] {
			picked = append(picked, labels[idx])
		}

		m := Member{
			ExternalID: strconv.Itoa(100000 + i),
			Name:       name,
			Age:        17 + r.Intn(8),
			Faculty:    seedFaculties[r.Intn(len(seedFaculties))],
			CourseYear: strconv.Itoa(1 + r.Intn(4)),
			PhotoRef:   fmt.Sprintf("demo-photo-%d", i),
			Interests:  domain.NewInterestSet(picked...).Encode(),
		}
		if err := db.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to seed member: %w", err)
		}
		ids = append(ids, m.ID)
	}
	log.Info("seeded members", "count", len(ids))

	approvals := 0
	for _, approver := range ids {
		target := ids[r.Intn(len(ids))]
		if target == approver {
			continue
		}
		a := Approval{ApproverID: approver, TargetID: target}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&a).Error; err != nil {
			return fmt.Errorf("failed to seed approval: %w", err)
		}
		approvals++
	}
	log.Info("seeded approvals", "count", approvals)

	return nil
}

func reset(db *gorm.DB) error {
	for _, table := range []string{"approvals", "exposures", "members"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case DriverMySQL:
		for _, table := range []string{"approvals", "exposures", "members"} {
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case DriverSQLite:
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('approvals', 'exposures', 'members')")
	}
	return nil
}
