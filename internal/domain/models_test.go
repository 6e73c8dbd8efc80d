package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (Answer{}).TableName() != "compatibility_answers" {
		t.Fatalf("Answer.TableName() = %q; want %q", (Answer{}).TableName(), "compatibility_answers")
	}
}

func TestMigrations_UniquePairAndSoftDelete(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Answer{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	now := time.Now().UTC()
	a := &Answer{ID: "a1", UserID: "u1", QuestionID: "life-1", Text: "t", AnsweredAt: now}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Duplicate (user, question) pair must violate the unique index.
	dup := &Answer{ID: "a2", UserID: "u1", QuestionID: "life-1", Text: "again", AnsweredAt: now}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique index violation for duplicate pair")
	}

	// Same question for a different user is allowed.
	other := &Answer{ID: "a3", UserID: "u2", QuestionID: "life-1", Text: "mine", AnsweredAt: now}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("insert other user: %v", err)
	}

	// Soft delete hides the row from default queries but keeps it on disk.
	if err := db.Delete(&Answer{}, "id = ?", "a1").Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	var visible int64
	if err := db.Model(&Answer{}).Where("id = ?", "a1").Count(&visible).Error; err != nil {
		t.Fatalf("count visible: %v", err)
	}
	if visible != 0 {
		t.Fatalf("soft-deleted row still visible")
	}
	var raw int64
	if err := db.Unscoped().Model(&Answer{}).Where("id = ?", "a1").Count(&raw).Error; err != nil {
		t.Fatalf("count unscoped: %v", err)
	}
	if raw != 1 {
		t.Fatalf("soft-deleted row missing from unscoped query")
	}
}
