package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emberapp/go-dating-backend/internal/domain"
)

func newStatsDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestAnswersStats_CountError_NoTable(t *testing.T) {
	db := newStatsDB(t /* no migrations */)
	_, _, err := AnswersStats(context.Background(), db, "u1")
	if err == nil {
		t.Fatalf("expected error due to missing answers table")
	}
}

func TestAnswersStats_ZeroRows(t *testing.T) {
	db := newStatsDB(t, &domain.Answer{})
	count, maxAt, err := AnswersStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("AnswersStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestAnswersStats_Success_FilterAndMax(t *testing.T) {
	db := newStatsDB(t, &domain.Answer{})

	t1 := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC) // max for u1
	t3 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)   // for other user

	rows := []*domain.Answer{
		{ID: "a1", UserID: "u1", QuestionID: "life-1", Text: "x", AnsweredAt: t1, CreatedAt: t1, UpdatedAt: t1},
		{ID: "a2", UserID: "u1", QuestionID: "life-2", Text: "y", AnsweredAt: t2, CreatedAt: t2, UpdatedAt: t2},
		{ID: "a3", UserID: "u2", QuestionID: "life-1", Text: "z", AnsweredAt: t3, CreatedAt: t3, UpdatedAt: t3},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}

	count, maxAt, err := AnswersStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("AnswersStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected max %v, got %v", t2, maxAt)
	}
}
