// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Answer
// model — the compatibility answer store.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. In particular, the last-write-wins rule
// for answers is expressed here as an ON CONFLICT upsert on the
// (user_id, question_id) unique index — no answer history is retained.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emberapp/go-dating-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service layer
// and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// UpsertAnswer inserts or overwrites the answer for (userID, questionID).
// A conflicting row is updated in place: text and answered_at take the new
// values and no previous version is kept. On success it returns the stored
// row; the ID is freshly generated on insert and preserved on overwrite.
func UpsertAnswer(ctx context.Context, db *gorm.DB, userID, questionID, text string, answeredAt time.Time) (*domain.Answer, error) {
	a := &domain.Answer{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: questionID,
		Text:       text,
		AnsweredAt: answeredAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
			// deleted_at is reset so answering again after a profile wipe
			// revives the row instead of colliding with its tombstone.
			DoUpdates: clause.AssignmentColumns([]string{
				"text", "answered_at", "updated_at", "deleted_at",
			}),
		}).
		Create(a).Error
	if err != nil {
		return nil, err
	}
	// Re-read so the caller sees the canonical row (original ID on overwrite).
	return GetAnswer(ctx, db, userID, questionID)
}

// GetAnswer fetches the answer for (userID, questionID), or ErrNotFound.
func GetAnswer(ctx context.Context, db *gorm.DB, userID, questionID string) (*domain.Answer, error) {
	var a domain.Answer
	err := db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnswers returns all answers belonging to userID ordered
// deterministically (AnsweredAt ASC, QuestionID ASC). It returns an empty
// slice when the user has not answered anything.
func ListAnswers(ctx context.Context, db *gorm.DB, userID string) ([]domain.Answer, error) {
	var out []domain.Answer
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("answered_at ASC, question_id ASC").
		Find(&out).Error
	return out, err
}

// CountAnswers returns the number of answers stored for userID.
func CountAnswers(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Answer{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// DeleteAnswers soft-deletes every answer owned by userID. It backs the
// account-deletion path: the compatibility profile lives and dies with the
// account. Deleting a user with no answers is not an error.
func DeleteAnswers(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.Answer{}).Error
}

// ListAnswerUserIDs returns up to limit distinct user ids that have at least
// one stored answer, excluding excludeUserID. It is the default discovery
// candidate-pool source; eligibility filtering beyond "has a compatibility
// profile" (preferences, distance, blocks) is applied by external callers.
func ListAnswerUserIDs(ctx context.Context, db *gorm.DB, excludeUserID string, limit int) ([]string, error) {
	var out []string
	q := db.WithContext(ctx).
		Model(&domain.Answer{}).
		Distinct("user_id").
		Where("user_id <> ?", excludeUserID).
		Order("user_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Pluck("user_id", &out).Error
	return out, err
}
