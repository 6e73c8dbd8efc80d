// Package domain defines the persistence models for compatibility profile
// data. These types are mapped with GORM and form the data layer of the
// dating backend; everything derived from them (profiles, scores, alignment)
// is computed on demand and never stored.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Answer represents a user's free-text response to one catalog question.
// There is exactly one row per (user, question) pair: submitting a new answer
// for the same question overwrites the previous one (last-write-wins, no
// history retained).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID / QuestionID: composite unique key; UserID is additionally
//     indexed for efficient whole-profile reads.
//   - Text: the raw answer text consumed by the scoring engine.
//   - AnsweredAt: submission time of the current text (refreshed on overwrite).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (account deletion retains rows for audit).
type Answer struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string         `json:"user_id"     gorm:"type:varchar(64);not null;index:idx_user_answers;uniqueIndex:ux_answer_user_question,priority:1"`
	QuestionID string         `json:"question_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_answer_user_question,priority:2"`
	Text       string         `json:"text"        gorm:"type:text;not null"`
	AnsweredAt time.Time      `json:"answered_at" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Answer.
func (Answer) TableName() string { return "compatibility_answers" }
