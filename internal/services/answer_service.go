// Package services – AnswerService
//
// This file implements AnswerService, the application-level component that
// owns a user's compatibility answers. It validates submissions against the
// question catalog, enforces length limits, persists last-write-wins upserts,
// and assembles the scored compatibility profile handed to the HTTP layer.
//
// Service-level errors (e.g., ErrUnknownQuestion) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// user and question identifiers where applicable.
package services

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/emberapp/go-dating-backend/internal/catalog"
	"github.com/emberapp/go-dating-backend/internal/compat"
	"github.com/emberapp/go-dating-backend/internal/domain"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnswerRepo defines the repository contract required by AnswerService.
// Implementations are responsible for persistence of answer rows.
type AnswerRepo interface {
	// UpsertAnswer inserts or replaces the user's answer for a question.
	UpsertAnswer(ctx context.Context, db *gorm.DB, userID, questionID, text string, answeredAt time.Time) (*domain.Answer, error)

	// ListAnswers returns every answer belonging to the user in stable order.
	ListAnswers(ctx context.Context, db *gorm.DB, userID string) ([]domain.Answer, error)

	// CountAnswers returns the number of answers stored for the user.
	CountAnswers(ctx context.Context, db *gorm.DB, userID string) (int64, error)

	// DeleteAnswers removes the user's answers.
	DeleteAnswers(ctx context.Context, db *gorm.DB, userID string) error
}

// Profile is the assembled view of a user's compatibility state: their
// answers, the categories they have finished, and the derived score.
type Profile struct {
	Answers             []domain.Answer    `json:"answers"`
	CompletedCategories []catalog.Category `json:"completed_categories"`
	AnsweredCount       int                `json:"answered_count"`
	QuestionCount       int                `json:"question_count"`
	Score               compat.Score       `json:"score"`
}

// AnswerService provides answer-level operations: submitting, listing,
// resetting, and scoring. It enforces catalog membership and length rules.
type AnswerService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the answer repository used by this service.
	Repo AnswerRepo

	// MaxAnswerRunes caps stored answers by rune length (0 disables the cap).
	MaxAnswerRunes int

	// Cache memoizes computed scores; nil disables caching.
	Cache *ScoreCache
}

// NewAnswerService constructs an AnswerService with a sane default length cap.
func NewAnswerService(db *gorm.DB, r AnswerRepo, cache *ScoreCache) *AnswerService {
	return &AnswerService{
		DB:             db,
		Repo:           r,
		MaxAnswerRunes: 2000,
		Cache:          cache,
	}
}

// Submit validates and persists the user's answer to one catalog question.
// Resubmitting the same question replaces the previous answer.
func (s *AnswerService) Submit(ctx context.Context, userID, questionID, text string) (*domain.Answer, error) {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("question.id", questionID),
		),
	)
	defer span.End()

	if _, ok := catalog.Lookup(questionID); !ok {
		return nil, ErrUnknownQuestion
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyAnswer
	}
	if s.MaxAnswerRunes > 0 && utf8.RuneCountInString(text) > s.MaxAnswerRunes {
		return nil, ErrTooLong
	}

	a, err := s.Repo.UpsertAnswer(ctx, s.DB, userID, questionID, text, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(userID)
	return a, nil
}

// List returns the user's answers ordered by catalog position so clients can
// render them alongside the question list without re-sorting.
func (s *AnswerService) List(ctx context.Context, userID string) ([]domain.Answer, error) {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	answers, err := s.Repo.ListAnswers(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	sortByCatalogOrder(answers)
	return answers, nil
}

// Profile assembles the user's answers, category completion, and score.
func (s *AnswerService) Profile(ctx context.Context, userID string) (*Profile, error) {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "Profile",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	answers, err := s.Repo.ListAnswers(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	sortByCatalogOrder(answers)

	ids := make([]string, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}

	return &Profile{
		Answers:             answers,
		CompletedCategories: catalog.CompletedCategories(ids),
		AnsweredCount:       len(answers),
		QuestionCount:       catalog.Len(),
		Score:               s.Cache.Score(userID, toCompatAnswers(answers)),
	}, nil
}

// Score computes (or serves from cache) the user's compatibility score.
func (s *AnswerService) Score(ctx context.Context, userID string) (compat.Score, error) {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "Score",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	answers, err := s.Repo.ListAnswers(ctx, s.DB, userID)
	if err != nil {
		return compat.Score{}, err
	}
	return s.Cache.Score(userID, toCompatAnswers(answers)), nil
}

// Reset deletes every answer the user has stored and drops their cached
// scores. Missing answers are not an error; the operation is idempotent.
func (s *AnswerService) Reset(ctx context.Context, userID string) error {
	tr := otel.Tracer("services/AnswerService")
	ctx, span := tr.Start(ctx, "Reset",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if err := s.Repo.DeleteAnswers(ctx, s.DB, userID); err != nil {
		return err
	}
	s.Cache.Invalidate(userID)
	return nil
}

// sortByCatalogOrder arranges answers by the catalog's category and question
// ordering. Answers to questions no longer in the catalog sink to the end in
// their stored order.
func sortByCatalogOrder(answers []domain.Answer) {
	pos := func(id string) int {
		if q, ok := catalog.Lookup(id); ok {
			return q.OrderIndex
		}
		return catalog.Len()
	}
	sort.SliceStable(answers, func(i, j int) bool {
		return pos(answers[i].QuestionID) < pos(answers[j].QuestionID)
	})
}

// toCompatAnswers converts persisted rows into scoring inputs.
func toCompatAnswers(answers []domain.Answer) []compat.Answer {
	out := make([]compat.Answer, 0, len(answers))
	for _, a := range answers {
		out = append(out, compat.Answer{
			QuestionID: a.QuestionID,
			Text:       a.Text,
			AnsweredAt: a.AnsweredAt,
		})
	}
	return out
}
