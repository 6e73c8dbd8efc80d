// Package services – DiscoveryService
//
// This file implements DiscoveryService, which ranks candidate users for the
// discovery feed by mutual compatibility. For each candidate it computes the
// symmetric alignment between the requester's compatibility score and the
// candidate's, then orders candidates by overall alignment.
//
// Candidate scoring fans out across a bounded worker group: one slow or
// failing candidate is logged and skipped rather than failing the feed. Only
// the requester's own answers are load-bearing; if they cannot be read the
// whole request fails with ErrAnswersUnavailable.
package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/emberapp/go-dating-backend/internal/compat"
	"github.com/emberapp/go-dating-backend/internal/domain"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AnswerSource supplies stored answers for scoring.
type AnswerSource interface {
	ListAnswers(ctx context.Context, db *gorm.DB, userID string) ([]domain.Answer, error)
}

// PoolProvider supplies candidate user IDs for the discovery feed.
type PoolProvider interface {
	ListAnswerUserIDs(ctx context.Context, db *gorm.DB, excludeUserID string, limit int) ([]string, error)
}

// RankedCandidate is one entry of the discovery feed: a candidate and the
// symmetric alignment between them and the requester.
type RankedCandidate struct {
	CandidateID string       `json:"candidate_id"`
	Alignment   compat.Score `json:"alignment"`
}

// neutralScore stands in for users who have not answered anything yet, so new
// profiles surface mid-feed instead of pinning to the top or bottom.
var neutralScore = compat.Score{Consistency: 50, SelfAwareness: 50, FutureOrientation: 50, Overall: 50}

// DiscoveryService ranks candidates for a requesting user.
type DiscoveryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Answers supplies stored answers for both requester and candidates.
	Answers AnswerSource
	// Pool supplies the candidate set when the caller does not provide one.
	Pool PoolProvider

	// Cache memoizes computed scores; nil disables caching.
	Cache *ScoreCache

	// PageSize is the default number of results when the caller passes 0.
	PageSize int
	// PoolLimit caps how many candidates are pulled from the pool provider.
	PoolLimit int
	// Concurrency bounds the candidate-scoring fan-out.
	Concurrency int
}

// NewDiscoveryService constructs a DiscoveryService with default paging and
// fan-out limits.
func NewDiscoveryService(db *gorm.DB, answers AnswerSource, pool PoolProvider, cache *ScoreCache) *DiscoveryService {
	return &DiscoveryService{
		DB:          db,
		Answers:     answers,
		Pool:        pool,
		Cache:       cache,
		PageSize:    20,
		PoolLimit:   50,
		Concurrency: 8,
	}
}

// Discover pulls a candidate pool and returns the top pageSize candidates
// ranked by alignment with the requester.
func (s *DiscoveryService) Discover(ctx context.Context, requesterID string, pageSize int) ([]RankedCandidate, error) {
	tr := otel.Tracer("services/DiscoveryService")
	ctx, span := tr.Start(ctx, "Discover",
		trace.WithAttributes(attribute.String("user.id", requesterID)),
	)
	defer span.End()

	pool, err := s.Pool.ListAnswerUserIDs(ctx, s.DB, requesterID, s.poolLimit())
	if err != nil {
		return nil, ErrAnswersUnavailable
	}
	return s.Rank(ctx, requesterID, pool, pageSize)
}

// Rank scores the given candidate pool against the requester and returns the
// top pageSize entries in descending overall alignment. Ties keep the pool's
// input order. Candidates whose answers cannot be read are skipped.
func (s *DiscoveryService) Rank(ctx context.Context, requesterID string, pool []string, pageSize int) ([]RankedCandidate, error) {
	tr := otel.Tracer("services/DiscoveryService")
	ctx, span := tr.Start(ctx, "Rank",
		trace.WithAttributes(
			attribute.String("user.id", requesterID),
			attribute.Int("pool.size", len(pool)),
		),
	)
	defer span.End()

	if pageSize <= 0 {
		pageSize = s.PageSize
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	requesterScore, ok, err := s.scoreUser(ctx, requesterID)
	if err != nil {
		return nil, ErrAnswersUnavailable
	}
	requesterAnswered := ok

	// each goroutine writes only its own slot
	ranked := make([]RankedCandidate, len(pool))
	valid := make([]bool, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, candidateID := range pool {
		if candidateID == requesterID {
			continue
		}
		g.Go(func() error {
			candScore, candAnswered, cerr := s.scoreUser(gctx, candidateID)
			if cerr != nil {
				log.Warn().Err(cerr).
					Str("candidate_id", candidateID).
					Msg("discovery: skipping candidate, answers unavailable")
				return nil
			}
			var alignment compat.Score
			if !requesterAnswered || !candAnswered {
				alignment = neutralScore
			} else {
				alignment = compat.ComputeAlignment(requesterScore, candScore)
			}
			ranked[i] = RankedCandidate{CandidateID: candidateID, Alignment: alignment}
			valid[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]RankedCandidate, 0, len(pool))
	for i, rc := range ranked {
		if valid[i] {
			out = append(out, rc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Alignment.Overall > out[j].Alignment.Overall
	})
	if len(out) > pageSize {
		out = out[:pageSize]
	}
	return out, nil
}

// scoreUser loads a user's answers and resolves their score. The second
// return reports whether the user has answered anything.
func (s *DiscoveryService) scoreUser(ctx context.Context, userID string) (compat.Score, bool, error) {
	answers, err := s.Answers.ListAnswers(ctx, s.DB, userID)
	if err != nil {
		return compat.Score{}, false, err
	}
	if len(answers) == 0 {
		return compat.Score{}, false, nil
	}
	return s.Cache.Score(userID, toCompatAnswers(answers)), true, nil
}

func (s *DiscoveryService) poolLimit() int {
	if s.PoolLimit > 0 {
		return s.PoolLimit
	}
	return 50
}

func (s *DiscoveryService) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return 8
}
