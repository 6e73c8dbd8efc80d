// Compatibility HTTP handlers.
//
// This file exposes REST endpoints for the compatibility questionnaire:
//   - GET    /compatibility/questions             (catalog)
//   - GET    /compatibility/profile               (answers + score, ETag support)
//   - PUT    /compatibility/answers/{questionId}  (submit or replace)
//   - DELETE /compatibility/answers               (reset)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emberapp/go-dating-backend/internal/catalog"
	"github.com/emberapp/go-dating-backend/internal/domain"
	"github.com/emberapp/go-dating-backend/internal/repo"
	"github.com/emberapp/go-dating-backend/internal/services"
	"github.com/emberapp/go-dating-backend/internal/sysutil"
)

//
// Service contracts (context-aware)
//

// AnswerService defines questionnaire operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AnswerService interface {
	// Submit stores or replaces the user's answer to one question.
	Submit(ctx context.Context, userID, questionID, text string) (*domain.Answer, error)
	// Profile returns the user's answers, completion state, and score.
	Profile(ctx context.Context, userID string) (*services.Profile, error)
	// Reset deletes every answer the user has stored.
	Reset(ctx context.Context, userID string) error
}

// DiscoveryService defines candidate ranking operations for the feed.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type DiscoveryService interface {
	// Discover returns candidates ranked by alignment with the requester.
	Discover(ctx context.Context, requesterID string, pageSize int) ([]services.RankedCandidate, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for the questionnaire and discovery feed.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	answerSvc   AnswerService
	discoverSvc DiscoveryService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(answerSvc AnswerService, discoverSvc DiscoveryService) *Handlers {
	return &Handlers{answerSvc: answerSvc, discoverSvc: discoverSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	var fromCtx, fromHeader string
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			fromCtx = s
		}
	}
	if c != nil && c.Request != nil {
		fromHeader = strings.TrimSpace(c.GetHeader("X-User-ID"))
	}
	return sysutil.FirstNonEmpty(fromCtx, fromHeader, "demo-user")
}

//
// DTOs
//

// SubmitAnswerRequest is the JSON payload for answering a question.
type SubmitAnswerRequest struct {
	// Text is the free-form answer (1–2000 chars by default).
	Text string `json:"text" binding:"required" example:"I want to build something lasting with a partner who values growth."`
}

// QuestionsResponse wraps the full question catalog grouped by category.
type QuestionsResponse struct {
	Categories []CategoryBlock `json:"categories"`
	Total      int             `json:"total"`
}

// CategoryBlock is one category's display metadata plus its questions.
type CategoryBlock struct {
	ID        catalog.Category   `json:"id"`
	Title     string             `json:"title"`
	Subtitle  string             `json:"subtitle"`
	Questions []catalog.Question `json:"questions"`
}

//
// Handlers
//

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List compatibility questions
// @Description Returns the full question catalog grouped by category, in presentation order.
// @Tags        Compatibility
// @Produce     json
//
// @Success     200  {object}  handlers.QuestionsResponse
// @Router      /compatibility/questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	cats := catalog.Categories()
	blocks := make([]CategoryBlock, 0, len(cats))
	for _, cat := range cats {
		blocks = append(blocks, CategoryBlock{
			ID:        cat,
			Title:     cat.Title(),
			Subtitle:  cat.Subtitle(),
			Questions: catalog.ByCategory(cat),
		})
	}
	ok(c, http.StatusOK, QuestionsResponse{Categories: blocks, Total: catalog.Len()})
}

// SubmitAnswer godoc
// @ID          submitAnswer
// @Summary     Submit or replace an answer
// @Description Stores the user's free-text answer to one catalog question. Resubmitting replaces the previous answer.
// @Tags        Compatibility
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID   header  string  false "User ID (demo header)"  example(user123)
// @Param       questionId  path    string  true  "Question ID"            example(life-1)
// @Param       body        body    handlers.SubmitAnswerRequest  true  "Answer payload"
//
// @Success     200  {object}  domain.Answer
// @Failure     400  {object}  handlers.ErrorResponse  "Empty or too-long answer"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown question"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /compatibility/answers/{questionId} [put]
func (h *Handlers) SubmitAnswer(c *gin.Context) {
	questionID := c.Param("questionId")

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.answerSvc.Submit(c.Request.Context(), userID(c), questionID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownQuestion):
			fail(c, http.StatusNotFound, ErrCodeUnknownQuestion, "question not found in catalog")
		case errors.Is(err, services.ErrEmptyAnswer):
			fail(c, http.StatusBadRequest, ErrCodeEmptyAnswer, "answer text is required")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeAnswerTooLong, "answer exceeds the maximum length")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, a)
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Get the compatibility profile
// @Description Returns the user's answers, completed categories, and compatibility score. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Compatibility
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {object} services.Profile
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /compatibility/profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.answerSvc.(*services.AnswerService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.AnswersStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"answers:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	p, err := h.answerSvc.Profile(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeProfileFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// ResetAnswers godoc
// @ID          resetAnswers
// @Summary     Delete all answers
// @Description Removes every answer the user has stored. Succeeds even when there is nothing to delete.
// @Tags        Compatibility
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     204  {string} string "No Content"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /compatibility/answers [delete]
func (h *Handlers) ResetAnswers(c *gin.Context) {
	if err := h.answerSvc.Reset(c.Request.Context(), userID(c)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeResetFailed, err.Error())
		return
	}
	noContent(c)
}
