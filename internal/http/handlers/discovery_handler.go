// Discovery HTTP handlers.
//
// This file exposes the ranked discovery feed:
//   - GET /discover  (candidates ordered by mutual compatibility)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/go-dating-backend/internal/services"
	"github.com/emberapp/go-dating-backend/internal/utils"
)

// DiscoverResponse wraps the ranked candidate list.
type DiscoverResponse struct {
	Candidates []services.RankedCandidate `json:"candidates"`
	Count      int                        `json:"count"`
}

// pageSizeParam parses and bounds the page_size query param.
// Zero means "let the service apply its default".
func pageSizeParam(c *gin.Context) int {
	const maxPageSize = 50
	return utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), 0), 0, maxPageSize)
}

// Discover godoc
// @ID          discover
// @Summary     Discover compatible candidates
// @Description Returns candidate users ranked by mutual compatibility alignment with the requester, highest first.
// @Tags        Discovery
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       page_size  query   int     false "Max results"            minimum(1) maximum(50) default(20)
//
// @Success     200  {object} handlers.DiscoverResponse
// @Failure     503  {object} handlers.ErrorResponse "Requester answers unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /discover [get]
func (h *Handlers) Discover(c *gin.Context) {
	ranked, err := h.discoverSvc.Discover(c.Request.Context(), userID(c), pageSizeParam(c))
	if err != nil {
		if errors.Is(err, services.ErrAnswersUnavailable) {
			fail(c, http.StatusServiceUnavailable, ErrCodeDiscoverFailed, "answers temporarily unavailable")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeDiscoverFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, DiscoverResponse{Candidates: ranked, Count: len(ranked)})
}
