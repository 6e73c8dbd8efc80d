package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/go-dating-backend/internal/compat"
	"github.com/emberapp/go-dating-backend/internal/services"
)

func TestDiscover_OK(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotUser string
	var gotSize int
	h := New(stubAnswerSvc{}, stubDiscoverSvc{discover: func(ctx context.Context, u string, n int) ([]services.RankedCandidate, error) {
		gotUser, gotSize = u, n
		return []services.RankedCandidate{
			{CandidateID: "c1", Alignment: compat.Score{Consistency: 90, SelfAwareness: 80, FutureOrientation: 70, Overall: 81}},
			{CandidateID: "c2", Alignment: compat.Score{Consistency: 50, SelfAwareness: 50, FutureOrientation: 50, Overall: 50}},
		}, nil
	}})
	r := gin.New()
	r.GET("/discover", h.Discover)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/discover?page_size=5", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotUser != "u1" || gotSize != 5 {
		t.Fatalf("service args = (%q,%d)", gotUser, gotSize)
	}

	var resp DiscoverResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Candidates) != 2 {
		t.Fatalf("payload: %+v", resp)
	}
	if resp.Candidates[0].CandidateID != "c1" || resp.Candidates[0].Alignment.Overall != 81 {
		t.Fatalf("first candidate: %+v", resp.Candidates[0])
	}
}

func TestDiscover_AnswersUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := New(stubAnswerSvc{}, stubDiscoverSvc{discover: func(context.Context, string, int) ([]services.RankedCandidate, error) {
		return nil, services.ErrAnswersUnavailable
	}})
	r := gin.New()
	r.GET("/discover", h.Discover)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/discover", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}

	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || er.Code != ErrCodeDiscoverFailed {
		t.Fatalf("code = %q (err %v)", er.Code, err)
	}
}
