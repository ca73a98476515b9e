package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/swaggo/swag"

	_ "github.com/custodia-labs/survey-search/docs" // registers the OpenAPI document
	"github.com/custodia-labs/survey-search/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings the database and lock backend
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  StatusResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := StatusResponse{Status: "ready", Checks: make(map[string]string, len(s.pingers))}
	status := http.StatusOK
	for name, p := range s.pingers {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	writeJSON(w, status, resp)
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, doc)
}

// Search endpoints

// searchRequest represents a search query request
// @Description Search query request
type searchRequest struct {
	Query      string              `json:"query" example:"maternal health services"`
	MaxResults int                 `json:"max_results,omitempty" example:"25"`
	Filters    domain.FacetFilters `json:"filters,omitempty"`
	Highlight  *bool               `json:"highlight,omitempty" example:"true"`
}

// handleSearch godoc
// @Summary      Search survey documents
// @Description  Hybrid semantic and keyword retrieval, oracle scoring, ranking, explanations and highlighted copies.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      searchRequest  true  "Search query"
// @Success      200      {object}  domain.SearchResult
// @Failure      400      {object}  ErrorResponse  "Invalid request or missing query"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      503      {object}  ErrorResponse  "Embedding service unavailable"
// @Failure      500      {object}  ErrorResponse  "Search failed"
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	opts := domain.DefaultSearchOptions()
	opts.MaxResults = req.MaxResults
	opts.Filters = req.Filters
	if req.Highlight != nil {
		opts.Highlight = *req.Highlight
	}
	if authCtx := GetAuthContext(r.Context()); authCtx != nil {
		opts.UserID = authCtx.UserID
	}

	result, err := s.searchService.Search(r.Context(), req.Query, opts)
	if err != nil {
		s.writeServiceError(w, r, err, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSearchHistory godoc
// @Summary      Recent searches
// @Description  Returns the caller's most recent searches, newest first
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 20, max 100)"
// @Success      200    {array}   domain.SearchLog
// @Failure      400    {object}  ErrorResponse  "Invalid limit"
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Router       /search/history [get]
func (s *Server) handleSearchHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	var userID string
	if authCtx := GetAuthContext(r.Context()); authCtx != nil {
		userID = authCtx.UserID
	}

	logs, err := s.searchService.History(r.Context(), userID, limit)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to load history")
		return
	}
	if logs == nil {
		logs = []*domain.SearchLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}

// handleCapabilities godoc
// @Summary      Runtime capabilities
// @Description  Reports whether search and the relevance oracle are available, and which render lock backend is in use
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Capabilities
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /capabilities [get]
func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.searchService.Capabilities())
}

// Feedback endpoints

// feedbackRequest represents a like or dislike on search results
// @Description Search result feedback
type feedbackRequest struct {
	FeedbackType string `json:"feedback_type" example:"like"`
	Comment      string `json:"comment,omitempty" example:"Exactly the tables I needed"`
	SearchTerm   string `json:"search_term" example:"maternal health services"`
	SearchID     string `json:"search_id,omitempty" example:"5f0c6a2e-8d1b-4c3e-9a57-1b2c3d4e5f60"`
}

// FeedbackResponse confirms a stored feedback entry
// @Description Feedback confirmation
type FeedbackResponse struct {
	Message    string `json:"message" example:"Feedback submitted successfully"`
	FeedbackID string `json:"feedback_id" example:"0b9e2c1a-3f4d-4e5a-8b6c-7d8e9f0a1b2c"`
}

// handleSubmitFeedback godoc
// @Summary      Submit result feedback
// @Description  Records a like or dislike, with an optional comment, for a search term
// @Tags         Feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      feedbackRequest  true  "Feedback"
// @Success      201      {object}  FeedbackResponse
// @Failure      400      {object}  ErrorResponse  "Invalid feedback type or missing search term"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Failed to submit feedback"
// @Router       /feedback [post]
func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var userID string
	if authCtx := GetAuthContext(r.Context()); authCtx != nil {
		userID = authCtx.UserID
	}

	saved, err := s.feedbackService.Submit(r.Context(), userID, &domain.Feedback{
		Type:       domain.FeedbackType(req.FeedbackType),
		Comment:    req.Comment,
		SearchTerm: req.SearchTerm,
		SearchID:   req.SearchID,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "failed to submit feedback")
		return
	}

	writeJSON(w, http.StatusCreated, FeedbackResponse{
		Message:    "Feedback submitted successfully",
		FeedbackID: saved.ID,
	})
}

// Highlight endpoints

// HighlightResponse carries the URL of a highlighted copy
// @Description Highlighted document location
type HighlightResponse struct {
	HighlightedURL string `json:"highlighted_url" example:"/api/v1/highlights/3f2a.pdf"`
}

// handleCreateHighlight godoc
// @Summary      Render a highlighted copy
// @Description  Annotates a source PDF with per-page keywords or a comma-separated term. Identical requests share one cached copy.
// @Tags         Highlights
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.HighlightRequest  true  "Source and keywords"
// @Success      200      {object}  HighlightResponse
// @Failure      400      {object}  ErrorResponse  "Missing source or keywords"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      502      {object}  ErrorResponse  "Render failed"
// @Router       /highlights [post]
func (s *Server) handleCreateHighlight(w http.ResponseWriter, r *http.Request) {
	var req domain.HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := s.highlightService.GetHighlighted(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err, "highlight failed")
		return
	}

	writeJSON(w, http.StatusOK, HighlightResponse{HighlightedURL: url})
}

// handleGetHighlight godoc
// @Summary      Download a highlighted copy
// @Tags         Highlights
// @Produce      application/pdf
// @Param        file  path      string  true  "File name from highlighted_url"
// @Success      200   {file}    binary
// @Failure      400   {object}  ErrorResponse  "Invalid file name"
// @Failure      404   {object}  ErrorResponse  "Not found"
// @Router       /highlights/{file} [get]
func (s *Server) handleGetHighlight(w http.ResponseWriter, r *http.Request) {
	rc, err := s.highlightService.Open(r.Context(), r.PathValue("file"))
	if err != nil {
		s.writeServiceError(w, r, err, "failed to open highlight")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// Helpers

// writeServiceError maps domain errors to status codes
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, domain.ErrRenderFailed), errors.Is(err, domain.ErrEmbedding):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		s.logger.Error(fallback, "error", err, "path", r.URL.Path, "request_id", GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
