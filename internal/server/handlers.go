package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gitamind/internal/domain"
)

const maxBodyBytes = 64 << 10

type searchRequest struct {
	Question any `json:"question"`
}

type searchResponse struct {
	Passages []domain.Passage `json:"passages"`
	Message  string           `json:"message,omitempty"`
}

type guideRequest struct {
	Message string `json:"message"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be a JSON object")
		return false
	}
	return true
}

// searchQuestion reads the question from a search body. Unreadable bodies and
// non-string questions count as no question.
func searchQuestion(w http.ResponseWriter, r *http.Request) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	question, _ := req.Question.(string)
	return strings.TrimSpace(question)
}

// handleSearch returns the top passages for a question. Neither a malformed
// query nor a retrieval problem fails the request; the client gets an empty
// list and a message.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	question := searchQuestion(w, r)
	if question == "" {
		s.jsonResponse(w, http.StatusOK, searchResponse{
			Passages: []domain.Passage{},
			Message:  "No question provided",
		})
		return
	}

	passages, err := s.retriever.RetrieveTopPassages(r.Context(), question, s.topK)
	if err != nil {
		s.logger.Warn("search degraded", "err", err)
		msg := "Search is temporarily unavailable"
		if errors.Is(err, domain.ErrDocumentUnavailable) {
			msg = "Scripture source is unavailable right now"
		}
		s.jsonResponse(w, http.StatusOK, searchResponse{Passages: []domain.Passage{}, Message: msg})
		return
	}

	if passages == nil {
		passages = []domain.Passage{}
	}
	s.jsonResponse(w, http.StatusOK, searchResponse{Passages: passages})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	var req guideRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.guideTimeout)
	defer cancel()

	reflection, err := s.guide.Guide(ctx, req.Message)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		s.errorResponse(w, http.StatusBadRequest, "EMPTY_MESSAGE", "No message provided")
	case errors.Is(err, domain.ErrReflectionFailed):
		s.logger.Error("reflection failed", "err", err)
		s.errorResponse(w, http.StatusBadGateway, "LLM_CALL_FAILED", "No language model provider could answer")
	case err != nil:
		s.logger.Error("guide request failed", "err", err)
		s.errorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "")
	default:
		s.jsonResponse(w, http.StatusOK, reflection)
	}
}
