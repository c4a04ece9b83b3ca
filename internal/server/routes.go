package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/trknhr/cardlog/internal/logger"
	"github.com/trknhr/cardlog/internal/model/entity"
)

const maxListLimit = 500

type createEntryRequest struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Done     bool   `json:"done"`
	Geo      string `json:"geo"`
	ParentID string `json:"parent_id"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	ectx, err := s.journal.Context(r.Context())
	if err != nil {
		logger.Error("suggestions: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"context":    ectx,
		"candidates": s.journal.Engine().Estimate(ectx),
	})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	kind, ok := entity.ParseKind(req.Kind)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown kind: "+req.Kind)
		return
	}
	e := entity.Entry{
		Kind:  kind,
		Title: strings.TrimSpace(req.Title),
		Body:  req.Body,
		Done:  req.Done,
		Geo:   req.Geo,
	}
	if req.ParentID != "" {
		pid, err := uuid.Parse(req.ParentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid parent_id")
			return
		}
		e.ParentID = pid
	}

	saved, err := s.journal.Save(r.Context(), e)
	if err != nil {
		logger.Error("save entry: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"entry":      saved,
		"created_at": saved.CreatedAt(),
	})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	entries, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []entity.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleEngine(w http.ResponseWriter, r *http.Request) {
	eng := s.journal.Engine()
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":    eng.Stats(),
		"snapshot": eng.Inspect(),
	})
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	n, err := s.journal.Engine().Rebuild(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"replayed": n})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.journal.Engine().Reset()
	w.WriteHeader(http.StatusNoContent)
}
