// Package server exposes the ingestion pipeline and its stores over
// HTTP. The transport is deliberately thin: decode, call a service,
// encode.
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukabooks/dukabooks/internal/common"
	"github.com/dukabooks/dukabooks/internal/ingest"
	"github.com/dukabooks/dukabooks/internal/ledger"
	"github.com/dukabooks/dukabooks/internal/pos"
	"github.com/dukabooks/dukabooks/internal/review"
)

type Server struct {
	ingest *ingest.Service
	ledger *ledger.Service
	review *review.Service
	pos    *pos.Service
	logger *slog.Logger
}

func New(ig *ingest.Service, lg *ledger.Service, rv *review.Service, ps *pos.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{ingest: ig, ledger: lg, review: rv, pos: ps, logger: logger}
}

// Routes builds the API mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/upload", s.handleUpload)
	mux.HandleFunc("GET /api/v1/upload/{businessID}", s.handleUploadHistory)
	mux.HandleFunc("GET /api/v1/ledger/{businessID}", s.handleLedgerList)
	mux.HandleFunc("GET /api/v1/ledger/{businessID}/summary", s.handleLedgerSummary)
	mux.HandleFunc("GET /api/v1/review/{businessID}", s.handleReviewList)
	mux.HandleFunc("POST /api/v1/review/{businessID}/{itemID}/approve", s.handleReviewDecision)
	mux.HandleFunc("POST /api/v1/review/{businessID}/{itemID}/reject", s.handleReviewDecision)
	mux.HandleFunc("POST /api/v1/pos/connect", s.handlePOSConnect)
	mux.HandleFunc("POST /api/v1/pos/sync", s.handlePOSSync)
	mux.HandleFunc("GET /api/v1/pos/{businessID}", s.handlePOSStatus)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

type uploadRequest struct {
	BusinessID string `json:"businessId"`
	FileName   string `json:"fileName"`
	Content    string `json:"content"`
	Encoding   string `json:"encoding"` // "plain" (default) or "base64"
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.BusinessID == "" || req.FileName == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "businessId, fileName, and content are required")
		return
	}
	content := []byte(req.Content)
	if req.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			writeError(w, http.StatusBadRequest, "content is not valid base64")
			return
		}
		content = decoded
	}

	report, err := s.ingest.Ingest(r.Context(), req.BusinessID, req.FileName, content)
	if err != nil {
		s.logger.Error("server.upload_failed", "file", req.FileName, "error", err)
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleUploadHistory(w http.ResponseWriter, r *http.Request) {
	uploads, err := s.ingest.Uploads(r.PathValue("businessID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read uploads")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploads": uploads})
}

func (s *Server) handleLedgerList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.List(r.PathValue("businessID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read ledger")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ledger": entries})
}

func (s *Server) handleLedgerSummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
		return
	}
	summary, err := s.ledger.MonthlySummary(r.PathValue("businessID"), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not build summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReviewList(w http.ResponseWriter, r *http.Request) {
	items, err := s.review.List(r.PathValue("businessID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read review queue")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"queue": items})
}

func (s *Server) handleReviewDecision(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("businessID")
	itemID := r.PathValue("itemID")

	decide := s.review.Approve
	if strings.HasSuffix(r.URL.Path, "/reject") {
		decide = s.review.Reject
	}
	item, err := decide(businessID, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not update review item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "item": item})
}

type posConnectRequest struct {
	BusinessID string `json:"businessId"`
	Provider   string `json:"provider"`
	Endpoint   string `json:"endpoint"`
}

func (s *Server) handlePOSConnect(w http.ResponseWriter, r *http.Request) {
	var req posConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BusinessID == "" {
		writeError(w, http.StatusBadRequest, "businessId is required")
		return
	}
	conn, err := s.pos.Connect(req.BusinessID, req.Provider, req.Endpoint)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not connect")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "connection": conn})
}

type posSyncRequest struct {
	BusinessID   string      `json:"businessId"`
	Transactions []pos.Entry `json:"transactions"`
}

func (s *Server) handlePOSSync(w http.ResponseWriter, r *http.Request) {
	var req posSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BusinessID == "" {
		writeError(w, http.StatusBadRequest, "businessId is required")
		return
	}
	result, err := s.pos.Sync(req.BusinessID, req.Transactions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sync failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePOSStatus(w http.ResponseWriter, r *http.Request) {
	conn, found, err := s.pos.Status(r.PathValue("businessID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not read connection")
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"connection": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"connection": conn})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
