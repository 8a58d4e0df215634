package visits

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

// Extracting is the part of Extractor handlers depend on.
type Extracting interface {
	Extract(ctx context.Context, transcription string) Record
}

// Handler wires HTTP requests to visit extraction and storage.
type Handler struct {
	extractor Extracting
	repo      *Repository
	logger    *logging.Logger
}

// NewHandler creates a visits handler. A nil repo disables persistence;
// extraction still works and the response simply carries no stored id.
func NewHandler(extractor Extracting, repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		extractor: extractor,
		repo:      repo,
		logger:    logger,
	}
}

// ExtractRequest is the body of POST /visits/extract.
type ExtractRequest struct {
	WorkerID      string `json:"worker_id"`
	Transcription string `json:"transcription"`
}

// ExtractResponse carries the structured record and, when persisted, its id.
type ExtractResponse struct {
	ID     string `json:"id,omitempty"`
	Record Record `json:"record"`
}

// Extract handles POST /visits/extract.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode extract request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Transcription) == "" {
		http.Error(w, "transcription is required", http.StatusBadRequest)
		return
	}

	record := h.extractor.Extract(r.Context(), req.Transcription)

	resp := ExtractResponse{Record: record}
	if h.repo != nil && strings.TrimSpace(req.WorkerID) != "" {
		id, err := h.repo.Save(r.Context(), req.WorkerID, req.Transcription, record)
		if err != nil {
			// Extraction succeeded; losing the insert should not lose the record.
			h.logger.Error("failed to persist visit record", "error", err, "worker_id", req.WorkerID)
		} else {
			resp.ID = id.String()
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// List handles GET /visits?worker_id=...&limit=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	workerID := strings.TrimSpace(r.URL.Query().Get("worker_id"))
	if workerID == "" {
		http.Error(w, "worker_id is required", http.StatusBadRequest)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if h.repo == nil {
		http.Error(w, "visit storage is not configured", http.StatusServiceUnavailable)
		return
	}

	visits, err := h.repo.ListByWorker(r.Context(), workerID, limit)
	if err != nil {
		h.logger.Error("failed to list visit records", "error", err, "worker_id", workerID)
		http.Error(w, "Failed to list visits", http.StatusInternalServerError)
		return
	}
	if visits == nil {
		visits = []StoredVisit{}
	}
	h.writeJSON(w, http.StatusOK, visits)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
