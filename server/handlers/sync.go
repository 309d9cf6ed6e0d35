package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// SyncRequest defines the request body for POST /sync.
type SyncRequest struct {
	Password string `json:"password"`
	Data     string `json:"data"`
}

// SyncHandler handles whole-file ledger replacement. On a matching
// secret the payload overwrites the entire ledger file: no diff, no
// merge, last caller wins.
type SyncHandler struct {
	logger   *slog.Logger
	sink     LedgerSink
	verifier SecretVerifier
	metrics  *Metrics
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(logger *slog.Logger, sink LedgerSink, verifier SecretVerifier, metrics *Metrics) *SyncHandler {
	return &SyncHandler{
		logger:   logger,
		sink:     sink,
		verifier: verifier,
		metrics:  metrics,
	}
}

// ServeHTTP implements http.Handler.
func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.observe("sync", OutcomeBadRequest)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid JSON: %v", err),
		})
		return
	}

	if !h.verifier.Verify(req.Password) {
		h.metrics.observe("sync", OutcomeUnauthorized)
		h.logger.Warn("sync rejected: bad secret", "remote", r.RemoteAddr)
		writeText(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.sink.Overwrite(req.Data); err != nil {
		h.metrics.observe("sync", OutcomeError)
		h.logger.Error("failed to overwrite ledger", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to write ledger"})
		return
	}

	h.metrics.observe("sync", OutcomeOK)
	h.logger.Info("ledger synced", "bytes", len(req.Data), "remote", r.RemoteAddr)
	writeText(w, http.StatusOK, "synced")
}
