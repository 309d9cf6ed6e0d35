package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// LedgerHandler serves GET / with the raw ledger text. A missing ledger
// file is a valid "no history yet" state and yields an empty body, not
// an error.
type LedgerHandler struct {
	logger *slog.Logger
	source LedgerSource
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(logger *slog.Logger, source LedgerSource) *LedgerHandler {
	return &LedgerHandler{
		logger: logger,
		source: source,
	}
}

// ServeHTTP implements http.Handler.
func (h *LedgerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, exists, err := h.source.Raw()
	if err != nil {
		h.logger.Error("failed to read ledger", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to read ledger"})
		return
	}
	if !exists {
		h.logger.Debug("ledger file absent, serving empty payload")
	}
	writeText(w, http.StatusOK, data)
}

// RetrieveRequest defines the request body for POST /retrieve.
type RetrieveRequest struct {
	Password string `json:"password"`
}

// RetrieveHandler handles the password-gated retrieval variant:
// POST /retrieve returns the ledger text when the secret matches.
type RetrieveHandler struct {
	logger   *slog.Logger
	source   LedgerSource
	verifier SecretVerifier
	metrics  *Metrics
}

// NewRetrieveHandler creates a new RetrieveHandler.
func NewRetrieveHandler(logger *slog.Logger, source LedgerSource, verifier SecretVerifier, metrics *Metrics) *RetrieveHandler {
	return &RetrieveHandler{
		logger:   logger,
		source:   source,
		verifier: verifier,
		metrics:  metrics,
	}
}

// ServeHTTP implements http.Handler.
func (h *RetrieveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RetrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.observe("retrieve", OutcomeBadRequest)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid JSON: %v", err),
		})
		return
	}

	if !h.verifier.Verify(req.Password) {
		h.metrics.observe("retrieve", OutcomeUnauthorized)
		h.logger.Warn("retrieve rejected: bad secret", "remote", r.RemoteAddr)
		writeText(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	data, _, err := h.source.Raw()
	if err != nil {
		h.metrics.observe("retrieve", OutcomeError)
		h.logger.Error("failed to read ledger", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to read ledger"})
		return
	}

	h.metrics.observe("retrieve", OutcomeOK)
	writeText(w, http.StatusOK, data)
}
