package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yongtae/pointsvc/internal/metrics"
	"github.com/yongtae/pointsvc/internal/repos/balances"
	"github.com/yongtae/pointsvc/internal/services/points"
)

// HandlerProvider wraps the points service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *points.Service
}

// NewHandler returns a new handler provider.
func NewHandler(svc *points.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseUserIDFromPath reads `{userId}` from routes like GET /point/{userId}.
func parseUserIDFromPath(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}

	if id < 1 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

type mutationRequest struct {
	Amount int64 `json:"amount"`
}

func decodeMutationRequest(w http.ResponseWriter, r *http.Request) (mutationRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req mutationRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&req)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return mutationRequest{}, fmt.Errorf("empty body")
		}

		return mutationRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return req, nil
}

type pointResponse struct {
	UserID       int64 `json:"userId"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"updateMillis"`
}

func toPointResponse(rec balances.Record) pointResponse {
	return pointResponse{
		UserID:       rec.UserID,
		Point:        rec.Amount,
		UpdateMillis: rec.UpdatedAt.UnixMilli(),
	}
}

type historyResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Amount       int64  `json:"amount"`
	Type         string `json:"type"`
	UpdateMillis int64  `json:"updateMillis"`
}

// writeMutationError maps domain failures to HTTP statuses and records the
// outcome metric for op.
func writeMutationError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, points.ErrInvalidUserID), errors.Is(err, points.ErrAmountTooSmall):
		metrics.OperationsTotal.WithLabelValues(op, "invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, points.ErrBalanceLimitExceeded):
		metrics.OperationsTotal.WithLabelValues(op, "limit_exceeded").Inc()
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, points.ErrInsufficientBalance):
		metrics.OperationsTotal.WithLabelValues(op, "insufficient").Inc()
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, points.ErrBalanceExpired):
		metrics.OperationsTotal.WithLabelValues(op, "expired").Inc()
		writeError(w, http.StatusConflict, err.Error())
	default:
		metrics.OperationsTotal.WithLabelValues(op, "error").Inc()
		slog.Error("mutation failed", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Handlers ---

// GetPointHandler handles GET /point/{userId}.
func (h *HandlerProvider) GetPointHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	rec, err := h.svc.Point(r.Context(), userID)
	if err != nil {
		if errors.Is(err, points.ErrInvalidUserID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("get point failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	writeJSON(w, http.StatusOK, toPointResponse(rec))
}

// GetHistoriesHandler handles GET /point/{userId}/histories.
func (h *HandlerProvider) GetHistoriesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	entries, err := h.svc.History(r.Context(), userID)
	if err != nil {
		if errors.Is(err, points.ErrInvalidUserID) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("get histories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	out := make([]historyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyResponse{
			ID:           e.ID,
			UserID:       e.UserID,
			Amount:       e.Amount,
			Type:         string(e.Kind),
			UpdateMillis: e.CreatedAt.UnixMilli(),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// ChargeHandler handles PATCH /point/{userId}/charge.
func (h *HandlerProvider) ChargeHandler(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "charge", h.svc.Charge)
}

// UseHandler handles PATCH /point/{userId}/use.
func (h *HandlerProvider) UseHandler(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "use", h.svc.Use)
}

func (h *HandlerProvider) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, req points.Request) (balances.Record, error),
) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	body, err := decodeMutationRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := fn(r.Context(), points.Request{
		UserID:      userID,
		Amount:      body.Amount,
		RequestedAt: time.Now(),
	})
	if err != nil {
		writeMutationError(w, op, err)
		return
	}

	metrics.OperationsTotal.WithLabelValues(op, "ok").Inc()
	writeJSON(w, http.StatusOK, toPointResponse(rec))
}
