package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/okosach/bankd/internal/adapter/http/dto"
	"github.com/okosach/bankd/internal/usecase"
)

type consistencyService interface {
	CheckConsistency(ctx context.Context) (bool, error)
}

// LedgerHandler exposes ledger-wide operations such as the consistency check.
type LedgerHandler struct {
	reconciliationUC consistencyService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciliationUC consistencyService) *LedgerHandler {
	return &LedgerHandler{reconciliationUC: reconciliationUC}
}

// CheckConsistency verifies that account balances match the completed
// transaction log.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	consistent, err := h.reconciliationUC.CheckConsistency(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, &dto.ConsistencyResponse{
			Status:     "ok",
			Consistent: true,
		})
	case errors.Is(err, usecase.ErrInconsistentLedger):
		writeJSON(w, http.StatusConflict, &dto.ConsistencyResponse{
			Status:     "inconsistent",
			Consistent: consistent,
			Message:    err.Error(),
		})
	default:
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
	}
}
