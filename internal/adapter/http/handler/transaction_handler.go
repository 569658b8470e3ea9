package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okosach/bankd/internal/adapter/http/dto"
	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/usecase"
)

// ledgerService is the slice of the ledger engine the handler needs.
type ledgerService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	GetTransactions(ctx context.Context, input usecase.GetTransactionsInput) ([]*domain.Transaction, error)
	GetTransactionByReference(ctx context.Context, reference, userID string) (*domain.Transaction, error)
}

// TransactionHandler handles the money-movement endpoints.
type TransactionHandler struct {
	ledgerUC ledgerService
	retrier  usecase.Retrier
}

// NewTransactionHandler creates a new TransactionHandler. retrier may be nil.
func NewTransactionHandler(ledgerUC ledgerService, retrier usecase.Retrier) *TransactionHandler {
	return &TransactionHandler{
		ledgerUC: ledgerUC,
		retrier:  retrier,
	}
}

// Deposit credits the account in the URL.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "accountID")

	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.run(r.Context(), func(ctx context.Context) (*domain.Transaction, error) {
		return h.ledgerUC.Deposit(ctx, req.ToDepositInput(accountID, userID))
	})
	if err != nil {
		writeError(w, mapDomainError(err), "deposit failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Withdraw debits the account in the URL.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "accountID")

	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.run(r.Context(), func(ctx context.Context) (*domain.Transaction, error) {
		return h.ledgerUC.Withdraw(ctx, req.ToWithdrawInput(accountID, userID))
	})
	if err != nil {
		writeError(w, mapDomainError(err), "withdrawal failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Transfer moves funds from the source account to the destination account in
// the URL.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	sourceID := chi.URLParam(r, "sourceID")
	destinationID := chi.URLParam(r, "destinationID")

	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.run(r.Context(), func(ctx context.Context) (*domain.Transaction, error) {
		return h.ledgerUC.Transfer(ctx, req.ToTransferInput(sourceID, destinationID, userID))
	})
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// ListByAccount returns the transaction history of an account, oldest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	txns, err := h.ledgerUC.GetTransactions(r.Context(), usecase.GetTransactionsInput{
		AccountID: chi.URLParam(r, "id"),
		UserID:    userID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// GetByReference resolves a transaction by its unique reference. Only a
// caller owning one of the touched accounts may read it.
func (h *TransactionHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	txn, err := h.ledgerUC.GetTransactionByReference(r.Context(), chi.URLParam(r, "reference"), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// run executes a ledger operation, retrying transient conflicts when a
// retrier is configured. Retries are safe: a failed attempt rolled back and
// reference dedup catches the edge where it committed after all.
func (h *TransactionHandler) run(ctx context.Context, op func(ctx context.Context) (*domain.Transaction, error)) (*domain.Transaction, error) {
	if h.retrier == nil {
		return op(ctx)
	}

	var txn *domain.Transaction
	err := h.retrier.Retry(ctx, func() error {
		var opErr error
		txn, opErr = op(ctx)
		return opErr
	})

	return txn, err
}
