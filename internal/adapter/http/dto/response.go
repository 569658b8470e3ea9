package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Type:      string(a.Type),
		Balance:   a.Balance,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                   string          `json:"id"`
	Reference            string          `json:"reference"`
	SourceAccountID      *string         `json:"source_account_id,omitempty"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	Type                 string          `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description,omitempty"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		Reference:            t.Reference,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Type:                 string(t.Type),
		Amount:               t.Amount,
		Description:          t.Description,
		Status:               string(t.Status),
		CreatedAt:            t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ConsistencyResponse reports the outcome of a ledger consistency check.
type ConsistencyResponse struct {
	Status     string `json:"status"`
	Consistent bool   `json:"consistent"`
	Message    string `json:"message,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
