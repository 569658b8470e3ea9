package dto

import (
	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/usecase"
)

// RegisterRequest represents a request to create a user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(ownerUserID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerUserID: ownerUserID,
		Type:        domain.AccountType(r.Type),
	}
}

// MoneyRequest represents the body of a deposit, withdrawal or transfer.
type MoneyRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// ToDepositInput converts to a deposit input.
func (r *MoneyRequest) ToDepositInput(accountID, userID string) usecase.DepositInput {
	return usecase.DepositInput{
		AccountID:   accountID,
		UserID:      userID,
		Amount:      r.Amount,
		Description: r.Description,
		Reference:   r.Reference,
	}
}

// ToWithdrawInput converts to a withdrawal input.
func (r *MoneyRequest) ToWithdrawInput(accountID, userID string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountID:   accountID,
		UserID:      userID,
		Amount:      r.Amount,
		Description: r.Description,
		Reference:   r.Reference,
	}
}

// ToTransferInput converts to a transfer input.
func (r *MoneyRequest) ToTransferInput(sourceID, destinationID, userID string) usecase.TransferInput {
	return usecase.TransferInput{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		UserID:               userID,
		Amount:               r.Amount,
		Description:          r.Description,
		Reference:            r.Reference,
	}
}
