package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountSuspended    = errors.New("account is suspended and cannot perform transactions")
	ErrAccountNotDeletable = errors.New("account cannot be deleted while it holds a balance or ledger history")
	ErrUnauthorizedAccess  = errors.New("account does not belong to user")

	// Transaction errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionAborted  = errors.New("transaction could not be committed")
	ErrReferenceConflict   = errors.New("reference already used by a different operation")
)
