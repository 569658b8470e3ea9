package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/usecase"
	"github.com/okosach/bankd/internal/usecase/mocks"
)

type ledgerFixture struct {
	accountRepo *mocks.MockAccountRepository
	txnRepo     *mocks.MockTransactionRepository
	txManager   *mocks.MockTransactionManager
	uc          *usecase.LedgerUseCase
}

func newLedgerFixture() *ledgerFixture {
	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()
	ownership := usecase.NewOwnershipValidator(accountRepo)

	return &ledgerFixture{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
		uc:          usecase.NewLedgerUseCase(txManager, accountRepo, txnRepo, ownership, idGen, nil),
	}
}

func (f *ledgerFixture) seedAccount(id, owner string, balance int64, status domain.AccountStatus) *domain.Account {
	account := &domain.Account{
		ID:          id,
		Number:      "ACC-" + id,
		OwnerUserID: owner,
		Type:        domain.AccountTypeChecking,
		Balance:     decimal.NewFromInt(balance),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	f.accountRepo.Seed(account)
	return account
}

func (f *ledgerFixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	account, err := f.accountRepo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to fetch account %s: %v", id, err)
	}
	return account.Balance
}

func TestLedgerDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("successful deposit credits balance and completes record", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 50, domain.AccountStatusActive)

		txn, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if txn.Status != domain.TransactionStatusCompleted {
			t.Errorf("expected COMPLETED, got %s", txn.Status)
		}
		if txn.Type != domain.TransactionTypeDeposit {
			t.Errorf("expected DEPOSIT, got %s", txn.Type)
		}
		if txn.SourceAccountID != nil {
			t.Error("deposit must have no source account")
		}
		if txn.DestinationAccountID == nil || *txn.DestinationAccountID != "acc-1" {
			t.Error("deposit destination must be the affected account")
		}
		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected balance 150, got %s", got)
		}
	})

	t.Run("non-positive amounts rejected without a record", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
			f := newLedgerFixture()
			f.seedAccount("acc-1", "user-1", 50, domain.AccountStatusActive)

			_, err := f.uc.Deposit(ctx, usecase.DepositInput{
				AccountID: "acc-1",
				UserID:    "user-1",
				Amount:    amount,
			})
			if !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
			}
			if len(f.txnRepo.All()) != 0 {
				t.Errorf("amount %s: expected no transaction record", amount)
			}
		}
	})

	t.Run("suspended account rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 50, domain.AccountStatusSuspended)

		_, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrAccountSuspended) {
			t.Errorf("expected ErrAccountSuspended, got %v", err)
		}
		if len(f.txnRepo.All()) != 0 {
			t.Error("expected no transaction record for suspended account")
		}
	})

	t.Run("unknown account rejected", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "missing",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("failure during balance mutation leaves FAILED record and untouched balance", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 50, domain.AccountStatusActive)

		storeErr := errors.New("disk on fire")
		f.accountRepo.UpdateBalanceFunc = func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
			return storeErr
		}

		_, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
		})
		if !errors.Is(err, storeErr) {
			t.Fatalf("expected original store error to propagate, got %v", err)
		}

		records := f.txnRepo.All()
		if len(records) != 1 {
			t.Fatalf("expected exactly one audit record, got %d", len(records))
		}
		if records[0].Status != domain.TransactionStatusFailed {
			t.Errorf("expected FAILED record, got %s", records[0].Status)
		}
		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected pre-operation balance 50, got %s", got)
		}
	})

	t.Run("commit failure surfaces as TransactionAborted with FAILED record", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 50, domain.AccountStatusActive)

		f.txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
			return &mocks.MockTransaction{
				CommitFunc: func(ctx context.Context) error {
					return errors.New("lock timeout")
				},
			}, nil
		}

		_, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrTransactionAborted) {
			t.Fatalf("expected ErrTransactionAborted, got %v", err)
		}

		records := f.txnRepo.All()
		if len(records) != 1 || records[0].Status != domain.TransactionStatusFailed {
			t.Errorf("expected one FAILED audit record, got %+v", records)
		}
	})
}

func TestLedgerWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit then withdraw leaves balance unchanged", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 500, domain.AccountStatusActive)

		amount := decimal.NewFromInt(77)
		if _, err := f.uc.Deposit(ctx, usecase.DepositInput{AccountID: "acc-1", UserID: "user-1", Amount: amount}); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
		if _, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{AccountID: "acc-1", UserID: "user-1", Amount: amount}); err != nil {
			t.Fatalf("withdraw failed: %v", err)
		}

		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected balance 500, got %s", got)
		}
	})

	t.Run("withdrawal shapes the record correctly", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		txn, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(30),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if txn.DestinationAccountID != nil {
			t.Error("withdrawal must have no destination account")
		}
		if txn.SourceAccountID == nil || *txn.SourceAccountID != "acc-1" {
			t.Error("withdrawal source must be the affected account")
		}
		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected balance 70, got %s", got)
		}
	})

	t.Run("insufficient balance rejected before any record exists", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		_, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(101),
		})
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}

		if len(f.txnRepo.All()) != 0 {
			t.Error("rejected withdrawal must not produce a transaction record")
		}
		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected balance 100, got %s", got)
		}
	})

	t.Run("ownership mismatch rejected with unchanged balance", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		_, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{
			AccountID: "acc-1",
			UserID:    "user-2",
			Amount:    decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrUnauthorizedAccess) {
			t.Fatalf("expected ErrUnauthorizedAccess, got %v", err)
		}

		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected balance 100, got %s", got)
		}
		if len(f.txnRepo.All()) != 0 {
			t.Error("unauthorized withdrawal must not produce a transaction record")
		}
	})
}

func TestLedgerTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer is balance neutral across the pair", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 40, domain.AccountStatusActive)

		txn, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(25),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if txn.Status != domain.TransactionStatusCompleted {
			t.Errorf("expected COMPLETED, got %s", txn.Status)
		}

		src := f.balance(t, "acc-1")
		dst := f.balance(t, "acc-2")
		if !src.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected source balance 75, got %s", src)
		}
		if !dst.Equal(decimal.NewFromInt(65)) {
			t.Errorf("expected destination balance 65, got %s", dst)
		}
		if !src.Add(dst).Equal(decimal.NewFromInt(140)) {
			t.Errorf("transfer must conserve total balance, got %s", src.Add(dst))
		}
	})

	t.Run("destination owned by another user is allowed", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusActive)

		if _, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(10),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("same account rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		_, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-1",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrSameAccount) {
			t.Errorf("expected ErrSameAccount, got %v", err)
		}
	})

	t.Run("missing destination identified in error", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		_, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "missing",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
		if want := "destination account missing"; err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("expected error identifying the destination side, got %v", err)
		}
	})

	t.Run("suspended destination rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusSuspended)

		_, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrAccountSuspended) {
			t.Errorf("expected ErrAccountSuspended, got %v", err)
		}
	})

	t.Run("insufficient source balance rejected without a record", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 5, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusActive)

		_, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if len(f.txnRepo.All()) != 0 {
			t.Error("rejected transfer must not produce a transaction record")
		}
	})

	t.Run("failure after pending marks transfer FAILED", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusActive)

		f.txnRepo.UpdateStatusFunc = func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
			return errors.New("constraint violation")
		}

		_, err := f.uc.Transfer(ctx, usecase.TransferInput{
			SourceAccountID:      "acc-1",
			DestinationAccountID: "acc-2",
			UserID:               "user-1",
			Amount:               decimal.NewFromInt(10),
		})
		if err == nil {
			t.Fatal("expected error")
		}

		records := f.txnRepo.All()
		if len(records) != 1 || records[0].Status != domain.TransactionStatusFailed {
			t.Errorf("expected one FAILED record, got %+v", records)
		}
	})
}

func TestLedgerGetTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("history is ascending by creation and scoped to account", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 1000, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusActive)

		steps := []struct {
			run    func() error
			amount int64
		}{
			{func() error {
				_, err := f.uc.Deposit(ctx, usecase.DepositInput{AccountID: "acc-1", UserID: "user-1", Amount: decimal.NewFromInt(100)})
				return err
			}, 100},
			{func() error {
				_, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{AccountID: "acc-1", UserID: "user-1", Amount: decimal.NewFromInt(30)})
				return err
			}, 30},
			{func() error {
				_, err := f.uc.Transfer(ctx, usecase.TransferInput{SourceAccountID: "acc-1", DestinationAccountID: "acc-2", UserID: "user-1", Amount: decimal.NewFromInt(20)})
				return err
			}, 20},
		}

		for i, step := range steps {
			if err := step.run(); err != nil {
				t.Fatalf("step %d failed: %v", i, err)
			}
		}

		txns, err := f.uc.GetTransactions(ctx, usecase.GetTransactionsInput{AccountID: "acc-1", UserID: "user-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(txns) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txns))
		}

		for i, step := range steps {
			if !txns[i].Amount.Equal(decimal.NewFromInt(step.amount)) {
				t.Errorf("position %d: expected amount %d, got %s", i, step.amount, txns[i].Amount)
			}
			if txns[i].Status != domain.TransactionStatusCompleted {
				t.Errorf("position %d: expected COMPLETED, got %s", i, txns[i].Status)
			}
		}
	})

	t.Run("history read is ownership gated", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		_, err := f.uc.GetTransactions(ctx, usecase.GetTransactionsInput{AccountID: "acc-1", UserID: "user-2"})
		if !errors.Is(err, domain.ErrUnauthorizedAccess) {
			t.Errorf("expected ErrUnauthorizedAccess, got %v", err)
		}
	})
}

func TestLedgerReferenceDedup(t *testing.T) {
	ctx := context.Background()

	f := newLedgerFixture()
	f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

	first, err := f.uc.Deposit(ctx, usecase.DepositInput{
		AccountID: "acc-1",
		UserID:    "user-1",
		Amount:    decimal.NewFromInt(10),
		Reference: "TXN-RETRY-1",
	})
	if err != nil {
		t.Fatalf("first deposit failed: %v", err)
	}

	second, err := f.uc.Deposit(ctx, usecase.DepositInput{
		AccountID: "acc-1",
		UserID:    "user-1",
		Amount:    decimal.NewFromInt(10),
		Reference: "TXN-RETRY-1",
	})
	if err != nil {
		t.Fatalf("replayed deposit failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected replay to return the original transaction, got %s and %s", first.ID, second.ID)
	}
	if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(110)) {
		t.Errorf("replay must not credit twice, expected 110, got %s", got)
	}
	if len(f.txnRepo.All()) != 1 {
		t.Errorf("expected a single record for both attempts, got %d", len(f.txnRepo.All()))
	}
}

func TestLedgerReferenceConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("reference held by another user's operation is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)
		f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusActive)

		if _, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(60),
			Reference: "invoice-123",
		}); err != nil {
			t.Fatalf("withdrawal failed: %v", err)
		}

		txn, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-2",
			UserID:    "user-2",
			Amount:    decimal.NewFromInt(40),
			Reference: "invoice-123",
		})
		if !errors.Is(err, domain.ErrReferenceConflict) {
			t.Fatalf("expected ErrReferenceConflict, got %v", err)
		}
		if txn != nil {
			t.Fatalf("conflicting reference must not hand back the foreign record, got %+v", txn)
		}
		if got := f.balance(t, "acc-2"); !got.Equal(decimal.Zero) {
			t.Errorf("rejected deposit must not credit, got %s", got)
		}
	})

	t.Run("same account but different amount is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		if _, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
			Reference: "TXN-R1",
		}); err != nil {
			t.Fatalf("first deposit failed: %v", err)
		}

		_, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(20),
			Reference: "TXN-R1",
		})
		if !errors.Is(err, domain.ErrReferenceConflict) {
			t.Errorf("expected ErrReferenceConflict, got %v", err)
		}
		if got := f.balance(t, "acc-1"); !got.Equal(decimal.NewFromInt(110)) {
			t.Errorf("expected only the first credit, got %s", got)
		}
	})

	t.Run("same account and amount but different type is rejected", func(t *testing.T) {
		f := newLedgerFixture()
		f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)

		if _, err := f.uc.Deposit(ctx, usecase.DepositInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
			Reference: "TXN-R2",
		}); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}

		_, err := f.uc.Withdraw(ctx, usecase.WithdrawInput{
			AccountID: "acc-1",
			UserID:    "user-1",
			Amount:    decimal.NewFromInt(10),
			Reference: "TXN-R2",
		})
		if !errors.Is(err, domain.ErrReferenceConflict) {
			t.Errorf("expected ErrReferenceConflict, got %v", err)
		}
	})
}

func TestLedgerGetTransactionByReference(t *testing.T) {
	ctx := context.Background()

	f := newLedgerFixture()
	f.seedAccount("acc-1", "user-1", 100, domain.AccountStatusActive)
	f.seedAccount("acc-2", "user-2", 0, domain.AccountStatusActive)

	if _, err := f.uc.Transfer(ctx, usecase.TransferInput{
		SourceAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
		UserID:               "user-1",
		Amount:               decimal.NewFromInt(25),
		Reference:            "TXN-READ-1",
	}); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	t.Run("source owner can read", func(t *testing.T) {
		txn, err := f.uc.GetTransactionByReference(ctx, "TXN-READ-1", "user-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if txn.Reference != "TXN-READ-1" {
			t.Errorf("unexpected transaction %+v", txn)
		}
	})

	t.Run("destination owner can read", func(t *testing.T) {
		if _, err := f.uc.GetTransactionByReference(ctx, "TXN-READ-1", "user-2"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := f.uc.GetTransactionByReference(ctx, "TXN-READ-1", "user-3")
		if !errors.Is(err, domain.ErrUnauthorizedAccess) {
			t.Errorf("expected ErrUnauthorizedAccess, got %v", err)
		}
	})

	t.Run("unknown reference reported as not found", func(t *testing.T) {
		_, err := f.uc.GetTransactionByReference(ctx, "TXN-MISSING", "user-1")
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}
