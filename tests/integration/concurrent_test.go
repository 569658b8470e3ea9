package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/usecase"
)

// Opposing transfers lock the same two rows. Sorted lock acquisition must
// keep them deadlock-free and the total balance constant.
func TestConcurrentOpposingTransfers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.db.CreateTestUser(ctx, "judy@example.com", "Sup3rSecret")
	accountA := env.db.CreateTestAccount(ctx, user.ID, decimal.NewFromInt(1000))
	accountB := env.db.CreateTestAccount(ctx, user.ID, decimal.NewFromInt(1000))

	const workers = 10
	const transfersPerWorker = 5

	var wg sync.WaitGroup
	errs := make(chan error, workers*transfersPerWorker)

	for i := 0; i < workers; i++ {
		source, destination := accountA.ID, accountB.ID
		if i%2 == 1 {
			source, destination = destination, source
		}

		wg.Add(1)
		go func(source, destination string) {
			defer wg.Done()
			for j := 0; j < transfersPerWorker; j++ {
				_, err := env.ledgerUC.Transfer(ctx, usecase.TransferInput{
					SourceAccountID:      source,
					DestinationAccountID: destination,
					UserID:               user.ID,
					Amount:               decimal.NewFromInt(1),
				})
				if err != nil {
					errs <- err
				}
			}
		}(source, destination)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("transfer failed: %v", err)
	}

	balanceA, err := env.accountRepo.GetByID(ctx, accountA.ID)
	if err != nil {
		t.Fatalf("failed to reload account A: %v", err)
	}
	balanceB, err := env.accountRepo.GetByID(ctx, accountB.ID)
	if err != nil {
		t.Fatalf("failed to reload account B: %v", err)
	}

	total := balanceA.Balance.Add(balanceB.Balance)
	if !total.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected total 2000, got %s (A=%s B=%s)", total, balanceA.Balance, balanceB.Balance)
	}
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.db.CreateTestUser(ctx, "kevin@example.com", "Sup3rSecret")
	account := env.db.CreateTestAccount(ctx, user.ID, decimal.NewFromInt(100))

	const workers = 20

	var wg sync.WaitGroup
	succeeded := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.ledgerUC.Withdraw(ctx, usecase.WithdrawInput{
				AccountID: account.ID,
				UserID:    user.ID,
				Amount:    decimal.NewFromInt(10),
			})
			if err == nil {
				succeeded <- struct{}{}
			}
		}()
	}

	wg.Wait()
	close(succeeded)

	wins := 0
	for range succeeded {
		wins++
	}
	if wins > 10 {
		t.Fatalf("at most 10 withdrawals of 10 fit into 100, got %d", wins)
	}

	updated, err := env.accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("failed to reload account: %v", err)
	}
	if updated.Balance.IsNegative() {
		t.Fatalf("balance must never go negative, got %s", updated.Balance)
	}

	expected := decimal.NewFromInt(100).Sub(decimal.NewFromInt(int64(wins * 10)))
	if !updated.Balance.Equal(expected) {
		t.Fatalf("expected balance %s after %d withdrawals, got %s", expected, wins, updated.Balance)
	}
}
