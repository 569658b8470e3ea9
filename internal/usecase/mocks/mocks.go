package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository. Any *Func field
// overrides the default map-backed behavior.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByNumberFunc       func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc      func(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByOwnerFunc       func(ctx context.Context, ownerUserID string) ([]*domain.Account, error)
	DeleteFunc            func(ctx context.Context, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing any override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts {
		if account.Number == number {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		account, err := m.GetByID(ctx, id)
		if err != nil {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Balance = balance
	account.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Status = status
	account.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerUserID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, account := range m.accounts {
		if account.OwnerUserID == ownerUserID {
			copied := *account
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	RecordFailedFunc func(ctx context.Context, txn *domain.Transaction) error
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByRefFunc     func(ctx context.Context, reference string) (*domain.Transaction, error)
	ListByAccountFn  func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.store(txn)
	return nil
}

func (m *MockTransactionRepository) RecordFailed(ctx context.Context, txn *domain.Transaction) error {
	if m.RecordFailedFunc != nil {
		return m.RecordFailedFunc(ctx, txn)
	}
	m.store(txn)
	return nil
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	txn.Status = status
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *txn
	return &copied, nil
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	if m.GetByRefFunc != nil {
		return m.GetByRefFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if m.transactions[id].Reference == reference {
			copied := *m.transactions[id]
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFn != nil {
		return m.ListByAccountFn(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// insertion order matches creation time in these mocks
	var result []*domain.Transaction
	for _, id := range m.order {
		txn := m.transactions[id]
		if txn.Touches(accountID) {
			copied := *txn
			result = append(result, &copied)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// All returns every stored transaction in insertion order.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Transaction, 0, len(m.order))
	for _, id := range m.order {
		copied := *m.transactions[id]
		result = append(result, &copied)
	}
	return result
}

func (m *MockTransactionRepository) store(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *txn
	if _, ok := m.transactions[txn.ID]; !ok {
		m.order = append(m.order, txn.ID)
	}
	m.transactions[txn.ID] = &copied
}

// MockTransaction is a no-op unit of work.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu      sync.Mutex
	Started []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.Started = append(m.Started, tx)
	m.mu.Unlock()
	return tx, nil
}

// MockIDGenerator generates sequential test IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "id-" + itoa(m.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
