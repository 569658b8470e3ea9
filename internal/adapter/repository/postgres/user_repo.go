package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/postgres/generated"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.queries.CreateUser(ctx, generated.CreateUserParams{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		HashedPassword: user.HashedPassword,
		Active:         user.Active,
		CreatedAt:      timeToPgTimestamptz(user.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(user.UpdatedAt),
	})
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return rowToUser(row), nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return rowToUser(row), nil
}

func rowToUser(row generated.User) *domain.User {
	return &domain.User{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		HashedPassword: row.HashedPassword,
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
