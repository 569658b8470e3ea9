
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	OwnerUserID string             `json:"owner_user_id"`
	Type        string             `json:"type"`
	Balance     pgtype.Numeric     `json:"balance"`
	Status      string             `json:"status"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Transaction struct {
	ID                   string             `json:"id"`
	Reference            string             `json:"reference"`
	SourceAccountID      pgtype.Text        `json:"source_account_id"`
	DestinationAccountID pgtype.Text        `json:"destination_account_id"`
	Type                 string             `json:"type"`
	Amount               pgtype.Numeric     `json:"amount"`
	Description          pgtype.Text        `json:"description"`
	Status               string             `json:"status"`
	CreatedAt            pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID             string             `json:"id"`
	Email          string             `json:"email"`
	Name           string             `json:"name"`
	HashedPassword string             `json:"hashed_password"`
	Active         bool               `json:"active"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}
