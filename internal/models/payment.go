package models

import (
	"time"

	"github.com/google/uuid"
)

// Границы одного пополнения кошелька
const (
	MinDepositAmount = 1.0
	MaxDepositAmount = 10000.0
)

// Wallet представляет кошелёк пользователя.
// Баланс никогда не уходит в минус: списание всегда выполняется
// после проверки баланса под блокировкой строки.
type Wallet struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Balance   float64   `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Payment представляет попытку платежа по принятому отклику.
// Статус терминален: SUCCESS либо FAILED.
type Payment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ProjectID     uuid.UUID `db:"project_id" json:"project_id"`
	BidID         uuid.UUID `db:"bid_id" json:"bid_id"`
	PayerID       uuid.UUID `db:"payer_id" json:"payer_id"`
	PayeeID       uuid.UUID `db:"payee_id" json:"payee_id"`
	Amount        float64   `db:"amount" json:"amount"`
	Status        string    `db:"status" json:"status"`
	TransactionID *string   `db:"transaction_id" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
