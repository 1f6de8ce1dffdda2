package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid представляет отклик фрилансера на проект.
// Переходит из pending в accepted или rejected ровно один раз,
// после этого запись неизменяема.
type Bid struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProjectID    uuid.UUID `db:"project_id" json:"project_id"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Amount       float64   `db:"amount" json:"amount"`
	DeliveryTime int       `db:"delivery_time" json:"delivery_time"`
	Proposal     string    `db:"proposal" json:"proposal"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
