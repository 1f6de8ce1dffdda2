package models

import (
	"time"

	"github.com/google/uuid"
)

// Project описывает проект, размещённый клиентом.
// Статус проходит open -> in_progress -> completed либо уходит в in_dispute
// при отклонении работы клиентом.
type Project struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	ClientID             uuid.UUID  `db:"client_id" json:"client_id"`
	Title                string     `db:"title" json:"title"`
	Description          string     `db:"description" json:"description"`
	Budget               float64    `db:"budget" json:"budget"`
	Duration             int        `db:"duration" json:"duration"`
	Category             string     `db:"category" json:"category"`
	Status               string     `db:"status" json:"status"`
	AssignedFreelancerID *uuid.UUID `db:"assigned_freelancer_id" json:"assigned_freelancer_id,omitempty"`
	FreelancerApproved   bool       `db:"freelancer_approved" json:"freelancer_approved"`
	ClientApproved       bool       `db:"client_approved" json:"client_approved"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
	BidsCount            *int       `db:"bids_count" json:"bids_count,omitempty"`
}

// IsOwnedBy проверяет, принадлежит ли проект пользователю.
func (p *Project) IsOwnedBy(userID uuid.UUID) bool {
	return p.ClientID == userID
}

// IsAssignedTo проверяет, назначен ли проект исполнителю.
func (p *Project) IsAssignedTo(userID uuid.UUID) bool {
	return p.AssignedFreelancerID != nil && *p.AssignedFreelancerID == userID
}
