package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// События, о которых уведомляются участники сделки.
const (
	NotificationBidAccepted     = "bid_accepted"
	NotificationWorkSubmitted   = "work_submitted"
	NotificationWorkApproved    = "work_approved"
	NotificationDisputeOpened   = "dispute_opened"
	NotificationPaymentReceived = "payment_received"
)

// Notification описывает событие, отправленное пользователю.
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	IsRead    bool            `db:"is_read" json:"is_read"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
