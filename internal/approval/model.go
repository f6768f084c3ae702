package approval

import (
	"time"

	"gorm.io/gorm"
)

// Request statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Request is a staged mutation awaiting admin approval. One generic row
// covers every entity: the action name selects the executor and the payload
// is the original request body, re-dispatched verbatim on approval.
type Request struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Action     string     `gorm:"size:60;not null;index" json:"action"`
	EntityID   uint       `gorm:"not null;default:0" json:"entityId"`
	Payload    string     `gorm:"type:text;not null" json:"payload"`
	Status     string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	RequestedBy uint      `gorm:"not null" json:"requestedBy"`
	DecidedBy  *uint      `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	Reason     string     `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Request{})
}
