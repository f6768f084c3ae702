package payment

import (
	"time"

	"gorm.io/gorm"
)

// Transaction types. A payment settles exactly one schedule slot, identified
// by TargetDueDate, for exactly one owner (contract, reservation or agent
// commission).
const (
	TypeReservationFee         = "RESERVATION_FEE"
	TypePartialDownPayment     = "PARTIAL_DOWN_PAYMENT"
	TypeFullDownPayment        = "FULL_DOWN_PAYMENT"
	TypeMonthlyPayment         = "MONTHLY_PAYMENT"
	TypeTCPFullPayment         = "TCP_FULL_PAYMENT"
	TypeAgentCommissionRelease = "AGENT_COMMISSION_RELEASE"
)

// Payment modes.
const (
	ModeCash         = "CASH"
	ModeCheck        = "CHECK"
	ModeBankTransfer = "BANK_TRANSFER"
)

// Payment is an immutable financial transaction record. Rows are only ever
// created, never updated or deleted.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Exactly one of the three owners is set.
	ContractID        *uint `gorm:"index" json:"contractId,omitempty"`
	ReservationID     *uint `gorm:"index" json:"reservationId,omitempty"`
	AgentCommissionID *uint `gorm:"index" json:"agentCommissionId,omitempty"`

	Amount          float64   `gorm:"not null" json:"amount"`
	Mode            string    `gorm:"size:30;not null" json:"mode"`
	Reference       string    `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	TransactionType string    `gorm:"size:40;not null;index" json:"transactionType"`
	TargetDueDate   time.Time `gorm:"not null;index" json:"targetDueDate"`
	PaymentDate     time.Time `gorm:"not null" json:"paymentDate"`

	// Penalty snapshot frozen at payment time, kept for audit even when
	// the penalty was waived.
	PenaltyAmount float64 `gorm:"not null;default:0" json:"penaltyAmount"`
	PenaltyCount  int     `gorm:"not null;default:0" json:"penaltyCount"`
	WaivedPenalty bool    `gorm:"not null;default:false" json:"waivedPenalty"`
	WaivedReason  string  `gorm:"size:255" json:"waivedReason,omitempty"`

	AttachmentPath string `gorm:"size:255" json:"attachmentPath,omitempty"`
	ReceivedByID   uint   `gorm:"index" json:"receivedById"`

	CreatedAt time.Time `json:"createdAt"`
}

// Migrate creates the payments table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Payment{})
}
