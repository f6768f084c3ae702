package commission

import (
	"time"

	"gorm.io/gorm"
)

// Commission statuses. A commission is created PENDING alongside its
// contract and only accrues a release schedule once explicitly started.
const (
	StatusPending           = "PENDING"
	StatusOnGoing           = "ON_GOING"
	StatusDone              = "DONE"
	StatusContractForfeited = "CONTRACT_FORFEITED"
	StatusDeleted           = "DELETED"
)

// AgentCommission tracks the commission owed to an agent for one contract.
type AgentCommission struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ContractID uint `gorm:"not null;uniqueIndex" json:"contractId"`
	AgentID    uint `gorm:"not null;index" json:"agentId"`

	Total   float64 `gorm:"not null" json:"total"`
	Balance float64 `gorm:"not null" json:"balance"`

	Terms                int        `gorm:"not null;default:0" json:"terms"`
	ReleaseStartDate     *time.Time `json:"releaseStartDate,omitempty"`
	RecurringReleaseDay  int        `gorm:"not null;default:0" json:"recurringReleaseDay"`
	NextReleaseDate      *time.Time `json:"nextReleaseDate,omitempty"`
	ReleaseEndDate       *time.Time `json:"releaseEndDate,omitempty"`
	MonthlyReleaseAmount float64    `gorm:"not null;default:0" json:"monthlyReleaseAmount"`

	Status    string    `gorm:"size:30;not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AgentCommission{})
}
