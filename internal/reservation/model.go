package reservation

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses.
const (
	StatusActive            = "ACTIVE"
	StatusDone              = "DONE"
	StatusForfeited         = "FORFEITED"
	StatusContractForfeited = "CONTRACT_FORFEITED"
	StatusDeleted           = "DELETED"
)

// ValidityWindow is how long a reservation holds a lot before it lapses.
const ValidityWindow = 7 * 24 * time.Hour

// Reservation holds a lot for a client pending contract signing. At most one
// reservation per lot may be ACTIVE or DONE at any time.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"clientId"`
	AgentID   uint      `gorm:"not null;index" json:"agentId"`
	LotID     uint      `gorm:"not null;index" json:"lotId"`
	Validity  time.Time `gorm:"not null" json:"validity"`
	Status    string    `gorm:"size:30;not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Reservation{})
}
