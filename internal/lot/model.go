// internal/lot/model.go
package lot

import (
	"time"

	"gorm.io/gorm"
)

// Lot statuses. Reservation moves OPEN → PENDING, contract signing PENDING →
// ON_GOING, full payoff → SOLD, forfeiture back to OPEN.
const (
	StatusOpen    = "OPEN"
	StatusPending = "PENDING"
	StatusOnGoing = "ON_GOING"
	StatusSold    = "SOLD"
	StatusDeleted = "DELETED"
)

// Lot is one saleable inventory unit inside a block.
type Lot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"projectId"`
	PhaseID   uint      `gorm:"not null;index" json:"phaseId"`
	BlockID   uint      `gorm:"not null;index" json:"blockId"`
	Number    string    `gorm:"size:30;not null" json:"number"`
	AreaSqm   float64   `gorm:"not null" json:"areaSqm"`
	SqmPrice  float64   `gorm:"not null" json:"sqmPrice"`
	Status    string    `gorm:"size:20;not null;default:'OPEN';index" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BasePrice is the lot price before miscellaneous fees and interest.
func (l *Lot) BasePrice() float64 {
	return l.AreaSqm * l.SqmPrice
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lot{})
}
