package agent

import (
	"time"

	"gorm.io/gorm"
)

// Agent is a sales agent entitled to a per-contract commission.
type Agent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"size:100;not null" json:"firstName"`
	LastName      string    `gorm:"size:100;not null" json:"lastName"`
	Email         string    `gorm:"size:100;index" json:"email"`
	ContactNumber string    `gorm:"size:30" json:"contactNumber"`
	Address       string    `gorm:"size:255" json:"address"`
	Deleted       bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *Agent) FullName() string {
	return a.FirstName + " " + a.LastName
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Agent{})
}
