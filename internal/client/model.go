package client

import (
	"time"

	"gorm.io/gorm"
)

// Client is a lot buyer.
type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"size:100;not null" json:"firstName"`
	LastName      string    `gorm:"size:100;not null" json:"lastName"`
	MiddleName    string    `gorm:"size:100" json:"middleName,omitempty"`
	Email         string    `gorm:"size:100;index" json:"email"`
	ContactNumber string    `gorm:"size:30" json:"contactNumber"`
	Address       string    `gorm:"size:255" json:"address"`
	Occupation    string    `gorm:"size:100" json:"occupation,omitempty"`
	Deleted       bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FullName renders "First Last" for receipts and notices.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Client{})
}
