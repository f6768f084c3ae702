// internal/project/model.go
package project

import (
	"time"

	"gorm.io/gorm"
)

// Project is a subdivision development, split into phases, each phase into
// blocks. Lots hang off blocks (internal/lot).
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Location  string    `gorm:"size:255" json:"location"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
	Phases    []Phase   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"phases,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Phase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"projectId"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Blocks    []Block   `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"blocks,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PhaseID   uint      `gorm:"not null;index" json:"phaseId"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Project{}, &Phase{}, &Block{})
}
