// internal/project/repository.go
package project

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, p *Project) error
	FindByID(db *gorm.DB, id uint) (*Project, error)
	List(db *gorm.DB) ([]Project, error)
	Update(db *gorm.DB, p *Project) error
	AddPhase(db *gorm.DB, ph *Phase) error
	AddBlock(db *gorm.DB, b *Block) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *Project) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Project, error) {
	var p Project
	err := db.Preload("Phases.Blocks").Where("deleted = false").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) List(db *gorm.DB) ([]Project, error) {
	var list []Project
	err := db.Where("deleted = false").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, p *Project) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) AddPhase(db *gorm.DB, ph *Phase) error {
	return db.Create(ph).Error
}

func (r *repositoryImpl) AddBlock(db *gorm.DB, b *Block) error {
	return db.Create(b).Error
}
