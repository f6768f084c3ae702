// internal/lot/repository.go
package lot

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, l *Lot) error
	FindByID(db *gorm.DB, id uint) (*Lot, error)
	List(db *gorm.DB, status string) ([]Lot, error)
	Update(db *gorm.DB, l *Lot) error
	UpdateStatus(db *gorm.DB, id uint, status string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, l *Lot) error {
	return db.Create(l).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Lot, error) {
	var l Lot
	if err := db.Where("status <> ?", StatusDeleted).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repositoryImpl) List(db *gorm.DB, status string) ([]Lot, error) {
	var list []Lot
	q := db.Where("status <> ?", StatusDeleted)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("project_id ASC, phase_id ASC, block_id ASC, number ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, l *Lot) error {
	return db.Save(l).Error
}

func (r *repositoryImpl) UpdateStatus(db *gorm.DB, id uint, status string) error {
	res := db.Model(&Lot{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
