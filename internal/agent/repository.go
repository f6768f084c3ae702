package agent

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, a *Agent) error
	FindByID(db *gorm.DB, id uint) (*Agent, error)
	List(db *gorm.DB) ([]Agent, error)
	Update(db *gorm.DB, a *Agent) error
	SoftDelete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, a *Agent) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Agent, error) {
	var a Agent
	if err := db.Where("deleted = false").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) List(db *gorm.DB) ([]Agent, error) {
	var list []Agent
	err := db.Where("deleted = false").Order("last_name ASC, first_name ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, a *Agent) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) SoftDelete(db *gorm.DB, id uint) error {
	res := db.Model(&Agent{}).Where("id = ?", id).Update("deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
