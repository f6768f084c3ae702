package contract

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Contract) error
	FindByID(db *gorm.DB, id uint) (*Contract, error)
	List(db *gorm.DB, status string) ([]Contract, error)
	ListOngoing(db *gorm.DB) ([]Contract, error)
	Update(db *gorm.DB, c *Contract) error
	UpdatePenalty(db *gorm.DB, id uint, amount float64, count int) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Contract) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Contract, error) {
	var c Contract
	if err := db.Where("status <> ?", StatusDeleted).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) List(db *gorm.DB, status string) ([]Contract, error) {
	var list []Contract
	q := db.Where("status <> ?", StatusDeleted)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListOngoing(db *gorm.DB) ([]Contract, error) {
	var list []Contract
	err := db.Where("status = ?", StatusOnGoing).Order("next_payment_date ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *Contract) error {
	return db.Save(c).Error
}

// UpdatePenalty writes the projected penalty observed during breakdown
// reconstruction back onto the contract.
func (r *repositoryImpl) UpdatePenalty(db *gorm.DB, id uint, amount float64, count int) error {
	return db.Model(&Contract{}).Where("id = ?", id).Updates(map[string]interface{}{
		"penalty_amount": amount,
		"penalty_count":  count,
	}).Error
}
