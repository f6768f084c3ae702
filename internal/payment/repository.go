package payment

import "gorm.io/gorm"

// Repository methods take the *gorm.DB so the same repository can run inside
// or outside a transaction.
type Repository interface {
	Create(db *gorm.DB, p *Payment) error
	FindByID(db *gorm.DB, id uint) (*Payment, error)
	ListByContract(db *gorm.DB, contractID uint) ([]Payment, error)
	ListByReservation(db *gorm.DB, reservationID uint) ([]Payment, error)
	ListByCommission(db *gorm.DB, commissionID uint) ([]Payment, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *Payment) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Payment, error) {
	var p Payment
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListByContract(db *gorm.DB, contractID uint) ([]Payment, error) {
	var list []Payment
	err := db.Where("contract_id = ?", contractID).
		Order("target_due_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByReservation(db *gorm.DB, reservationID uint) ([]Payment, error) {
	var list []Payment
	err := db.Where("reservation_id = ?", reservationID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByCommission(db *gorm.DB, commissionID uint) ([]Payment, error) {
	var list []Payment
	err := db.Where("agent_commission_id = ?", commissionID).
		Order("target_due_date ASC, id ASC").
		Find(&list).Error
	return list, err
}
