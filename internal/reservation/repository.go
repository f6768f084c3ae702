package reservation

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, res *Reservation) error
	FindByID(db *gorm.DB, id uint) (*Reservation, error)
	FindHeldByLot(db *gorm.DB, lotID uint) (*Reservation, error)
	FindActiveByClientAndLot(db *gorm.DB, clientID, lotID uint) (*Reservation, error)
	ListActive(db *gorm.DB) ([]Reservation, error)
	List(db *gorm.DB) ([]Reservation, error)
	UpdateStatus(db *gorm.DB, id uint, status string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, res *Reservation) error {
	return db.Create(res).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Reservation, error) {
	var res Reservation
	if err := db.Where("status <> ?", StatusDeleted).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// FindHeldByLot returns the reservation currently holding the lot (ACTIVE or
// DONE), if any.
func (r *repositoryImpl) FindHeldByLot(db *gorm.DB, lotID uint) (*Reservation, error) {
	var res Reservation
	err := db.Where("lot_id = ? AND status IN ?", lotID, []string{StatusActive, StatusDone}).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repositoryImpl) FindActiveByClientAndLot(db *gorm.DB, clientID, lotID uint) (*Reservation, error) {
	var res Reservation
	err := db.Where("client_id = ? AND lot_id = ? AND status = ?", clientID, lotID, StatusActive).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repositoryImpl) ListActive(db *gorm.DB) ([]Reservation, error) {
	var list []Reservation
	err := db.Where("status = ?", StatusActive).Order("validity ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) List(db *gorm.DB) ([]Reservation, error) {
	var list []Reservation
	err := db.Where("status <> ?", StatusDeleted).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) UpdateStatus(db *gorm.DB, id uint, status string) error {
	res := db.Model(&Reservation{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
