package client

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Client) error
	FindByID(db *gorm.DB, id uint) (*Client, error)
	List(db *gorm.DB) ([]Client, error)
	Update(db *gorm.DB, c *Client) error
	SoftDelete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Client) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Client, error) {
	var c Client
	if err := db.Where("deleted = false").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) List(db *gorm.DB) ([]Client, error) {
	var list []Client
	err := db.Where("deleted = false").Order("last_name ASC, first_name ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *Client) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) SoftDelete(db *gorm.DB, id uint) error {
	res := db.Model(&Client{}).Where("id = ?", id).Update("deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
