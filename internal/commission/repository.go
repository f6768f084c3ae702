package commission

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *AgentCommission) error
	FindByID(db *gorm.DB, id uint) (*AgentCommission, error)
	FindByContract(db *gorm.DB, contractID uint) (*AgentCommission, error)
	ListByAgent(db *gorm.DB, agentID uint) ([]AgentCommission, error)
	Update(db *gorm.DB, c *AgentCommission) error
	UpdateStatus(db *gorm.DB, id uint, status string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *AgentCommission) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*AgentCommission, error) {
	var c AgentCommission
	if err := db.Where("status <> ?", StatusDeleted).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) FindByContract(db *gorm.DB, contractID uint) (*AgentCommission, error) {
	var c AgentCommission
	err := db.Where("contract_id = ? AND status <> ?", contractID, StatusDeleted).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListByAgent(db *gorm.DB, agentID uint) ([]AgentCommission, error) {
	var list []AgentCommission
	err := db.Where("agent_id = ? AND status <> ?", agentID, StatusDeleted).
		Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *AgentCommission) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) UpdateStatus(db *gorm.DB, id uint, status string) error {
	res := db.Model(&AgentCommission{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
