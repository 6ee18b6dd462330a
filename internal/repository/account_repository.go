package repository

import (
	"github.com/cvassist/task-api/internal/models"
	"gorm.io/gorm"
)

// GormAccountRepository is a GORM implementation of AccountRepository
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

func (r *GormAccountRepository) FindByID(id uint64) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *GormAccountRepository) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("service ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *GormAccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

func (r *GormAccountRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Account{}, id).Error
}
