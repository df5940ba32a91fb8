package repository

import (
	"github.com/Abeltade/derese/internal/models"
	"gorm.io/gorm"
)

// GormFarmerRepository is a GORM implementation of FarmerRepository
type GormFarmerRepository struct {
	db *gorm.DB
}

// NewFarmerRepository creates a new FarmerRepository
func NewFarmerRepository(db *gorm.DB) FarmerRepository {
	return &GormFarmerRepository{db: db}
}

// Create creates a new farmer record
func (r *GormFarmerRepository) Create(farmer *models.Farmer) error {
	return r.db.Create(farmer).Error
}

// FindByID finds a farmer by ID
func (r *GormFarmerRepository) FindByID(id uint64) (*models.Farmer, error) {
	var farmer models.Farmer
	if err := r.db.First(&farmer, id).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

// List retrieves farmers with filtering and pagination
func (r *GormFarmerRepository) List(filter FarmerFilter) ([]models.Farmer, int64, error) {
	var farmers []models.Farmer

	query := r.db.Model(&models.Farmer{})

	// Exact case-sensitive match on the snapshot string
	if filter.Woreda != nil {
		query = query.Where("woreda = ?", *filter.Woreda)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("timestamp DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&farmers).Error; err != nil {
		return nil, 0, err
	}

	return farmers, total, nil
}

// Update updates a farmer
func (r *GormFarmerRepository) Update(farmer *models.Farmer) error {
	return r.db.Save(farmer).Error
}

// Delete deletes a farmer
func (r *GormFarmerRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Farmer{}, id).Error
}
