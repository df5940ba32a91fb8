package repository

import (
	"github.com/Abeltade/derese/internal/models"
	"gorm.io/gorm"
)

// GormHierarchyRepository is a GORM implementation of HierarchyRepository
type GormHierarchyRepository struct {
	db *gorm.DB
}

// NewHierarchyRepository creates a new HierarchyRepository
func NewHierarchyRepository(db *gorm.DB) HierarchyRepository {
	return &GormHierarchyRepository{db: db}
}

// CreateWoreda creates a new Woreda
func (r *GormHierarchyRepository) CreateWoreda(woreda *models.Woreda) error {
	return r.db.Create(woreda).Error
}

// FindWoredaByID finds a Woreda by ID
func (r *GormHierarchyRepository) FindWoredaByID(id uint64) (*models.Woreda, error) {
	var woreda models.Woreda
	if err := r.db.First(&woreda, id).Error; err != nil {
		return nil, err
	}
	return &woreda, nil
}

// FindWoredaByName finds a Woreda by exact name match
func (r *GormHierarchyRepository) FindWoredaByName(name string) (*models.Woreda, error) {
	var woreda models.Woreda
	if err := r.db.Where("name = ?", name).First(&woreda).Error; err != nil {
		return nil, err
	}
	return &woreda, nil
}

// ListWoredas lists all Woredas ordered by name with their Kebeles preloaded
func (r *GormHierarchyRepository) ListWoredas() ([]models.Woreda, error) {
	var woredas []models.Woreda
	err := r.db.
		Preload("Kebeles", func(db *gorm.DB) *gorm.DB {
			return db.Order("kebeles.name ASC")
		}).
		Order("woredas.name ASC").
		Find(&woredas).Error
	if err != nil {
		return nil, err
	}
	return woredas, nil
}

// UpdateWoreda updates a Woreda
func (r *GormHierarchyRepository) UpdateWoreda(woreda *models.Woreda) error {
	return r.db.Save(woreda).Error
}

// DeleteWoredaCascade deletes a Woreda and its Kebele children atomically.
// Children are removed first so the parent row never dangles references.
func (r *GormHierarchyRepository) DeleteWoredaCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("woreda_id = ?", id).Delete(&models.Kebele{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Woreda{}, id).Error
	})
}

// CreateKebele creates a new Kebele
func (r *GormHierarchyRepository) CreateKebele(kebele *models.Kebele) error {
	return r.db.Create(kebele).Error
}

// CreateKebeles creates a batch of Kebeles
func (r *GormHierarchyRepository) CreateKebeles(kebeles []models.Kebele) error {
	if len(kebeles) == 0 {
		return nil
	}
	return r.db.Create(&kebeles).Error
}

// FindKebeleByID finds a Kebele by ID
func (r *GormHierarchyRepository) FindKebeleByID(id uint64) (*models.Kebele, error) {
	var kebele models.Kebele
	if err := r.db.First(&kebele, id).Error; err != nil {
		return nil, err
	}
	return &kebele, nil
}

// ListKebelesByWoreda lists the children of a Woreda ordered by name
func (r *GormHierarchyRepository) ListKebelesByWoreda(woredaID uint64) ([]models.Kebele, error) {
	var kebeles []models.Kebele
	err := r.db.
		Where("woreda_id = ?", woredaID).
		Order("name ASC").
		Find(&kebeles).Error
	if err != nil {
		return nil, err
	}
	return kebeles, nil
}

// UpdateKebele updates a Kebele
func (r *GormHierarchyRepository) UpdateKebele(kebele *models.Kebele) error {
	return r.db.Save(kebele).Error
}

// DeleteKebele deletes a Kebele
func (r *GormHierarchyRepository) DeleteKebele(id uint64) error {
	return r.db.Delete(&models.Kebele{}, id).Error
}

// ImportRows runs fn against a transactional repository so the bulk
// import commits or rolls back as one batch.
func (r *GormHierarchyRepository) ImportRows(fn func(tx HierarchyRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormHierarchyRepository{db: tx})
	})
}
