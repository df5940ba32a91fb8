package repository

import (
	"github.com/Abeltade/derese/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// HierarchyRepository defines the interface for Woreda/Kebele data access
type HierarchyRepository interface {
	// CreateWoreda creates a new Woreda
	CreateWoreda(woreda *models.Woreda) error

	// FindWoredaByID finds a Woreda by ID
	FindWoredaByID(id uint64) (*models.Woreda, error)

	// FindWoredaByName finds a Woreda by exact name match
	FindWoredaByName(name string) (*models.Woreda, error)

	// ListWoredas lists all Woredas ordered by name, children preloaded
	ListWoredas() ([]models.Woreda, error)

	// UpdateWoreda updates a Woreda
	UpdateWoreda(woreda *models.Woreda) error

	// DeleteWoredaCascade deletes a Woreda and all its Kebele children
	// in one transaction
	DeleteWoredaCascade(id uint64) error

	// CreateKebele creates a new Kebele
	CreateKebele(kebele *models.Kebele) error

	// CreateKebeles creates a batch of Kebeles
	CreateKebeles(kebeles []models.Kebele) error

	// FindKebeleByID finds a Kebele by ID
	FindKebeleByID(id uint64) (*models.Kebele, error)

	// ListKebelesByWoreda lists the children of a Woreda ordered by name
	ListKebelesByWoreda(woredaID uint64) ([]models.Kebele, error)

	// UpdateKebele updates a Kebele
	UpdateKebele(kebele *models.Kebele) error

	// DeleteKebele deletes a Kebele
	DeleteKebele(id uint64) error

	// ImportRows runs fn inside a single transaction against a
	// transactional copy of the repository. Used by the bulk import so
	// a failure on any row rolls back the whole batch.
	ImportRows(fn func(tx HierarchyRepository) error) error
}

// FarmerFilter holds filtering options for listing farmers
type FarmerFilter struct {
	// Woreda filters on the stored snapshot string, exact and
	// case-sensitive, when non-nil.
	Woreda   *string
	Page     int
	PageSize int
}

// FarmerRepository defines the interface for farmer data access
type FarmerRepository interface {
	// Create creates a new farmer record
	Create(farmer *models.Farmer) error

	// FindByID finds a farmer by ID
	FindByID(id uint64) (*models.Farmer, error)

	// List retrieves farmers with filtering and pagination, newest
	// registration first
	List(filter FarmerFilter) ([]models.Farmer, int64, error)

	// Update updates a farmer
	Update(farmer *models.Farmer) error

	// Delete deletes a farmer
	Delete(id uint64) error
}
