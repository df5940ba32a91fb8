package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Abeltade/derese/internal/models"
	"github.com/Abeltade/derese/internal/repository"
	"github.com/Abeltade/derese/internal/spreadsheet"
	"gorm.io/gorm"
)

var (
	ErrWoredaExists   = errors.New("a woreda with this name already exists")
	ErrWoredaNotFound = errors.New("woreda not found")
	ErrKebeleNotFound = errors.New("kebele not found")
	ErrNameRequired   = errors.New("name cannot be empty")
	ErrNoKebeleNames  = errors.New("at least one kebele name is required")
)

// HierarchyService handles Woreda/Kebele management and the bulk
// import engine.
type HierarchyService struct {
	hierarchyRepo repository.HierarchyRepository
}

// NewHierarchyService creates a new HierarchyService.
func NewHierarchyService(hierarchyRepo repository.HierarchyRepository) *HierarchyService {
	return &HierarchyService{
		hierarchyRepo: hierarchyRepo,
	}
}

// CreateWoreda adds a Woreda, pre-checking the name so a duplicate
// surfaces as ErrWoredaExists.
func (s *HierarchyService) CreateWoreda(name string) (*models.Woreda, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := s.checkWoredaNameFree(s.hierarchyRepo, name); err != nil {
		return nil, err
	}

	woreda := &models.Woreda{Name: name}
	if err := s.hierarchyRepo.CreateWoreda(woreda); err != nil {
		return nil, fmt.Errorf("failed to create woreda: %w", err)
	}

	return woreda, nil
}

// RenameWoreda changes a Woreda's name. Existing farmer snapshots are
// deliberately left untouched.
func (s *HierarchyService) RenameWoreda(id uint64, name string) (*models.Woreda, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	woreda, err := s.hierarchyRepo.FindWoredaByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWoredaNotFound
		}
		return nil, fmt.Errorf("failed to find woreda: %w", err)
	}

	if name != woreda.Name {
		if err := s.checkWoredaNameFree(s.hierarchyRepo, name); err != nil {
			return nil, err
		}
	}

	woreda.Name = name
	if err := s.hierarchyRepo.UpdateWoreda(woreda); err != nil {
		return nil, fmt.Errorf("failed to update woreda: %w", err)
	}

	return woreda, nil
}

// DeleteWoreda removes a Woreda and all its Kebele children.
func (s *HierarchyService) DeleteWoreda(id uint64) error {
	if _, err := s.hierarchyRepo.FindWoredaByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWoredaNotFound
		}
		return fmt.Errorf("failed to find woreda: %w", err)
	}

	if err := s.hierarchyRepo.DeleteWoredaCascade(id); err != nil {
		return fmt.Errorf("failed to delete woreda: %w", err)
	}
	return nil
}

// ListWoredas returns all Woredas ordered by name with children loaded.
func (s *HierarchyService) ListWoredas() ([]models.Woreda, error) {
	woredas, err := s.hierarchyRepo.ListWoredas()
	if err != nil {
		return nil, fmt.Errorf("failed to list woredas: %w", err)
	}
	return woredas, nil
}

// AddKebeles batch-adds named Kebeles under a Woreda. Blank names are
// skipped. Returns the created rows.
func (s *HierarchyService) AddKebeles(woredaID uint64, names []string) ([]models.Kebele, error) {
	woreda, err := s.hierarchyRepo.FindWoredaByID(woredaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWoredaNotFound
		}
		return nil, fmt.Errorf("failed to find woreda: %w", err)
	}

	kebeles := make([]models.Kebele, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kebeles = append(kebeles, models.Kebele{
			Name:     name,
			WoredaID: woreda.ID,
		})
	}
	if len(kebeles) == 0 {
		return nil, ErrNoKebeleNames
	}

	if err := s.hierarchyRepo.CreateKebeles(kebeles); err != nil {
		return nil, fmt.Errorf("failed to create kebeles: %w", err)
	}

	return kebeles, nil
}

// UpdateKebeleInput carries a Kebele rename and/or parent reassignment.
type UpdateKebeleInput struct {
	Name     string
	WoredaID uint64
}

// UpdateKebele renames a Kebele and reassigns its parent Woreda. The
// new parent must exist.
func (s *HierarchyService) UpdateKebele(id uint64, input UpdateKebeleInput) (*models.Kebele, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	kebele, err := s.hierarchyRepo.FindKebeleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKebeleNotFound
		}
		return nil, fmt.Errorf("failed to find kebele: %w", err)
	}

	if input.WoredaID != kebele.WoredaID {
		if _, err := s.hierarchyRepo.FindWoredaByID(input.WoredaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWoredaNotFound
			}
			return nil, fmt.Errorf("failed to find woreda: %w", err)
		}
	}

	kebele.Name = name
	kebele.WoredaID = input.WoredaID
	if err := s.hierarchyRepo.UpdateKebele(kebele); err != nil {
		return nil, fmt.Errorf("failed to update kebele: %w", err)
	}

	return kebele, nil
}

// DeleteKebele removes a single Kebele.
func (s *HierarchyService) DeleteKebele(id uint64) error {
	if _, err := s.hierarchyRepo.FindKebeleByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKebeleNotFound
		}
		return fmt.Errorf("failed to find kebele: %w", err)
	}

	if err := s.hierarchyRepo.DeleteKebele(id); err != nil {
		return fmt.Errorf("failed to delete kebele: %w", err)
	}
	return nil
}

// ListKebeles returns the children of a Woreda. A Woreda without
// children yields an empty slice, not an error.
func (s *HierarchyService) ListKebeles(woredaID uint64) ([]models.Kebele, error) {
	if _, err := s.hierarchyRepo.FindWoredaByID(woredaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWoredaNotFound
		}
		return nil, fmt.Errorf("failed to find woreda: %w", err)
	}

	kebeles, err := s.hierarchyRepo.ListKebelesByWoreda(woredaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kebeles: %w", err)
	}
	return kebeles, nil
}

// ImportRows ingests (Woreda, Kebele) pairs from an upload in input
// order, inside one transaction. The first occurrence of a Woreda name
// creates the row; later occurrences reuse it. A Kebele is appended
// for every valid row, including exact repeats; duplicate input rows
// therefore produce duplicate Kebele rows. Rows with either field
// blank are skipped. Returns the number of rows that produced a
// Kebele.
func (s *HierarchyService) ImportRows(rows []spreadsheet.HierarchyRow) (int, error) {
	processed := 0

	err := s.hierarchyRepo.ImportRows(func(tx repository.HierarchyRepository) error {
		for _, row := range rows {
			if row.Woreda == "" || row.Kebele == "" {
				continue
			}

			woreda, err := tx.FindWoredaByName(row.Woreda)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				woreda = &models.Woreda{Name: row.Woreda}
				if err := tx.CreateWoreda(woreda); err != nil {
					return fmt.Errorf("failed to create woreda %q: %w", row.Woreda, err)
				}
			} else if err != nil {
				return fmt.Errorf("failed to look up woreda %q: %w", row.Woreda, err)
			}

			kebele := &models.Kebele{
				Name:     row.Kebele,
				WoredaID: woreda.ID,
			}
			if err := tx.CreateKebele(kebele); err != nil {
				return fmt.Errorf("failed to create kebele %q: %w", row.Kebele, err)
			}

			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return processed, nil
}

func (s *HierarchyService) checkWoredaNameFree(repo repository.HierarchyRepository, name string) error {
	if _, err := repo.FindWoredaByName(name); err == nil {
		return ErrWoredaExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check woreda name: %w", err)
	}
	return nil
}
