package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abeltade/derese/internal/constants"
	"github.com/Abeltade/derese/internal/models"
	"github.com/Abeltade/derese/internal/repository"
	"github.com/Abeltade/derese/internal/spreadsheet"
	"gorm.io/gorm"
)

var (
	ErrFarmerNotFound     = errors.New("farmer not found")
	ErrFarmerFieldMissing = errors.New("all farmer fields are required")
	ErrKebeleNotInWoreda  = errors.New("kebele does not belong to the selected woreda")
)

// FarmerService handles farmer registration, listing, and export.
type FarmerService struct {
	farmerRepo    repository.FarmerRepository
	hierarchyRepo repository.HierarchyRepository
	exportDir     string
}

// NewFarmerService creates a new FarmerService. exportDir is where the
// registration artifact workbook is written; empty disables it.
func NewFarmerService(farmerRepo repository.FarmerRepository, hierarchyRepo repository.HierarchyRepository, exportDir string) *FarmerService {
	return &FarmerService{
		farmerRepo:    farmerRepo,
		hierarchyRepo: hierarchyRepo,
		exportDir:     exportDir,
	}
}

// RegisterFarmerInput carries a new registration.
type RegisterFarmerInput struct {
	Name         string
	Woreda       string
	Kebele       string
	Phone        string
	RegisteredBy string
}

// Register stores a farmer with a snapshot of the selected hierarchy
// names and the acting username. The Woreda must exist and the Kebele
// must be one of its children at this moment; the stored strings are
// never revalidated afterwards. On success the record is also appended
// to the export workbook, a side artifact whose failure does not fail
// the registration.
func (s *FarmerService) Register(input RegisterFarmerInput) (*models.Farmer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" || input.Woreda == "" || input.Kebele == "" || input.RegisteredBy == "" {
		return nil, ErrFarmerFieldMissing
	}

	if err := s.validateSnapshot(input.Woreda, input.Kebele); err != nil {
		return nil, err
	}

	farmer := &models.Farmer{
		Name: name,
		HierarchySnapshot: models.HierarchySnapshot{
			Woreda: input.Woreda,
			Kebele: input.Kebele,
		},
		Phone:        phone,
		RegisteredBy: input.RegisteredBy,
		Timestamp:    time.Now(),
	}

	if err := s.farmerRepo.Create(farmer); err != nil {
		return nil, fmt.Errorf("failed to create farmer: %w", err)
	}

	if s.exportDir != "" {
		path := filepath.Join(s.exportDir, constants.FarmerExportFile)
		if err := spreadsheet.AppendFarmerExport(path, farmer); err != nil {
			log.Printf("farmer export append failed: %v", err)
		}
	}

	return farmer, nil
}

// ListFarmersInput represents filters for listing farmers.
type ListFarmersInput struct {
	// Woreda filters on the stored snapshot string, exact and
	// case-sensitive, when non-nil.
	Woreda   *string
	Page     int
	PageSize int
}

// List returns farmers newest-first, optionally filtered by the stored
// woreda snapshot string.
func (s *FarmerService) List(input ListFarmersInput) ([]models.Farmer, int64, error) {
	farmers, total, err := s.farmerRepo.List(repository.FarmerFilter{
		Woreda:   input.Woreda,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list farmers: %w", err)
	}
	return farmers, total, nil
}

// UpdateFarmerInput carries an in-place edit. All fields are
// re-snapshotted.
type UpdateFarmerInput struct {
	Name   string
	Woreda string
	Kebele string
	Phone  string
}

// Update re-snapshots a farmer's name, phone, and hierarchy strings
// under the same validation as Register.
func (s *FarmerService) Update(id uint64, input UpdateFarmerInput) (*models.Farmer, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" || input.Woreda == "" || input.Kebele == "" {
		return nil, ErrFarmerFieldMissing
	}

	farmer, err := s.farmerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, fmt.Errorf("failed to find farmer: %w", err)
	}

	if err := s.validateSnapshot(input.Woreda, input.Kebele); err != nil {
		return nil, err
	}

	farmer.Name = name
	farmer.Phone = phone
	farmer.HierarchySnapshot = models.HierarchySnapshot{
		Woreda: input.Woreda,
		Kebele: input.Kebele,
	}

	if err := s.farmerRepo.Update(farmer); err != nil {
		return nil, fmt.Errorf("failed to update farmer: %w", err)
	}

	return farmer, nil
}

// Delete removes a farmer record.
func (s *FarmerService) Delete(id uint64) error {
	if _, err := s.farmerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFarmerNotFound
		}
		return fmt.Errorf("failed to find farmer: %w", err)
	}

	if err := s.farmerRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete farmer: %w", err)
	}
	return nil
}

// ExportCSV writes the current filtered listing (unpaginated) as CSV.
func (s *FarmerService) ExportCSV(w io.Writer, woreda *string) error {
	farmers, _, err := s.farmerRepo.List(repository.FarmerFilter{Woreda: woreda})
	if err != nil {
		return fmt.Errorf("failed to list farmers: %w", err)
	}

	return spreadsheet.WriteFarmersCSV(w, farmers)
}

// validateSnapshot checks that the named Woreda exists and the named
// Kebele is currently one of its children.
func (s *FarmerService) validateSnapshot(woredaName, kebeleName string) error {
	woreda, err := s.hierarchyRepo.FindWoredaByName(woredaName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWoredaNotFound
		}
		return fmt.Errorf("failed to find woreda: %w", err)
	}

	kebeles, err := s.hierarchyRepo.ListKebelesByWoreda(woreda.ID)
	if err != nil {
		return fmt.Errorf("failed to list kebeles: %w", err)
	}
	for _, kebele := range kebeles {
		if kebele.Name == kebeleName {
			return nil
		}
	}
	return ErrKebeleNotInWoreda
}
