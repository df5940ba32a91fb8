package dto

import (
	"github.com/Abeltade/derese/internal/models"
)

// KebeleDTO represents a Kebele in API responses
type KebeleDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	WoredaID uint64 `json:"woreda_id"`
}

// WoredaDTO represents a Woreda in API responses
type WoredaDTO struct {
	ID      uint64      `json:"id"`
	Name    string      `json:"name"`
	Kebeles []KebeleDTO `json:"kebeles,omitempty"`
}

// ImportResultDTO reports a completed hierarchy import
type ImportResultDTO struct {
	RowsProcessed int `json:"rows_processed"`
}

// ToKebeleDTO converts a Kebele model to KebeleDTO
func ToKebeleDTO(kebele models.Kebele) KebeleDTO {
	return KebeleDTO{
		ID:       kebele.ID,
		Name:     kebele.Name,
		WoredaID: kebele.WoredaID,
	}
}

// ToKebeleDTOs converts a slice of Kebele models
func ToKebeleDTOs(kebeles []models.Kebele) []KebeleDTO {
	dtos := make([]KebeleDTO, len(kebeles))
	for i, kebele := range kebeles {
		dtos[i] = ToKebeleDTO(kebele)
	}
	return dtos
}

// ToWoredaDTO converts a Woreda model to WoredaDTO
func ToWoredaDTO(woreda models.Woreda) WoredaDTO {
	dto := WoredaDTO{
		ID:   woreda.ID,
		Name: woreda.Name,
	}

	// Include children if preloaded
	if len(woreda.Kebeles) > 0 {
		dto.Kebeles = ToKebeleDTOs(woreda.Kebeles)
	}

	return dto
}

// ToWoredaDTOs converts a slice of Woreda models
func ToWoredaDTOs(woredas []models.Woreda) []WoredaDTO {
	dtos := make([]WoredaDTO, len(woredas))
	for i, woreda := range woredas {
		dtos[i] = ToWoredaDTO(woreda)
	}
	return dtos
}
