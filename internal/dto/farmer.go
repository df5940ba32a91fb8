package dto

import (
	"time"

	"github.com/Abeltade/derese/internal/models"
	"github.com/Abeltade/derese/internal/utils"
)

// FarmerDTO represents a farmer in API responses. Woreda and Kebele
// are the registration-time snapshot strings.
type FarmerDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Woreda       string    `json:"woreda"`
	Kebele       string    `json:"kebele"`
	Phone        string    `json:"phone"`
	RegisteredBy string    `json:"registered_by"`
	Timestamp    time.Time `json:"timestamp"`
}

// FarmerListResponse represents a paginated farmer listing
type FarmerListResponse struct {
	Farmers    []FarmerDTO              `json:"farmers"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToFarmerDTO converts a Farmer model to FarmerDTO
func ToFarmerDTO(farmer models.Farmer) FarmerDTO {
	return FarmerDTO{
		ID:           farmer.ID,
		Name:         farmer.Name,
		Woreda:       farmer.Woreda,
		Kebele:       farmer.Kebele,
		Phone:        farmer.Phone,
		RegisteredBy: farmer.RegisteredBy,
		Timestamp:    farmer.Timestamp,
	}
}

// ToFarmerListResponse converts a slice of farmers to FarmerListResponse
func ToFarmerListResponse(farmers []models.Farmer, params utils.PaginationParams, total int64) FarmerListResponse {
	dtos := make([]FarmerDTO, len(farmers))
	for i, farmer := range farmers {
		dtos[i] = ToFarmerDTO(farmer)
	}

	return FarmerListResponse{
		Farmers: dtos,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
