package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Abeltade/derese/internal/dto"
	apierrors "github.com/Abeltade/derese/internal/errors"
	"github.com/Abeltade/derese/internal/middleware"
	"github.com/Abeltade/derese/internal/services"
	"github.com/Abeltade/derese/internal/utils"
	"github.com/gin-gonic/gin"
)

// FarmerHandler coordinates farmer registration and listing handlers.
type FarmerHandler struct {
	farmerService *services.FarmerService
}

// NewFarmerHandler creates a new FarmerHandler.
func NewFarmerHandler(farmerService *services.FarmerService) *FarmerHandler {
	return &FarmerHandler{
		farmerService: farmerService,
	}
}

// RegisterFarmer records a farmer under the acting user.
func (h *FarmerHandler) RegisterFarmer(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type RegisterFarmerRequest struct {
		Name   string `json:"name" binding:"required"`
		Woreda string `json:"woreda" binding:"required"`
		Kebele string `json:"kebele" binding:"required"`
		Phone  string `json:"phone" binding:"required"`
	}

	var req RegisterFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	farmer, err := h.farmerService.Register(services.RegisterFarmerInput{
		Name:         req.Name,
		Woreda:       req.Woreda,
		Kebele:       req.Kebele,
		Phone:        req.Phone,
		RegisteredBy: username,
	})
	if err != nil {
		respondFarmerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFarmerDTO(*farmer))
}

// ListFarmers returns registered farmers newest-first, optionally
// filtered by the stored woreda snapshot (exact match).
func (h *FarmerHandler) ListFarmers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListFarmersInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if woreda := c.Query("woreda"); woreda != "" {
		input.Woreda = &woreda
	}

	farmers, total, err := h.farmerService.List(input)
	if err != nil {
		respondFarmerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFarmerListResponse(farmers, params, total))
}

// UpdateFarmer re-snapshots a farmer's details.
func (h *FarmerHandler) UpdateFarmer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateFarmerRequest struct {
		Name   string `json:"name" binding:"required"`
		Woreda string `json:"woreda" binding:"required"`
		Kebele string `json:"kebele" binding:"required"`
		Phone  string `json:"phone" binding:"required"`
	}

	var req UpdateFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	farmer, err := h.farmerService.Update(id, services.UpdateFarmerInput{
		Name:   req.Name,
		Woreda: req.Woreda,
		Kebele: req.Kebele,
		Phone:  req.Phone,
	})
	if err != nil {
		respondFarmerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFarmerDTO(*farmer))
}

// DeleteFarmer removes a farmer record.
func (h *FarmerHandler) DeleteFarmer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.farmerService.Delete(id); err != nil {
		respondFarmerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Farmer deleted successfully",
	})
}

// ExportFarmersCSV streams the filtered listing as a CSV download.
func (h *FarmerHandler) ExportFarmersCSV(c *gin.Context) {
	var woreda *string
	if w := c.Query("woreda"); w != "" {
		woreda = &w
	}

	var buf bytes.Buffer
	if err := h.farmerService.ExportCSV(&buf, woreda); err != nil {
		respondFarmerError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="farmer_registrations.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func respondFarmerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFarmerFieldMissing),
		errors.Is(err, services.ErrKebeleNotInWoreda):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrWoredaNotFound),
		errors.Is(err, services.ErrFarmerNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
