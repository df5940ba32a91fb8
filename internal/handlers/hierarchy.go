package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Abeltade/derese/internal/dto"
	apierrors "github.com/Abeltade/derese/internal/errors"
	"github.com/Abeltade/derese/internal/services"
	"github.com/gin-gonic/gin"
)

// HierarchyHandler coordinates Woreda/Kebele management handlers.
type HierarchyHandler struct {
	hierarchyService *services.HierarchyService
}

// NewHierarchyHandler creates a new HierarchyHandler.
func NewHierarchyHandler(hierarchyService *services.HierarchyService) *HierarchyHandler {
	return &HierarchyHandler{
		hierarchyService: hierarchyService,
	}
}

// ListWoredas returns all Woredas with their Kebeles.
func (h *HierarchyHandler) ListWoredas(c *gin.Context) {
	woredas, err := h.hierarchyService.ListWoredas()
	if err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"woredas": dto.ToWoredaDTOs(woredas),
	})
}

// CreateWoreda adds a new Woreda.
func (h *HierarchyHandler) CreateWoreda(c *gin.Context) {
	type CreateWoredaRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateWoredaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	woreda, err := h.hierarchyService.CreateWoreda(req.Name)
	if err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWoredaDTO(*woreda))
}

// UpdateWoreda renames a Woreda.
func (h *HierarchyHandler) UpdateWoreda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateWoredaRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateWoredaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	woreda, err := h.hierarchyService.RenameWoreda(id, req.Name)
	if err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWoredaDTO(*woreda))
}

// DeleteWoreda removes a Woreda together with its Kebeles.
func (h *HierarchyHandler) DeleteWoreda(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.hierarchyService.DeleteWoreda(id); err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Woreda deleted successfully",
	})
}

// ListKebeles returns the Kebeles of one Woreda.
func (h *HierarchyHandler) ListKebeles(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	kebeles, err := h.hierarchyService.ListKebeles(id)
	if err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kebeles": dto.ToKebeleDTOs(kebeles),
	})
}

// AddKebeles batch-adds Kebeles under a Woreda.
func (h *HierarchyHandler) AddKebeles(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type AddKebelesRequest struct {
		Names []string `json:"names" binding:"required"`
	}

	var req AddKebelesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	kebeles, err := h.hierarchyService.AddKebeles(id, req.Names)
	if err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"kebeles": dto.ToKebeleDTOs(kebeles),
	})
}

// UpdateKebele renames a Kebele and/or reassigns its parent Woreda.
func (h *HierarchyHandler) UpdateKebele(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateKebeleRequest struct {
		Name     string `json:"name" binding:"required"`
		WoredaID uint64 `json:"woreda_id" binding:"required"`
	}

	var req UpdateKebeleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	kebele, err := h.hierarchyService.UpdateKebele(id, services.UpdateKebeleInput{
		Name:     req.Name,
		WoredaID: req.WoredaID,
	})
	if err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToKebeleDTO(*kebele))
}

// DeleteKebele removes one Kebele.
func (h *HierarchyHandler) DeleteKebele(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.hierarchyService.DeleteKebele(id); err != nil {
		respondHierarchyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Kebele deleted successfully",
	})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondHierarchyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNoKebeleNames):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrWoredaExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrWoredaNotFound),
		errors.Is(err, services.ErrKebeleNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
