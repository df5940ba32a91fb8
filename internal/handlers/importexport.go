package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Abeltade/derese/internal/dto"
	apierrors "github.com/Abeltade/derese/internal/errors"
	"github.com/Abeltade/derese/internal/services"
	"github.com/Abeltade/derese/internal/spreadsheet"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportHandler coordinates the bulk hierarchy upload and template
// download.
type ImportHandler struct {
	hierarchyService *services.HierarchyService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(hierarchyService *services.HierarchyService) *ImportHandler {
	return &ImportHandler{
		hierarchyService: hierarchyService,
	}
}

// ImportHierarchy ingests an uploaded xlsx of (Woreda, Kebele) pairs.
// A workbook missing either column is rejected before any row is
// written.
func (h *ImportHandler) ImportHierarchy(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "An xlsx upload is required in the 'file' field")
		return
	}

	src, err := file.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}
	defer src.Close()

	rows, err := spreadsheet.ParseHierarchyWorkbook(src)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrMissingColumns) || errors.Is(err, spreadsheet.ErrNoSheets) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.BadRequest(c, "Failed to parse workbook")
		return
	}

	processed, err := h.hierarchyService.ImportRows(rows)
	if err != nil {
		apierrors.InternalError(c, "Import failed; no rows were saved")
		return
	}

	c.JSON(http.StatusOK, dto.ImportResultDTO{RowsProcessed: processed})
}

// DownloadTemplate serves the xlsx import template.
func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteHierarchyTemplate(&buf); err != nil {
		apierrors.InternalError(c, "Failed to build template")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="woreda_kebele_template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
