package transfer

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin bulk import/export endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ExportXLSX(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.service.ExportXLSX(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) ExportZIP(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="catalog.zip"`)
	c.Header("Content-Type", "application/zip")

	if err := h.service.ExportZIP(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) ExportActivitiesCSV(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="activities.csv"`)
	c.Header("Content-Type", "text/csv")

	if err := h.service.ExportActivitiesCSV(c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Import replaces the whole catalog from an uploaded .xlsx workbook
// or .zip of CSVs. The swap is all-or-nothing.
func (h *Handler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("catalog_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "catalog_file is required"})
		return
	}
	defer file.Close()

	destCount, actCount, err := h.service.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		// parse failures and rejected batches alike: nothing was
		// committed, the caller gets told why
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destinations": destCount,
		"activities":   actCount,
		"message":      "catalog replaced",
	})
}
