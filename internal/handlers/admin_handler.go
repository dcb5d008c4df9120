package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/services"
	"github.com/gin-gonic/gin"
)

// utf8BOM lets spreadsheet tools detect UTF-8 in exported CSV files
const utf8BOM = "\xef\xbb\xbf"

// AdminHandler serves the read-only admin views over spins
type AdminHandler struct {
	reportService services.ReportService
	today         func() string
}

// NewAdminHandler creates a new AdminHandler. today supplies the default ?date= value.
func NewAdminHandler(reportService services.ReportService, today func() string) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
		today:         today,
	}
}

func (h *AdminHandler) dateParam(c *gin.Context) string {
	if date := c.Query("date"); date != "" {
		return date
	}
	return h.today()
}

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logging.Log.WithError(err).Error("AdminHandler: request failed")
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalServer})
}

// ListSpins handles GET /admin/spins
func (h *AdminHandler) ListSpins(c *gin.Context) {
	date := h.dateParam(c)
	spins, err := h.reportService.ListSpins(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "count": len(spins), "spins": spins})
}

// GetDailyStats handles GET /admin/spins/stats
func (h *AdminHandler) GetDailyStats(c *gin.Context) {
	stats, err := h.reportService.DailyStats(c.Request.Context(), h.dateParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportSpinsCSV handles GET /admin/spins/export
func (h *AdminHandler) ExportSpinsCSV(c *gin.Context) {
	date := h.dateParam(c)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	if err := h.reportService.ExportCSV(c.Request.Context(), date, &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment;filename=spins-"+date+".csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetPrizes handles GET /admin/prizes
func (h *AdminHandler) GetPrizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prizes": h.reportService.Prizes()})
}
