package handlers

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/services"
	"github.com/gin-gonic/gin"
)

// Response messages of POST /api/spin
const (
	msgMissingData    = "Missing data"
	msgAlreadySpun    = "Already spun today"
	msgInternalServer = "Internal server error"
)

// SpinHandler handles spin HTTP requests
type SpinHandler struct {
	spinService services.SpinService
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(spinService services.SpinService) *SpinHandler {
	return &SpinHandler{
		spinService: spinService,
	}
}

// Spin handles POST /api/spin. The body is JSON or form-urlencoded {name, email, phone}.
func (h *SpinHandler) Spin(c *gin.Context) {
	var entrant models.Entrant
	if err := c.ShouldBind(&entrant); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgMissingData})
		return
	}

	result, err := h.spinService.Spin(c.Request.Context(), entrant)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgMissingData})
			return
		}
		logging.Log.WithError(err).Error("SpinHandler: spin failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternalServer})
		return
	}

	if result.AlreadySpun {
		c.JSON(http.StatusOK, models.SpinResponse{Message: msgAlreadySpun})
		return
	}
	c.JSON(http.StatusOK, models.SpinResponse{Prize: result.Prize})
}
