package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule/:date", h.GetGrid)
}

// RegisterOwnerRoutes adds the owner-only configuration surface.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.PUT("/schedule/default-hours", h.SaveDefaultHours)
	rg.GET("/schedule/overrides", h.ListOverrides)
	rg.PUT("/schedule/overrides/:date", h.SaveOverride)
	rg.DELETE("/schedule/overrides/:date", h.ClearOverride)
}

func (h *Handler) GetGrid(c *gin.Context) {
	date := c.Param("date")
	grid, err := h.service.GridForDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve schedule")
		return
	}
	response.Success(c, http.StatusOK, GridResponse{Date: date, Hours: grid.Hours, StepMin: grid.Step})
}

func (h *Handler) SaveDefaultHours(c *gin.Context) {
	var req SaveHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	hours, err := h.service.SaveDefaultHours(c.Request.Context(), req.Hours)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save default hours")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hours": hours})
}

func (h *Handler) SaveOverride(c *gin.Context) {
	var req SaveHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	hours, err := h.service.SaveOverride(c.Request.Context(), c.Param("date"), req.Hours)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save override")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": c.Param("date"), "hours": hours})
}

func (h *Handler) ClearOverride(c *gin.Context) {
	if err := h.service.ClearOverride(c.Request.Context(), c.Param("date")); err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear override")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": c.Param("date")})
}

func (h *Handler) ListOverrides(c *gin.Context) {
	rows, err := h.service.ListOverrides(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list overrides")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"overrides": rows})
}
