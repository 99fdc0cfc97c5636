package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.List)
}

func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.PUT("/services", h.Save)
	rg.DELETE("/services/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": rows})
}

func (h *Handler) Save(c *gin.Context) {
	var req SaveServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc := &domain.SalonService{
		ID:          req.ID,
		Name:        req.Name,
		DurationMin: req.DurationMin,
		Position:    req.Position,
	}
	if err := h.service.Save(c.Request.Context(), svc); err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service definition")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
