package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/domain"
	"salonbook/internal/middleware"
	"salonbook/internal/pkg/response"
)

func currentUserID(c *gin.Context) int64 {
	return middleware.UserID(c)
}

func currentRole(c *gin.Context) domain.UserRole {
	return domain.UserRole(middleware.Role(c))
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts day views; OptionalAuth should already be
// attached so the caller's own slots get marked.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/days/:date", h.DayView)
}

// RegisterCustomerRoutes mounts the customer-facing reservation surface
// behind auth middleware.
func (h *Handler) RegisterCustomerRoutes(r *gin.RouterGroup) {
	r.POST("/reservations", h.Create)
	r.GET("/reservations/me", h.Mine)
	r.DELETE("/reservations/:groupID", h.CancelPending)
	r.POST("/reservations/:groupID/cancel", h.CancelApproved)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	group, err := h.svc.Request(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, group)
}

func (h *Handler) Mine(c *gin.Context) {
	ptr, err := h.svc.MyReservation(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.WriteError(c, err)
		return
	}
	if ptr == nil || !ptr.Active() {
		response.Success(c, http.StatusOK, nil)
		return
	}
	response.Success(c, http.StatusOK, ptr)
}

func (h *Handler) CancelPending(c *gin.Context) {
	if err := h.svc.CancelPending(c.Request.Context(), currentUserID(c), c.Param("groupID")); err != nil {
		h.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) CancelApproved(c *gin.Context) {
	if err := h.svc.CancelApproved(c.Request.Context(), currentUserID(c), currentRole(c), c.Param("groupID")); err != nil {
		h.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) DayView(c *gin.Context) {
	view, err := h.svc.DayView(c.Request.Context(), c.Param("date"), currentUserID(c))
	if err != nil {
		h.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation parameters")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed to modify this reservation")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "One of the requested slots is already reserved")
	case errors.Is(err, ErrCapacityConflict):
		response.Error(c, http.StatusConflict, "CAPACITY_CONFLICT", "Not enough contiguous slots for the selected services")
	case errors.Is(err, ErrActiveReservation):
		response.Error(c, http.StatusConflict, "ACTIVE_RESERVATION", "You already have an active reservation")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, "ALREADY_DECIDED", "Request was already decided")
	case errors.Is(err, ErrPastDeadline):
		response.Error(c, http.StatusConflict, "PAST_DEADLINE", "The slot time has already passed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
