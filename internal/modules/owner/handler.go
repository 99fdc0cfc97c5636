package owner

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook/internal/domain"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/reservation"
	"salonbook/internal/pkg/response"
)

// Handler is the owner dashboard surface: the decision queue, the day book
// and walk-in bookings. Route groups mounting it must already enforce the
// owner role.
type Handler struct {
	svc    *Service
	engine Engine
	errs   *reservation.Handler
}

func NewHandler(svc *Service, engine Engine, errs *reservation.Handler) *Handler {
	return &Handler{svc: svc, engine: engine, errs: errs}
}

func (h *Handler) writeErr(c *gin.Context, err error) {
	h.errs.WriteError(c, err)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/requests", h.PendingQueue)
	r.POST("/requests/:groupID/approve", h.Approve)
	r.POST("/requests/:groupID/reject", h.Reject)
	r.GET("/appointments", h.DayBook)
	r.POST("/appointments", h.CreateManual)
	r.DELETE("/appointments/:groupID", h.Cancel)
}

func (h *Handler) PendingQueue(c *gin.Context) {
	queue, err := h.svc.PendingQueue(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, queue)
}

func (h *Handler) Approve(c *gin.Context) {
	g, err := h.engine.Approve(c.Request.Context(), middleware.UserID(c), c.Param("groupID"))
	if err != nil {
		h.writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) Reject(c *gin.Context) {
	g, err := h.engine.Reject(c.Request.Context(), middleware.UserID(c), c.Param("groupID"))
	if err != nil {
		h.writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) DayBook(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}
	headsOnly := c.DefaultQuery("heads", "true") != "false"

	apps, err := h.svc.requests.ListApprovedByDate(c.Request.Context(), date, headsOnly)
	if err != nil {
		h.writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, apps)
}

func (h *Handler) CreateManual(c *gin.Context) {
	var req reservation.ManualAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	a, err := h.engine.CreateManual(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) Cancel(c *gin.Context) {
	err := h.engine.CancelApproved(c.Request.Context(), middleware.UserID(c), domain.RoleOwner, c.Param("groupID"))
	if err != nil {
		h.writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}
