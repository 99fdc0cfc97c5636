package history

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salonbook/internal/domain"
	"salonbook/internal/middleware"
	"salonbook/internal/pkg/response"
)

// Store reads terminal reservation records.
type Store interface {
	ListHistoryByCustomer(ctx context.Context, customerID int64) ([]domain.HistoryEntry, error)
	ListHistoryRange(ctx context.Context, from, to string) ([]domain.HistoryEntry, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterCustomerRoutes(r *gin.RouterGroup) {
	r.GET("/history", h.MyHistory)
}

func (h *Handler) RegisterOwnerRoutes(r *gin.RouterGroup) {
	r.GET("/history", h.RangeHistory)
}

func (h *Handler) MyHistory(c *gin.Context) {
	entries, err := h.store.ListHistoryByCustomer(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load history")
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// RangeHistory returns all terminal records in a date range, defaulting to
// the last 30 days.
func (h *Handler) RangeHistory(c *gin.Context) {
	to := c.Query("to")
	from := c.Query("from")
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}
	if from == "" {
		from = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from date")
		return
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid to date")
		return
	}

	entries, err := h.store.ListHistoryRange(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load history")
		return
	}
	response.Success(c, http.StatusOK, entries)
}
