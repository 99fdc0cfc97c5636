package owner

import (
	"time"

	"salonbook/internal/domain"
)

// PendingRequest is a queue row enriched with the customer's display name.
// Name resolution is best effort; a lookup failure falls back to the raw id.
type PendingRequest struct {
	GroupID          string                   `json:"group_id"`
	Date             string                   `json:"date"`
	Hour             string                   `json:"hour"`
	CustomerID       int64                    `json:"customer_id"`
	CustomerName     string                   `json:"customer_name"`
	Slots            []string                 `json:"slots"`
	Services         []domain.ServiceSnapshot `json:"services"`
	TotalDurationMin int                      `json:"total_duration_min"`
	CreatedAt        time.Time                `json:"created_at"`
}
