package reservation

import "salonbook/internal/domain"

type CreateReservationRequest struct {
	Date       string   `json:"date" binding:"required"`
	Hour       string   `json:"hour" binding:"required"`
	ServiceIDs []string `json:"service_ids" binding:"required"`
}

type ManualAppointmentRequest struct {
	Date         string `json:"date" binding:"required"`
	Hour         string `json:"hour" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	ServiceLabel string `json:"service_label"`
}

// DaySlot is one grid position in the customer-facing day view. Details of
// the occupying reservation are exposed only to its owner.
type DaySlot struct {
	Hour     string                   `json:"hour"`
	Reserved bool                     `json:"reserved"`
	Past     bool                     `json:"past"`
	Mine     bool                     `json:"mine"`
	Status   domain.AppointmentStatus `json:"status,omitempty"`
	GroupID  string                   `json:"group_id,omitempty"`
	IsHead   bool                     `json:"is_head,omitempty"`
}

type DayViewResponse struct {
	Date    string    `json:"date"`
	StepMin int       `json:"step_min"`
	Slots   []DaySlot `json:"slots"`
}
