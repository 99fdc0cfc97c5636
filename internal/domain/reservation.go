package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentApproved  AppointmentStatus = "approved"
	AppointmentCompleted AppointmentStatus = "completed"
)

type AppointmentSource string

const (
	SourceCustomerRequest AppointmentSource = "customer_request"
	SourceRequestApproved AppointmentSource = "request_approved"
	SourceOwnerManual     AppointmentSource = "owner_manual"
)

// ServiceSnapshot is a copy of a catalog entry taken at booking time,
// independent of later catalog edits.
type ServiceSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min"`
}

// Appointment is one occupied slot. A multi-service reservation occupies
// several contiguous slots sharing the same GroupID; IsHead marks the anchor.
// Owner-manual appointments have no CustomerID and carry the walk-in's
// name/phone instead.
type Appointment struct {
	ID               int64             `json:"id" gorm:"primaryKey"`
	Date             string            `json:"date" gorm:"size:10;uniqueIndex:idx_slot_once,priority:1"`
	Hour             string            `json:"hour" gorm:"size:5;uniqueIndex:idx_slot_once,priority:2"`
	GroupID          string            `json:"group_id" gorm:"index;size:32"`
	IsHead           bool              `json:"is_head"`
	HeadHour         string            `json:"head_hour" gorm:"size:5"`
	Slots            []string          `json:"slots" gorm:"serializer:json"`
	CustomerID       *int64            `json:"customer_id,omitempty" gorm:"index"`
	CustomerName     string            `json:"customer_name,omitempty"`
	CustomerPhone    string            `json:"customer_phone,omitempty"`
	ServiceLabel     string            `json:"service_label,omitempty"`
	Services         []ServiceSnapshot `json:"services" gorm:"serializer:json"`
	TotalDurationMin int               `json:"total_duration_min"`
	Status           AppointmentStatus `json:"status" gorm:"size:16;index"`
	Source           AppointmentSource `json:"source" gorm:"size:24"`
	CreatedAt        time.Time         `json:"created_at"`
	RequestedAt      *time.Time        `json:"requested_at,omitempty"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty"`
	ApprovedBy       *int64            `json:"approved_by,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
}

func (Appointment) TableName() string { return "appointments" }

type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationApproved ReservationStatus = "approved"
	ReservationRejected ReservationStatus = "rejected"
)

// ReservationPointer is the per-customer record of their single active
// reservation. A rejected pointer keeps the row but clears the group fields
// so the customer may request again.
type ReservationPointer struct {
	CustomerID       int64             `json:"customer_id" gorm:"primaryKey;autoIncrement:false"`
	GroupID          string            `json:"group_id" gorm:"size:32"`
	Date             string            `json:"date" gorm:"size:10"`
	Hour             string            `json:"hour" gorm:"size:5"`
	Slots            []string          `json:"slots" gorm:"serializer:json"`
	Services         []ServiceSnapshot `json:"services" gorm:"serializer:json"`
	TotalDurationMin int               `json:"total_duration_min"`
	Status           ReservationStatus `json:"status" gorm:"size:16"`
	RequestedAt      time.Time         `json:"requested_at"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty"`
	RejectedAt       *time.Time        `json:"rejected_at,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (ReservationPointer) TableName() string { return "reservation_pointers" }

// Active reports whether the pointer blocks a new reservation request.
func (p *ReservationPointer) Active() bool {
	return p != nil && p.GroupID != "" &&
		(p.Status == ReservationPending || p.Status == ReservationApproved)
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ReservationRequest mirrors a pending group for the owner's queue and is
// kept after the decision as an audit record.
type ReservationRequest struct {
	GroupID          string            `json:"group_id" gorm:"primaryKey;size:32"`
	Date             string            `json:"date" gorm:"size:10;index"`
	Hour             string            `json:"hour" gorm:"size:5"`
	CustomerID       int64             `json:"customer_id"`
	Slots            []string          `json:"slots" gorm:"serializer:json"`
	Services         []ServiceSnapshot `json:"services" gorm:"serializer:json"`
	TotalDurationMin int               `json:"total_duration_min"`
	Status           RequestStatus     `json:"status" gorm:"size:16;index"`
	CreatedAt        time.Time         `json:"created_at"`
	DecidedAt        *time.Time        `json:"decided_at,omitempty"`
	DecidedBy        *int64            `json:"decided_by,omitempty"`
}

func (ReservationRequest) TableName() string { return "reservation_requests" }

type HistoryStatus string

const (
	HistoryCompleted HistoryStatus = "completed"
	HistoryCancelled HistoryStatus = "cancelled"
)

// HistoryEntry is the terminal snapshot of a reservation group, the only
// record that survives once the live records are deleted.
type HistoryEntry struct {
	ID               int64             `json:"id" gorm:"primaryKey"`
	GroupID          string            `json:"group_id" gorm:"index;size:32"`
	CustomerID       int64             `json:"customer_id" gorm:"index"`
	Date             string            `json:"date" gorm:"size:10;index"`
	Hour             string            `json:"hour" gorm:"size:5"`
	Slots            []string          `json:"slots" gorm:"serializer:json"`
	Services         []ServiceSnapshot `json:"services" gorm:"serializer:json"`
	TotalDurationMin int               `json:"total_duration_min"`
	Status           HistoryStatus     `json:"status" gorm:"size:16"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (HistoryEntry) TableName() string { return "history_entries" }

// ReservationGroup is the aggregate the engine commits and transitions.
type ReservationGroup struct {
	GroupID          string            `json:"group_id"`
	Date             string            `json:"date"`
	HeadHour         string            `json:"head_hour"`
	Slots            []string          `json:"slots"`
	CustomerID       int64             `json:"customer_id"`
	Services         []ServiceSnapshot `json:"services"`
	TotalDurationMin int               `json:"total_duration_min"`
}
