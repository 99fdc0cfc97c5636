package domain

import "time"

// Notification type constants
const (
	NotifyRequestReceived      = "reservation.requested"
	NotifyRequestApproved      = "reservation.approved"
	NotifyRequestRejected      = "reservation.rejected"
	NotifyReservationCancelled = "reservation.cancelled"
)

// Notification represents an in-app notification record
type Notification struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UserID    int64      `json:"user_id" gorm:"index"`
	Type      string     `json:"type" gorm:"size:48"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	GroupID   string     `json:"group_id,omitempty" gorm:"size:32"`
	Date      string     `json:"date,omitempty" gorm:"size:10"`
	Hour      string     `json:"hour,omitempty" gorm:"size:5"`
	IsRead    bool       `json:"is_read" gorm:"index"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
