package domain

import "time"

// BusinessSettings is the single business-wide configuration row.
type BusinessSettings struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	DefaultHours []string  `json:"default_hours" gorm:"serializer:json"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (BusinessSettings) TableName() string { return "business_settings" }

// DayOverride replaces the default slot list for one date entirely.
// A present-but-empty Hours list means the salon is closed that day.
type DayOverride struct {
	Date      string    `json:"date" gorm:"primaryKey;size:10"`
	Hours     []string  `json:"hours" gorm:"serializer:json"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DayOverride) TableName() string { return "day_overrides" }

// SalonService is one entry of the bookable service catalog.
type SalonService struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Name        string    `json:"name"`
	DurationMin int       `json:"duration_min" validate:"required,gt=0"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (SalonService) TableName() string { return "salon_services" }
