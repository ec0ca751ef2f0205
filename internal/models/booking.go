package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusOngoing   BookingStatus = "ongoing"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDeclined  BookingStatus = "declined"
)

// KnownStatus reports whether s is a member of the booking status enum.
func KnownStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusOngoing, StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

type BookingType string

const (
	TypeImmediate BookingType = "immediate"
	TypeScheduled BookingType = "scheduled"
)

type Booking struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	CustomerID     uint          `gorm:"not null;index" json:"customer_id"`
	VehicleID      uint          `gorm:"not null;index" json:"vehicle_id"`
	StartStationID uint          `gorm:"not null" json:"start_station_id"`
	EndStationID   uint          `gorm:"not null" json:"end_station_id"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Type           BookingType   `gorm:"type:varchar(20);not null;default:'immediate'" json:"type"`

	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       time.Time  `gorm:"not null" json:"end_time"`
	ActualEndTime *time.Time `json:"actual_end_time,omitempty"`

	DurationHours int     `gorm:"not null;default:1" json:"duration_hours"`
	Fare          float64 `gorm:"not null;default:0" json:"fare"`

	// Cached projection of the penalty ledger, maintained transactionally
	// by the penalty engine alongside each ledger write.
	HasPenalty    bool    `gorm:"not null;default:false;index" json:"has_penalty"`
	PenaltyAmount float64 `gorm:"not null;default:0" json:"penalty_amount"`
	PenaltyReason string  `json:"penalty_reason,omitempty"`

	DamageReport string `json:"damage_report,omitempty"`
	DamageImages string `json:"damage_images,omitempty"` // semicolon-joined URLs

	LastLat        *float64   `json:"last_lat,omitempty"`
	LastLng        *float64   `json:"last_lng,omitempty"`
	LastLocationAt *time.Time `json:"last_location_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
