package dto

import (
	"time"

	"github.com/voltride/rental-service/internal/models"
)

type CreateBookingRequest struct {
	CustomerID     uint               `json:"customer_id"`
	VehicleID      uint               `json:"vehicle_id"`
	StartStationID uint               `json:"start_station_id"`
	EndStationID   uint               `json:"end_station_id,omitempty"`
	StartTime      time.Time          `json:"start_time"`
	EndTime        *time.Time         `json:"end_time,omitempty"`
	Type           models.BookingType `json:"type,omitempty"`
}

type TransitionRequest struct {
	Status        models.BookingStatus `json:"status"`
	DamageReport  string               `json:"damage_report,omitempty"`
	PenaltyAmount float64              `json:"penalty_amount,omitempty"`
	PenaltyReason string               `json:"penalty_reason,omitempty"`
}

type DamageReportRequest struct {
	Description   string   `json:"description"`
	PenaltyAmount float64  `json:"penalty_amount,omitempty"`
	Images        []string `json:"images,omitempty"`
}

type LocationRequest struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	PenaltyAmount float64 `json:"penalty_amount,omitempty"`
	PenaltyReason string  `json:"penalty_reason,omitempty"`
}

type CreatePenaltyRequest struct {
	BookingID  uint               `json:"booking_id"`
	CustomerID uint               `json:"customer_id,omitempty"`
	Type       models.PenaltyType `json:"type"`
	Amount     float64            `json:"amount"`
	Reason     string             `json:"reason,omitempty"`
}

type UpdatePenaltyRequest struct {
	Status        *models.PenaltyStatus `json:"status,omitempty"`
	PaymentStatus *models.PaymentStatus `json:"payment_status,omitempty"`
	PaidAmount    *float64              `json:"paid_amount,omitempty"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
}

type MarkPaidRequest struct {
	PaidAmount    float64 `json:"paid_amount"`
	PaymentMethod string  `json:"payment_method"`
}
