package dto

import (
	"time"

	"github.com/voltride/rental-service/internal/models"
)

type BookingResponse struct {
	ID             uint                 `json:"id"`
	CustomerID     uint                 `json:"customer_id"`
	VehicleID      uint                 `json:"vehicle_id"`
	StartStationID uint                 `json:"start_station_id"`
	EndStationID   uint                 `json:"end_station_id"`
	Status         models.BookingStatus `json:"status"`
	Type           models.BookingType   `json:"type"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	ActualEndTime  *time.Time           `json:"actual_end_time,omitempty"`
	DurationHours  int                  `json:"duration_hours"`
	Fare           float64              `json:"fare"`
	HasPenalty     bool                 `json:"has_penalty"`
	PenaltyAmount  float64              `json:"penalty_amount"`
	PenaltyReason  string               `json:"penalty_reason,omitempty"`
	DamageReport   string               `json:"damage_report,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

type PenaltyResponse struct {
	ID            uint                 `json:"id"`
	BookingID     uint                 `json:"booking_id"`
	CustomerID    uint                 `json:"customer_id"`
	Type          models.PenaltyType   `json:"type"`
	Amount        float64              `json:"amount"`
	Reason        string               `json:"reason,omitempty"`
	Status        models.PenaltyStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PaidAmount    float64              `json:"paid_amount"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		VehicleID:      b.VehicleID,
		StartStationID: b.StartStationID,
		EndStationID:   b.EndStationID,
		Status:         b.Status,
		Type:           b.Type,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		ActualEndTime:  b.ActualEndTime,
		DurationHours:  b.DurationHours,
		Fare:           b.Fare,
		HasPenalty:     b.HasPenalty,
		PenaltyAmount:  b.PenaltyAmount,
		PenaltyReason:  b.PenaltyReason,
		DamageReport:   b.DamageReport,
		CreatedAt:      b.CreatedAt,
	}
}

func ToPenaltyResponse(p *models.Penalty) PenaltyResponse {
	return PenaltyResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		CustomerID:    p.CustomerID,
		Type:          p.Type,
		Amount:        p.Amount,
		Reason:        p.Reason,
		Status:        p.Status,
		PaymentStatus: p.PaymentStatus,
		PaidAmount:    p.PaidAmount,
		PaymentMethod: p.PaymentMethod,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}
