package models

import "time"

type PenaltyType string

const (
	PenaltyVehicleDamage     PenaltyType = "vehicle_damage"
	PenaltyLateReturn        PenaltyType = "late_return"
	PenaltyLateCancellation  PenaltyType = "late_cancellation"
	PenaltyImproperParking   PenaltyType = "improper_parking"
	PenaltyGeofenceViolation PenaltyType = "geofence_violation"
	PenaltyOther             PenaltyType = "other"
)

func KnownPenaltyType(t PenaltyType) bool {
	switch t {
	case PenaltyVehicleDamage, PenaltyLateReturn, PenaltyLateCancellation,
		PenaltyImproperParking, PenaltyGeofenceViolation, PenaltyOther:
		return true
	}
	return false
}

type PenaltyStatus string

const (
	PenaltyPending  PenaltyStatus = "pending"
	PenaltyDisputed PenaltyStatus = "disputed"
	PenaltyResolved PenaltyStatus = "resolved"
	PenaltyWaived   PenaltyStatus = "waived"
)

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentWaived        PaymentStatus = "waived"
)

// Penalty is one ledger entry. The booking's scalar penalty fields are a
// cached sum over its entries and move together with the ledger in the same
// transaction.
type Penalty struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	BookingID     uint          `gorm:"not null;index" json:"booking_id"`
	CustomerID    uint          `gorm:"not null;index" json:"customer_id"`
	Type          PenaltyType   `gorm:"type:varchar(30);not null" json:"type"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Reason        string        `json:"reason"`
	Status        PenaltyStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	PaidAmount    float64       `gorm:"not null;default:0" json:"paid_amount"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
