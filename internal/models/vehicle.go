package models

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleBooked      VehicleStatus = "booked"
	VehicleInUse       VehicleStatus = "in-use"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// Vehicle is a local copy of the fleet directory record. Directory fields
// (make, model, plate, price) are owned by the fleet service and synced via
// RabbitMQ; Status and StationID are owned by this service.
type Vehicle struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	PlateNumber  string        `json:"plate_number"`
	PricePerHour float64       `gorm:"not null" json:"price_per_hour"`
	Status       VehicleStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	StationID    *uint         `gorm:"index" json:"station_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
