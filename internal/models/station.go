package models

import "time"

// Station is a local copy of the fleet directory record. AvailableEVs is
// owned by this service and only ever moved by atomic increments.
type Station struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Capacity        int       `gorm:"not null" json:"capacity"`
	AvailableEVs    int       `gorm:"column:available_evs;not null;default:0" json:"available_evs"`
	GeofenceLat     float64   `json:"geofence_lat"`
	GeofenceLng     float64   `json:"geofence_lng"`
	GeofenceRadiusM float64   `json:"geofence_radius_m"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Customer is the minimal directory copy needed for verification checks and
// penalty statistics grouping.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
