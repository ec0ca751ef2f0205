package service

import (
	"context"

	"github.com/voltride/rental-service/internal/models"
	"github.com/voltride/rental-service/internal/repository"
	"gorm.io/gorm"
)

// Inventory moves vehicle status and station counters in matching pairs: a
// vehicle leaves "available" exactly when some station's counter decrements
// and returns exactly when one increments. Every method runs inside a
// caller-supplied transaction; all writes are guarded single statements, so
// a lost race surfaces as ErrInventoryConflict instead of a silent
// double-count.
type Inventory struct {
	vehicleRepo repository.VehicleRepository
	stationRepo repository.StationRepository
}

func NewInventory(vehicleRepo repository.VehicleRepository, stationRepo repository.StationRepository) *Inventory {
	return &Inventory{vehicleRepo: vehicleRepo, stationRepo: stationRepo}
}

// Reserve takes the vehicle out of the available pool at booking creation.
func (inv *Inventory) Reserve(ctx context.Context, tx *gorm.DB, vehicleID, stationID uint) error {
	n, err := inv.vehicleRepo.UpdateStatusFrom(ctx, tx,
		vehicleID, []models.VehicleStatus{models.VehicleAvailable}, models.VehicleBooked)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVehicleUnavailable
	}
	return inv.adjustStation(ctx, tx, stationID, -1)
}

// Activate marks the pickup: booked -> in-use. The vehicle already left the
// available pool at reservation, so no counter moves here.
func (inv *Inventory) Activate(ctx context.Context, tx *gorm.DB, vehicleID uint) error {
	n, err := inv.vehicleRepo.UpdateStatusFrom(ctx, tx,
		vehicleID, []models.VehicleStatus{models.VehicleBooked}, models.VehicleInUse)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInventoryConflict
	}
	return nil
}

// Release reverses a reservation on cancellation or decline.
func (inv *Inventory) Release(ctx context.Context, tx *gorm.DB, vehicleID, stationID uint) error {
	n, err := inv.vehicleRepo.UpdateStatusFrom(ctx, tx,
		vehicleID, []models.VehicleStatus{models.VehicleBooked}, models.VehicleAvailable)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInventoryConflict
	}
	return inv.adjustStation(ctx, tx, stationID, +1)
}

// Return settles the vehicle at ride completion: back to available, resident
// at the end station, end station counter incremented. The booked source
// status covers the admin shortcut of completing a booking that never went
// through pickup.
func (inv *Inventory) Return(ctx context.Context, tx *gorm.DB, vehicleID, stationID uint) error {
	n, err := inv.vehicleRepo.UpdateStatusFrom(ctx, tx,
		vehicleID, []models.VehicleStatus{models.VehicleInUse, models.VehicleBooked}, models.VehicleAvailable)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInventoryConflict
	}
	if err := inv.vehicleRepo.SetStation(ctx, tx, vehicleID, stationID); err != nil {
		return err
	}
	return inv.adjustStation(ctx, tx, stationID, +1)
}

func (inv *Inventory) adjustStation(ctx context.Context, tx *gorm.DB, stationID uint, delta int) error {
	n, err := inv.stationRepo.IncrementAvailable(ctx, tx, stationID, delta)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInventoryConflict
	}
	return nil
}
