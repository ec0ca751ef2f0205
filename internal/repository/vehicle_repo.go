package repository

import (
	"context"

	"github.com/voltride/rental-service/internal/models"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Vehicle, error)
	UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uint, from []models.VehicleStatus, to models.VehicleStatus) (int64, error)
	SetStation(ctx context.Context, tx *gorm.DB, id uint, stationID uint) error
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// UpdateStatusFrom moves the vehicle status only when it currently holds one
// of the expected source statuses. Zero rows affected signals a lost race or
// a vehicle pulled into maintenance out of band.
func (r *vehicleRepository) UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uint, from []models.VehicleStatus, to models.VehicleStatus) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// SetStation relocates the vehicle's resident station. Roster membership is
// the station_id column, so the move is naturally idempotent and the vehicle
// can never appear at two stations at once.
func (r *vehicleRepository) SetStation(ctx context.Context, tx *gorm.DB, id uint, stationID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Update("station_id", stationID).Error
}
