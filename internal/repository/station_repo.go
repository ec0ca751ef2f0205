package repository

import (
	"context"

	"github.com/voltride/rental-service/internal/models"
	"gorm.io/gorm"
)

type StationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Station, error)
	IncrementAvailable(ctx context.Context, tx *gorm.DB, id uint, delta int) (int64, error)
}

type stationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) FindByID(ctx context.Context, id uint) (*models.Station, error) {
	var station models.Station
	if err := r.db.WithContext(ctx).First(&station, id).Error; err != nil {
		return nil, err
	}
	return &station, nil
}

// IncrementAvailable moves the available_evs counter in a single statement,
// guarded so it never drops below zero or exceeds capacity. Zero rows
// affected means the guard rejected the move.
func (r *stationRepository) IncrementAvailable(ctx context.Context, tx *gorm.DB, id uint, delta int) (int64, error) {
	res := tx.WithContext(ctx).
		Model(&models.Station{}).
		Where("id = ? AND available_evs + ? >= 0 AND available_evs + ? <= capacity", id, delta, delta).
		Update("available_evs", gorm.Expr("available_evs + ?", delta))
	return res.RowsAffected, res.Error
}
