package repository

import (
	"context"

	"github.com/voltride/rental-service/internal/models"
	"gorm.io/gorm"
)

type PenaltyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, penalty *models.Penalty) error
	FindByID(ctx context.Context, id uint) (*models.Penalty, error)
	Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	CountByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Penalty, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Penalty, error)
}

type penaltyRepository struct {
	db *gorm.DB
}

func NewPenaltyRepository(db *gorm.DB) PenaltyRepository {
	return &penaltyRepository{db: db}
}

func (r *penaltyRepository) Create(ctx context.Context, tx *gorm.DB, penalty *models.Penalty) error {
	return tx.WithContext(ctx).Create(penalty).Error
}

func (r *penaltyRepository) FindByID(ctx context.Context, id uint) (*models.Penalty, error) {
	var penalty models.Penalty
	if err := r.db.WithContext(ctx).First(&penalty, id).Error; err != nil {
		return nil, err
	}
	return &penalty, nil
}

func (r *penaltyRepository) Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	return tx.WithContext(ctx).
		Model(&models.Penalty{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *penaltyRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Penalty{}, id).Error
}

func (r *penaltyRepository) CountByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Penalty{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count, err
}

func (r *penaltyRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.Penalty, error) {
	var penalties []models.Penalty
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&penalties).Error; err != nil {
		return nil, err
	}
	return penalties, nil
}

func (r *penaltyRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.Penalty, error) {
	var penalties []models.Penalty
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&penalties).Error; err != nil {
		return nil, err
	}
	return penalties, nil
}
