package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/voltride/rental-service/internal/models"
	"github.com/voltride/rental-service/internal/repository"
	"gorm.io/gorm"
)

type CreatePenaltyInput struct {
	BookingID  uint
	CustomerID uint // 0 defaults to the booking's owner
	Type       models.PenaltyType
	Amount     float64
	Reason     string
}

type UpdatePenaltyInput struct {
	Status        *models.PenaltyStatus
	PaymentStatus *models.PaymentStatus
	PaidAmount    *float64
	PaidAt        *time.Time
}

type CustomerPenaltySummary struct {
	CustomerID   uint    `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Count        int     `json:"count"`
	Amount       float64 `json:"amount"`
}

type PenaltyStatistics struct {
	TotalPenaltyCount  int                      `json:"total_penalty_count"`
	TotalPenaltyAmount float64                  `json:"total_penalty_amount"`
	CustomerPenalties  []CustomerPenaltySummary `json:"customer_penalties"`
}

type PenaltyService interface {
	CreatePenalty(ctx context.Context, input CreatePenaltyInput) (*models.Penalty, error)
	UpdatePenalty(ctx context.Context, id uint, input UpdatePenaltyInput) (*models.Penalty, error)
	DeletePenalty(ctx context.Context, id uint) error
	MarkPaid(ctx context.Context, id uint, paidAmount float64, paymentMethod string) (*models.Penalty, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Penalty, error)
	ListByUser(ctx context.Context, customerID uint) ([]models.Penalty, error)
	Statistics(ctx context.Context) (*PenaltyStatistics, error)
}

type penaltyService struct {
	penaltyRepo  repository.PenaltyRepository
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	publisher    EventPublisher
	now          func() time.Time
}

func NewPenaltyService(
	penaltyRepo repository.PenaltyRepository,
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	publisher EventPublisher,
) PenaltyService {
	return &penaltyService{
		penaltyRepo:  penaltyRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *penaltyService) CreatePenalty(ctx context.Context, input CreatePenaltyInput) (*models.Penalty, error) {
	if input.Amount <= 0 {
		return nil, ErrBadAmount
	}
	if !models.KnownPenaltyType(input.Type) {
		return nil, ErrInvalidArgument
	}

	var result *models.Penalty
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the booking so the cached scalar total moves together with
		// the ledger.
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, input.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		customerID := input.CustomerID
		if customerID == 0 {
			customerID = booking.CustomerID
		}
		if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		entry := &models.Penalty{
			BookingID:  booking.ID,
			CustomerID: customerID,
			Type:       input.Type,
			Amount:     input.Amount,
			Reason:     input.Reason,
		}
		if err := s.penaltyRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		applyPenaltyToBooking(booking, input.Amount, input.Reason)
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("penalty.created", result)
	}
	return result, nil
}

func (s *penaltyService) UpdatePenalty(ctx context.Context, id uint, input UpdatePenaltyInput) (*models.Penalty, error) {
	fields := map[string]interface{}{}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.PaymentStatus != nil {
		fields["payment_status"] = *input.PaymentStatus
	}
	if input.PaidAmount != nil {
		if *input.PaidAmount < 0 {
			return nil, ErrBadAmount
		}
		fields["paid_amount"] = *input.PaidAmount
	}
	if input.PaidAt != nil {
		fields["paid_at"] = *input.PaidAt
	}
	if len(fields) == 0 {
		return nil, ErrInvalidArgument
	}

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.penaltyRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPenaltyNotFound
			}
			return err
		}
		return s.penaltyRepo.Updates(ctx, tx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.penaltyRepo.FindByID(ctx, id)
}

// DeletePenalty removes a ledger entry and walks the booking's cached total
// back, clamped at zero so a stale projection can never go negative.
func (s *penaltyService) DeletePenalty(ctx context.Context, id uint) error {
	return s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		penalty, err := s.penaltyRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPenaltyNotFound
			}
			return err
		}

		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, penalty.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if err := s.penaltyRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		booking.PenaltyAmount -= penalty.Amount
		if booking.PenaltyAmount < 0 {
			booking.PenaltyAmount = 0
		}
		remaining, err := s.penaltyRepo.CountByBooking(ctx, tx, penalty.BookingID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			booking.HasPenalty = false
			booking.PenaltyAmount = 0
			booking.PenaltyReason = ""
		}
		return s.bookingRepo.Save(ctx, tx, booking)
	})
}

func (s *penaltyService) MarkPaid(ctx context.Context, id uint, paidAmount float64, paymentMethod string) (*models.Penalty, error) {
	if paidAmount <= 0 || paymentMethod == "" {
		return nil, ErrMissingPayment
	}

	paidAt := s.now()
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.penaltyRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPenaltyNotFound
			}
			return err
		}
		return s.penaltyRepo.Updates(ctx, tx, id, map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"status":         models.PenaltyResolved,
			"paid_amount":    paidAmount,
			"payment_method": paymentMethod,
			"paid_at":        paidAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.penaltyRepo.FindByID(ctx, id)
}

func (s *penaltyService) ListByBooking(ctx context.Context, bookingID uint) ([]models.Penalty, error) {
	return s.penaltyRepo.ListByBooking(ctx, bookingID)
}

func (s *penaltyService) ListByUser(ctx context.Context, customerID uint) ([]models.Penalty, error) {
	return s.penaltyRepo.ListByCustomer(ctx, customerID)
}

// Statistics aggregates penalty exposure across all penalized bookings,
// grouped by owning customer. Bookings whose customer reference is lost are
// skipped and logged; the aggregate never fails on a malformed record.
func (s *penaltyService) Statistics(ctx context.Context) (*PenaltyStatistics, error) {
	bookings, err := s.bookingRepo.FindPenalized(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PenaltyStatistics{CustomerPenalties: []CustomerPenaltySummary{}}
	byCustomer := map[uint]*CustomerPenaltySummary{}
	order := []uint{}

	for _, b := range bookings {
		if b.CustomerID == 0 {
			log.Printf("[PenaltyStats] booking %d has no customer reference, skipping", b.ID)
			continue
		}
		summary, ok := byCustomer[b.CustomerID]
		if !ok {
			customer, err := s.customerRepo.FindByID(ctx, b.CustomerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("[PenaltyStats] customer %d for booking %d not found, skipping", b.CustomerID, b.ID)
					continue
				}
				return nil, err
			}
			summary = &CustomerPenaltySummary{CustomerID: b.CustomerID, CustomerName: customer.Name}
			byCustomer[b.CustomerID] = summary
			order = append(order, b.CustomerID)
		}
		summary.Count++
		summary.Amount += b.PenaltyAmount
		stats.TotalPenaltyCount++
		stats.TotalPenaltyAmount += b.PenaltyAmount
	}

	for _, id := range order {
		stats.CustomerPenalties = append(stats.CustomerPenalties, *byCustomer[id])
	}
	return stats, nil
}
