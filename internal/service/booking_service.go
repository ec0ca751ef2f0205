package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voltride/rental-service/internal/fare"
	"github.com/voltride/rental-service/internal/models"
	"github.com/voltride/rental-service/internal/repository"
	"gorm.io/gorm"
)

// MinDamagePenalty is charged when a damage report carries no explicit amount.
const MinDamagePenalty = 50

// EventPublisher decouples the service from the RabbitMQ wiring. A nil
// publisher is tolerated; lifecycle events are best-effort.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CreateBookingInput struct {
	CustomerID     uint
	VehicleID      uint
	StartStationID uint
	EndStationID   uint // 0 means round trip: defaults to the start station
	StartTime      time.Time
	EndTime        time.Time // zero value defaults to start + 1h
	Type           models.BookingType
}

type TransitionExtras struct {
	DamageReport  string
	PenaltyAmount float64
	PenaltyReason string
}

type LocationUpdate struct {
	Lat           float64
	Lng           float64
	PenaltyAmount float64
	PenaltyReason string
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	Transition(ctx context.Context, bookingID uint, requested models.BookingStatus, actor models.Actor, extras TransitionExtras) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint, actor models.Actor) (*models.Booking, error)
	ReportDamage(ctx context.Context, bookingID uint, actor models.Actor, description string, amount float64, images []string) (*models.Booking, error)
	UpdateLocation(ctx context.Context, bookingID uint, update LocationUpdate) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, customerID *uint, status *models.BookingStatus) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	stationRepo  repository.StationRepository
	customerRepo repository.CustomerRepository
	penaltyRepo  repository.PenaltyRepository
	inventory    *Inventory
	publisher    EventPublisher
	now          func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	stationRepo repository.StationRepository,
	customerRepo repository.CustomerRepository,
	penaltyRepo repository.PenaltyRepository,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		stationRepo:  stationRepo,
		customerRepo: customerRepo,
		penaltyRepo:  penaltyRepo,
		inventory:    NewInventory(vehicleRepo, stationRepo),
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error) {
	if actor.Role != models.RoleCustomer {
		return nil, ErrNotACustomer
	}
	if !actor.Verified {
		return nil, ErrCustomerUnverified
	}
	if input.CustomerID != 0 && input.CustomerID != actor.ID {
		return nil, ErrNotBookingOwner
	}

	start := input.StartTime
	end := input.EndTime
	if end.IsZero() {
		end = start.Add(time.Hour)
	}
	if !end.After(start) {
		return nil, ErrBadTimeRange
	}

	endStationID := input.EndStationID
	if endStationID == 0 {
		endStationID = input.StartStationID
	}

	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the vehicle row — serializes concurrent reservations of the
		// same vehicle.
		vehicle, err := s.vehicleRepo.FindByIDForUpdate(ctx, tx, input.VehicleID)
		if err != nil {
			return ErrVehicleNotFound
		}
		if vehicle.Status != models.VehicleAvailable {
			return ErrVehicleUnavailable
		}

		if _, err := s.stationRepo.FindByID(ctx, input.StartStationID); err != nil {
			return ErrStationNotFound
		}
		if endStationID != input.StartStationID {
			if _, err := s.stationRepo.FindByID(ctx, endStationID); err != nil {
				return ErrStationNotFound
			}
		}

		hours := fare.BillableHours(start, end)
		booking := &models.Booking{
			CustomerID:     actor.ID,
			VehicleID:      input.VehicleID,
			StartStationID: input.StartStationID,
			EndStationID:   endStationID,
			Status:         models.StatusPending,
			Type:           input.Type,
			StartTime:      start,
			EndTime:        end,
			DurationHours:  hours,
			Fare:           fare.Compute(vehicle.PricePerHour, hours),
		}
		if booking.Type == "" {
			booking.Type = models.TypeImmediate
		}

		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.inventory.Reserve(ctx, tx, input.VehicleID, input.StartStationID); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", result)
	return result, nil
}

func (s *bookingService) Transition(ctx context.Context, bookingID uint, requested models.BookingStatus, actor models.Actor, extras TransitionExtras) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if actor.Role == models.RoleCustomer && booking.CustomerID != actor.ID {
			return ErrNotBookingOwner
		}
		if err := authorizeTransition(booking.Status, requested, actor.Role); err != nil {
			return err
		}

		from := booking.Status
		switch requested {
		case models.StatusApproved:
			// Vehicle was reserved at creation; approval changes no inventory.
		case models.StatusDeclined:
			// A declined booking no longer holds the vehicle.
			if err := s.inventory.Release(ctx, tx, booking.VehicleID, booking.StartStationID); err != nil {
				return err
			}
		case models.StatusOngoing:
			booking.StartTime = s.now()
			if err := s.inventory.Activate(ctx, tx, booking.VehicleID); err != nil {
				return err
			}
		case models.StatusCancelled:
			if err := s.inventory.Release(ctx, tx, booking.VehicleID, booking.StartStationID); err != nil {
				return err
			}
		case models.StatusCompleted:
			if err := s.settle(ctx, tx, booking, from, extras); err != nil {
				return err
			}
		}

		n, err := s.bookingRepo.UpdateStatusFrom(ctx, tx, booking.ID, from, requested)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrConflictRetry
		}
		booking.Status = requested
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		if requested == models.StatusCompleted && !isKindError(err) {
			return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
		}
		return nil, err
	}

	s.publish("booking."+string(requested), result)
	return result, nil
}

// settle applies the completion side effects inside the surrounding
// transaction: stamp the actual end, recompute the fare if none was set,
// charge the capped late-return penalty, and hand the vehicle back to the
// end-station pool. Any failure rolls back the whole unit.
func (s *bookingService) settle(ctx context.Context, tx *gorm.DB, booking *models.Booking, from models.BookingStatus, extras TransitionExtras) error {
	now := s.now()
	booking.ActualEndTime = &now

	vehicle, err := s.vehicleRepo.FindByIDForUpdate(ctx, tx, booking.VehicleID)
	if err != nil {
		return ErrVehicleNotFound
	}

	if booking.Fare == 0 {
		hours := fare.BillableHours(booking.StartTime, now)
		booking.DurationHours = hours
		booking.Fare = fare.Compute(vehicle.PricePerHour, hours)
	}

	if from == models.StatusOngoing {
		if late := fare.LateReturnPenalty(booking.EndTime, now); late > 0 {
			if err := s.recordPenalty(ctx, tx, booking, models.PenaltyLateReturn, late, "late return"); err != nil {
				return err
			}
		}
	}

	// Return inspection findings submitted with the completion request.
	if extras.DamageReport != "" {
		booking.DamageReport = joinSemicolon(booking.DamageReport, extras.DamageReport)
		amount := extras.PenaltyAmount
		if amount <= 0 {
			amount = MinDamagePenalty
		}
		if err := s.recordPenalty(ctx, tx, booking, models.PenaltyVehicleDamage, amount, extras.DamageReport); err != nil {
			return err
		}
	} else if extras.PenaltyAmount > 0 {
		reason := extras.PenaltyReason
		if reason == "" {
			reason = "charge at return"
		}
		if err := s.recordPenalty(ctx, tx, booking, models.PenaltyOther, extras.PenaltyAmount, reason); err != nil {
			return err
		}
	}

	endStationID := booking.EndStationID
	if endStationID == 0 {
		// Never strand the vehicle without a resident station.
		if vehicle.StationID != nil {
			endStationID = *vehicle.StationID
		} else {
			endStationID = booking.StartStationID
		}
		booking.EndStationID = endStationID
	}

	return s.inventory.Return(ctx, tx, booking.VehicleID, endStationID)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint, actor models.Actor) (*models.Booking, error) {
	if actor.Role != models.RoleCustomer && actor.Role != models.RoleAdmin {
		return nil, ErrCancelNotPermitted
	}
	return s.Transition(ctx, bookingID, models.StatusCancelled, actor, TransitionExtras{})
}

func (s *bookingService) ReportDamage(ctx context.Context, bookingID uint, actor models.Actor, description string, amount float64, images []string) (*models.Booking, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleStationMaster {
		return nil, ErrDamageNotPermitted
	}
	if amount <= 0 {
		amount = MinDamagePenalty
	}

	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		booking.DamageReport = joinSemicolon(booking.DamageReport, description)
		booking.DamageImages = joinSemicolon(booking.DamageImages, strings.Join(images, ";"))

		// Damage is ledger metadata, not a workflow state: the booking's
		// status is left untouched, even on completed bookings (damage is
		// often discovered after return).
		if err := s.recordPenalty(ctx, tx, booking, models.PenaltyVehicleDamage, amount, description); err != nil {
			return err
		}
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("penalty.created", result)
	return result, nil
}

func (s *bookingService) UpdateLocation(ctx context.Context, bookingID uint, update LocationUpdate) (*models.Booking, error) {
	var result *models.Booking
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		now := s.now()
		lat, lng := update.Lat, update.Lng
		booking.LastLat = &lat
		booking.LastLng = &lng
		booking.LastLocationAt = &now

		if update.PenaltyAmount > 0 {
			reason := update.PenaltyReason
			if reason == "" {
				reason = "geofence violation"
			}
			if err := s.recordPenalty(ctx, tx, booking, models.PenaltyGeofenceViolation, update.PenaltyAmount, reason); err != nil {
				return err
			}
		}
		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, customerID *uint, status *models.BookingStatus) ([]models.Booking, error) {
	if status != nil && !models.KnownStatus(*status) {
		return nil, ErrUnknownStatus
	}
	return s.bookingRepo.List(ctx, customerID, status)
}

// recordPenalty writes a ledger entry and keeps the booking's cached scalar
// projection in step. The caller persists the booking.
func (s *bookingService) recordPenalty(ctx context.Context, tx *gorm.DB, booking *models.Booking, typ models.PenaltyType, amount float64, reason string) error {
	entry := &models.Penalty{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		Type:       typ,
		Amount:     amount,
		Reason:     reason,
	}
	if err := s.penaltyRepo.Create(ctx, tx, entry); err != nil {
		return err
	}
	applyPenaltyToBooking(booking, amount, reason)
	return nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, booking)
	}
}

// applyPenaltyToBooking maintains the legacy scalar projection of the ledger.
func applyPenaltyToBooking(b *models.Booking, amount float64, reason string) {
	b.HasPenalty = true
	b.PenaltyAmount += amount
	b.PenaltyReason = joinSemicolon(b.PenaltyReason, reason)
}

func joinSemicolon(existing, added string) string {
	if added == "" {
		return existing
	}
	if existing == "" {
		return added
	}
	return existing + ";" + added
}

func isKindError(err error) bool {
	for _, kind := range []error{
		ErrNotFound, ErrForbidden, ErrInvalidArgument,
		ErrInvalidTransition, ErrPreconditionFailed, ErrConflictRetry,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
