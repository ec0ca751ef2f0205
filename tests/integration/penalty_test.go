//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltride/rental-service/internal/models"
	"github.com/voltride/rental-service/internal/repository"
	"github.com/voltride/rental-service/internal/service"
)

func newPenaltyService() service.PenaltyService {
	return service.NewPenaltyService(
		repository.NewPenaltyRepository(testDB),
		repository.NewBookingRepository(testDB),
		repository.NewCustomerRepository(testDB),
		nil,
	)
}

func createPendingBooking(t *testing.T, svc service.BookingService, customer *models.Customer, station *models.Station) *models.Booking {
	t.Helper()
	vehicle := createTestVehicle(t, station.ID, 10)
	booking, err := svc.CreateBooking(t.Context(), customerActor(customer), service.CreateBookingInput{
		VehicleID:      vehicle.ID,
		StartStationID: station.ID,
		StartTime:      time.Now(),
	})
	require.NoError(t, err)
	return booking
}

func TestPenaltyLedger_CreateAndCachedScalars(t *testing.T) {
	cleanTables()
	customer := createTestCustomer(t, true)
	station := createTestStation(t, 10, 5)
	bookingSvc := newBookingService()
	penaltySvc := newPenaltyService()
	booking := createPendingBooking(t, bookingSvc, customer, station)

	_, err := penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
		BookingID: booking.ID, Type: models.PenaltyImproperParking, Amount: -1,
	})
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	_, err = penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
		BookingID: 99999, Type: models.PenaltyOther, Amount: 10,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	first, err := penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
		BookingID: booking.ID, Type: models.PenaltyImproperParking, Amount: 25, Reason: "blocked a charger",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PenaltyPending, first.Status)
	assert.Equal(t, models.PaymentUnpaid, first.PaymentStatus)

	second, err := penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
		BookingID: booking.ID, Type: models.PenaltyOther, Amount: 15, Reason: "dirty interior",
	})
	require.NoError(t, err)

	var b models.Booking
	require.NoError(t, testDB.First(&b, booking.ID).Error)
	assert.True(t, b.HasPenalty)
	assert.Equal(t, 40.0, b.PenaltyAmount, "cached total tracks the ledger")
	assert.Equal(t, "blocked a charger;dirty interior", b.PenaltyReason)

	// Delete one entry: total walks back; delete the other: flag clears.
	require.NoError(t, penaltySvc.DeletePenalty(t.Context(), first.ID))
	require.NoError(t, testDB.First(&b, booking.ID).Error)
	assert.Equal(t, 15.0, b.PenaltyAmount)
	assert.True(t, b.HasPenalty)

	require.NoError(t, penaltySvc.DeletePenalty(t.Context(), second.ID))
	require.NoError(t, testDB.First(&b, booking.ID).Error)
	assert.False(t, b.HasPenalty)
	assert.Equal(t, 0.0, b.PenaltyAmount)

	err = penaltySvc.DeletePenalty(t.Context(), second.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPenaltyLedger_MarkPaid(t *testing.T) {
	cleanTables()
	customer := createTestCustomer(t, true)
	station := createTestStation(t, 10, 5)
	bookingSvc := newBookingService()
	penaltySvc := newPenaltyService()
	booking := createPendingBooking(t, bookingSvc, customer, station)

	penalty, err := penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
		BookingID: booking.ID, Type: models.PenaltyVehicleDamage, Amount: 50,
	})
	require.NoError(t, err)

	_, err = penaltySvc.MarkPaid(t.Context(), penalty.ID, 0, "card")
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	_, err = penaltySvc.MarkPaid(t.Context(), penalty.ID, 50, "")
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	paid, err := penaltySvc.MarkPaid(t.Context(), penalty.ID, 50, "card")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, models.PenaltyResolved, paid.Status)
	assert.Equal(t, 50.0, paid.PaidAmount)
	assert.NotNil(t, paid.PaidAt)
}

func TestPenaltyLedger_UpdateAndList(t *testing.T) {
	cleanTables()
	customer := createTestCustomer(t, true)
	station := createTestStation(t, 10, 5)
	bookingSvc := newBookingService()
	penaltySvc := newPenaltyService()
	booking := createPendingBooking(t, bookingSvc, customer, station)

	penalty, err := penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
		BookingID: booking.ID, Type: models.PenaltyGeofenceViolation, Amount: 20,
	})
	require.NoError(t, err)

	disputed := models.PenaltyDisputed
	updated, err := penaltySvc.UpdatePenalty(t.Context(), penalty.ID, service.UpdatePenaltyInput{Status: &disputed})
	require.NoError(t, err)
	assert.Equal(t, models.PenaltyDisputed, updated.Status)

	_, err = penaltySvc.UpdatePenalty(t.Context(), penalty.ID, service.UpdatePenaltyInput{})
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	byBooking, err := penaltySvc.ListByBooking(t.Context(), booking.ID)
	require.NoError(t, err)
	assert.Len(t, byBooking, 1)

	byUser, err := penaltySvc.ListByUser(t.Context(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}

// Test: statistics group by customer and skip bookings whose customer record
// is gone instead of failing the aggregate.
func TestPenaltyStatistics(t *testing.T) {
	cleanTables()
	alice := createTestCustomer(t, true)
	bob := createTestCustomer(t, true)
	station := createTestStation(t, 10, 10)
	bookingSvc := newBookingService()
	penaltySvc := newPenaltyService()

	b1 := createPendingBooking(t, bookingSvc, alice, station)
	b2 := createPendingBooking(t, bookingSvc, alice, station)
	b3 := createPendingBooking(t, bookingSvc, bob, station)

	for _, tc := range []struct {
		bookingID uint
		amount    float64
	}{{b1.ID, 100}, {b2.ID, 80}, {b3.ID, 50}} {
		_, err := penaltySvc.CreatePenalty(t.Context(), service.CreatePenaltyInput{
			BookingID: tc.bookingID, Type: models.PenaltyOther, Amount: tc.amount,
		})
		require.NoError(t, err)
	}

	stats, err := penaltySvc.Statistics(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPenaltyCount)
	assert.Equal(t, 230.0, stats.TotalPenaltyAmount)
	require.Len(t, stats.CustomerPenalties, 2)
	assert.Equal(t, alice.ID, stats.CustomerPenalties[0].CustomerID)
	assert.Equal(t, 180.0, stats.CustomerPenalties[0].Amount)
	assert.Equal(t, 2, stats.CustomerPenalties[0].Count)

	// Lose bob's customer record: his booking is skipped, not fatal.
	require.NoError(t, testDB.Delete(&models.Customer{}, bob.ID).Error)

	stats, err = penaltySvc.Statistics(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPenaltyCount)
	assert.Equal(t, 180.0, stats.TotalPenaltyAmount)
	require.Len(t, stats.CustomerPenalties, 1)
	assert.Equal(t, alice.ID, stats.CustomerPenalties[0].CustomerID)
}
