package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltride/rental-service/internal/models"
)

var allStatuses = []models.BookingStatus{
	models.StatusPending, models.StatusApproved, models.StatusOngoing,
	models.StatusCompleted, models.StatusCancelled, models.StatusDeclined,
}

func TestAuthorizeTransition_UnknownStatus(t *testing.T) {
	err := authorizeTransition(models.StatusPending, models.BookingStatus("penalized"), models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = authorizeTransition(models.StatusPending, models.BookingStatus("rejected"), models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAuthorizeTransition_TerminalStatesAreImmutable(t *testing.T) {
	terminals := []models.BookingStatus{models.StatusCompleted, models.StatusCancelled, models.StatusDeclined}
	roles := []models.Role{models.RoleCustomer, models.RoleStationMaster, models.RoleAdmin}

	for _, from := range terminals {
		for _, to := range allStatuses {
			for _, role := range roles {
				t.Run(fmt.Sprintf("%s_to_%s_as_%s", from, to, role), func(t *testing.T) {
					assert.ErrorIs(t, authorizeTransition(from, to, role), ErrInvalidTransition)
				})
			}
		}
	}
}

func TestAuthorizeTransition_SelfTransitionRejected(t *testing.T) {
	// completed -> completed is covered by terminal immutability; the
	// non-terminal self-loops must be rejected too.
	for _, s := range []models.BookingStatus{models.StatusPending, models.StatusApproved, models.StatusOngoing} {
		assert.ErrorIs(t, authorizeTransition(s, s, models.RoleAdmin), ErrInvalidTransition)
	}
}

func TestAuthorizeTransition_CustomerMatrix(t *testing.T) {
	tests := []struct {
		from, to models.BookingStatus
		wantErr  error
	}{
		{models.StatusPending, models.StatusCancelled, nil},
		{models.StatusApproved, models.StatusOngoing, nil},
		{models.StatusOngoing, models.StatusCompleted, nil},

		// Graph-legal moves the customer role is not entitled to.
		{models.StatusPending, models.StatusApproved, ErrForbidden},
		{models.StatusPending, models.StatusDeclined, ErrForbidden},
		{models.StatusApproved, models.StatusCancelled, ErrForbidden},
		{models.StatusApproved, models.StatusCompleted, ErrForbidden},

		// Not in the graph at all.
		{models.StatusPending, models.StatusOngoing, ErrInvalidTransition},
		{models.StatusPending, models.StatusCompleted, ErrInvalidTransition},
		{models.StatusOngoing, models.StatusCancelled, ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_to_%s", tt.from, tt.to), func(t *testing.T) {
			err := authorizeTransition(tt.from, tt.to, models.RoleCustomer)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeTransition_StationMasterMatrix(t *testing.T) {
	tests := []struct {
		from, to models.BookingStatus
		wantErr  error
	}{
		{models.StatusPending, models.StatusApproved, nil},
		{models.StatusPending, models.StatusDeclined, nil},
		{models.StatusPending, models.StatusCancelled, nil},
		{models.StatusApproved, models.StatusCompleted, nil},
		{models.StatusApproved, models.StatusCancelled, nil},
		{models.StatusApproved, models.StatusOngoing, nil},
		{models.StatusOngoing, models.StatusCompleted, nil},

		// pending straight to ongoing is not a legal move for this role.
		{models.StatusPending, models.StatusOngoing, ErrInvalidTransition},
		{models.StatusPending, models.StatusCompleted, ErrInvalidTransition},
		{models.StatusOngoing, models.StatusCancelled, ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_to_%s", tt.from, tt.to), func(t *testing.T) {
			err := authorizeTransition(tt.from, tt.to, models.RoleStationMaster)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeTransition_AdminOverrides(t *testing.T) {
	// Admins may shortcut pending bookings straight to ongoing or completed.
	assert.NoError(t, authorizeTransition(models.StatusPending, models.StatusOngoing, models.RoleAdmin))
	assert.NoError(t, authorizeTransition(models.StatusPending, models.StatusCompleted, models.RoleAdmin))

	// But cancellation from ongoing stays illegal even for admins.
	assert.ErrorIs(t,
		authorizeTransition(models.StatusOngoing, models.StatusCancelled, models.RoleAdmin),
		ErrInvalidTransition)
}
