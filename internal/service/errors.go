package service

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap exactly one kind so handlers can map
// them with errors.Is. ErrConflictRetry and ErrTransactionFailed are safe
// for the caller to retry; everything else needs caller-side correction.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflictRetry      = errors.New("concurrent update, refetch and retry")
	ErrTransactionFailed  = errors.New("settlement transaction failed")
)

var (
	ErrBookingNotFound  = fmt.Errorf("%w: booking", ErrNotFound)
	ErrVehicleNotFound  = fmt.Errorf("%w: vehicle", ErrNotFound)
	ErrStationNotFound  = fmt.Errorf("%w: station", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)
	ErrPenaltyNotFound  = fmt.Errorf("%w: penalty", ErrNotFound)

	ErrUnknownStatus  = fmt.Errorf("%w: unknown booking status", ErrInvalidArgument)
	ErrBadTimeRange   = fmt.Errorf("%w: end time must be after start time", ErrInvalidArgument)
	ErrBadAmount      = fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	ErrMissingPayment = fmt.Errorf("%w: paid amount and payment method are required", ErrInvalidArgument)

	ErrVehicleUnavailable = fmt.Errorf("%w: vehicle is not available", ErrPreconditionFailed)
	ErrCustomerUnverified = fmt.Errorf("%w: customer is not identity-verified", ErrPreconditionFailed)
	ErrNotACustomer       = fmt.Errorf("%w: only customers can create bookings", ErrPreconditionFailed)
	ErrInventoryConflict  = fmt.Errorf("%w: inventory state changed underneath", ErrConflictRetry)
	ErrCancelNotPermitted = fmt.Errorf("%w: only the booking owner or an admin may cancel", ErrForbidden)
	ErrDamageNotPermitted = fmt.Errorf("%w: only admins and station masters may report damage", ErrForbidden)
	ErrNotBookingOwner    = fmt.Errorf("%w: booking belongs to another customer", ErrForbidden)
	ErrRoleNotPermitted   = fmt.Errorf("%w: role may not perform this transition", ErrForbidden)
	ErrTerminalBooking    = fmt.Errorf("%w: booking is in a terminal state", ErrInvalidTransition)
	ErrTransitionNotLegal = fmt.Errorf("%w: not reachable from the current status", ErrInvalidTransition)
)
