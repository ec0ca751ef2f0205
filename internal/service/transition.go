package service

import (
	"github.com/voltride/rental-service/internal/models"
)

// legalGraph is the role-independent transition graph. Cancellation is only
// reachable from pending and approved; completed, cancelled and declined are
// terminal.
var legalGraph = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:  {models.StatusApproved, models.StatusDeclined, models.StatusCancelled},
	models.StatusApproved: {models.StatusOngoing, models.StatusCancelled, models.StatusCompleted},
	models.StatusOngoing:  {models.StatusCompleted},
}

// roleTransitions is the declarative authorization table keyed by
// (role, currentStatus) -> allowed requested statuses. Admins additionally
// get direct pending->ongoing and pending->completed overrides.
var roleTransitions = map[models.Role]map[models.BookingStatus][]models.BookingStatus{
	models.RoleCustomer: {
		models.StatusPending:  {models.StatusCancelled},
		models.StatusApproved: {models.StatusOngoing},
		models.StatusOngoing:  {models.StatusCompleted},
	},
	models.RoleStationMaster: {
		models.StatusPending:  {models.StatusApproved, models.StatusDeclined, models.StatusCancelled},
		models.StatusApproved: {models.StatusCompleted, models.StatusCancelled, models.StatusOngoing},
		models.StatusOngoing:  {models.StatusCompleted},
	},
	models.RoleAdmin: {
		models.StatusPending:  {models.StatusApproved, models.StatusDeclined, models.StatusCancelled, models.StatusOngoing, models.StatusCompleted},
		models.StatusApproved: {models.StatusOngoing, models.StatusCancelled, models.StatusCompleted},
		models.StatusOngoing:  {models.StatusCompleted},
	},
}

func contains(set []models.BookingStatus, s models.BookingStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// authorizeTransition validates (from, to, role) against the transition
// table. Order matters: an unknown target status is an argument error, a
// move out of a terminal state or outside the graph is an illegal
// transition, and a graph-legal move the role is simply not entitled to is
// forbidden.
func authorizeTransition(from, to models.BookingStatus, role models.Role) error {
	if !models.KnownStatus(to) {
		return ErrUnknownStatus
	}
	if from.Terminal() {
		return ErrTerminalBooking
	}
	if from == to {
		return ErrTransitionNotLegal
	}
	if contains(roleTransitions[role][from], to) {
		return nil
	}
	if contains(legalGraph[from], to) {
		return ErrRoleNotPermitted
	}
	return ErrTransitionNotLegal
}
