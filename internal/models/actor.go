package models

type Role string

const (
	RoleCustomer      Role = "customer"
	RoleStationMaster Role = "stationMaster"
	RoleAdmin         Role = "admin"
)

func KnownRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleStationMaster, RoleAdmin:
		return true
	}
	return false
}

// Actor is the identity resolved by the caller layer. No session handling
// happens here; the API gateway authenticates and passes the result through.
type Actor struct {
	ID       uint
	Role     Role
	Verified bool
}
