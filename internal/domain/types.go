package domain

// ID is used across domain entities.
type ID int64

// Roles recognized by the auth middleware.
const (
	RolePassenger   = "passenger"
	RoleCoordinator = "coordinator"
)

// RequestContext carries the authenticated caller into the core. Role checks
// happen before a service method runs; nothing in the core reads ambient
// session state.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsCoordinator() bool { return rc.Role == RoleCoordinator }
