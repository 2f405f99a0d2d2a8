package usercontext

// Locals keys shared between middleware and controllers.
const (
	KeyUserContext   = "USER_CONTEXT"
	KeyFromProtected = "FROM_PROTECTED"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyRole          = "role"
)
