package constant

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	// TokenExpiry is how long an issued bearer token stays valid.
	TokenExpiry = 30 * 24 * time.Hour

	// LoginMaxAttempts is the per-IP login attempt ceiling within LoginWindow.
	LoginMaxAttempts = 5
	LoginWindow      = 15 * time.Minute

	MinPasswordLength = 6
)
