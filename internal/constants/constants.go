package constants

import "time"

// Context keys
const (
	ContextKeyUser = "current_user"
)

// Confirmation token lifetime
const (
	ConfirmationTokenTTL = 15 * time.Minute
)

// MaxPageSize caps the page size accepted by list endpoints.
const MaxPageSize = 100
