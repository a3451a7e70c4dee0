package repo

import "errors"

// ErrNotFound is returned when an aggregate does not exist for the given
// account. Stores wrap it so callers can errors.Is against it.
var ErrNotFound = errors.New("not found")
