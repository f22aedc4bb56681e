package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers test for
// it with errors.Is; repositories wrap it with the entity and ID.
var ErrNotFound = errors.New("not found")
