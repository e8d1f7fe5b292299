package repositories

import "errors"

// ErrNotFound is returned when a lookup matches nothing. For owner-scoped
// operations it deliberately does not distinguish "missing" from "owned by
// someone else".
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when a user create/update collides with an
// existing email.
var ErrDuplicateEmail = errors.New("email already registered")
