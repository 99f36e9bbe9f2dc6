package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and booking functions when input fails
// business rule validation (e.g. missing required field, attendee count over
// vehicle capacity). Handlers should map this to HTTP 422 Unprocessable Entity.
// Validation failures are user-correctable and are never logged as faults.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a reservation cannot be created because the
// vehicle already has an overlapping reservation in the last-synced view.
// Handlers should map this to HTTP 409 Conflict.
//
// This only guards one client's view of the calendar: two clients racing for
// the same vehicle and window can still both succeed at the store. See the
// double-booking note in DESIGN.md.
var ErrConflict = errors.New("conflict")
