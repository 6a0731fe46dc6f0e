package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the session store, the resource gateway, the cache
// and the booking state. Wrapped errors answer errors.Is against these.

var ErrAuthentication = errors.New("invalid credentials")
var ErrValidation = errors.New("invalid input")
var ErrConflict = errors.New("resource already exists")
var ErrUnauthorized = errors.New("operation is forbidden for user")
var ErrUnauthenticated = errors.New("user is not authenticated")
var ErrNotFound = errors.New("resource not found")
var ErrNetwork = errors.New("network failure")
var ErrServer = errors.New("server error")

// ErrAlreadyBooked is a conflict: errors.Is(err, ErrConflict) holds as well.
var ErrAlreadyBooked = fmt.Errorf("event is already booked: %w", ErrConflict)
