package types

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")
var ErrValidation = errors.New("missing or invalid fields")
var ErrInternal = errors.New("internal server error")
