package app

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers translate these into
// response codes; raw store errors never cross the service boundary.
var (
	ErrValidation    = errors.New("required fields missing")
	ErrNicknameTaken = errors.New("nickname already taken")
	ErrAuthRequired  = errors.New("not signed in")
	ErrForbidden     = errors.New("operation not allowed")
	ErrNotFound      = errors.New("user not found")
	ErrStore         = errors.New("store operation failed")
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}
