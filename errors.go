package xlgrid

import (
	"errors"
	"fmt"
)

// ErrInvalidColumnCount indicates address translation with columnCount <= 0.
var ErrInvalidColumnCount = errors.New("invalid column count")

// ErrMissingRequiredProvider indicates a collaborator needed by an operation is absent.
var ErrMissingRequiredProvider = errors.New("missing required provider")

// ErrIndexOutOfRange indicates an address outside the cached grid bounds.
var ErrIndexOutOfRange = errors.New("index out of range")

// AddressError describes a failed operation on a specific element.
type AddressError struct {
	Op      string // "select", "deselect", "translate", ...
	Kind    ElementKind
	Address GridAddress
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s %s at %s: %v", e.Op, e.Kind, e.Address, e.Err)
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

func newAddressError(op string, kind ElementKind, addr GridAddress, err error) *AddressError {
	return &AddressError{Op: op, Kind: kind, Address: addr, Err: err}
}

func outOfRange(what string, value, limit int) error {
	return fmt.Errorf("%w: %s %d not in [0, %d)", ErrIndexOutOfRange, what, value, limit)
}
