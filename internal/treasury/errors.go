package treasury

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by treasury operations. Every failure aborts the
// operation; the host discards any state written before the error.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrContractDisabled   = errors.New("contract is disabled")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrHistoryNotFound    = errors.New("history not found")
	ErrInvalidCurrency    = errors.New("no funds of the accepted currency")
	ErrNoFunds            = errors.New("no funds attached")
	ErrAlreadyInitialized = errors.New("treasury already initialized")
	ErrNotInitialized     = errors.New("treasury not initialized")
	ErrCannotMigrate      = errors.New("cannot migrate")
)

// MigrateError reports the contract name found in storage.
type MigrateError struct {
	PreviousContract string
}

func (e *MigrateError) Error() string {
	return fmt.Sprintf("cannot migrate from different contract type: %s", e.PreviousContract)
}

func (e *MigrateError) Unwrap() error {
	return ErrCannotMigrate
}
