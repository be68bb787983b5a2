// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a politician could not be resolved to a candidate.
	// Report operations turn it into an empty report, never a failure.
	ErrNotFound = errors.New("candidate not found")

	// ErrStorage wraps every database failure.
	ErrStorage = errors.New("storage unavailable")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStorage, op, err)
}
