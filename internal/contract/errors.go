package contract

import (
	"errors"
	"fmt"
)

// Cascade error taxonomy. Tier-2 failures fall through silently; only total
// exhaustion surfaces one of these to the caller.
var (
	// ErrProductNotFound means the Tier-3 metadata fetch found no product
	// for the barcode. Not cached: a later scan may succeed.
	ErrProductNotFound = errors.New("product not found")

	// ErrSourceUnavailable means an external source failed or timed out.
	ErrSourceUnavailable = errors.New("external source unavailable")

	// ErrNoRecord means the record store has no fresh record for the
	// requested (barcode, user) pair.
	ErrNoRecord = errors.New("no recent scan record")

	// ErrIngredientNotFound means neither the chemical database nor the
	// estimator produced hazard data for an ingredient.
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// UnknownHazardCodeError reports a hazard code missing from the catalog.
// Recoverable: scoring logs and skips the code rather than failing the scan.
type UnknownHazardCodeError struct {
	Code string
}

func (e *UnknownHazardCodeError) Error() string {
	return fmt.Sprintf("unknown hazard code %q", e.Code)
}

// IsUnknownHazardCode reports whether err wraps an UnknownHazardCodeError.
func IsUnknownHazardCode(err error) bool {
	var target *UnknownHazardCodeError
	return errors.As(err, &target)
}
