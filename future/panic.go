package future

import (
	"errors"
	"fmt"
)

// ErrPanicRecovered wraps every error produced from a recovered panic.
var ErrPanicRecovered = errors.New("recovered from panic")

// RecoveredError converts a recovered panic value and optional stack trace into an
// error wrapping ErrPanicRecovered. If the panic value is itself an error it is
// wrapped as well, so errors.Is sees through it. A nil value yields nil.
func RecoveredError(value any, stack []byte) error {
	if value == nil {
		return nil
	}

	if err, ok := value.(error); ok {
		if stack != nil {
			return fmt.Errorf("%w: %w\nstack trace:\n%s", ErrPanicRecovered, err, string(stack))
		}

		return fmt.Errorf("%w: %w", ErrPanicRecovered, err)
	}

	if stack != nil {
		return fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanicRecovered, value, string(stack))
	}

	return fmt.Errorf("%w: %v", ErrPanicRecovered, value)
}
