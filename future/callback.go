package future

import (
	"runtime/debug"

	"github.com/amp-labs/amp-collection/logger"
)

// invokeCallback runs a user callback in its own goroutine so it cannot stall the
// promise that settled the future. Panics are recovered and logged.
func invokeCallback[T any](kind string, callback func(T), value T) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err := RecoveredError(r, debug.Stack()); err != nil {
					logger.Get().Error("panic encountered in future."+kind+" callback", "error", err)
				}
			}
		}()

		callback(value)
	}()
}
