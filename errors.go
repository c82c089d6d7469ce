package waterfall

import (
	"errors"
	"fmt"
	"time"
)

// The engine distinguishes three failure families. Config and calendar errors
// are detected before any external call is made, so a run that fails with one
// of them has touched nothing. Gateway errors are transient: the schedule
// stays Pending and the next invocation retries.

// ErrBusy is returned when another invocation holds the schedule lock.
var ErrBusy = errors.New("another run is in progress")

// ConfigError reports an invalid allocation plan: duplicate priorities,
// negative amounts, pots that do not exist. It is fatal, no run occurs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid plan: " + e.Reason }

// CalendarError reports that a payday could not be resolved for a month,
// usually a sign of malformed holiday data.
type CalendarError struct {
	Year   int
	Month  time.Month
	Reason string
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("cannot resolve payday for %s %d: %s", e.Month, e.Year, e.Reason)
}

// GatewayError wraps a failure talking to the banking provider.
type GatewayError struct {
	Op  string // the gateway operation that failed, e.g. "balance"
	Err error
}

func (e *GatewayError) Error() string { return fmt.Sprintf("gateway %s: %v", e.Op, e.Err) }
func (e *GatewayError) Unwrap() error { return e.Err }
