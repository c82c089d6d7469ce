package waterfall

import (
	"fmt"

	"github.com/paydrift/waterfall/date"
)

// Status is the lifecycle state of the current pay cycle.
type Status string

const (
	// StatusPending means the cycle's payday has not been processed yet.
	StatusPending Status = "pending"
	// StatusExecuted means transfers for the cycle were successfully issued.
	StatusExecuted Status = "executed"
	// StatusSkipped means the cycle was explicitly bypassed.
	StatusSkipped Status = "skipped"
)

// ParseStatus parses a persisted status string.
func ParseStatus(str string) (Status, error) {
	switch s := Status(str); s {
	case StatusPending, StatusExecuted, StatusSkipped:
		return s, nil
	}
	return "", fmt.Errorf("unknown schedule status %q", str)
}

// terminal reports whether the status ends a cycle.
func (s Status) terminal() bool { return s == StatusExecuted || s == StatusSkipped }

// Schedule is the engine's only durable state: one record tracking the
// current pay cycle. It is passed explicitly into and out of the orchestrator
// (never a process-wide singleton) so that several schedules can coexist and
// tests stay simple.
type Schedule struct {
	NextPaymentDate date.Date
	LastExecuted    date.Date // zero until the first executed cycle
	Status          Status
}

// NewSchedule returns a pending schedule for the given payday.
func NewSchedule(next date.Date) *Schedule {
	return &Schedule{NextPaymentDate: next, Status: StatusPending}
}

// MarkExecuted transitions the current cycle from Pending to Executed.
func (s *Schedule) MarkExecuted(on date.Date) error {
	if s.Status != StatusPending {
		return fmt.Errorf("cannot execute a %s cycle", s.Status)
	}
	s.Status = StatusExecuted
	s.LastExecuted = on
	return nil
}

// MarkSkipped transitions the current cycle from Pending to Skipped.
func (s *Schedule) MarkSkipped() error {
	if s.Status != StatusPending {
		return fmt.Errorf("cannot skip a %s cycle", s.Status)
	}
	s.Status = StatusSkipped
	return nil
}

// Advance moves the schedule to the next cycle: it resolves the payday of
// the month following NextPaymentDate and resets the status to Pending.
// It is the only mutator of NextPaymentDate and refuses to run while the
// current cycle is still pending, so a cycle can never be silently dropped.
// Advancing one month at a time (rather than from today) means a schedule
// that lagged behind still processes its cycles in order.
func (s *Schedule) Advance(cal HolidayCalendar) error {
	if !s.Status.terminal() {
		return fmt.Errorf("cannot advance: current cycle is still %s", s.Status)
	}
	next := s.NextPaymentDate.NextMonth()
	payday, err := LastWorkingDay(next.Year(), next.Month(), cal)
	if err != nil {
		return err
	}
	s.NextPaymentDate = payday
	s.Status = StatusPending
	return nil
}
