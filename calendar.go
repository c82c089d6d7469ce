package waterfall

import (
	"time"

	"github.com/paydrift/waterfall/date"
)

// HolidayCalendar is a set of non-working dates for a single region.
// It is loaded once per run and immutable afterwards.
type HolidayCalendar struct {
	days map[date.Date]struct{}
}

// NewHolidayCalendar returns a calendar containing the given holidays.
func NewHolidayCalendar(holidays ...date.Date) HolidayCalendar {
	days := make(map[date.Date]struct{}, len(holidays))
	for _, d := range holidays {
		days[d] = struct{}{}
	}
	return HolidayCalendar{days: days}
}

// Holiday reports whether d is a holiday.
func (c HolidayCalendar) Holiday(d date.Date) bool {
	_, ok := c.days[d]
	return ok
}

// Len returns the number of holidays in the calendar.
func (c HolidayCalendar) Len() int { return len(c.days) }

// maxPaydayLookback bounds the backward walk in LastWorkingDay. A month
// cannot realistically contain ten consecutive non-working days at its end;
// hitting the bound means the holiday data is malformed.
const maxPaydayLookback = 10

// workingDay reports whether d is neither a weekend nor a holiday.
func workingDay(d date.Date, cal HolidayCalendar) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !cal.Holiday(d)
}

// LastWorkingDay returns the last day of the given month that is neither a
// weekend nor a holiday. It is pure and deterministic: the same month always
// resolves to the same payday, whenever the program happens to run.
func LastWorkingDay(year int, month time.Month, cal HolidayCalendar) (date.Date, error) {
	d := date.EndOfMonth(year, month)
	for i := 0; i < maxPaydayLookback; i++ {
		if workingDay(d, cal) {
			return d, nil
		}
		d = d.Add(-1)
	}
	return date.Date{}, &CalendarError{
		Year:   year,
		Month:  month,
		Reason: "no working day found in the last 10 days of the month",
	}
}

// IsDue reports whether a cycle with the given next payment date is due today.
func IsDue(today, nextPaymentDate date.Date) bool {
	return !today.Before(nextPaymentDate)
}
