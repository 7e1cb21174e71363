package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusNormal     Status = "NORMAL"
	StatusLate       Status = "LATE"
	StatusEarlyLeave Status = "EARLY_LEAVE"
	StatusAbsence    Status = "ABSENCE"
)

// ValidStatuses lists every attendance status.
var ValidStatuses = []string{
	string(StatusNormal),
	string(StatusLate),
	string(StatusEarlyLeave),
	string(StatusAbsence),
}

type Attendance struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string
	Date         time.Time
	CheckinTime  *time.Time
	CheckoutTime *time.Time
	Status       Status
	WorkMinutes  *int
	CreatedAt    time.Time
}

// Statistics holds per-status day counts for one employee and month.
type Statistics struct {
	NormalCount     int
	LateCount       int
	EarlyLeaveCount int
	AbsenceCount    int
	TotalDays       int
}

// Rules evaluates clock times against the working-day thresholds in the
// business timezone.
type Rules struct {
	Location  *time.Location
	WorkStart time.Duration // offset from local midnight
	WorkEnd   time.Duration
}

// NewRules builds Rules from an IANA timezone and HH:MM thresholds.
func NewRules(timezone, workStart, workEnd string) (Rules, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Rules{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	start, err := parseClock(workStart)
	if err != nil {
		return Rules{}, err
	}
	end, err := parseClock(workEnd)
	if err != nil {
		return Rules{}, err
	}
	return Rules{Location: loc, WorkStart: start, WorkEnd: end}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// LocalDate returns the business-day date of t as a UTC midnight value.
func (r Rules) LocalDate(t time.Time) time.Time {
	local := t.In(r.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Day is one business day: the DATE stored on attendance rows and the
// instants it spans in the business timezone.
type Day struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

// BusinessDay returns the business day containing t.
func (r Rules) BusinessDay(t time.Time) Day {
	local := t.In(r.Location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.Location)
	return Day{
		Date:  r.LocalDate(t),
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

func (r Rules) sinceMidnight(t time.Time) time.Duration {
	local := t.In(r.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.Location)
	return local.Sub(midnight)
}

// CheckInStatus is LATE when t is strictly after the work start, else NORMAL.
func (r Rules) CheckInStatus(t time.Time) Status {
	if r.sinceMidnight(t) > r.WorkStart {
		return StatusLate
	}
	return StatusNormal
}

// CheckOutStatus is EARLY_LEAVE when t is before the work end; otherwise the
// check-in status is kept.
func (r Rules) CheckOutStatus(current Status, t time.Time) Status {
	if r.sinceMidnight(t) < r.WorkEnd {
		return StatusEarlyLeave
	}
	return current
}

// WorkMinutes returns whole minutes between check-in and check-out.
func WorkMinutes(checkin, checkout time.Time) int {
	d := checkout.Sub(checkin)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// FormatWorkMinutes renders minutes as "<h>h<m>m".
func FormatWorkMinutes(minutes int) string {
	return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
}
