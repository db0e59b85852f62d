package utils

import "time"

// Bangkok is the shop's business timezone (UTC+7, no DST)
var Bangkok = time.FixedZone("Asia/Bangkok", 7*60*60)

// PeriodStarts are the beginnings of the current reporting periods
type PeriodStarts struct {
	Now   time.Time
	Today time.Time
	Week  time.Time // Monday
	Month time.Time
}

// BangkokPeriods computes today/week/month starts in Bangkok time for now.
// All returned times are in UTC.
func BangkokPeriods(now time.Time) PeriodStarts {
	local := now.In(Bangkok)

	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Bangkok)
	sinceMonday := (int(today.Weekday()) + 6) % 7
	week := today.AddDate(0, 0, -sinceMonday)
	month := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, Bangkok)

	return PeriodStarts{
		Now:   now.UTC(),
		Today: today.UTC(),
		Week:  week.UTC(),
		Month: month.UTC(),
	}
}

// DayBounds parses a YYYY-MM-DD date and returns its first and last instant
func DayBounds(date string) (start, end time.Time, err error) {
	start, err = time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}
