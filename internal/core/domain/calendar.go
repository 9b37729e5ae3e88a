package domain

import "time"

// DateLayout is the ISO calendar-day format used for all store keys.
const DateLayout = "2006-01-02"

// Day is one business day of the booking window.
type Day struct {
	Date    string `json:"date"`
	DayName string `json:"day_name"`
}

// BusinessWeek returns the five weekdays (Monday through Friday) of the week
// containing now, in ascending order. On a Sunday the window is the upcoming
// Monday to Friday, not the week just ended. Every caller evaluating within
// the same day derives the identical window, so store keys always line up.
func BusinessWeek(now time.Time) []Day {
	offset := int(time.Monday) - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = 1
	}
	monday := now.AddDate(0, 0, offset)

	days := make([]Day, 0, 5)
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		days = append(days, Day{
			Date:    d.Format(DateLayout),
			DayName: d.Weekday().String(),
		})
	}
	return days
}

// ParseDate validates an ISO YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// BeforeToday reports whether date falls strictly before today in the given
// location, comparing calendar days only.
func BeforeToday(date time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return d.Before(today)
}
