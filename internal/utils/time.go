package utils

import "time"

// DayLayout is how workout dates are written to storage.
const DayLayout = "2006-01-02"

// Day truncates t to its calendar day in t's own location and returns that
// day at UTC midnight, so workout dates compare by value.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay accepts 2006-01-02 or 02/01/06.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		var altErr error
		t, altErr = time.Parse("02/01/06", s)
		if altErr != nil {
			return time.Time{}, err
		}
	}
	return Day(t), nil
}
