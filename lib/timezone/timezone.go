package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Bangkok")
	if err != nil {
		panic(err)
	}
}

// force timezone to be in Bangkok because the booking site resolves
// journey dates against local time, a scraper running in another
// zone near midnight would otherwise ask for the wrong day.
func Now() time.Time {
	return time.Now().In(Location)
}

// StartOfDay truncates t to midnight in Location.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// Days returns `count` consecutive days starting from the day of `start`.
func Days(start time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	first := StartOfDay(start)
	days := make([]time.Time, count)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}
