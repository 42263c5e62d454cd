package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// the portal publishes cause lists and hearing dates in IST, so
// "today"/"tomorrow" must be computed in that zone no matter where
// the process is deployed
func Now() time.Time {
	return time.Now().In(Location)
}

// Day truncates a time to midnight in the portal's timezone.
func Day(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}
