// Tibia.com displays all dates in the server-save timezone of the game,
// which is CET in winter and CEST in summer. Europe/Berlin follows the
// exact same daylight saving schedule.
package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
}

func Now() time.Time {
	return time.Now().In(Location)
}

// UTCOffsetAt reports the site's UTC offset in hours at the given instant,
// 1 during CET and 2 during CEST.
func UTCOffsetAt(t time.Time) int {
	_, offset := t.In(Location).Zone()
	return offset / 3600
}
