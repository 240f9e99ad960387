package parseutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseDateTime parses the site's timestamp format, "Jul 10 2018, 22:50:30
// CET". Seconds are optional. The CET/CEST suffix is folded into the result,
// which is returned in UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = CleanText(s)
	offset := 0
	switch {
	case strings.HasSuffix(s, " CEST"):
		offset = 2
		s = strings.TrimSuffix(s, " CEST")
	case strings.HasSuffix(s, " CET"):
		offset = 1
		s = strings.TrimSuffix(s, " CET")
	}
	for _, layout := range []string{"Jan 2 2006, 15:04:05", "Jan 2 2006, 15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Add(-time.Duration(offset) * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

// ParseDate parses the site's short date format, "Jul 23 2015".
func ParseDate(s string) (time.Time, error) {
	return time.Parse("Jan 2 2006", CleanText(s))
}

// ParseFullDate parses the site's long date format, "July 23, 2015".
func ParseFullDate(s string) (time.Time, error) {
	return time.Parse("January 2, 2006", CleanText(s))
}

// ParseForumDateTime parses the forum's timestamp format, "23.07.2015
// 21:30:30". Forum pages render timestamps in the viewer's chosen offset,
// announced in the page footer, so the caller passes it in.
func ParseForumDateTime(s string, utcOffset int) (time.Time, error) {
	t, err := time.Parse("02.01.2006 15:04:05", CleanText(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(-time.Duration(utcOffset) * time.Hour), nil
}
