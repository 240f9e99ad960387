package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// EventSchedule is the event calendar of one month. Calendars show trailing
// days of the surrounding months, so events may carry dates outside the
// schedule's own month.
type EventSchedule struct {
	Month  int          `json:"month"`
	Year   int          `json:"year"`
	Events []EventEntry `json:"events"`
}

// EventEntry is one scheduled event. StartDate and EndDate stay nil when
// the event runs past the edges of the displayed calendar, where its real
// dates are unknown.
type EventEntry struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Color       string     `json:"color,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

var monthYearPattern = regexp.MustCompile(`([A-Za-z]+)\s(\d+)`)

// ParseEventSchedule parses the event calendar. Events spanning several
// days appear once per day cell, so runs of the same title are folded into
// one entry with inferred start and end dates.
func ParseEventSchedule(content string) (*EventSchedule, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	header := doc.Find("div.eventscheduleheaderdateblock").First()
	m := monthYearPattern.FindStringSubmatch(parseutil.CleanText(header.Text()))
	if m == nil {
		return nil, invalidContentf("no schedule header")
	}
	monthDate, err := time.Parse("January", m[1])
	if err != nil {
		return nil, invalidContentf("unrecognized schedule month %q", m[1])
	}
	table := doc.Find("#eventscheduletable").First()
	if table.Length() == 0 {
		return nil, invalidContentf("no schedule table")
	}

	schedule := &EventSchedule{
		Month: int(monthDate.Month()),
		Year:  parseutil.ParseInteger(m[2], 0),
	}

	month, year := schedule.Month, schedule.Year
	ongoingDay := 1
	firstDay := true
	var ongoing []*EventEntry

	table.Find("td").Each(func(_ int, cell *goquery.Selection) {
		day := parseutil.ParseInteger(cell.Find("div").First().Text(), 0)
		if day == 0 {
			return
		}
		today := parseDayEvents(cell)
		month, year = adjustScheduleDate(ongoingDay, day, month, year)
		ongoingDay = day + 1
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

		// events missing from today's cell ended yesterday
		var still []*EventEntry
		for _, event := range ongoing {
			if hasEventTitle(today, event.Title) {
				still = append(still, event)
				continue
			}
			end := date.AddDate(0, 0, -1)
			event.EndDate = &end
			schedule.Events = append(schedule.Events, *event)
		}
		ongoing = still

		for i := range today {
			event := today[i]
			if eventIndex(ongoing, event.Title) >= 0 {
				continue
			}
			// events already running on the calendar's first day have an
			// unknown start date
			if !firstDay {
				start := date
				event.StartDate = &start
			}
			ongoing = append(ongoing, &event)
		}
		firstDay = false
	})

	// whatever is still running ends past the calendar's edge
	for _, event := range ongoing {
		schedule.Events = append(schedule.Events, *event)
	}
	return schedule, nil
}

func hasEventTitle(events []EventEntry, title string) bool {
	for _, event := range events {
		if event.Title == title {
			return true
		}
	}
	return false
}

func eventIndex(events []*EventEntry, title string) int {
	for i, event := range events {
		if event.Title == title {
			return i
		}
	}
	return -1
}

func parseDayEvents(cell *goquery.Selection) []EventEntry {
	var events []EventEntry
	cell.Find("span.HelperDivIndicator").Each(func(_ int, popup *goquery.Selection) {
		colors := map[string]string{}
		popup.Find("div:not([class])").Each(func(_ int, block *goquery.Selection) {
			style := parseInlineStyle(block.AttrOr("style", ""))
			title := strings.ReplaceAll(parseutil.CleanText(block.Text()), "*", "")
			if background, ok := style["background"]; ok {
				colors[title] = background
			}
		})

		call, ok := popup.Attr("onmouseover")
		if !ok {
			return
		}
		_, popupDoc, err := parseutil.ParsePopup(call)
		if err != nil {
			return
		}
		// events come in title and description div pairs
		divs := popupDoc.Find("div")
		for i := 0; i+1 < divs.Length(); i += 2 {
			title := strings.ReplaceAll(parseutil.CleanText(divs.Eq(i).Text()), ":", "")
			description := strings.ReplaceAll(parseutil.CleanText(divs.Eq(i+1).Text()), "• ", "")
			events = append(events, EventEntry{
				Title:       title,
				Description: description,
				Color:       colors[title],
			})
		}
	})
	return events
}

// the first and last cells of the calendar can belong to the neighbouring
// months
func adjustScheduleDate(ongoingDay, day, month, year int) (int, int) {
	if ongoingDay < day {
		month--
	}
	if day < ongoingDay {
		month++
	}
	if month > 12 {
		month = 1
		year++
	}
	if month < 1 {
		month = 12
		year--
	}
	return month, year
}

func parseInlineStyle(style string) map[string]string {
	values := map[string]string{}
	for _, attr := range strings.Split(style, ";") {
		key, value, ok := strings.Cut(attr, ":")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values
}
