package tibia

import (
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// KillStatistics is a world's kill statistics report, keyed by race.
type KillStatistics struct {
	World           string               `json:"world"`
	AvailableWorlds []string             `json:"available_worlds,omitempty"`
	Entries         map[string]RaceEntry `json:"entries"`
	Total           RaceEntry            `json:"total"`
}

// RaceEntry is the kill counters of one race. PlayersKilled counts players
// killed by the race, Killed counts members of the race killed by players.
type RaceEntry struct {
	LastDayPlayersKilled  int `json:"last_day_players_killed"`
	LastDayKilled         int `json:"last_day_killed"`
	LastWeekPlayersKilled int `json:"last_week_players_killed"`
	LastWeekKilled        int `json:"last_week_killed"`
}

// ParseKillStatistics parses a kill statistics page. Pages without a
// selected world yield (nil, nil).
func ParseKillStatistics(content string) (*KillStatistics, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	form := doc.Find("form").First()
	if form.Length() == 0 {
		return nil, invalidContentf("no world selection form")
	}

	stats := &KillStatistics{Entries: map[string]RaceEntry{}}
	data := parseutil.ParseForm(form)
	stats.World = data.Values["world"]
	for _, opt := range data.Options["world"] {
		if opt.Value != "" {
			stats.AvailableWorlds = append(stats.AvailableWorlds, opt.Value)
		}
	}

	entriesTable := doc.Find(`table[border="0"][cellpadding="3"]`).First()
	if entriesTable.Length() == 0 {
		entriesTable = doc.Find("table.Table3").First()
	}
	if entriesTable.Length() == 0 {
		return nil, nil
	}

	rows := entriesTable.Find("tr")
	// first two rows are the header and its "Last Day / Last Week" subheader
	rows.Each(func(i int, row *goquery.Selection) {
		if i < 2 {
			return
		}
		cols := cells(row)
		if len(cols) != 5 {
			return
		}
		race := parseutil.CleanText(cols[0].Text())
		entry := RaceEntry{
			LastDayPlayersKilled:  parseutil.ParseInteger(cols[1].Text(), -1),
			LastDayKilled:         parseutil.ParseInteger(cols[2].Text(), -1),
			LastWeekPlayersKilled: parseutil.ParseInteger(cols[3].Text(), -1),
			LastWeekKilled:        parseutil.ParseInteger(cols[4].Text(), -1),
		}
		if entry.LastDayPlayersKilled < 0 || entry.LastDayKilled < 0 ||
			entry.LastWeekPlayersKilled < 0 || entry.LastWeekKilled < 0 {
			return
		}
		if i == rows.Length()-1 {
			stats.Total = entry
		} else {
			stats.Entries[race] = entry
		}
	})
	return stats, nil
}
