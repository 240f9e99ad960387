package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// Highscores is one page of a world's ranking. The site serves 50 entries
// per page, so a full ranking spans several fetches.
type Highscores struct {
	World           string             `json:"world,omitempty"`
	Category        HighscoresCategory `json:"category"`
	VocationFilter  int                `json:"vocation_filter,omitempty"`
	BattlEyeFilter  int                `json:"battleye_filter,omitempty"`
	AvailableWorlds []string           `json:"available_worlds,omitempty"`
	LastUpdated     time.Time          `json:"last_updated"`
	Page            parseutil.PageInfo `json:"page"`
	Entries         []HighscoresEntry  `json:"entries"`
}

// HighscoresEntry is one ranked character. Title is only present in the
// loyalty points category, which inserts an extra column.
type HighscoresEntry struct {
	Rank     int      `json:"rank"`
	Name     string   `json:"name"`
	Title    string   `json:"title,omitempty"`
	Vocation Vocation `json:"vocation"`
	World    string   `json:"world"`
	Level    int      `json:"level"`
	Value    int      `json:"value"`
}

var (
	minutesPattern    = regexp.MustCompile(`(\d+)`)
	lastUpdatePattern = regexp.MustCompile(`Last Update.*`)
)

// ParseHighscores parses a highscores page. A page reporting an unknown
// world yields (nil, nil).
func ParseHighscores(content string) (*Highscores, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	tables := highscoresTables(doc)
	form := doc.Find("form").First()
	entriesTable, hasEntries := tables["Highscores"]
	if form.Length() == 0 || !hasEntries {
		if errTable, ok := tables["Error"]; ok &&
			strings.Contains(errTable.Text(), "The world doesn't exist!") {
			return nil, nil
		}
		return nil, invalidContentf("no highscores table")
	}

	hs := &Highscores{Category: CategoryExperience, BattlEyeFilter: -1}
	data := parseutil.ParseForm(form)
	hs.World = data.Values["world"]
	if v := parseutil.ParseInteger(data.Values["category"], 0); v > 0 {
		hs.Category = HighscoresCategory(v)
	}
	hs.VocationFilter = parseutil.ParseInteger(data.Values["profession"], 0)
	hs.BattlEyeFilter = parseutil.ParseInteger(data.Values["beprotection"], -1)
	for _, opt := range data.Options["world"] {
		if opt.Value != "" {
			hs.AvailableWorlds = append(hs.AvailableWorlds, opt.Value)
		}
	}

	if updated := doc.Find("span.RightArea").First(); updated.Length() > 0 {
		if m := minutesPattern.FindStringSubmatch(updated.Text()); m != nil {
			minutes := parseutil.ParseInteger(m[1], 0)
			hs.LastUpdated = time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
		}
	}

	if page, err := parseutil.ParsePagination(entriesTable.Find(".PageNavigation").First()); err == nil {
		hs.Page = page
	}
	entriesTable.Find("tr[style]").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cols := cells(row)
		if len(cols) == 0 || strings.Contains(cols[0].Text(), "There is currently no data") {
			return false
		}
		if parseutil.CleanText(cols[0].Text()) == "Rank" {
			return true
		}
		if len(cols) <= 2 {
			return false
		}
		hs.Entries = append(hs.Entries, parseHighscoresEntry(hs.Category, cols))
		return true
	})
	return hs, nil
}

func parseHighscoresEntry(category HighscoresCategory, cols []*goquery.Selection) HighscoresEntry {
	entry := HighscoresEntry{
		Rank: parseutil.ParseInteger(cols[0].Text(), 0),
		Name: parseutil.CleanText(cols[1].Text()),
	}
	values := cols[2:]
	if category == CategoryLoyaltyPoints && len(values) > 4 {
		entry.Title = parseutil.CleanText(values[0].Text())
		values = values[1:]
	}
	if len(values) < 4 {
		return entry
	}
	entry.Vocation = ParseVocation(values[0].Text())
	entry.World = parseutil.CleanText(values[1].Text())
	entry.Level = parseutil.ParseInteger(values[2].Text(), 0)
	entry.Value = parseutil.ParseInteger(values[3].Text(), 0)
	return entry
}

// highscoresTables keys the section's containers by caption. The captions
// here carry a "[world]" suffix and the last update label, which have to be
// stripped before they can serve as keys.
func highscoresTables(doc *goquery.Document) map[string]*goquery.Selection {
	tables := map[string]*goquery.Selection{}
	doc.Find("div.TableContainer").Each(func(_ int, container *goquery.Selection) {
		caption := container.Find("div.Text").First().Text()
		caption, _, _ = strings.Cut(caption, "[")
		caption = parseutil.CleanText(lastUpdatePattern.ReplaceAllString(caption, ""))
		if caption == "" {
			return
		}
		inner := container.Find("div.InnerTableContainer").First()
		if inner.Length() == 0 {
			inner = container
		}
		tables[caption] = inner
	})
	return tables
}
