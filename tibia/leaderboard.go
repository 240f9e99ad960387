package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// Leaderboard is one page of a world's Tibiadrome ranking.
type Leaderboard struct {
	World              string                `json:"world"`
	Rotation           LeaderboardRotation   `json:"rotation"`
	AvailableWorlds    []string              `json:"available_worlds,omitempty"`
	AvailableRotations []LeaderboardRotation `json:"available_rotations,omitempty"`
	LastUpdated        time.Time             `json:"last_updated,omitempty"`
	Page               parseutil.PageInfo    `json:"page"`
	Entries            []LeaderboardEntry    `json:"entries"`
}

// LeaderboardRotation is one Tibiadrome rotation period.
type LeaderboardRotation struct {
	ID        int       `json:"id"`
	IsCurrent bool      `json:"is_current,omitempty"`
	EndDate   time.Time `json:"end_date"`
}

// LeaderboardEntry is one ranked character. Deleted characters stay on the
// board as plain text without a character link.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	IsDeleted  bool   `json:"is_deleted,omitempty"`
	DromeLevel int    `json:"drome_level"`
}

var rotationEndPattern = regexp.MustCompile(`ends on ([^)]+)`)

// ParseLeaderboard parses a Tibiadrome leaderboard page.
func ParseLeaderboard(content string) (*Leaderboard, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	form := doc.Find("form").First()
	tables := doc.Find("table.TableContent")
	if form.Length() == 0 || tables.Length() == 0 {
		return nil, invalidContentf("no leaderboard filters")
	}

	board := &Leaderboard{}
	data := parseutil.ParseForm(form)
	board.World = data.Values["world"]
	for _, opt := range data.Options["world"] {
		if opt.Value != "" {
			board.AvailableWorlds = append(board.AvailableWorlds, opt.Value)
		}
	}
	for _, opt := range data.Options["rotation"] {
		rotation := LeaderboardRotation{ID: parseutil.ParseInteger(opt.Value, 0)}
		label := opt.Text
		if strings.Contains(label, "Current") {
			rotation.IsCurrent = true
			if m := rotationEndPattern.FindStringSubmatch(label); m != nil {
				label = m[1]
			}
		}
		if t, err := parseutil.ParseDateTime(label); err == nil {
			rotation.EndDate = t
		}
		if opt.Value == data.Values["rotation"] {
			board.Rotation = rotation
		}
		board.AvailableRotations = append(board.AvailableRotations, rotation)
	}

	if board.Rotation.IsCurrent {
		tables.EachWithBreak(func(_ int, table *goquery.Selection) bool {
			text := table.Text()
			if !strings.Contains(text, "Last Update") {
				return true
			}
			if m := minutesPattern.FindStringSubmatch(text); m != nil {
				minutes := parseutil.ParseInteger(m[1], 0)
				board.LastUpdated = time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
			}
			return false
		})
	}

	tables.Last().Find("tr[style]").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 3 {
			return
		}
		entry := LeaderboardEntry{
			Rank:       parseutil.ParseInteger(cols[0].Text(), 0),
			Name:       parseutil.CleanText(cols[1].Text()),
			IsDeleted:  cols[1].Find("a").Length() == 0,
			DromeLevel: parseutil.ParseInteger(cols[2].Text(), 0),
		}
		board.Entries = append(board.Entries, entry)
	})

	if pagination := doc.Find("small").First(); pagination.Length() > 0 {
		if page, err := parseutil.ParsePagination(pagination); err == nil {
			board.Page = page
		}
	}
	return board, nil
}
