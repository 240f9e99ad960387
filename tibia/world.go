package tibia

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// World is a game world's page, including its online player list.
type World struct {
	Name             string         `json:"name"`
	IsOnline         bool           `json:"is_online"`
	OnlineCount      int            `json:"online_count"`
	RecordCount      int            `json:"record_count"`
	RecordDate       time.Time      `json:"record_date"`
	CreationDate     string         `json:"creation_date,omitempty"`
	Location         WorldLocation  `json:"location"`
	PvpType          PvpType        `json:"pvp_type"`
	IsPremiumOnly    bool           `json:"is_premium_only,omitempty"`
	TransferType     TransferType   `json:"transfer_type"`
	WorldQuestTitles []string       `json:"world_quest_titles,omitempty"`
	BattlEye         BattlEyeType   `json:"battleye"`
	BattlEyeSince    *time.Time     `json:"battleye_since,omitempty"`
	IsExperimental   bool           `json:"is_experimental,omitempty"`
	OnlinePlayers    []OnlinePlayer `json:"online_players,omitempty"`
}

type OnlinePlayer struct {
	Name     string   `json:"name"`
	Level    int      `json:"level"`
	Vocation Vocation `json:"vocation"`
}

// WorldEntry is one row of the world overview listing.
type WorldEntry struct {
	Name           string        `json:"name"`
	IsOnline       bool          `json:"is_online"`
	OnlineCount    int           `json:"online_count"`
	Location       WorldLocation `json:"location"`
	PvpType        PvpType       `json:"pvp_type"`
	BattlEye       BattlEyeType  `json:"battleye"`
	TransferType   TransferType  `json:"transfer_type"`
	IsPremiumOnly  bool          `json:"is_premium_only,omitempty"`
	IsExperimental bool          `json:"is_experimental,omitempty"`
}

// WorldOverview is the world list with the overall player record.
type WorldOverview struct {
	RecordCount int          `json:"record_count"`
	RecordDate  time.Time    `json:"record_date"`
	Worlds      []WorldEntry `json:"worlds"`
}

var (
	recordPattern        = regexp.MustCompile(`([\d.,]+) players \(on ([^)]+)\)`)
	battlEyeSincePattern = regexp.MustCompile(`since ([^.]+)`)
)

// ParseWorld parses a world page. A page reporting an unknown world name
// yields (nil, nil).
func ParseWorld(content string) (*World, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	if strings.Contains(doc.Text(), "World with this name doesn't exist!") {
		return nil, nil
	}

	tables := parseutil.SectionTables(doc)
	infoTable, ok := tables["World Information"]
	if !ok {
		return nil, invalidContentf("no world information table")
	}

	world := &World{TransferType: TransferRegular}
	world.Name = parseutil.CleanText(doc.Find("select[name=world] option[selected]").First().Text())
	if world.Name == "" {
		world.Name = parseutil.CleanText(doc.Find("option[selected]").First().Text())
	}

	infoTable.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 2 {
			return
		}
		field := strings.ToLower(strings.TrimSuffix(parseutil.CleanText(cols[0].Text()), ":"))
		value := parseutil.CleanText(cols[1].Text())
		switch field {
		case "status":
			world.IsOnline = strings.Contains(strings.ToLower(value), "online")
		case "players online":
			world.OnlineCount = parseutil.ParseInteger(value, 0)
		case "online record":
			if m := recordPattern.FindStringSubmatch(value); m != nil {
				world.RecordCount = parseutil.ParseInteger(m[1], 0)
				if t, err := parseutil.ParseDateTime(m[2]); err == nil {
					world.RecordDate = t
				}
			}
		case "creation date":
			world.CreationDate = parseCreationDate(value)
		case "location":
			world.Location = ParseWorldLocation(value)
		case "pvp type":
			world.PvpType = ParsePvpType(value)
		case "premium type":
			world.IsPremiumOnly = strings.Contains(strings.ToLower(value), "premium")
		case "transfer type":
			world.TransferType = parseTransferType(value)
		case "world quest titles":
			if !strings.Contains(strings.ToLower(value), "no world quest") {
				world.WorldQuestTitles = parseutil.SplitList(value)
			}
		case "battleye status":
			world.BattlEye, world.BattlEyeSince = parseBattlEyeStatus(value)
		case "game world type":
			world.IsExperimental = strings.Contains(strings.ToLower(value), "experimental")
		}
	})

	if playersTable, ok := tables["Players Online"]; ok {
		playersTable.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cols := cells(row)
			if len(cols) != 3 {
				return
			}
			name := parseutil.CleanText(cols[0].Text())
			if name == "" || name == "Name" {
				return
			}
			world.OnlinePlayers = append(world.OnlinePlayers, OnlinePlayer{
				Name:     name,
				Level:    parseutil.ParseInteger(cols[1].Text(), 0),
				Vocation: ParseVocation(cols[2].Text()),
			})
		})
	}
	return world, nil
}

// the site renders creation dates as MM/YY
func parseCreationDate(value string) string {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return ""
	}
	month := parseutil.ParseInteger(parts[0], 0)
	year := parseutil.ParseInteger(parts[1], -1)
	if month < 1 || month > 12 || year < 0 {
		return ""
	}
	if year > 90 {
		year += 1900
	} else {
		year += 2000
	}
	return fmt.Sprintf("%d-%02d", year, month)
}

func parseTransferType(value string) TransferType {
	value = strings.ToLower(value)
	switch {
	case strings.Contains(value, "blocked"):
		return TransferBlocked
	case strings.Contains(value, "locked"):
		return TransferLocked
	default:
		return TransferRegular
	}
}

func parseBattlEyeStatus(value string) (BattlEyeType, *time.Time) {
	lower := strings.ToLower(value)
	if !strings.Contains(lower, "protected") || strings.Contains(lower, "not protected") {
		return BattlEyeUnprotected, nil
	}
	if strings.Contains(lower, "release") {
		return BattlEyeInitiallyProtected, nil
	}
	if m := battlEyeSincePattern.FindStringSubmatch(value); m != nil {
		if t, err := parseutil.ParseFullDate(m[1]); err == nil {
			return BattlEyeProtected, &t
		}
	}
	return BattlEyeProtected, nil
}

// ParseWorldOverview parses the game world listing.
func ParseWorldOverview(content string) (*WorldOverview, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}

	overview := &WorldOverview{}
	recordFound := false
	doc.Find("table.TableContent").First().Each(func(_ int, table *goquery.Selection) {
		if m := recordPattern.FindStringSubmatch(table.Text()); m != nil {
			recordFound = true
			overview.RecordCount = parseutil.ParseInteger(m[1], 0)
			if t, err := parseutil.ParseDateTime(m[2]); err == nil {
				overview.RecordDate = t
			}
		}
	})
	if !recordFound {
		return nil, invalidContentf("no overall record block")
	}

	doc.Find("tr.Odd, tr.Even").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) < 6 {
			return
		}
		entry := WorldEntry{
			Name:         parseutil.CleanText(cols[0].Text()),
			Location:     ParseWorldLocation(cols[2].Text()),
			PvpType:      ParsePvpType(parseutil.CleanText(cols[3].Text())),
			TransferType: TransferRegular,
		}
		online := parseutil.CleanText(cols[1].Text())
		if count := parseutil.ParseInteger(online, -1); count >= 0 {
			entry.IsOnline = true
			entry.OnlineCount = count
		}

		battlEyeIcon := cols[4].Find("span.HelperDivIndicator")
		if battlEyeIcon.Length() > 0 {
			entry.BattlEye = BattlEyeProtected
			if popup, ok := battlEyeIcon.Attr("onmouseover"); ok {
				if _, popupDoc, err := parseutil.ParsePopup(popup); err == nil &&
					strings.Contains(strings.ToLower(popupDoc.Text()), "release") {
					entry.BattlEye = BattlEyeInitiallyProtected
				}
			}
		}

		additional := strings.ToLower(parseutil.CleanText(cols[5].Text()))
		entry.TransferType = parseTransferType(additional)
		entry.IsPremiumOnly = strings.Contains(additional, "premium")
		entry.IsExperimental = strings.Contains(additional, "experimental")
		overview.Worlds = append(overview.Worlds, entry)
	})
	return overview, nil
}
