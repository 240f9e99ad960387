package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// Character is a character's profile page, including the optional account
// sections shown under it.
type Character struct {
	Name               string              `json:"name"`
	IsTraded           bool                `json:"is_traded,omitempty"`
	DeletionDate       *time.Time          `json:"deletion_date,omitempty"`
	FormerNames        []string            `json:"former_names,omitempty"`
	Title              string              `json:"title,omitempty"`
	UnlockedTitles     int                 `json:"unlocked_titles"`
	Sex                Sex                 `json:"sex"`
	Vocation           Vocation            `json:"vocation"`
	Level              int                 `json:"level"`
	AchievementPoints  int                 `json:"achievement_points"`
	World              string              `json:"world"`
	FormerWorld        string              `json:"former_world,omitempty"`
	Residence          string              `json:"residence"`
	MarriedTo          string              `json:"married_to,omitempty"`
	Houses             []CharacterHouse    `json:"houses,omitempty"`
	GuildMembership    *GuildMembership    `json:"guild_membership,omitempty"`
	LastLogin          *time.Time          `json:"last_login,omitempty"`
	Position           string              `json:"position,omitempty"`
	Comment            string              `json:"comment,omitempty"`
	IsPremium          bool                `json:"is_premium"`
	AccountBadges      []AccountBadge      `json:"account_badges,omitempty"`
	Achievements       []Achievement       `json:"achievements,omitempty"`
	Deaths             []Death             `json:"deaths,omitempty"`
	DeathsTruncated    bool                `json:"deaths_truncated,omitempty"`
	AccountInformation *AccountInformation `json:"account_information,omitempty"`
	OtherCharacters    []OtherCharacter    `json:"other_characters,omitempty"`
}

// CharacterHouse is a house listed on a character's profile.
type CharacterHouse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Town      string    `json:"town,omitempty"`
	PaidUntil time.Time `json:"paid_until"`
}

type GuildMembership struct {
	Name  string `json:"name"`
	Rank  string `json:"rank"`
	Title string `json:"title,omitempty"`
}

type AccountBadge struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
}

type Achievement struct {
	Name   string `json:"name"`
	Grade  int    `json:"grade"`
	Secret bool   `json:"secret,omitempty"`
}

// Death is one entry of the character's death list. Killer attribution
// distinguishes players from creatures and keeps the summon description
// when a player's summon dealt the blow.
type Death struct {
	Time    time.Time `json:"time"`
	Level   int       `json:"level"`
	Killers []Killer  `json:"killers"`
	Assists []Killer  `json:"assists,omitempty"`
}

type Killer struct {
	Name     string `json:"name"`
	IsPlayer bool   `json:"is_player,omitempty"`
	IsTraded bool   `json:"is_traded,omitempty"`
	Summon   string `json:"summon,omitempty"`
}

type AccountInformation struct {
	Created      time.Time `json:"created"`
	LoyaltyTitle string    `json:"loyalty_title,omitempty"`
	Position     string    `json:"position,omitempty"`
}

type OtherCharacter struct {
	Name      string `json:"name"`
	World     string `json:"world"`
	IsMain    bool   `json:"is_main,omitempty"`
	IsOnline  bool   `json:"is_online,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
	IsTraded  bool   `json:"is_traded,omitempty"`
	Position  string `json:"position,omitempty"`
}

var (
	deletionPattern   = regexp.MustCompile(`(.*), will be deleted at (.*)`)
	titlesPattern     = regexp.MustCompile(`(.*)\((\d+) titles? unlocked\)`)
	housePaidPattern  = regexp.MustCompile(`\(([^)]+)\) is paid until (.*)`)
	deathPattern      = regexp.MustCompile(`at Level (\d+) by (.*?)\.?$`)
	summonPattern     = regexp.MustCompile(`^(an? .+) of (.+)$`)
	charNumberPattern = regexp.MustCompile(`^\d+\.\s*`)
)

const tradedLabel = "(traded)"

// ParseCharacter parses a character page. A page reporting that the
// character does not exist yields (nil, nil).
func ParseCharacter(content string) (*Character, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	if strings.Contains(doc.Text(), "Could not find character") {
		return nil, nil
	}

	tables := parseutil.SectionTables(doc)
	infoTable, ok := tables["Character Information"]
	if !ok {
		return nil, invalidContentf("no character information table")
	}

	char := &Character{}
	infoTable.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 2 {
			return
		}
		field := strings.ToLower(strings.TrimSuffix(parseutil.CleanText(cols[0].Text()), ":"))
		value := parseutil.CleanText(cols[1].Text())
		switch field {
		case "name":
			parseCharacterName(char, value)
		case "former names":
			char.FormerNames = parseutil.SplitList(value)
		case "title":
			if m := titlesPattern.FindStringSubmatch(value); m != nil {
				title := parseutil.CleanText(m[1])
				if title != "None" {
					char.Title = title
				}
				char.UnlockedTitles = parseutil.ParseInteger(m[2], 0)
			}
		case "sex":
			char.Sex = ParseSex(value)
		case "vocation":
			char.Vocation = ParseVocation(value)
		case "level":
			char.Level = parseutil.ParseInteger(value, 0)
		case "achievement points":
			char.AchievementPoints = parseutil.ParseInteger(value, 0)
		case "world":
			char.World = value
		case "former world":
			char.FormerWorld = value
		case "residence":
			char.Residence = value
		case "married to":
			char.MarriedTo = value
		case "house":
			if house, ok := parseCharacterHouse(cols[1], value); ok {
				char.Houses = append(char.Houses, house)
			}
		case "guild membership":
			char.GuildMembership = parseGuildMembership(cols[1], value)
		case "last login":
			if !strings.Contains(strings.ToLower(value), "never logged") {
				if t, err := parseutil.ParseDateTime(value); err == nil {
					char.LastLogin = &t
				}
			}
		case "position":
			char.Position = value
		case "comment":
			char.Comment = textWithNewlines(cols[1])
		case "account status":
			char.IsPremium = strings.Contains(strings.ToLower(value), "premium")
		}
	})

	if badges, ok := tables["Account Badges"]; ok {
		char.AccountBadges = parseAccountBadges(badges)
	}
	if achievements, ok := tables["Account Achievements"]; ok {
		char.Achievements = parseAchievements(achievements)
	}
	if deaths, ok := tables["Character Deaths"]; ok {
		char.Deaths, char.DeathsTruncated = parseDeaths(deaths)
	}
	if accountInfo, ok := tables["Account Information"]; ok {
		char.AccountInformation = parseAccountInformation(accountInfo)
	}
	if characters, ok := tables["Characters"]; ok {
		char.OtherCharacters = parseOtherCharacters(characters)
	}
	return char, nil
}

func parseCharacterName(char *Character, value string) {
	if m := deletionPattern.FindStringSubmatch(value); m != nil {
		value = m[1]
		if t, err := parseutil.ParseDateTime(m[2]); err == nil {
			char.DeletionDate = &t
		}
	}
	if strings.Contains(value, tradedLabel) {
		char.IsTraded = true
		value = strings.Replace(value, tradedLabel, "", 1)
	}
	char.Name = parseutil.CleanText(value)
}

func parseCharacterHouse(cell *goquery.Selection, value string) (CharacterHouse, bool) {
	link := cell.Find("a").First()
	href, ok := link.Attr("href")
	if !ok {
		return CharacterHouse{}, false
	}
	house := CharacterHouse{
		ID:   parseutil.ParseInteger(htmlutil.QueryValue(href, "houseid"), 0),
		Name: parseutil.CleanText(link.Text()),
		Town: htmlutil.QueryValue(href, "town"),
	}
	if m := housePaidPattern.FindStringSubmatch(value); m != nil {
		if house.Town == "" {
			house.Town = m[1]
		}
		if t, err := parseutil.ParseDate(m[2]); err == nil {
			house.PaidUntil = t
		}
	}
	return house, true
}

func parseGuildMembership(cell *goquery.Selection, value string) *GuildMembership {
	link := cell.Find("a").First()
	if link.Length() == 0 {
		return nil
	}
	name := parseutil.CleanText(link.Text())
	rank := value
	if idx := strings.Index(value, " of the "); idx != -1 {
		rank = value[:idx]
	}
	return &GuildMembership{Name: name, Rank: parseutil.CleanText(rank)}
}

func parseAccountBadges(table *goquery.Selection) []AccountBadge {
	var badges []AccountBadge
	table.Find("span.HelperDivIndicator").Each(func(_ int, span *goquery.Selection) {
		mouseOver, ok := span.Attr("onmouseover")
		if !ok {
			return
		}
		title, popup, err := parseutil.ParsePopup(mouseOver)
		if err != nil {
			return
		}
		badges = append(badges, AccountBadge{
			Name:        title,
			Description: parseutil.CleanText(popup.Text()),
			IconURL:     span.Find("img").First().AttrOr("src", ""),
		})
	})
	return badges
}

func parseAchievements(table *goquery.Selection) []Achievement {
	var achievements []Achievement
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 2 {
			return
		}
		name := parseutil.CleanText(cols[1].Text())
		if name == "" {
			return
		}
		achievements = append(achievements, Achievement{
			Name:   name,
			Grade:  cols[0].Find("img.achievement-grade-symbol").Length(),
			Secret: cols[1].Find("img").Length() > 0,
		})
	})
	return achievements
}

func parseDeaths(table *goquery.Selection) ([]Death, bool) {
	var deaths []Death
	truncated := false
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cols := cells(row)
		// a full-width note row ends the list when older deaths were cut off
		if len(cols) != 2 {
			truncated = true
			return false
		}
		desc := parseutil.CleanText(cols[1].Text())
		m := deathPattern.FindStringSubmatch(desc)
		if m == nil {
			return true
		}
		death := Death{Level: parseutil.ParseInteger(m[1], 0)}
		if t, err := parseutil.ParseDateTime(cols[0].Text()); err == nil {
			death.Time = t
		}

		players := map[string]bool{}
		for _, anchor := range htmlutil.GetAnchors(cols[1].Find("a")) {
			players[anchor.Name] = true
		}
		killersText, assistsText := m[2], ""
		if idx := strings.Index(killersText, ". Assisted by "); idx != -1 {
			assistsText = killersText[idx+len(". Assisted by "):]
			killersText = killersText[:idx]
		}
		death.Killers = parseKillers(killersText, players)
		death.Assists = parseKillers(assistsText, players)
		deaths = append(deaths, death)
		return true
	})
	return deaths, truncated
}

func parseKillers(text string, players map[string]bool) []Killer {
	var killers []Killer
	for _, item := range parseutil.SplitList(text) {
		killer := Killer{}
		if strings.Contains(item, tradedLabel) {
			killer.IsTraded = true
			item = parseutil.CleanText(strings.Replace(item, tradedLabel, "", 1))
		}
		if m := summonPattern.FindStringSubmatch(item); m != nil && players[m[2]] {
			killer.Summon = m[1]
			killer.Name = m[2]
			killer.IsPlayer = true
		} else {
			killer.Name = item
			killer.IsPlayer = players[item]
		}
		killers = append(killers, killer)
	}
	return killers
}

func parseAccountInformation(table *goquery.Selection) *AccountInformation {
	info := &AccountInformation{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 2 {
			return
		}
		field := strings.ToLower(strings.TrimSuffix(parseutil.CleanText(cols[0].Text()), ":"))
		value := parseutil.CleanText(cols[1].Text())
		switch field {
		case "created":
			if t, err := parseutil.ParseDateTime(value); err == nil {
				info.Created = t
			}
		case "loyalty title":
			if value != "(no title)" && value != "None" {
				info.LoyaltyTitle = value
			}
		case "position":
			info.Position = value
		}
	})
	return info
}

func parseOtherCharacters(table *goquery.Selection) []OtherCharacter {
	var others []OtherCharacter
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) < 3 {
			return
		}
		name := parseutil.CleanText(cols[0].Text())
		if name == "" || strings.HasPrefix(name, "Name") {
			return
		}
		other := OtherCharacter{
			World:  parseutil.CleanText(cols[1].Text()),
			IsMain: cols[0].Find("img").FilterFunction(func(_ int, img *goquery.Selection) bool {
				return strings.Contains(img.AttrOr("title", ""), "Main Character")
			}).Length() > 0,
		}
		name = charNumberPattern.ReplaceAllString(name, "")
		if strings.Contains(name, tradedLabel) {
			other.IsTraded = true
			name = parseutil.CleanText(strings.Replace(name, tradedLabel, "", 1))
		}
		other.Name = name

		status := strings.ToLower(parseutil.CleanText(cols[2].Text()))
		other.IsOnline = strings.Contains(status, "online")
		other.IsDeleted = strings.Contains(status, "deleted")
		if len(cols) > 3 {
			if position := parseutil.CleanText(cols[3].Text()); position != "" && position != "-" {
				other.Position = position
			}
		}
		others = append(others, other)
	})
	return others
}

var lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// textWithNewlines extracts a cell's text preserving explicit line breaks,
// used for free-form fields like profile comments.
func textWithNewlines(sel *goquery.Selection) string {
	raw, err := goquery.OuterHtml(sel)
	if err != nil {
		return parseutil.CleanText(sel.Text())
	}
	raw = lineBreakPattern.ReplaceAllString(raw, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return parseutil.CleanText(sel.Text())
	}
	return strings.TrimSpace(strings.ReplaceAll(doc.Text(), "\u00a0", " "))
}
