package tibia

import (
	"encoding/json"
	"strings"
	"time"

	"tibiaweb/lib/parseutil"
)

// The legacy JSON API predates the HTML sections this package parses and
// is still mirrored by third parties. Its timestamps come as objects with
// a date string and a timezone label instead of plain strings.

type legacyDatetime struct {
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
}

func (d legacyDatetime) time() (time.Time, bool) {
	raw := d.Date
	if idx := strings.Index(raw, "."); idx != -1 {
		raw = raw[:idx]
	}
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return time.Time{}, false
	}
	offset := 0
	switch d.Timezone {
	case "CET":
		offset = 1
	case "CEST":
		offset = 2
	}
	return t.Add(-time.Duration(offset) * time.Hour), true
}

type legacyCharacterPayload struct {
	Characters *struct {
		Error string `json:"error"`
		Data  struct {
			Name              string   `json:"name"`
			FormerNames       []string `json:"former_names"`
			Title             string   `json:"title"`
			Sex               string   `json:"sex"`
			Vocation          string   `json:"vocation"`
			Level             int      `json:"level"`
			AchievementPoints int      `json:"achievement_points"`
			World             string   `json:"world"`
			FormerWorld       string   `json:"former_world"`
			Residence         string   `json:"residence"`
			MarriedTo         string   `json:"married_to"`
			House             *struct {
				Name    string `json:"name"`
				Town    string `json:"town"`
				Paid    string `json:"paid"`
				HouseID int    `json:"houseid"`
			} `json:"house"`
			Guild *struct {
				Name string `json:"name"`
				Rank string `json:"rank"`
			} `json:"guild"`
			LastLogin     []legacyDatetime `json:"last_login"`
			Comment       string           `json:"comment"`
			AccountStatus string           `json:"account_status"`
		} `json:"data"`
		Achievements []struct {
			Stars int    `json:"stars"`
			Name  string `json:"name"`
		} `json:"achievements"`
		Deaths []struct {
			Date     legacyDatetime `json:"date"`
			Level    int            `json:"level"`
			Reason   string         `json:"reason"`
			Involved []struct {
				Name string `json:"name"`
			} `json:"involved"`
		} `json:"deaths"`
		AccountInformation *struct {
			LoyaltyTitle string         `json:"loyalty_title"`
			Created      legacyDatetime `json:"created"`
		} `json:"account_information"`
		OtherCharacters []struct {
			Name   string `json:"name"`
			World  string `json:"world"`
			Status string `json:"status"`
		} `json:"other_characters"`
	} `json:"characters"`
}

// ParseCharacterJSON parses a character response of the legacy JSON API
// into the same record ParseCharacter produces. A payload reporting a
// missing character yields (nil, nil).
func ParseCharacterJSON(content []byte) (*Character, error) {
	var payload legacyCharacterPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, invalidContentf("not a character payload: %s", err)
	}
	if payload.Characters == nil {
		return nil, invalidContentf("no characters object")
	}
	if payload.Characters.Error != "" {
		return nil, nil
	}

	data := payload.Characters.Data
	char := &Character{
		Name:              data.Name,
		Sex:               ParseSex(data.Sex),
		Vocation:          ParseVocation(data.Vocation),
		Level:             data.Level,
		AchievementPoints: data.AchievementPoints,
		World:             data.World,
		FormerWorld:       data.FormerWorld,
		Residence:         data.Residence,
		MarriedTo:         data.MarriedTo,
		Comment:           data.Comment,
		IsPremium:         strings.Contains(strings.ToLower(data.AccountStatus), "premium"),
	}
	if data.Title != "" && data.Title != "None" {
		char.Title = data.Title
	}
	char.FormerNames = data.FormerNames
	if data.House != nil {
		house := CharacterHouse{
			ID:   data.House.HouseID,
			Name: data.House.Name,
			Town: data.House.Town,
		}
		if t, err := time.Parse("2006-01-02", data.House.Paid); err == nil {
			house.PaidUntil = t
		}
		char.Houses = append(char.Houses, house)
	}
	if data.Guild != nil {
		char.GuildMembership = &GuildMembership{
			Name: data.Guild.Name,
			Rank: data.Guild.Rank,
		}
	}
	if len(data.LastLogin) > 0 {
		if t, ok := data.LastLogin[0].time(); ok {
			char.LastLogin = &t
		}
	}

	for _, entry := range payload.Characters.Achievements {
		char.Achievements = append(char.Achievements, Achievement{
			Name:  entry.Name,
			Grade: entry.Stars,
		})
	}
	for _, entry := range payload.Characters.Deaths {
		death := Death{Level: entry.Level}
		if t, ok := entry.Date.time(); ok {
			death.Time = t
		}
		players := map[string]bool{}
		for _, involved := range entry.Involved {
			players[involved.Name] = true
		}
		if m := deathPattern.FindStringSubmatch(parseutil.CleanText(entry.Reason)); m != nil {
			killersText, assistsText := m[2], ""
			if idx := strings.Index(killersText, ". Assisted by "); idx != -1 {
				assistsText = killersText[idx+len(". Assisted by "):]
				killersText = killersText[:idx]
			}
			death.Killers = parseKillers(killersText, players)
			death.Assists = parseKillers(assistsText, players)
		}
		char.Deaths = append(char.Deaths, death)
	}
	if info := payload.Characters.AccountInformation; info != nil {
		account := &AccountInformation{}
		if info.LoyaltyTitle != "" && info.LoyaltyTitle != "(no title)" {
			account.LoyaltyTitle = info.LoyaltyTitle
		}
		if t, ok := info.Created.time(); ok {
			account.Created = t
		}
		char.AccountInformation = account
	}
	for _, entry := range payload.Characters.OtherCharacters {
		char.OtherCharacters = append(char.OtherCharacters, OtherCharacter{
			Name:      entry.Name,
			World:     entry.World,
			IsOnline:  entry.Status == "online",
			IsDeleted: strings.Contains(entry.Status, "deleted"),
		})
	}
	return char, nil
}
