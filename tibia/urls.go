package tibia

import (
	"fmt"
	"net/url"
	"strconv"
)

// BaseURL is the root of the live site. StaticBaseURL serves images and
// other assets.
const (
	BaseURL       = "https://www.tibia.com"
	StaticBaseURL = "https://static.tibia.com"
)

func sectionURL(section, subtopic string, params url.Values) string {
	query := url.Values{}
	if subtopic != "" {
		query.Set("subtopic", subtopic)
	}
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	return fmt.Sprintf("%s/%s/?%s", BaseURL, section, query.Encode())
}

// SectionURL builds a site URL for an arbitrary section and subtopic.
func SectionURL(section, subtopic string, params url.Values) string {
	return sectionURL(section, subtopic, params)
}

func StaticFileURL(path string) string {
	return fmt.Sprintf("%s/%s", StaticBaseURL, path)
}

func CharacterURL(name string) string {
	return sectionURL("community", "characters", url.Values{"name": {name}})
}

func WorldURL(name string) string {
	return sectionURL("community", "worlds", url.Values{"world": {name}})
}

func WorldOverviewURL() string {
	return sectionURL("community", "worlds", nil)
}

func GuildURL(name string) string {
	return sectionURL("community", "guilds", url.Values{
		"page":      {"view"},
		"GuildName": {name},
	})
}

func GuildWarsURL(name string) string {
	return sectionURL("community", "guilds", url.Values{
		"page":      {"guildwars"},
		"action":    {"view"},
		"GuildName": {name},
	})
}

func GuildsSectionURL(world string) string {
	return sectionURL("community", "guilds", url.Values{"world": {world}})
}

func HouseURL(houseID int, world string) string {
	return sectionURL("community", "houses", url.Values{
		"page":    {"view"},
		"houseid": {strconv.Itoa(houseID)},
		"world":   {world},
	})
}

func HousesSectionURL(world, town string, houseType HouseType) string {
	params := url.Values{"world": {world}, "town": {town}}
	if houseType == HouseTypeGuildhall {
		params.Set("type", "guildhalls")
	} else {
		params.Set("type", "houses")
	}
	return sectionURL("community", "houses", params)
}

func HighscoresURL(world string, category HighscoresCategory, page int) string {
	return sectionURL("community", "highscores", url.Values{
		"world":       {world},
		"category":    {strconv.Itoa(int(category))},
		"currentpage": {strconv.Itoa(page)},
	})
}

func KillStatisticsURL(world string) string {
	return sectionURL("community", "killstatistics", url.Values{"world": {world}})
}

func LeaderboardURL(world string, rotation, page int) string {
	params := url.Values{"world": {world}}
	if rotation > 0 {
		params.Set("rotation", strconv.Itoa(rotation))
	}
	if page > 1 {
		params.Set("currentpage", strconv.Itoa(page))
	}
	return sectionURL("community", "leaderboards", params)
}

func NewsArchiveURL() string {
	return sectionURL("news", "newsarchive", nil)
}

func NewsURL(newsID int) string {
	return sectionURL("news", "newsarchive", url.Values{"id": {strconv.Itoa(newsID)}})
}

func EventScheduleURL(month, year int) string {
	params := url.Values{}
	if month > 0 && year > 0 {
		params.Set("calendarmonth", strconv.Itoa(month))
		params.Set("calendaryear", strconv.Itoa(year))
	}
	return sectionURL("news", "eventcalendar", params)
}

func CreaturesSectionURL() string {
	return sectionURL("library", "creatures", nil)
}

func CreatureURL(identifier string) string {
	return sectionURL("library", "creatures", url.Values{"race": {identifier}})
}

func BoostableBossesURL() string {
	return sectionURL("library", "boostablebosses", nil)
}

func SpellsSectionURL() string {
	return sectionURL("library", "spells", nil)
}

func SpellURL(identifier string) string {
	return sectionURL("library", "spells", url.Values{"spell": {identifier}})
}

func ForumSectionURL(sectionID int) string {
	return fmt.Sprintf("%s/forum/?action=main&sectionid=%d", BaseURL, sectionID)
}

func ForumBoardURL(boardID, page, threadAge int) string {
	return fmt.Sprintf("%s/forum/?action=board&boardid=%d&pagenumber=%d&threadage=%d",
		BaseURL, boardID, page, threadAge)
}

func ForumThreadURL(threadID, page int) string {
	return fmt.Sprintf("%s/forum/?action=thread&threadid=%d&pagenumber=%d",
		BaseURL, threadID, page)
}

func CharacterBazaarURL(history bool, page int) string {
	subtopic := "currentcharactertrades"
	if history {
		subtopic = "pastcharactertrades"
	}
	params := url.Values{}
	if page > 1 {
		params.Set("currentpage", strconv.Itoa(page))
	}
	return sectionURL("charactertrade", subtopic, params)
}

func AuctionURL(auctionID int) string {
	return sectionURL("charactertrade", "currentcharactertrades", url.Values{
		"page":      {"details"},
		"auctionid": {strconv.Itoa(auctionID)},
	})
}
