package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// GuildsSection is the guild list of one game world.
type GuildsSection struct {
	World           string       `json:"world"`
	AvailableWorlds []string     `json:"available_worlds"`
	Entries         []GuildEntry `json:"entries"`
}

type GuildEntry struct {
	Name        string `json:"name"`
	LogoURL     string `json:"logo_url,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Guild is a guild's page, with its roster and invite list.
type Guild struct {
	Name             string        `json:"name"`
	LogoURL          string        `json:"logo_url,omitempty"`
	Description      string        `json:"description,omitempty"`
	World            string        `json:"world"`
	Founded          time.Time     `json:"founded"`
	IsActive         bool          `json:"is_active"`
	Guildhall        *GuildHouse   `json:"guildhall,omitempty"`
	OpenApplications bool          `json:"open_applications"`
	ActiveWar        bool          `json:"active_war,omitempty"`
	DisbandDate      *time.Time    `json:"disband_date,omitempty"`
	DisbandCondition string        `json:"disband_condition,omitempty"`
	Homepage         string        `json:"homepage,omitempty"`
	Members          []GuildMember `json:"members,omitempty"`
	Invites          []GuildInvite `json:"invites,omitempty"`
}

type GuildHouse struct {
	Name      string    `json:"name"`
	PaidUntil time.Time `json:"paid_until"`
}

type GuildMember struct {
	Rank     string    `json:"rank"`
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Vocation Vocation  `json:"vocation"`
	Level    int       `json:"level"`
	JoinedOn time.Time `json:"joined_on"`
	IsOnline bool      `json:"is_online,omitempty"`
}

type GuildInvite struct {
	Name      string    `json:"name"`
	InvitedOn time.Time `json:"invited_on"`
}

// GuildWars is a guild's war page, the current war plus the war history.
type GuildWars struct {
	Name    string          `json:"name"`
	Current *GuildWarEntry  `json:"current,omitempty"`
	History []GuildWarEntry `json:"history,omitempty"`
}

// GuildWarEntry describes one war. An empty OpponentName means the
// opposing guild has been disbanded since.
type GuildWarEntry struct {
	GuildName     string     `json:"guild_name"`
	OpponentName  string     `json:"opponent_name,omitempty"`
	GuildScore    int        `json:"guild_score"`
	OpponentScore int        `json:"opponent_score"`
	GuildFee      int        `json:"guild_fee,omitempty"`
	OpponentFee   int        `json:"opponent_fee,omitempty"`
	ScoreLimit    int        `json:"score_limit,omitempty"`
	DurationDays  int        `json:"duration_days,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Surrender     bool       `json:"surrender,omitempty"`
	Winner        string     `json:"winner,omitempty"`
}

var (
	foundedPattern      = regexp.MustCompile(`(?s)(.*)The guild was founded on (\w+) on ([^.]+)\.\s*It is ([^.]+)\.`)
	applicationsPattern = regexp.MustCompile(`Guild is (\w+) for applications\.`)
	homepagePattern     = regexp.MustCompile(`The official homepage is at ([\w.]+)\.`)
	guildhallPattern    = regexp.MustCompile(`Their home on \w+ is ([^.]+)\. The rent is paid until ([^.]+)`)
	disbandPattern      = regexp.MustCompile(`It will be disbanded on (\w+\s\d+\s\d+)\s([^.]+)\.`)
	memberTitlePattern  = regexp.MustCompile(`^([^(]+)\(([^)]+)\)$`)

	warGuildsPattern     = regexp.MustCompile(`The guild ([\w\s]+) is at war with the guild ([^.]+)\.`)
	warScorePattern      = regexp.MustCompile(`scored ([\d,]+) kills? against`)
	warFeePattern        = regexp.MustCompile(`wins the war, they will receive ([\d,]+) gold`)
	warScoreLimitPattern = regexp.MustCompile(`guild scores ([\d,]+) kills against`)
	warEndPattern        = regexp.MustCompile(`war will end on (\w{3}\s\d{1,2}\s\d{4})`)

	warHistoryPattern       = regexp.MustCompile(`guild ([\w\s]+) fought against ([\w\s]+)\.`)
	warStartDurationPattern = regexp.MustCompile(`started on (\w{3}\s\d{1,2}\s\d{4}) and had been set for a duration of (\d+) days`)
	killsNeededPattern      = regexp.MustCompile(`([\d,]+) kills were needed`)
	warHistoryFeePattern    = regexp.MustCompile(`agreed on a fee of ([\d,]+) gold for the guild [\w\s]+ and a fee of ([\d,]+) gold`)
	surrenderPattern        = regexp.MustCompile(`(?:The guild ([\w\s]+)|A disbanded guild) surrendered on (\w{3}\s\d{1,2}\s\d{4})`)
	warEndedPattern         = regexp.MustCompile(`war ended on (\w{3}\s\d{1,2}\s\d{4}) when the guild ([\w\s]+) had reached the`)
	warCurrentEmptyPattern  = regexp.MustCompile(`The guild ([\w\s]+) is currently not`)
)

// guild rows alternate between these two backgrounds
const guildRowSelector = `tr[bgcolor="#D4C0A1"], tr[bgcolor="#F1E0C6"]`

// ParseGuildsSection parses a world's guild list.
func ParseGuildsSection(content string) (*GuildsSection, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	form := doc.Find("form").First()
	if form.Length() == 0 {
		return nil, invalidContentf("no world selection form")
	}
	data := parseutil.ParseForm(form)
	if _, ok := data.Options["world"]; !ok {
		return nil, invalidContentf("no world options")
	}

	section := &GuildsSection{World: data.Values["world"]}
	for _, opt := range data.Options["world"] {
		if opt.Value != "" {
			section.AvailableWorlds = append(section.AvailableWorlds, opt.Value)
		}
	}

	containers := doc.Find("div.TableContainer")
	if containers.Length() < 2 {
		return section, nil
	}
	// the first container holds the world selector
	containers.Slice(1, goquery.ToEnd).Each(func(_ int, container *goquery.Selection) {
		active := strings.Contains(container.Find("div.Text").First().Text(), "Active")
		container.Find(guildRowSelector).Each(func(_ int, row *goquery.Selection) {
			cols := cells(row)
			if len(cols) < 2 {
				return
			}
			entry := GuildEntry{
				LogoURL:  cols[0].Find("img").First().AttrOr("src", ""),
				IsActive: active,
			}
			lines := strings.SplitN(textWithNewlines(cols[1]), "\n", 2)
			entry.Name = parseutil.CleanText(lines[0])
			if entry.Name == "" {
				return
			}
			if len(lines) > 1 {
				entry.Description = parseutil.CleanText(lines[1])
			}
			section.Entries = append(section.Entries, entry)
		})
	})
	return section, nil
}

// ParseGuild parses a guild page. Pages for guilds that do not exist yield
// (nil, nil).
func ParseGuild(content string) (*Guild, error) {
	if strings.Contains(content, "An internal error has occurred") {
		return nil, nil
	}
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	name := parseutil.CleanText(doc.Find("h1").First().Text())
	if name == "" {
		return nil, invalidContentf("no guild name header")
	}
	logo := doc.Find(`img[height="64"]`).First()
	if logo.Length() == 0 {
		return nil, invalidContentf("no guild logo")
	}

	guild := &Guild{
		Name:    name,
		LogoURL: logo.AttrOr("src", ""),
	}

	info := doc.Find("#GuildInformationContainer").First()
	infoText := textWithNewlines(info)
	if m := foundedPattern.FindStringSubmatch(infoText); m != nil {
		guild.Description = strings.TrimSpace(m[1])
		guild.World = m[2]
		if t, err := parseutil.ParseDate(m[3]); err == nil {
			guild.Founded = t
		}
		guild.IsActive = strings.Contains(m[4], "currently active")
	}
	if m := applicationsPattern.FindStringSubmatch(infoText); m != nil {
		guild.OpenApplications = m[1] == "opened"
	}
	guild.ActiveWar = strings.Contains(infoText, "during war")
	if m := homepagePattern.FindStringSubmatch(infoText); m != nil {
		guild.Homepage = m[1]
	}
	if link := info.Find("a").First(); link.Length() > 0 {
		href := link.AttrOr("href", "")
		if target := htmlutil.QueryValue(href, "target"); target != "" {
			guild.Homepage = target
		} else if href != "" {
			guild.Homepage = href
		}
	}
	if m := guildhallPattern.FindStringSubmatch(infoText); m != nil {
		hall := &GuildHouse{Name: parseutil.CleanText(m[1])}
		if t, err := parseutil.ParseDate(m[2]); err == nil {
			hall.PaidUntil = t
		}
		guild.Guildhall = hall
	}
	if m := disbandPattern.FindStringSubmatch(infoText); m != nil {
		guild.DisbandCondition = parseutil.CleanText(m[2])
		if t, err := parseutil.ParseDate(m[1]); err == nil {
			guild.DisbandDate = &t
		}
	}

	previousRank := ""
	doc.Find(guildRowSelector).Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		switch len(cols) {
		case 6:
			member := parseGuildMember(cols, &previousRank)
			if member != nil {
				guild.Members = append(guild.Members, *member)
			}
		case 2:
			date := parseutil.CleanText(cols[1].Text())
			if date == "Invitation Date" {
				return
			}
			invite := GuildInvite{Name: parseutil.CleanText(cols[0].Text())}
			if t, err := parseutil.ParseDate(date); err == nil {
				invite.InvitedOn = t
			}
			guild.Invites = append(guild.Invites, invite)
		}
	})
	return guild, nil
}

func parseGuildMember(cols []*goquery.Selection, previousRank *string) *GuildMember {
	rank := parseutil.CleanText(cols[0].Text())
	if rank == "" {
		rank = *previousRank
	}
	*previousRank = rank

	name := parseutil.CleanText(cols[1].Text())
	if name == "" || name == "Name and Title" {
		return nil
	}
	member := &GuildMember{
		Rank:     rank,
		Vocation: ParseVocation(cols[2].Text()),
		Level:    parseutil.ParseInteger(cols[3].Text(), 0),
		IsOnline: parseutil.CleanText(cols[5].Text()) == "online",
	}
	if m := memberTitlePattern.FindStringSubmatch(name); m != nil {
		name = parseutil.CleanText(m[1])
		member.Title = parseutil.CleanText(m[2])
	}
	member.Name = name
	if t, err := parseutil.ParseDate(cols[4].Text()); err == nil {
		member.JoinedOn = t
	}
	return member
}

// ParseGuildWars parses a guild's war page.
func ParseGuildWars(content string) (*GuildWars, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	containers := doc.Find("div.TableContainer")
	if containers.Length() < 2 {
		return nil, invalidContentf("missing war tables")
	}

	wars := &GuildWars{}
	currentContainer := containers.Eq(0)
	if currentTable := currentContainer.Find("table.TableContent").First(); currentTable.Length() > 0 {
		entry := parseCurrentWar(textWithNewlines(currentTable))
		if entry != nil {
			wars.Current = entry
			wars.Name = entry.GuildName
		}
	} else if m := warCurrentEmptyPattern.FindStringSubmatch(currentContainer.Text()); m != nil {
		wars.Name = parseutil.CleanText(m[1])
	}

	containers.Eq(1).Find("table.TableContent").Each(func(_ int, table *goquery.Selection) {
		entry := parseWarHistoryEntry(textWithNewlines(table))
		if entry == nil {
			return
		}
		wars.History = append(wars.History, *entry)
		if wars.Name == "" {
			wars.Name = entry.GuildName
		}
	})
	return wars, nil
}

func parseCurrentWar(text string) *GuildWarEntry {
	text = strings.ReplaceAll(text, "\n", " ")
	names := warGuildsPattern.FindStringSubmatch(text)
	if names == nil {
		return nil
	}
	entry := &GuildWarEntry{
		GuildName:    parseutil.CleanText(names[1]),
		OpponentName: parseutil.CleanText(names[2]),
	}
	if scores := warScorePattern.FindAllStringSubmatch(text, -1); len(scores) == 2 {
		entry.GuildScore = parseutil.ParseInteger(scores[0][1], 0)
		entry.OpponentScore = parseutil.ParseInteger(scores[1][1], 0)
	}
	if fees := warFeePattern.FindAllStringSubmatch(text, -1); len(fees) == 2 {
		entry.GuildFee = parseutil.ParseInteger(fees[0][1], 0)
		entry.OpponentFee = parseutil.ParseInteger(fees[1][1], 0)
	}
	if m := warScoreLimitPattern.FindStringSubmatch(text); m != nil {
		entry.ScoreLimit = parseutil.ParseInteger(m[1], 0)
	}
	if m := warEndPattern.FindStringSubmatch(text); m != nil {
		if t, err := parseutil.ParseDate(m[1]); err == nil {
			entry.EndDate = &t
		}
	}
	return entry
}

func parseWarHistoryEntry(text string) *GuildWarEntry {
	text = strings.ReplaceAll(text, "\n", " ")
	header := warHistoryPattern.FindStringSubmatch(text)
	if header == nil {
		return nil
	}
	entry := &GuildWarEntry{
		GuildName:    parseutil.CleanText(header[1]),
		OpponentName: parseutil.CleanText(header[2]),
	}
	if strings.Contains(entry.OpponentName, "disbanded guild") {
		entry.OpponentName = ""
	}
	if m := warStartDurationPattern.FindStringSubmatch(text); m != nil {
		if t, err := parseutil.ParseDate(m[1]); err == nil {
			entry.StartDate = &t
		}
		entry.DurationDays = parseutil.ParseInteger(m[2], 0)
	}
	if m := killsNeededPattern.FindStringSubmatch(text); m != nil {
		entry.ScoreLimit = parseutil.ParseInteger(m[1], 0)
	}
	if m := warHistoryFeePattern.FindStringSubmatch(text); m != nil {
		entry.GuildFee = parseutil.ParseInteger(m[1], 0)
		entry.OpponentFee = parseutil.ParseInteger(m[2], 0)
	}
	if m := surrenderPattern.FindStringSubmatch(text); m != nil {
		entry.Surrender = true
		surrendering := parseutil.CleanText(m[1])
		if surrendering == entry.GuildName {
			entry.Winner = entry.OpponentName
		} else {
			entry.Winner = entry.GuildName
		}
		if t, err := parseutil.ParseDate(m[2]); err == nil {
			entry.EndDate = &t
		}
	}
	if scores := warScorePattern.FindAllStringSubmatch(text, -1); len(scores) == 2 {
		entry.GuildScore = parseutil.ParseInteger(scores[0][1], 0)
		entry.OpponentScore = parseutil.ParseInteger(scores[1][1], 0)
	}
	if m := warEndedPattern.FindStringSubmatch(text); m != nil {
		if t, err := parseutil.ParseDate(m[1]); err == nil {
			entry.EndDate = &t
		}
		winner := parseutil.CleanText(m[2])
		if strings.Contains(winner, "disbanded guild") {
			winner = ""
		}
		if winner == entry.GuildName {
			entry.Winner = entry.GuildName
			entry.GuildScore = entry.ScoreLimit
		} else {
			entry.Winner = entry.OpponentName
			entry.OpponentScore = entry.ScoreLimit
		}
	}
	if strings.Contains(text, "no guild had reached the needed kills") {
		if entry.GuildScore > entry.OpponentScore {
			entry.Winner = entry.GuildName
		} else {
			entry.Winner = entry.OpponentName
		}
	}
	return entry
}
