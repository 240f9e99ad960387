package tibia

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// CharacterBazaar is one page of the character auction list, either the
// ongoing auctions or the auction history.
type CharacterBazaar struct {
	Current bool               `json:"current"`
	Filters *AuctionFilters    `json:"filters,omitempty"`
	Page    parseutil.PageInfo `json:"page"`
	Entries []Auction          `json:"entries"`
}

// AuctionFilters are the active filters of the current auctions list. The
// numeric filters keep the site's own option values, -1 when unset.
type AuctionFilters struct {
	World           string   `json:"world,omitempty"`
	AvailableWorlds []string `json:"available_worlds,omitempty"`
	PvpType         int      `json:"pvp_type"`
	BattlEye        int      `json:"battleye"`
	Vocation        int      `json:"vocation"`
	MinLevel        int      `json:"min_level,omitempty"`
	MaxLevel        int      `json:"max_level,omitempty"`
	Skill           int      `json:"skill"`
	MinSkillLevel   int      `json:"min_skill_level,omitempty"`
	MaxSkillLevel   int      `json:"max_skill_level,omitempty"`
	OrderBy         int      `json:"order_by"`
	OrderDirection  int      `json:"order_direction"`
	SearchString    string   `json:"search_string,omitempty"`
	SearchType      int      `json:"search_type"`
}

// Auction is a single character auction. Details is only filled when
// parsing an auction's own page.
type Auction struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Level          int             `json:"level"`
	Vocation       Vocation        `json:"vocation"`
	Sex            Sex             `json:"sex"`
	World          string          `json:"world"`
	Outfit         OutfitImage     `json:"outfit"`
	DisplayedItems []DisplayItem   `json:"displayed_items,omitempty"`
	SalesArguments []SalesArgument `json:"sales_arguments,omitempty"`
	AuctionStart   time.Time       `json:"auction_start"`
	AuctionEnd     time.Time       `json:"auction_end"`
	Bid            int             `json:"bid"`
	BidType        BidType         `json:"bid_type"`
	Status         AuctionStatus   `json:"status"`
	Details        *AuctionDetails `json:"details,omitempty"`
}

// OutfitImage is the outfit preview shown on an auction header.
type OutfitImage struct {
	ImageURL string `json:"image_url"`
	ID       int    `json:"id"`
	Addons   int    `json:"addons"`
}

// DisplayItem is an item shown on an auction, with the count and tier
// encoded in its tooltip.
type DisplayItem struct {
	ImageURL    string `json:"image_url"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count"`
	ItemID      int    `json:"item_id"`
	Tier        int    `json:"tier,omitempty"`
}

// DisplayImage is a mount, outfit or familiar shown on an auction.
type DisplayImage struct {
	ImageURL string `json:"image_url"`
	Name     string `json:"name"`
	ID       int    `json:"id"`
}

// SalesArgument is one of the highlighted selling points of an auction.
type SalesArgument struct {
	Content       string `json:"content"`
	CategoryImage string `json:"category_image"`
	CategoryID    int    `json:"category_id"`
}

// ItemSummary is the first visible page of an auction's item grid.
type ItemSummary struct {
	Page    parseutil.PageInfo `json:"page"`
	Entries []DisplayItem      `json:"entries"`
}

// ImageSummary is the first visible page of an auction's mount, outfit or
// familiar grid.
type ImageSummary struct {
	Page    parseutil.PageInfo `json:"page"`
	Entries []DisplayImage     `json:"entries"`
}

type SkillEntry struct {
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	Progress float64 `json:"progress"`
}

type BlessingEntry struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type CharmEntry struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

type AchievementEntry struct {
	Name   string `json:"name"`
	Secret bool   `json:"secret,omitempty"`
}

type BestiaryEntry struct {
	Name  string `json:"name"`
	Kills int    `json:"kills"`
	Step  int    `json:"step"`
}

// AuctionDetails is the full character sheet of an auction page. The grids
// only hold their first page, the rest loads through ajax.
type AuctionDetails struct {
	HitPoints         int          `json:"hit_points"`
	Mana              int          `json:"mana"`
	Capacity          int          `json:"capacity"`
	Speed             int          `json:"speed"`
	MountsCount       int          `json:"mounts_count"`
	OutfitsCount      int          `json:"outfits_count"`
	TitlesCount       int          `json:"titles_count"`
	BlessingsCount    int          `json:"blessings_count"`
	Skills            []SkillEntry `json:"skills,omitempty"`
	CreationDate      time.Time    `json:"creation_date"`
	Experience        int          `json:"experience"`
	Gold              int          `json:"gold"`
	AchievementPoints int          `json:"achievement_points"`

	RegularWorldTransferAvailable *time.Time `json:"regular_world_transfer_available,omitempty"`

	CharmExpansion       bool `json:"charm_expansion"`
	AvailableCharmPoints int  `json:"available_charm_points"`
	SpentCharmPoints     int  `json:"spent_charm_points"`
	DailyRewardStreak    int  `json:"daily_reward_streak"`

	HuntingTaskPoints         int `json:"hunting_task_points"`
	PermanentHuntingTaskSlots int `json:"permanent_hunting_task_slots"`
	PermanentPreySlots        int `json:"permanent_prey_slots"`
	PreyWildcards             int `json:"prey_wildcards"`

	Hirelings        int `json:"hirelings"`
	HirelingJobs     int `json:"hireling_jobs"`
	HirelingOutfits  int `json:"hireling_outfits"`
	ExaltedDust      int `json:"exalted_dust"`
	ExaltedDustLimit int `json:"exalted_dust_limit"`
	BossPoints       int `json:"boss_points"`

	Items        *ItemSummary  `json:"items,omitempty"`
	StoreItems   *ItemSummary  `json:"store_items,omitempty"`
	Mounts       *ImageSummary `json:"mounts,omitempty"`
	StoreMounts  *ImageSummary `json:"store_mounts,omitempty"`
	Outfits      *ImageSummary `json:"outfits,omitempty"`
	StoreOutfits *ImageSummary `json:"store_outfits,omitempty"`
	Familiars    *ImageSummary `json:"familiars,omitempty"`

	Blessings    []BlessingEntry    `json:"blessings,omitempty"`
	Imbuements   []string           `json:"imbuements,omitempty"`
	Charms       []CharmEntry       `json:"charms,omitempty"`
	MapAreas     []string           `json:"map_areas,omitempty"`
	QuestLines   []string           `json:"quest_lines,omitempty"`
	Titles       []string           `json:"titles,omitempty"`
	Achievements []AchievementEntry `json:"achievements,omitempty"`
	Bestiary     []BestiaryEntry    `json:"bestiary,omitempty"`
	Bosstiary    []BestiaryEntry    `json:"bosstiary,omitempty"`
}

var (
	charInfoPattern   = regexp.MustCompile(`Level: (\d+) \| Vocation: ([\w\s]+)\| (\w+) \| World: (\w+)`)
	outfitIDPattern   = regexp.MustCompile(`(\d+)_(\d)\.gif`)
	imageIDPattern    = regexp.MustCompile(`(\d+)\.(?:gif|png)`)
	itemAmountPattern = regexp.MustCompile(`^([\d,]+)x`)
	itemTierPattern   = regexp.MustCompile(`(.*)\s\(tier (\d)\)`)
)

// ParseCharacterBazaar parses one page of the character bazaar, current
// auctions or history.
func ParseCharacterBazaar(content string) (*CharacterBazaar, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	containers := doc.Find("div.BoxContent").First().Find("div.TableContainer")
	if containers.Length() == 0 {
		return nil, invalidContentf("no bazaar tables")
	}

	bazaar := &CharacterBazaar{}
	auctionsTable := containers.First()
	// the current auctions view carries a filter table above the listing,
	// the history view does not
	if containers.Length() > 1 {
		bazaar.Current = true
		bazaar.Filters = parseAuctionFilters(containers.Eq(0))
		auctionsTable = containers.Eq(1)
	}

	if pagination := doc.Find("td.PageNavigation").First(); pagination.Length() > 0 {
		if page, err := parseutil.ParsePagination(pagination); err == nil {
			bazaar.Page = page
		}
	}
	auctionsTable.Find("div.Auction").Each(func(_ int, row *goquery.Selection) {
		bazaar.Entries = append(bazaar.Entries, parseAuction(row))
	})
	return bazaar, nil
}

func parseAuctionFilters(table *goquery.Selection) *AuctionFilters {
	filters := &AuctionFilters{}
	forms := table.Find("form")
	data := parseutil.ParseForm(forms.Eq(0))

	filters.World = data.Values["filter_world"]
	for _, opt := range data.Options["filter_world"] {
		if !strings.Contains(opt.Text, "(") {
			filters.AvailableWorlds = append(filters.AvailableWorlds, opt.Text)
		}
	}
	filters.PvpType = parseutil.ParseInteger(data.Values["filter_worldpvptype"], -1)
	filters.BattlEye = parseutil.ParseInteger(data.Values["filter_worldbattleyestate"], -1)
	filters.Vocation = parseutil.ParseInteger(data.Values["filter_profession"], -1)
	filters.MinLevel = parseutil.ParseInteger(data.Values["filter_levelrangefrom"], 0)
	filters.MaxLevel = parseutil.ParseInteger(data.Values["filter_levelrangeto"], 0)
	filters.Skill = parseutil.ParseInteger(data.Values["filter_skillid"], -1)
	filters.MinSkillLevel = parseutil.ParseInteger(data.Values["filter_skillrangefrom"], 0)
	filters.MaxSkillLevel = parseutil.ParseInteger(data.Values["filter_skillrangeto"], 0)
	filters.OrderBy = parseutil.ParseInteger(data.Values["order_column"], -1)
	filters.OrderDirection = parseutil.ParseInteger(data.Values["order_direction"], -1)
	filters.SearchType = -1
	if forms.Length() > 1 {
		search := parseutil.ParseForm(forms.Eq(1))
		filters.SearchString = search.Values["searchstring"]
		filters.SearchType = parseutil.ParseInteger(search.Values["searchtype"], -1)
	}
	return filters
}

// ParseAuction parses an auction's detail page. The auction id is not part
// of the page itself on detail views reached by direct link, so it is read
// from the character link when present.
func ParseAuction(content string) (*Auction, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	row := doc.Find("div.Auction").First()
	if row.Length() == 0 {
		if strings.Contains(content, "internal error") {
			return nil, nil
		}
		return nil, invalidContentf("no auction block")
	}
	auction := parseAuction(row)

	details := &AuctionDetails{}
	tables := map[string]*goquery.Selection{}
	doc.Find("div.CharacterDetailsBlock").Each(func(_ int, block *goquery.Selection) {
		if id, ok := block.Attr("id"); ok {
			tables[id] = block
		}
	})
	if general, ok := tables["General"]; ok {
		parseAuctionGeneral(details, general)
	}
	if table, ok := tables["ItemSummary"]; ok {
		details.Items = parseItemSummary(table)
	}
	if table, ok := tables["StoreItemSummary"]; ok {
		details.StoreItems = parseItemSummary(table)
	}
	if table, ok := tables["Mounts"]; ok {
		details.Mounts = parseImageSummary(table, imageIDPattern, false)
	}
	if table, ok := tables["StoreMounts"]; ok {
		details.StoreMounts = parseImageSummary(table, imageIDPattern, false)
	}
	if table, ok := tables["Outfits"]; ok {
		details.Outfits = parseImageSummary(table, outfitIDPattern, true)
	}
	if table, ok := tables["StoreOutfits"]; ok {
		details.StoreOutfits = parseImageSummary(table, outfitIDPattern, true)
	}
	if table, ok := tables["Familiars"]; ok {
		details.Familiars = parseImageSummary(table, imageIDPattern, true)
	}
	if table, ok := tables["Blessings"]; ok {
		parseBlessingsTable(details, table)
	}
	if table, ok := tables["Imbuements"]; ok {
		details.Imbuements = singleColumnTable(table)
	}
	if table, ok := tables["Charms"]; ok {
		parseCharmsTable(details, table)
	}
	if table, ok := tables["CompletedCyclopediaMapAreas"]; ok {
		details.MapAreas = singleColumnTable(table)
	}
	if table, ok := tables["CompletedQuestLines"]; ok {
		details.QuestLines = singleColumnTable(table)
	}
	if table, ok := tables["Titles"]; ok {
		details.Titles = singleColumnTable(table)
	}
	if table, ok := tables["Achievements"]; ok {
		parseAchievementsTable(details, table)
	}
	if table, ok := tables["BestiaryProgress"]; ok {
		details.Bestiary = parseBestiaryTable(table)
	}
	if table, ok := tables["BosstiaryProgress"]; ok {
		details.Bosstiary = parseBestiaryTable(table)
	}
	auction.Details = details
	return &auction, nil
}

func parseAuction(row *goquery.Selection) Auction {
	auction := Auction{}
	header := row.Find("div.AuctionHeader").First()
	nameContainer := header.Find("div.AuctionCharacterName").First()
	if link := nameContainer.Find("a").First(); link.Length() > 0 {
		auction.ID = parseutil.ParseInteger(htmlutil.QueryValue(link.AttrOr("href", ""), "auctionid"), 0)
		auction.Name = parseutil.CleanText(link.Text())
	} else {
		auction.Name = parseutil.CleanText(nameContainer.Text())
	}
	nameContainer.Remove()

	if m := charInfoPattern.FindStringSubmatch(parseutil.CleanText(header.Text())); m != nil {
		auction.Level = parseutil.ParseInteger(m[1], 0)
		auction.Vocation = ParseVocation(m[2])
		auction.Sex = ParseSex(m[3])
		auction.World = m[4]
	}
	if src, ok := row.Find("img.AuctionOutfitImage").First().Attr("src"); ok {
		auction.Outfit = OutfitImage{ImageURL: src}
		if m := outfitIDPattern.FindStringSubmatch(src); m != nil {
			auction.Outfit.ID = parseutil.ParseInteger(m[1], 0)
			auction.Outfit.Addons = parseutil.ParseInteger(m[2], 0)
		}
	}
	row.Find("div.CVIcon").Each(func(_ int, box *goquery.Selection) {
		if item, ok := parseDisplayItem(box); ok {
			auction.DisplayedItems = append(auction.DisplayedItems, item)
		}
	})

	dates := row.Find("div.ShortAuctionData div.ShortAuctionDataValue")
	if t, err := parseutil.ParseDateTime(dates.Eq(0).Text()); err == nil {
		auction.AuctionStart = t
	}
	if t, err := parseutil.ParseDateTime(dates.Eq(1).Text()); err == nil {
		auction.AuctionEnd = t
	}
	bids := row.Find("div.ShortAuctionDataBidRow").First()
	auction.Bid = parseutil.ParseInteger(bids.Find("div.ShortAuctionDataValue").First().Text(), 0)
	auction.BidType = ParseBidType(bids.Find("div.ShortAuctionDataLabel").First().Text())

	status := row.Find("div.CurrentBid div.AuctionInfo").First()
	auction.Status = ParseAuctionStatus(strings.ReplaceAll(textWithNewlines(status), "\n", " "))

	row.Find("div.Entry").Each(func(_ int, entry *goquery.Selection) {
		argument := SalesArgument{Content: parseutil.CleanText(entry.Text())}
		if src, ok := entry.Find("img").First().Attr("src"); ok {
			argument.CategoryImage = src
			if m := imageIDPattern.FindStringSubmatch(src); m != nil {
				argument.CategoryID = parseutil.ParseInteger(m[1], 0)
			}
		}
		auction.SalesArguments = append(auction.SalesArguments, argument)
	})
	return auction
}

// parseDisplayItem reads an item box. Its tooltip packs the count, name,
// tier and description into the title attribute.
func parseDisplayItem(box *goquery.Selection) (DisplayItem, bool) {
	src, ok := box.Find("img").First().Attr("src")
	if !ok {
		return DisplayItem{}, false
	}
	title := box.AttrOr("title", "")
	item := DisplayItem{ImageURL: src, Count: 1}
	if m := itemAmountPattern.FindStringSubmatch(title); m != nil {
		item.Count = parseutil.ParseInteger(m[1], 1)
		title = strings.TrimSpace(itemAmountPattern.ReplaceAllString(title, ""))
	}
	name, description, found := strings.Cut(title, "\n")
	if found {
		item.Description = strings.ReplaceAll(description, "\n", " ")
	}
	if m := itemTierPattern.FindStringSubmatch(name); m != nil {
		name = m[1]
		item.Tier = parseutil.ParseInteger(m[2], 0)
	}
	item.Name = name
	if m := imageIDPattern.FindStringSubmatch(src); m != nil {
		item.ItemID = parseutil.ParseInteger(m[1], 0)
	}
	return item, true
}

func parseDisplayImage(box *goquery.Selection, idPattern *regexp.Regexp, trimSuffix bool) (DisplayImage, bool) {
	src, ok := box.Find("img").First().Attr("src")
	if !ok {
		return DisplayImage{}, false
	}
	name := box.AttrOr("title", "")
	if trimSuffix {
		name, _, _ = strings.Cut(name, "(")
		name = strings.TrimSpace(name)
	}
	image := DisplayImage{ImageURL: src, Name: name}
	if m := idPattern.FindStringSubmatch(src); m != nil {
		image.ID = parseutil.ParseInteger(m[1], 0)
	}
	return image, true
}

func parseItemSummary(table *goquery.Selection) *ItemSummary {
	summary := &ItemSummary{Page: summaryPagination(table)}
	table.Find("div.CVIcon").Each(func(_ int, box *goquery.Selection) {
		if item, ok := parseDisplayItem(box); ok {
			summary.Entries = append(summary.Entries, item)
		}
	})
	return summary
}

func parseImageSummary(table *goquery.Selection, idPattern *regexp.Regexp, trimSuffix bool) *ImageSummary {
	summary := &ImageSummary{Page: summaryPagination(table)}
	table.Find("div.CVIcon").Each(func(_ int, box *goquery.Selection) {
		if image, ok := parseDisplayImage(box, idPattern, trimSuffix); ok {
			summary.Entries = append(summary.Entries, image)
		}
	})
	return summary
}

func summaryPagination(table *goquery.Selection) parseutil.PageInfo {
	block := table.Find("div.BlockPageNavigationRow").First()
	if block.Length() == 0 {
		return parseutil.PageInfo{CurrentPage: 1, TotalPages: 1}
	}
	page, err := parseutil.ParsePagination(block)
	if err != nil {
		return parseutil.PageInfo{CurrentPage: 1, TotalPages: 1}
	}
	return page
}

// auctionDataTable flattens a label/value details table into a map, with
// labels lowercased and underscored.
func auctionDataTable(table *goquery.Selection) map[string]string {
	data := map[string]string{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		label := row.Find("span").First().Text()
		value := row.Find("div").First().Text()
		if label == "" {
			return
		}
		label = strings.ToLower(parseutil.CleanText(strings.ReplaceAll(label, ":", "")))
		data[strings.ReplaceAll(label, " ", "_")] = parseutil.CleanText(value)
	})
	return data
}

func parseAuctionGeneral(details *AuctionDetails, block *goquery.Selection) {
	tables := block.Find("table.TableContent")
	if tables.Length() < 8 {
		return
	}
	stats := auctionDataTable(tables.Eq(0))
	details.HitPoints = parseutil.ParseInteger(stats["hit_points"], 0)
	details.Mana = parseutil.ParseInteger(stats["mana"], 0)
	details.Capacity = parseutil.ParseInteger(stats["capacity"], 0)
	details.Speed = parseutil.ParseInteger(stats["speed"], 0)
	details.MountsCount = parseutil.ParseInteger(stats["mounts"], 0)
	details.OutfitsCount = parseutil.ParseInteger(stats["outfits"], 0)
	details.TitlesCount = parseutil.ParseInteger(stats["titles"], 0)
	// blessings render as "7/8"
	owned, _, _ := strings.Cut(stats["blessings"], "/")
	details.BlessingsCount = parseutil.ParseInteger(owned, 0)

	tables.Eq(1).Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 3 {
			return
		}
		details.Skills = append(details.Skills, SkillEntry{
			Name:     parseutil.CleanText(cols[0].Text()),
			Level:    parseutil.ParseInteger(cols[1].Text(), 0),
			Progress: parsePercentage(cols[2].Text()),
		})
	})

	extra := auctionDataTable(tables.Eq(2))
	if t, err := parseutil.ParseDateTime(extra["creation_date"]); err == nil {
		details.CreationDate = t
	}
	details.Experience = parseutil.ParseInteger(extra["experience"], 0)
	details.Gold = parseutil.ParseInteger(extra["gold"], 0)
	details.AchievementPoints = parseutil.ParseInteger(extra["achievement_points"], 0)

	transfer := auctionDataTable(tables.Eq(3))
	if text := transfer["regular_world_transfer"]; strings.Contains(text, "after") {
		_, date, _ := strings.Cut(text, "after ")
		if t, err := parseutil.ParseDateTime(date); err == nil {
			details.RegularWorldTransferAvailable = &t
		}
	}

	charms := auctionDataTable(tables.Eq(4))
	details.CharmExpansion = strings.Contains(charms["charm_expansion"], "yes")
	details.AvailableCharmPoints = parseutil.ParseInteger(charms["available_charm_points"], 0)
	details.SpentCharmPoints = parseutil.ParseInteger(charms["spent_charm_points"], 0)

	for _, value := range auctionDataTable(tables.Eq(5)) {
		details.DailyRewardStreak = parseutil.ParseInteger(value, 0)
	}

	hunting := auctionDataTable(tables.Eq(6))
	details.HuntingTaskPoints = parseutil.ParseInteger(hunting["hunting_task_points"], 0)
	details.PermanentHuntingTaskSlots = parseutil.ParseInteger(hunting["permanent_hunting_task_slots"], 0)
	details.PermanentPreySlots = parseutil.ParseInteger(hunting["permanent_prey_slots"], 0)
	details.PreyWildcards = parseutil.ParseInteger(hunting["prey_wildcards"], 0)

	hirelings := auctionDataTable(tables.Eq(7))
	details.Hirelings = parseutil.ParseInteger(hirelings["hirelings"], 0)
	details.HirelingJobs = parseutil.ParseInteger(hirelings["hireling_jobs"], 0)
	details.HirelingOutfits = parseutil.ParseInteger(hirelings["hireling_outfits"], 0)

	if tables.Length() >= 9 {
		dust := auctionDataTable(tables.Eq(8))
		current, limit, _ := strings.Cut(dust["exalted_dust"], "/")
		details.ExaltedDust = parseutil.ParseInteger(current, 0)
		details.ExaltedDustLimit = parseutil.ParseInteger(limit, 0)
	}
	if tables.Length() >= 10 {
		boss := auctionDataTable(tables.Eq(9))
		details.BossPoints = parseutil.ParseInteger(boss["boss_points"], 0)
	}
}

func parseBlessingsTable(details *AuctionDetails, block *goquery.Selection) {
	block.Find("table.TableContent").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cols := cells(row)
		if i == 0 || len(cols) != 2 {
			return
		}
		details.Blessings = append(details.Blessings, BlessingEntry{
			Name:   parseutil.CleanText(cols[1].Text()),
			Amount: parseutil.ParseInteger(strings.ReplaceAll(cols[0].Text(), "x", ""), 0),
		})
	})
}

func parseCharmsTable(details *AuctionDetails, block *goquery.Selection) {
	block.Find("table.TableContent").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cols := cells(row)
		if i == 0 || len(cols) != 2 {
			return
		}
		details.Charms = append(details.Charms, CharmEntry{
			Name: parseutil.CleanText(cols[1].Text()),
			Cost: parseutil.ParseInteger(strings.ReplaceAll(cols[0].Text(), "x", ""), 0),
		})
	})
}

func parseAchievementsTable(details *AuctionDetails, block *goquery.Selection) {
	block.Find("table.TableContent").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		col := row.Find("td").First()
		text := parseutil.CleanText(col.Text())
		if text == "" || strings.Contains(text, "more entries") {
			return
		}
		details.Achievements = append(details.Achievements, AchievementEntry{
			Name:   text,
			Secret: col.Find("img").Length() > 0,
		})
	})
}

func parseBestiaryTable(block *goquery.Selection) []BestiaryEntry {
	var entries []BestiaryEntry
	block.Find("table.TableContent").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cols := cells(row)
		if i == 0 || len(cols) != 3 {
			return
		}
		entries = append(entries, BestiaryEntry{
			Name:  parseutil.CleanText(cols[2].Text()),
			Kills: parseutil.ParseInteger(strings.ReplaceAll(cols[1].Text(), "x", ""), 0),
			Step:  parseutil.ParseInteger(cols[0].Text(), 0),
		})
	})
	return entries
}

// singleColumnTable collects the rows of a one column details table,
// skipping the header and the "more entries" filler row.
func singleColumnTable(block *goquery.Selection) []string {
	var items []string
	block.Find("table.TableContent").Last().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		text := parseutil.CleanText(row.Find("td").First().Text())
		if text == "" || strings.Contains(text, "more entries") {
			return
		}
		items = append(items, text)
	})
	return items
}

func parsePercentage(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
