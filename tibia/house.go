package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// HousesSection is the house list of one town and world.
type HousesSection struct {
	World           string       `json:"world"`
	Town            string       `json:"town"`
	Type            HouseType    `json:"type"`
	AvailableWorlds []string     `json:"available_worlds,omitempty"`
	AvailableTowns  []string     `json:"available_towns,omitempty"`
	Entries         []HouseEntry `json:"entries"`
}

// HouseEntry is one row of the house list. TimeLeftHours is only set for
// auctioned houses with an active bid.
type HouseEntry struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	World         string      `json:"world"`
	Town          string      `json:"town"`
	Type          HouseType   `json:"type"`
	Size          int         `json:"size"`
	Rent          int         `json:"rent"`
	Status        HouseStatus `json:"status"`
	HighestBid    int         `json:"highest_bid,omitempty"`
	TimeLeftHours int         `json:"time_left_hours,omitempty"`
}

// House is a house's own page with its current renting or auction state.
type House struct {
	ID                int         `json:"id"`
	Name              string      `json:"name"`
	ImageURL          string      `json:"image_url,omitempty"`
	Type              HouseType   `json:"type"`
	Beds              int         `json:"beds"`
	Size              int         `json:"size"`
	Rent              int         `json:"rent"`
	World             string      `json:"world"`
	Status            HouseStatus `json:"status"`
	Owner             string      `json:"owner,omitempty"`
	OwnerSex          Sex         `json:"owner_sex,omitempty"`
	PaidUntil         *time.Time  `json:"paid_until,omitempty"`
	TransferDate      *time.Time  `json:"transfer_date,omitempty"`
	TransferAccepted  bool        `json:"transfer_accepted,omitempty"`
	TransferRecipient string      `json:"transfer_recipient,omitempty"`
	TransferPrice     int         `json:"transfer_price,omitempty"`
	AuctionEnd        *time.Time  `json:"auction_end,omitempty"`
	HighestBid        int         `json:"highest_bid,omitempty"`
	HighestBidder     string      `json:"highest_bidder,omitempty"`
}

var (
	houseIDPattern       = regexp.MustCompile(`house_(\d+)\.`)
	houseBedsPattern     = regexp.MustCompile(`This (\w+) can have up to ([\d-]+) bed`)
	houseInfoPattern     = regexp.MustCompile(`has a size of (\d+) square meters?\. The monthly rent is (\d+k*) gold and will be debited to the bank account on (\w+)`)
	houseRentedPattern   = regexp.MustCompile(`has been rented by ([^.]+)\. (\w+) has paid the rent until ([^.]+)\.`)
	houseTransferPattern = regexp.MustCompile(`\w+ will move out on ([^(]+)\([^)]+\)(?: and (wants to|will) pass the (?:house|guildhall) to ([\w\s]+) for (\d+) gold coin)?`)
	houseAuctionPattern  = regexp.MustCompile(`The auction (?:has ended|will end) at ([^.]+)\.`)
	houseBidPattern      = regexp.MustCompile(`The highest bid so far is (\d+) gold and has been submitted by ([^.]+)`)
	listAuctionPattern   = regexp.MustCompile(`\((\d+) gold; (\d+) (day|hour)s? left\)`)
)

// ParseHousesSection parses the house list of a town.
func ParseHousesSection(content string) (*HousesSection, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	tables := parseutil.SectionTables(doc)
	if _, ok := tables["House Search"]; !ok {
		return nil, invalidContentf("no house search form")
	}

	section := &HousesSection{Type: HouseTypeHouse}
	form := doc.Find("form").First()
	if form.Length() > 0 {
		data := parseutil.ParseForm(form)
		section.World = data.Values["world"]
		section.Town = data.Values["town"]
		if strings.HasPrefix(data.Values["type"], "guildhall") {
			section.Type = HouseTypeGuildhall
		}
		for _, opt := range data.Options["world"] {
			if opt.Value != "" {
				section.AvailableWorlds = append(section.AvailableWorlds, opt.Value)
			}
		}
		for _, opt := range data.Options["town"] {
			if opt.Value != "" {
				section.AvailableTowns = append(section.AvailableTowns, opt.Value)
			}
		}
	}

	for caption, table := range tables {
		if caption == "House Search" {
			continue
		}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cols := cells(row)
			if len(cols) != 5 {
				return
			}
			idInput := cols[4].Find("input[name=houseid]")
			if idInput.Length() == 0 {
				return
			}
			entry := HouseEntry{
				ID:    parseutil.ParseInteger(idInput.AttrOr("value", ""), 0),
				Name:  parseutil.CleanText(cols[0].Text()),
				World: section.World,
				Town:  section.Town,
				Type:  section.Type,
				Size:  parseutil.ParseInteger(strings.ReplaceAll(cols[1].Text(), "sqm", ""), 0),
				Rent:  parseutil.ParseMoney(strings.ReplaceAll(cols[2].Text(), "gold", "")),
			}
			status := parseutil.CleanText(cols[3].Text())
			if strings.Contains(status, "rented") {
				entry.Status = HouseStatusRented
			} else {
				entry.Status = HouseStatusAuctioned
				if m := listAuctionPattern.FindStringSubmatch(status); m != nil {
					entry.HighestBid = parseutil.ParseInteger(m[1], 0)
					entry.TimeLeftHours = parseutil.ParseInteger(m[2], 0)
					if m[3] == "day" {
						entry.TimeLeftHours *= 24
					}
				}
			}
			section.Entries = append(section.Entries, entry)
		})
	}
	return section, nil
}

// ParseHouse parses a house page. Pages for unknown house ids yield
// (nil, nil).
func ParseHouse(content string) (*House, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	columns := doc.Find("td")
	if columns.Length() < 2 {
		return nil, invalidContentf("no house layout columns")
	}
	imageColumn := columns.Eq(0)
	if strings.Contains(imageColumn.Text(), "No information") {
		return nil, nil
	}

	image := imageColumn.Find("img").First()
	imageURL := image.AttrOr("src", "")
	idMatch := houseIDPattern.FindStringSubmatch(imageURL)
	if idMatch == nil {
		return nil, invalidContentf("no house image")
	}

	house := &House{
		ID:       parseutil.ParseInteger(idMatch[1], 0),
		ImageURL: imageURL,
		Type:     HouseTypeHouse,
	}

	description := textWithNewlines(columns.Eq(1))
	description = strings.ReplaceAll(description, "\n\n", "\n")
	lines := strings.Split(description, "\n")
	if len(lines) < 4 {
		return nil, invalidContentf("incomplete house description")
	}
	house.Name = parseutil.CleanText(lines[0])
	if m := houseBedsPattern.FindStringSubmatch(lines[1]); m != nil {
		kind := strings.ToLower(m[1])
		if kind == "guildhall" || kind == "clanhall" {
			house.Type = HouseTypeGuildhall
		}
		house.Beds = parseutil.ParseInteger(m[2], 0)
	}
	if m := houseInfoPattern.FindStringSubmatch(lines[2]); m != nil {
		house.Size = parseutil.ParseInteger(m[1], 0)
		house.Rent = parseutil.ParseMoney(m[2])
		house.World = m[3]
	}

	state := strings.Join(lines[3:], " ")
	parseHouseState(house, state)
	return house, nil
}

func parseHouseState(house *House, state string) {
	if m := houseRentedPattern.FindStringSubmatch(state); m != nil {
		house.Status = HouseStatusRented
		house.Owner = parseutil.CleanText(m[1])
		if m[2] == "He" {
			house.OwnerSex = SexMale
		} else {
			house.OwnerSex = SexFemale
		}
		if t, err := parseutil.ParseDateTime(m[3]); err == nil {
			house.PaidUntil = &t
		}
	} else {
		house.Status = HouseStatusAuctioned
	}

	if m := houseTransferPattern.FindStringSubmatch(state); m != nil {
		if t, err := parseutil.ParseDateTime(m[1]); err == nil {
			house.TransferDate = &t
		}
		house.TransferAccepted = m[2] == "will"
		house.TransferRecipient = parseutil.CleanText(m[3])
		house.TransferPrice = parseutil.ParseInteger(m[4], 0)
	}
	if m := houseAuctionPattern.FindStringSubmatch(state); m != nil {
		if t, err := parseutil.ParseDateTime(m[1]); err == nil {
			house.AuctionEnd = &t
		}
	}
	if m := houseBidPattern.FindStringSubmatch(state); m != nil {
		house.HighestBid = parseutil.ParseInteger(m[1], 0)
		house.HighestBidder = parseutil.CleanText(m[2])
	}
}
