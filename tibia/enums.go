package tibia

import "strings"

// Vocation is one of the game's character classes, including promotions.
type Vocation string

const (
	VocationNone           Vocation = "None"
	VocationDruid          Vocation = "Druid"
	VocationKnight         Vocation = "Knight"
	VocationPaladin        Vocation = "Paladin"
	VocationSorcerer       Vocation = "Sorcerer"
	VocationElderDruid     Vocation = "Elder Druid"
	VocationEliteKnight    Vocation = "Elite Knight"
	VocationRoyalPaladin   Vocation = "Royal Paladin"
	VocationMasterSorcerer Vocation = "Master Sorcerer"
)

var vocations = []Vocation{
	VocationElderDruid, VocationEliteKnight, VocationRoyalPaladin,
	VocationMasterSorcerer, VocationDruid, VocationKnight,
	VocationPaladin, VocationSorcerer,
}

// ParseVocation matches a vocation name, tolerating case and surrounding
// text. Unknown text maps to VocationNone.
func ParseVocation(s string) Vocation {
	s = strings.ToLower(s)
	for _, v := range vocations {
		if strings.Contains(s, strings.ToLower(string(v))) {
			return v
		}
	}
	return VocationNone
}

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func ParseSex(s string) Sex {
	if strings.EqualFold(strings.TrimSpace(s), "female") {
		return SexFemale
	}
	return SexMale
}

// PvpType is a game world's player-versus-player ruleset.
type PvpType string

const (
	PvpOpen          PvpType = "Open PvP"
	PvpOptional      PvpType = "Optional PvP"
	PvpHardcore      PvpType = "Hardcore PvP"
	PvpRetroOpen     PvpType = "Retro Open PvP"
	PvpRetroHardcore PvpType = "Retro Hardcore PvP"
)

func ParsePvpType(s string) PvpType {
	for _, p := range []PvpType{PvpRetroOpen, PvpRetroHardcore, PvpOptional, PvpHardcore, PvpOpen} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p
		}
	}
	return PvpOpen
}

type WorldLocation string

const (
	LocationEurope       WorldLocation = "Europe"
	LocationNorthAmerica WorldLocation = "North America"
	LocationSouthAmerica WorldLocation = "South America"
)

func ParseWorldLocation(s string) WorldLocation {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "north"):
		return LocationNorthAmerica
	case strings.Contains(s, "south"):
		return LocationSouthAmerica
	default:
		return LocationEurope
	}
}

// TransferType describes whether characters can be transferred to or from
// a game world.
type TransferType string

const (
	TransferRegular TransferType = "regular"
	TransferBlocked TransferType = "blocked"
	TransferLocked  TransferType = "locked"
)

// BattlEyeType describes a world's anti-cheat protection. Worlds protected
// since their release day show a green shield on the site, worlds protected
// later show a yellow one.
type BattlEyeType int

const (
	BattlEyeUnprotected BattlEyeType = iota
	BattlEyeProtected
	BattlEyeInitiallyProtected
)

func (b BattlEyeType) String() string {
	switch b {
	case BattlEyeProtected:
		return "protected"
	case BattlEyeInitiallyProtected:
		return "initially protected"
	default:
		return "unprotected"
	}
}

type HouseStatus string

const (
	HouseStatusRented    HouseStatus = "rented"
	HouseStatusAuctioned HouseStatus = "auctioned"
)

type HouseType string

const (
	HouseTypeHouse     HouseType = "house"
	HouseTypeGuildhall HouseType = "guildhall"
)

// NewsCategory is the topic of a news entry, identified on the site by its
// icon.
type NewsCategory string

const (
	NewsCategoryCipsoft     NewsCategory = "cipsoft"
	NewsCategoryCommunity   NewsCategory = "community"
	NewsCategoryDevelopment NewsCategory = "development"
	NewsCategorySupport     NewsCategory = "support"
	NewsCategoryTechnical   NewsCategory = "technical"
)

var newsCategories = []NewsCategory{
	NewsCategoryCipsoft, NewsCategoryCommunity, NewsCategoryDevelopment,
	NewsCategorySupport, NewsCategoryTechnical,
}

// ParseNewsCategory recognizes a category from an icon file name such as
// "newsicon_community_big.png".
func ParseNewsCategory(s string) NewsCategory {
	s = strings.ToLower(s)
	for _, c := range newsCategories {
		if strings.Contains(s, string(c)) {
			return c
		}
	}
	return NewsCategoryCommunity
}

type NewsType string

const (
	NewsTypeNews            NewsType = "News"
	NewsTypeNewsTicker      NewsType = "News Ticker"
	NewsTypeFeaturedArticle NewsType = "Featured Article"
)

func ParseNewsType(s string) NewsType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "news ticker", "ticker":
		return NewsTypeNewsTicker
	case "featured article":
		return NewsTypeFeaturedArticle
	default:
		return NewsTypeNews
	}
}

type SpellGroup string

const (
	SpellGroupAttack  SpellGroup = "Attack"
	SpellGroupHealing SpellGroup = "Healing"
	SpellGroupSupport SpellGroup = "Support"
)

// ParseSpellGroup matches a spell group name. Unknown text maps to
// SpellGroupSupport.
func ParseSpellGroup(s string) SpellGroup {
	for _, g := range []SpellGroup{SpellGroupAttack, SpellGroupHealing, SpellGroupSupport} {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g
		}
	}
	return SpellGroupSupport
}

type SpellType string

const (
	SpellTypeInstant SpellType = "Instant"
	SpellTypeRune    SpellType = "Rune"
)

func ParseSpellType(s string) SpellType {
	if strings.EqualFold(strings.TrimSpace(s), string(SpellTypeRune)) {
		return SpellTypeRune
	}
	return SpellTypeInstant
}

// AuctionStatus is the lifecycle state of a character auction.
type AuctionStatus string

const (
	AuctionStatusInProgress AuctionStatus = "in progress"
	AuctionStatusProcessed  AuctionStatus = "currently processed"
	AuctionStatusTransfer   AuctionStatus = "will be transferred"
	AuctionStatusCancelled  AuctionStatus = "cancelled"
	AuctionStatusFinished   AuctionStatus = "finished"
)

func ParseAuctionStatus(s string) AuctionStatus {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "cancel"):
		return AuctionStatusCancelled
	case strings.Contains(s, "processed"):
		return AuctionStatusProcessed
	case strings.Contains(s, "transferred"):
		return AuctionStatusTransfer
	case strings.Contains(s, "finished"), strings.Contains(s, "sold"):
		return AuctionStatusFinished
	default:
		return AuctionStatusInProgress
	}
}

// BidType labels the bid shown on an auction: the asking minimum while no
// bids exist, the leading bid while running, the winning bid once over.
type BidType string

const (
	BidTypeMinimum BidType = "Minimum Bid"
	BidTypeCurrent BidType = "Current Bid"
	BidTypeWinning BidType = "Winning Bid"
)

func ParseBidType(s string) BidType {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "winning"):
		return BidTypeWinning
	case strings.Contains(s, "current"):
		return BidTypeCurrent
	default:
		return BidTypeMinimum
	}
}

// ThreadStatus is a bit set of the status icons a forum thread can carry.
type ThreadStatus int

const (
	ThreadStatusHot ThreadStatus = 1 << iota
	ThreadStatusNew
	ThreadStatusClosed
	ThreadStatusSticky
)

// ParseThreadStatus reads the combined status from an icon file name such
// as "logo_hotnew.gif".
func ParseThreadStatus(icon string) ThreadStatus {
	icon = strings.ToLower(icon)
	var status ThreadStatus
	for substr, flag := range map[string]ThreadStatus{
		"hot":    ThreadStatusHot,
		"new":    ThreadStatusNew,
		"closed": ThreadStatusClosed,
		"sticky": ThreadStatusSticky,
	} {
		if strings.Contains(icon, substr) {
			status |= flag
		}
	}
	return status
}

// HighscoresCategory is the numeric id of a highscores ranking.
type HighscoresCategory int

const (
	CategoryAchievements HighscoresCategory = iota + 1
	CategoryAxeFighting
	CategoryCharmPoints
	CategoryClubFighting
	CategoryDistanceFighting
	CategoryExperience
	CategoryFishing
	CategoryFistFighting
	CategoryGoshnarsTaint
	CategoryLoyaltyPoints
	CategoryMagicLevel
	CategoryShielding
	CategorySwordFighting
	CategoryDromeScore
	CategoryBossPoints
)

var highscoresCategoryNames = map[HighscoresCategory]string{
	CategoryAchievements:     "Achievements",
	CategoryAxeFighting:      "Axe Fighting",
	CategoryCharmPoints:      "Charm Points",
	CategoryClubFighting:     "Club Fighting",
	CategoryDistanceFighting: "Distance Fighting",
	CategoryExperience:       "Experience Points",
	CategoryFishing:          "Fishing",
	CategoryFistFighting:     "Fist Fighting",
	CategoryGoshnarsTaint:    "Goshnar's Taint",
	CategoryLoyaltyPoints:    "Loyalty Points",
	CategoryMagicLevel:       "Magic Level",
	CategoryShielding:        "Shielding",
	CategorySwordFighting:    "Sword Fighting",
	CategoryDromeScore:       "Drome Score",
	CategoryBossPoints:       "Boss Points",
}

func (c HighscoresCategory) String() string {
	if name, ok := highscoresCategoryNames[c]; ok {
		return name
	}
	return "Experience Points"
}

// ParseHighscoresCategory matches a category label from the section's
// filter form.
func ParseHighscoresCategory(s string) HighscoresCategory {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, name := range highscoresCategoryNames {
		if strings.ToLower(name) == s {
			return id
		}
	}
	return CategoryExperience
}
