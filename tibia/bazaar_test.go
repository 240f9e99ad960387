package tibia

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const auctionRowHTML = `<div class="Auction">
	<div class="AuctionHeader">
		<div class="AuctionCharacterName"><a href="?subtopic=currentcharactertrades&amp;page=details&amp;auctionid=301187">Strong Knight</a></div>
		Level: 250 | Vocation: Elite Knight | Male | World: Gladera
	</div>
	<img class="AuctionOutfitImage" src="https://static.tibia.com/images/charactertrade/outfits/1461_3.gif"/>
	<div class="CVIcon" title="425x crystal coin"><img src="https://static.tibia.com/images/charactertrade/items/23497.gif"/></div>
	<div class="CVIcon" title="soulcrusher (tier 2)&#10;It weighs 47.00 oz."><img src="https://static.tibia.com/images/charactertrade/items/34155.gif"/></div>
	<div class="ShortAuctionData">
		<div class="ShortAuctionDataLabel">Auction Start:</div>
		<div class="ShortAuctionDataValue">Aug 24 2026, 10:00 CEST</div>
		<div class="ShortAuctionDataLabel">Auction End:</div>
		<div class="ShortAuctionDataValue">Aug 31 2026, 19:00 CEST</div>
		<div class="ShortAuctionDataBidRow">
			<div class="ShortAuctionDataLabel">Current Bid:</div>
			<div class="ShortAuctionDataValue">15,000</div>
		</div>
	</div>
	<div class="CurrentBid"></div>
	<div class="Entry"><img src="https://static.tibia.com/images/charactertrade/salesarguments/2.gif"/>Gold: 47,000,000</div>
	<div class="Entry"><img src="https://static.tibia.com/images/charactertrade/salesarguments/8.gif"/>Charm Expansion</div>
</div>`

const bazaarPage = `<html><body><div class="BoxContent">
<div class="TableContainer">
	<form action="?subtopic=currentcharactertrades" method="post">
		<select name="filter_world"><option value="" selected>(all worlds)</option><option value="Gladera">Gladera</option><option value="Antica">Antica</option></select>
		<select name="filter_worldpvptype"><option value="" selected>(all)</option></select>
		<select name="filter_worldbattleyestate"><option value="" selected>(all)</option></select>
		<select name="filter_profession"><option value="3" selected>Knights</option></select>
		<input type="text" name="filter_levelrangefrom" value="200"/>
		<input type="text" name="filter_levelrangeto" value=""/>
		<select name="filter_skillid"><option value="" selected>(all)</option></select>
		<input type="text" name="filter_skillrangefrom" value=""/>
		<input type="text" name="filter_skillrangeto" value=""/>
		<select name="order_column"><option value="101" selected>End Date</option></select>
		<select name="order_direction"><option value="0" selected>Ascending</option></select>
	</form>
	<form action="?subtopic=currentcharactertrades" method="post">
		<input type="text" name="searchstring" value=""/>
		<select name="searchtype"><option value="1" selected>Name</option></select>
	</form>
</div>
<div class="TableContainer">` + auctionRowHTML + `</div>
<table><tr><td class="PageNavigation">
	<div><span class="PageLink CurrentPageLink">1</span><span class="PageLink"><a href="?subtopic=currentcharactertrades&amp;currentpage=2">2</a></span></div>
	<div>Results: 445</div>
</td></tr></table>
</div></body></html>`

func TestParseCharacterBazaar(t *testing.T) {
	bazaar, err := ParseCharacterBazaar(bazaarPage)
	require.NoError(t, err)
	require.NotNil(t, bazaar)

	require.True(t, bazaar.Current)
	require.Equal(t, 1, bazaar.Page.CurrentPage)
	require.Equal(t, 2, bazaar.Page.TotalPages)
	require.Equal(t, 445, bazaar.Page.ResultsCount)

	require.NotNil(t, bazaar.Filters)
	require.Empty(t, bazaar.Filters.World)
	require.Equal(t, []string{"Gladera", "Antica"}, bazaar.Filters.AvailableWorlds)
	require.Equal(t, -1, bazaar.Filters.PvpType)
	require.Equal(t, 3, bazaar.Filters.Vocation)
	require.Equal(t, 200, bazaar.Filters.MinLevel)
	require.Zero(t, bazaar.Filters.MaxLevel)
	require.Equal(t, 101, bazaar.Filters.OrderBy)
	require.Equal(t, 0, bazaar.Filters.OrderDirection)
	require.Equal(t, 1, bazaar.Filters.SearchType)

	require.Len(t, bazaar.Entries, 1)
	auction := bazaar.Entries[0]
	require.Equal(t, 301187, auction.ID)
	require.Equal(t, "Strong Knight", auction.Name)
	require.Equal(t, 250, auction.Level)
	require.Equal(t, VocationEliteKnight, auction.Vocation)
	require.Equal(t, SexMale, auction.Sex)
	require.Equal(t, "Gladera", auction.World)
	require.Equal(t, 1461, auction.Outfit.ID)
	require.Equal(t, 3, auction.Outfit.Addons)

	require.Len(t, auction.DisplayedItems, 2)
	require.Equal(t, DisplayItem{
		ImageURL: "https://static.tibia.com/images/charactertrade/items/23497.gif",
		Name:     "crystal coin",
		Count:    425,
		ItemID:   23497,
	}, auction.DisplayedItems[0])
	require.Equal(t, DisplayItem{
		ImageURL:    "https://static.tibia.com/images/charactertrade/items/34155.gif",
		Name:        "soulcrusher",
		Description: "It weighs 47.00 oz.",
		Count:       1,
		ItemID:      34155,
		Tier:        2,
	}, auction.DisplayedItems[1])

	require.Equal(t, time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC), auction.AuctionStart)
	require.Equal(t, time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC), auction.AuctionEnd)
	require.Equal(t, 15000, auction.Bid)
	require.Equal(t, BidTypeCurrent, auction.BidType)
	require.Equal(t, AuctionStatusInProgress, auction.Status)

	require.Len(t, auction.SalesArguments, 2)
	require.Equal(t, "Gold: 47,000,000", auction.SalesArguments[0].Content)
	require.Equal(t, 2, auction.SalesArguments[0].CategoryID)
}

func TestParseCharacterBazaarHistory(t *testing.T) {
	page := `<div class="BoxContent"><div class="TableContainer">
<div class="Auction">
	<div class="AuctionHeader">
		<div class="AuctionCharacterName">Sold Sorcerer</div>
		Level: 142 | Vocation: Master Sorcerer | Female | World: Antica
	</div>
	<img class="AuctionOutfitImage" src="outfits/138_0.gif"/>
	<div class="ShortAuctionData">
		<div class="ShortAuctionDataValue">Jul 1 2026, 10:00 CEST</div>
		<div class="ShortAuctionDataValue">Jul 8 2026, 19:00 CEST</div>
		<div class="ShortAuctionDataBidRow">
			<div class="ShortAuctionDataLabel">Winning Bid:</div>
			<div class="ShortAuctionDataValue">90,000</div>
		</div>
	</div>
	<div class="CurrentBid"><div class="AuctionInfo">currently processed</div></div>
</div>
</div></div>`
	bazaar, err := ParseCharacterBazaar(page)
	require.NoError(t, err)
	require.NotNil(t, bazaar)

	require.False(t, bazaar.Current)
	require.Nil(t, bazaar.Filters)
	require.Len(t, bazaar.Entries, 1)

	auction := bazaar.Entries[0]
	require.Zero(t, auction.ID)
	require.Equal(t, "Sold Sorcerer", auction.Name)
	require.Equal(t, SexFemale, auction.Sex)
	require.Equal(t, 90000, auction.Bid)
	require.Equal(t, BidTypeWinning, auction.BidType)
	require.Equal(t, AuctionStatusProcessed, auction.Status)
}

func TestParseCharacterBazaarInvalidContent(t *testing.T) {
	_, err := ParseCharacterBazaar(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}

const auctionPage = `<html><body><div class="BoxContent">
` + auctionRowHTML + `
<div class="CharacterDetailsBlock" id="General">
	<table class="TableContent">
		<tr><td><span>Hit Points:</span></td><td><div>2,590</div></td></tr>
		<tr><td><span>Mana:</span></td><td><div>9,090</div></td></tr>
		<tr><td><span>Capacity:</span></td><td><div>5,130</div></td></tr>
		<tr><td><span>Speed:</span></td><td><div>480</div></td></tr>
		<tr><td><span>Blessings:</span></td><td><div>7/8</div></td></tr>
		<tr><td><span>Mounts:</span></td><td><div>14</div></td></tr>
		<tr><td><span>Outfits:</span></td><td><div>23</div></td></tr>
		<tr><td><span>Titles:</span></td><td><div>6</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td>Axe Fighting</td><td>98</td><td>55.67%</td></tr>
		<tr><td>Magic Level</td><td>9</td><td>20.00%</td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Creation Date:</span></td><td><div>Mar 8 2015, 14:22:43 CET</div></td></tr>
		<tr><td><span>Experience:</span></td><td><div>1,234,567,890</div></td></tr>
		<tr><td><span>Gold:</span></td><td><div>47,312,450</div></td></tr>
		<tr><td><span>Achievement Points:</span></td><td><div>312</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Regular World Transfer:</span></td><td><div>can be purchased and used after Sep 10 2026, 10:00:00 CEST</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Charm Expansion:</span></td><td><div>yes</div></td></tr>
		<tr><td><span>Available Charm Points:</span></td><td><div>1,620</div></td></tr>
		<tr><td><span>Spent Charm Points:</span></td><td><div>5,400</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Daily Reward Streak:</span></td><td><div>28</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Hunting Task Points:</span></td><td><div>103,410</div></td></tr>
		<tr><td><span>Permanent Hunting Task Slots:</span></td><td><div>1</div></td></tr>
		<tr><td><span>Permanent Prey Slots:</span></td><td><div>2</div></td></tr>
		<tr><td><span>Prey Wildcards:</span></td><td><div>42</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Hirelings:</span></td><td><div>2</div></td></tr>
		<tr><td><span>Hireling Jobs:</span></td><td><div>4</div></td></tr>
		<tr><td><span>Hireling Outfits:</span></td><td><div>1</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Exalted Dust:</span></td><td><div>265/325</div></td></tr>
	</table>
	<table class="TableContent">
		<tr><td><span>Boss Points:</span></td><td><div>1,407</div></td></tr>
	</table>
</div>
<div class="CharacterDetailsBlock" id="ItemSummary">
	<div class="BlockPageNavigationRow">
		<div><span class="PageLink CurrentPageLink">1</span><span class="PageLink"><a href="?currentpage=2">2</a></span></div>
		<div>Results: 87</div>
	</div>
	<div class="CVIcon" title="425x crystal coin"><img src="items/23497.gif"/></div>
</div>
<div class="CharacterDetailsBlock" id="Mounts">
	<div class="BlockPageNavigationRow">
		<div><span class="PageLink CurrentPageLink">1</span></div>
		<div>Results: 14</div>
	</div>
	<div class="CVIcon" title="Racing Bird"><img src="mounts/9.gif"/></div>
</div>
<div class="CharacterDetailsBlock" id="Outfits">
	<div class="BlockPageNavigationRow">
		<div><span class="PageLink CurrentPageLink">1</span></div>
		<div>Results: 23</div>
	</div>
	<div class="CVIcon" title="Citizen (base)"><img src="outfits/128_3.gif"/></div>
</div>
<div class="CharacterDetailsBlock" id="Blessings">
	<table class="TableContent">
		<tr><td>Amount</td><td>Name</td></tr>
		<tr><td>7x</td><td>Twist of Fate</td></tr>
	</table>
</div>
<div class="CharacterDetailsBlock" id="Charms">
	<table class="TableContent">
		<tr><td>Cost</td><td>Name</td></tr>
		<tr><td>600</td><td>Parry</td></tr>
	</table>
</div>
<div class="CharacterDetailsBlock" id="Titles">
	<table class="TableContent">
		<tr><td>Titles</td></tr>
		<tr><td>Gold Hoarder</td></tr>
		<tr><td>(4 more entries)</td></tr>
	</table>
</div>
<div class="CharacterDetailsBlock" id="Achievements">
	<table class="TableContent">
		<tr><td>Achievements</td></tr>
		<tr><td>Annihilator</td></tr>
		<tr><td>Dream Catcher <img src="secret.gif"/></td></tr>
	</table>
</div>
<div class="CharacterDetailsBlock" id="BestiaryProgress">
	<table class="TableContent">
		<tr><td>Step</td><td>Kills</td><td>Name</td></tr>
		<tr><td>2</td><td>1,159x</td><td>Demon</td></tr>
	</table>
</div>
</div></body></html>`

func TestParseAuction(t *testing.T) {
	auction, err := ParseAuction(auctionPage)
	require.NoError(t, err)
	require.NotNil(t, auction)

	require.Equal(t, 301187, auction.ID)
	require.Equal(t, "Strong Knight", auction.Name)
	require.NotNil(t, auction.Details)

	details := auction.Details
	require.Equal(t, 2590, details.HitPoints)
	require.Equal(t, 9090, details.Mana)
	require.Equal(t, 5130, details.Capacity)
	require.Equal(t, 480, details.Speed)
	require.Equal(t, 14, details.MountsCount)
	require.Equal(t, 23, details.OutfitsCount)
	require.Equal(t, 6, details.TitlesCount)
	require.Equal(t, 7, details.BlessingsCount)

	require.Len(t, details.Skills, 2)
	require.Equal(t, SkillEntry{Name: "Axe Fighting", Level: 98, Progress: 55.67}, details.Skills[0])

	require.Equal(t, time.Date(2015, 3, 8, 13, 22, 43, 0, time.UTC), details.CreationDate)
	require.Equal(t, 1234567890, details.Experience)
	require.Equal(t, 47312450, details.Gold)
	require.Equal(t, 312, details.AchievementPoints)

	require.NotNil(t, details.RegularWorldTransferAvailable)
	require.Equal(t, time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), *details.RegularWorldTransferAvailable)

	require.True(t, details.CharmExpansion)
	require.Equal(t, 1620, details.AvailableCharmPoints)
	require.Equal(t, 5400, details.SpentCharmPoints)
	require.Equal(t, 28, details.DailyRewardStreak)

	require.Equal(t, 103410, details.HuntingTaskPoints)
	require.Equal(t, 1, details.PermanentHuntingTaskSlots)
	require.Equal(t, 2, details.PermanentPreySlots)
	require.Equal(t, 42, details.PreyWildcards)
	require.Equal(t, 2, details.Hirelings)
	require.Equal(t, 4, details.HirelingJobs)
	require.Equal(t, 1, details.HirelingOutfits)
	require.Equal(t, 265, details.ExaltedDust)
	require.Equal(t, 325, details.ExaltedDustLimit)
	require.Equal(t, 1407, details.BossPoints)

	require.NotNil(t, details.Items)
	require.Equal(t, 2, details.Items.Page.TotalPages)
	require.Equal(t, 87, details.Items.Page.ResultsCount)
	require.Len(t, details.Items.Entries, 1)
	require.Equal(t, "crystal coin", details.Items.Entries[0].Name)
	require.Equal(t, 425, details.Items.Entries[0].Count)

	require.NotNil(t, details.Mounts)
	require.Len(t, details.Mounts.Entries, 1)
	require.Equal(t, DisplayImage{ImageURL: "mounts/9.gif", Name: "Racing Bird", ID: 9}, details.Mounts.Entries[0])

	require.NotNil(t, details.Outfits)
	require.Len(t, details.Outfits.Entries, 1)
	require.Equal(t, DisplayImage{ImageURL: "outfits/128_3.gif", Name: "Citizen", ID: 128}, details.Outfits.Entries[0])

	require.Equal(t, []BlessingEntry{{Name: "Twist of Fate", Amount: 7}}, details.Blessings)
	require.Equal(t, []CharmEntry{{Name: "Parry", Cost: 600}}, details.Charms)
	require.Equal(t, []string{"Gold Hoarder"}, details.Titles)
	require.Equal(t, []AchievementEntry{
		{Name: "Annihilator"},
		{Name: "Dream Catcher", Secret: true},
	}, details.Achievements)
	require.Equal(t, []BestiaryEntry{{Name: "Demon", Kills: 1159, Step: 2}}, details.Bestiary)
}

func TestAuctionJSONRoundTrip(t *testing.T) {
	auction, err := ParseAuction(auctionPage)
	require.NoError(t, err)
	require.NotNil(t, auction)
	require.NotNil(t, auction.Details)

	encoded, err := json.Marshal(auction)
	require.NoError(t, err)

	var decoded Auction
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, *auction, decoded)

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	require.JSONEq(t, string(encoded), string(again))
}

func TestParseAuctionNotFound(t *testing.T) {
	auction, err := ParseAuction(`<div class="BoxContent">An internal error has occurred.</div>`)
	require.NoError(t, err)
	require.Nil(t, auction)
}

func TestParseAuctionInvalidContent(t *testing.T) {
	_, err := ParseAuction(characterPage)
	require.ErrorIs(t, err, ErrInvalidContent)
}
