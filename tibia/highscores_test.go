package tibia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const highscoresPage = `<html><body>
<form action="https://www.tibia.com/community/?subtopic=highscores" method="post">
	<select name="world">
		<option value="">(all worlds)</option>
		<option value="Gladera" selected>Gladera</option>
		<option value="Antica">Antica</option>
	</select>
	<select name="beprotection">
		<option value="-1" selected>(any)</option>
		<option value="1">Protected</option>
	</select>
	<select name="category">
		<option value="6" selected>Experience Points</option>
		<option value="10">Loyalty Points</option>
	</select>
	<select name="profession">
		<option value="0" selected>(all vocations)</option>
		<option value="5">Paladins</option>
	</select>
</form>
<span class="RightArea">Last Update: 5 minutes ago</span>
<div class="TableContainer">
	<div class="Text">Highscores [Gladera] Last Update: 5 minutes ago</div>
	<div class="InnerTableContainer">
		<table class="TableContent">
			<tr style="background-color:#505050"><td>Rank</td><td>Name</td><td>Vocation</td><td>World</td><td>Level</td><td>Points</td></tr>
			<tr style="background-color:#F1E0C6"><td>1</td><td><a href="?subtopic=characters&amp;name=Galarzaa+Fidera">Galarzaa Fidera</a></td><td>Royal Paladin</td><td>Gladera</td><td>285</td><td>8,105,360,000</td></tr>
			<tr style="background-color:#D4C0A1"><td>2</td><td>Kusuma</td><td>Druid</td><td>Gladera</td><td>130</td><td>50,000,000</td></tr>
		</table>
		<div class="PageNavigation">
			<div>
				<span class="PageLink CurrentPageLink">1</span>
				<span class="PageLink"><a href="?subtopic=highscores&amp;currentpage=2">2</a></span>
				<span class="PageLink"><a href="?subtopic=highscores&amp;currentpage=3">3</a></span>
			</div>
			<div>Results: 2,500</div>
		</div>
	</div>
</div>
</body></html>`

func TestParseHighscores(t *testing.T) {
	hs, err := ParseHighscores(highscoresPage)
	require.NoError(t, err)
	require.NotNil(t, hs)

	require.Equal(t, "Gladera", hs.World)
	require.Equal(t, CategoryExperience, hs.Category)
	require.Equal(t, 0, hs.VocationFilter)
	require.Equal(t, -1, hs.BattlEyeFilter)
	require.Equal(t, []string{"Gladera", "Antica"}, hs.AvailableWorlds)
	require.WithinDuration(t, time.Now().UTC().Add(-5*time.Minute), hs.LastUpdated, time.Minute)

	require.Equal(t, 1, hs.Page.CurrentPage)
	require.Equal(t, 3, hs.Page.TotalPages)
	require.Equal(t, 2500, hs.Page.ResultsCount)

	require.Len(t, hs.Entries, 2)
	require.Equal(t, HighscoresEntry{
		Rank:     1,
		Name:     "Galarzaa Fidera",
		Vocation: VocationRoyalPaladin,
		World:    "Gladera",
		Level:    285,
		Value:    8105360000,
	}, hs.Entries[0])
	require.Equal(t, 2, hs.Entries[1].Rank)
	require.Equal(t, 50000000, hs.Entries[1].Value)
}

const loyaltyHighscoresPage = `<html><body>
<form action="https://www.tibia.com/community/?subtopic=highscores" method="post">
	<select name="world"><option value="Gladera" selected>Gladera</option></select>
	<select name="category"><option value="10" selected>Loyalty Points</option></select>
	<select name="profession"><option value="0" selected>(all vocations)</option></select>
</form>
<div class="TableContainer">
	<div class="Text">Highscores</div>
	<div class="InnerTableContainer">
		<table class="TableContent">
			<tr style="background-color:#F1E0C6"><td>1</td><td>Loyal One</td><td>Squire of Tibia</td><td>Knight</td><td>Gladera</td><td>100</td><td>2,540</td></tr>
		</table>
		<div class="PageNavigation">
			<div><span class="PageLink CurrentPageLink">1</span></div>
			<div>Results: 1</div>
		</div>
	</div>
</div>
</body></html>`

func TestParseHighscoresLoyalty(t *testing.T) {
	hs, err := ParseHighscores(loyaltyHighscoresPage)
	require.NoError(t, err)
	require.NotNil(t, hs)

	require.Equal(t, CategoryLoyaltyPoints, hs.Category)
	require.Len(t, hs.Entries, 1)
	require.Equal(t, HighscoresEntry{
		Rank:     1,
		Name:     "Loyal One",
		Title:    "Squire of Tibia",
		Vocation: VocationKnight,
		World:    "Gladera",
		Level:    100,
		Value:    2540,
	}, hs.Entries[0])
}

func TestParseHighscoresWorldNotFound(t *testing.T) {
	page := `<div class="TableContainer">
	<div class="Text">Error</div>
	<table class="TableContent"><tr><td>The world doesn't exist!</td></tr></table>
</div>`
	hs, err := ParseHighscores(page)
	require.NoError(t, err)
	require.Nil(t, hs)
}

func TestParseHighscoresInvalidContent(t *testing.T) {
	_, err := ParseHighscores(characterPage)
	require.ErrorIs(t, err, ErrInvalidContent)
}
