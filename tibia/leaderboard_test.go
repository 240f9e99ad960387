package tibia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const leaderboardPage = `<html><body>
<form action="https://www.tibia.com/community/?subtopic=leaderboards" method="post">
	<select name="world">
		<option value="Gladera" selected>Gladera</option>
		<option value="Antica">Antica</option>
	</select>
	<select name="rotation">
		<option value="42" selected>Current Rotation (ends on Sep 3 2024, 10:00:00 CEST)</option>
		<option value="41">Aug 6 2024, 10:00:00 CEST</option>
	</select>
</form>
<table class="TableContent"><tr><td>Tibiadrome Leaderboard</td></tr></table>
<table class="TableContent"><tr><td>Last Update: 10 minutes ago</td></tr></table>
<table class="TableContent">
	<tr style="background-color:#F1E0C6"><td>1.</td><td><a href="?subtopic=characters&amp;name=Drome+King">Drome King</a></td><td>63</td></tr>
	<tr style="background-color:#D4C0A1"><td>2.</td><td>Gone Forever</td><td>59</td></tr>
</table>
<small>
	<div>
		<span class="PageLink CurrentPageLink">1</span>
		<span class="PageLink"><a href="?subtopic=leaderboards&amp;currentpage=2">2</a></span>
	</div>
	<div>Results: 87</div>
</small>
</body></html>`

func TestParseLeaderboard(t *testing.T) {
	board, err := ParseLeaderboard(leaderboardPage)
	require.NoError(t, err)
	require.NotNil(t, board)

	require.Equal(t, "Gladera", board.World)
	require.Equal(t, []string{"Gladera", "Antica"}, board.AvailableWorlds)

	require.Equal(t, 42, board.Rotation.ID)
	require.True(t, board.Rotation.IsCurrent)
	require.Equal(t, time.Date(2024, 9, 3, 8, 0, 0, 0, time.UTC), board.Rotation.EndDate.UTC())
	require.Len(t, board.AvailableRotations, 2)
	require.Equal(t, 41, board.AvailableRotations[1].ID)
	require.False(t, board.AvailableRotations[1].IsCurrent)
	require.Equal(t, time.Date(2024, 8, 6, 8, 0, 0, 0, time.UTC), board.AvailableRotations[1].EndDate.UTC())

	require.WithinDuration(t, time.Now().UTC().Add(-10*time.Minute), board.LastUpdated, time.Minute)

	require.Equal(t, 1, board.Page.CurrentPage)
	require.Equal(t, 2, board.Page.TotalPages)
	require.Equal(t, 87, board.Page.ResultsCount)

	require.Len(t, board.Entries, 2)
	require.Equal(t, LeaderboardEntry{Rank: 1, Name: "Drome King", DromeLevel: 63}, board.Entries[0])
	require.Equal(t, LeaderboardEntry{Rank: 2, Name: "Gone Forever", IsDeleted: true, DromeLevel: 59}, board.Entries[1])
}

func TestParseLeaderboardInvalidContent(t *testing.T) {
	_, err := ParseLeaderboard(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}
