package tibia

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const eventSchedulePage = `<html><body>
<div class="eventscheduleheaderdateblock">July 2024</div>
<table id="eventscheduletable">
	<tr>
		<td>
			<div>29</div>
			<span class="HelperDivIndicator" onmouseover="ReturnWindow('Event Information', '<div>Rapid Respawn:</div><div>• Creatures respawn twice as fast</div>');">
				<div style="background: #7475b1;">Rapid Respawn*</div>
			</span>
		</td>
		<td>
			<div>30</div>
			<span class="HelperDivIndicator" onmouseover="ReturnWindow('Event Information', '<div>Rapid Respawn:</div><div>• Creatures respawn twice as fast</div>');">
				<div style="background: #7475b1;">Rapid Respawn*</div>
			</span>
		</td>
		<td><div>1</div></td>
		<td>
			<div>2</div>
			<span class="HelperDivIndicator" onmouseover="ReturnWindow('Event Information', '<div>Double XP Weekend:</div><div>• Experience gain is doubled</div>');">
				<div style="background: #1a9f29;">Double XP Weekend*</div>
			</span>
		</td>
		<td>
			<div>3</div>
			<span class="HelperDivIndicator" onmouseover="ReturnWindow('Event Information', '<div>Double XP Weekend:</div><div>• Experience gain is doubled</div>');">
				<div style="background: #1a9f29;">Double XP Weekend*</div>
			</span>
		</td>
	</tr>
</table>
</body></html>`

func TestParseEventSchedule(t *testing.T) {
	schedule, err := ParseEventSchedule(eventSchedulePage)
	require.NoError(t, err)
	require.NotNil(t, schedule)

	require.Equal(t, 7, schedule.Month)
	require.Equal(t, 2024, schedule.Year)
	require.Len(t, schedule.Events, 2)

	respawn := schedule.Events[0]
	require.Equal(t, "Rapid Respawn", respawn.Title)
	require.Equal(t, "Creatures respawn twice as fast", respawn.Description)
	require.Equal(t, "#7475b1", respawn.Color)
	require.Nil(t, respawn.StartDate, "events already running on the first shown day have no known start")
	require.NotNil(t, respawn.EndDate)
	require.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *respawn.EndDate)

	doubleXP := schedule.Events[1]
	require.Equal(t, "Double XP Weekend", doubleXP.Title)
	require.Equal(t, "#1a9f29", doubleXP.Color)
	require.NotNil(t, doubleXP.StartDate)
	require.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), *doubleXP.StartDate)
	require.Nil(t, doubleXP.EndDate, "events running past the last shown day have no known end")
}

func TestParseEventScheduleInvalidContent(t *testing.T) {
	_, err := ParseEventSchedule(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}
