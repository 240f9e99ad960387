package tibia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const boostedHeader = `<html><body>
<div id="RightArtwork">
	<img id="Monster" title="Today's boosted creature: Grim Reaper" src="https://static.tibia.com/images/global/header/monsters/grimreaper.gif"/>
	<img id="Boss" title="Today's boosted boss: Goshnar's Cruelty" src="https://static.tibia.com/images/global/header/monsters/goshnarscruelty.gif"/>
</div>
</body></html>`

func TestParseBoostedCreatures(t *testing.T) {
	boosted, err := ParseBoostedCreatures(boostedHeader)
	require.NoError(t, err)
	require.NotNil(t, boosted)

	require.Equal(t, CreatureEntry{Name: "Grim Reaper", Identifier: "grimreaper"}, boosted.Creature)
	require.Equal(t, CreatureEntry{Name: "Goshnar's Cruelty", Identifier: "goshnarscruelty"}, boosted.Boss)
}

func TestParseBoostedCreaturesInvalidContent(t *testing.T) {
	_, err := ParseBoostedCreatures(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}

const creaturesSectionPage = `<html><body>
<div class="TableContainer">
	<div class="Text">Boosted Creature</div>
	<a href="https://www.tibia.com/library/?subtopic=creatures&amp;race=grimreaper">Grim Reaper</a>
</div>
<div style="display: table; width: 100%;">
	<div style="float: left; width: 120px;"><a href="?subtopic=creatures&amp;race=demon">Demon</a></div>
	<div style="float: left; width: 120px;"><a href="?subtopic=creatures&amp;race=dragon">Dragon</a></div>
</div>
</body></html>`

func TestParseCreaturesSection(t *testing.T) {
	section, err := ParseCreaturesSection(creaturesSectionPage)
	require.NoError(t, err)
	require.NotNil(t, section)

	require.Equal(t, CreatureEntry{Name: "Grim Reaper", Identifier: "grimreaper"}, section.BoostedCreature)
	require.Equal(t, []CreatureEntry{
		{Name: "Demon", Identifier: "demon"},
		{Name: "Dragon", Identifier: "dragon"},
	}, section.Creatures)
}

func TestParseCreaturesSectionInvalidContent(t *testing.T) {
	_, err := ParseCreaturesSection(characterPage)
	require.ErrorIs(t, err, ErrInvalidContent)
}

const boostableBossesPage = `<html><body>
<div class="TableContainer">
	<div class="Text">Boosted Boss</div>
	<b>Goshnar's Cruelty</b>
	<img src="https://static.tibia.com/images/library/goshnarscruelty.gif"/>
</div>
<div style="display: table; width: 100%;">
	<div style="float: left; width: 120px;"><img src="https://static.tibia.com/images/library/goshnarscruelty.gif"/>Goshnar's Cruelty</div>
	<div style="float: left; width: 120px;"><img src="https://static.tibia.com/images/library/sharpclaw.gif"/>Sharpclaw</div>
</div>
</body></html>`

func TestParseBoostableBosses(t *testing.T) {
	bosses, err := ParseBoostableBosses(boostableBossesPage)
	require.NoError(t, err)
	require.NotNil(t, bosses)

	require.Equal(t, CreatureEntry{Name: "Goshnar's Cruelty", Identifier: "goshnarscruelty"}, bosses.BoostedBoss)
	require.Equal(t, []CreatureEntry{
		{Name: "Goshnar's Cruelty", Identifier: "goshnarscruelty"},
		{Name: "Sharpclaw", Identifier: "sharpclaw"},
	}, bosses.Bosses)
}

func TestParseBoostableBossesInvalidContent(t *testing.T) {
	_, err := ParseBoostableBosses(characterPage)
	require.ErrorIs(t, err, ErrInvalidContent)
}

const creaturePage = `<html><body>
<div style="position: relative; top: 0;">header</div>
<div style="position: relative; top: 0;">
	<div><h2>Demons</h2><img src="https://static.tibia.com/images/library/demon.gif"/></div>
	<div>
		<p>Demons are the most malevolent beings of the dark side.</p>
		<p>Demons have 8200 hitpoints. They are immune to fire and earth and cannot be paralysed. Moreover, they are able to sense invisible creatures. They are strong against death damage. On the other hand, they are weak against holy and ice damage. It takes 500 mana to convince these creatures. They cannot be summoned.</p>
		<p>Demons yield 6000 experience points. They carry platinum coins, fire swords and demon horns with them.</p>
	</div>
</div>
</body></html>`

func TestParseCreature(t *testing.T) {
	creature, err := ParseCreature(creaturePage)
	require.NoError(t, err)
	require.NotNil(t, creature)

	require.Equal(t, "Demons", creature.Name)
	require.Equal(t, "demon", creature.Identifier)
	require.Equal(t, "Demons are the most malevolent beings of the dark side.", creature.Description)
	require.Equal(t, 8200, creature.Hitpoints)
	require.Equal(t, 6000, creature.Experience)
	require.Equal(t, []string{"fire", "earth", "paralyze", "invisible"}, creature.ImmuneTo)
	require.Equal(t, []string{"ice", "holy"}, creature.WeakAgainst)
	require.Equal(t, []string{"death"}, creature.StrongAgainst)
	require.Equal(t, "platinum coins, fire swords and demon horns", creature.Loot)
	require.Equal(t, 500, creature.ManaCost)
	require.True(t, creature.Convinceable)
	require.False(t, creature.Summonable)
}

func TestParseCreatureNotFound(t *testing.T) {
	page := `<div style="position: relative;">header</div>
<div style="position: relative;"><div>empty</div></div>`
	creature, err := ParseCreature(page)
	require.NoError(t, err)
	require.Nil(t, creature)
}

func TestParseCreatureInvalidContent(t *testing.T) {
	_, err := ParseCreature(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}
