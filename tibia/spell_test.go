package tibia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const spellsSectionPage = `<html><body>
<form action="https://www.tibia.com/library/?subtopic=spells" method="post">
	<select name="vocation"><option value="Druid" selected>Druids</option></select>
	<select name="group"><option value="" selected>(all)</option></select>
	<select name="type"><option value="" selected>(all)</option></select>
	<select name="sort"><option value="name" selected>Name</option></select>
	<select name="premium"><option value="" selected>(all)</option></select>
</form>
<div class="InnerTableContainer">
	<table>
		<tr bgcolor="#505050"><td>Name</td><td>Group</td><td>Type</td><td>Lvl</td><td>Mana</td><td>Price</td><td>Premium</td></tr>
		<tr bgcolor="#D4C0A1"><td><a href="?subtopic=spells&amp;spell=lighthealing">Light Healing (exura)</a></td><td>Healing</td><td>Instant</td><td>8</td><td>20</td><td>0</td><td>no</td></tr>
		<tr bgcolor="#F1E0C6"><td><a href="?subtopic=spells&amp;spell=heavymagicmissilerune">Heavy Magic Missile Rune (adori vis)</a></td><td>Attack</td><td>Rune</td><td>25</td><td>350</td><td>1,500</td><td>yes</td></tr>
	</table>
</div>
</body></html>`

func TestParseSpellsSection(t *testing.T) {
	section, err := ParseSpellsSection(spellsSectionPage)
	require.NoError(t, err)
	require.NotNil(t, section)

	require.Equal(t, "Druid", section.VocationFilter)
	require.Equal(t, "name", section.SortedBy)

	require.Len(t, section.Entries, 2)
	require.Equal(t, SpellEntry{
		Identifier: "lighthealing",
		Name:       "Light Healing",
		Words:      "exura",
		Group:      SpellGroupHealing,
		Type:       SpellTypeInstant,
		Level:      8,
		Mana:       20,
	}, section.Entries[0])
	require.Equal(t, SpellEntry{
		Identifier: "heavymagicmissilerune",
		Name:       "Heavy Magic Missile Rune",
		Words:      "adori vis",
		Group:      SpellGroupAttack,
		Type:       SpellTypeRune,
		Level:      25,
		Mana:       350,
		Price:      1500,
		Premium:    true,
	}, section.Entries[1])
}

func TestParseSpellsSectionInvalidContent(t *testing.T) {
	_, err := ParseSpellsSection(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}

const spellPage = `<html><body>
<table><tr><td><img src="https://static.tibia.com/images/library/heavymagicmissilerune.png"/><h2>Heavy Magic Missile Rune</h2></td></tr></table>
This rune shoots a strong magic missile.<br/>It can be bought from magic shops.
<div class="TableContainer">
	<div class="Text">Spell Information</div>
	<table class="TableContent">
		<tr><td>Name:</td><td>Heavy Magic Missile Rune</td></tr>
		<tr><td>Formula:</td><td>adori vis</td></tr>
		<tr><td>Vocation:</td><td>Druid, Sorcerer</td></tr>
		<tr><td>Group:</td><td>Support</td></tr>
		<tr><td>Type:</td><td>Rune</td></tr>
		<tr><td>Cooldown:</td><td>2s (Group: 2s)</td></tr>
		<tr><td>Soul Points:</td><td>2</td></tr>
		<tr><td>Amount:</td><td>10</td></tr>
		<tr><td>Exp Lvl:</td><td>25</td></tr>
		<tr><td>Mana:</td><td>350</td></tr>
		<tr><td>Price:</td><td>1,500</td></tr>
		<tr><td>City:</td><td>Carlin, Thais, Venore</td></tr>
		<tr><td>Premium:</td><td>yes</td></tr>
	</table>
</div>
<div class="TableContainer">
	<div class="Text">Rune Information</div>
	<table class="TableContent">
		<tr><td>Name:</td><td>Heavy Magic Missile</td></tr>
		<tr><td>Group:</td><td>Attack</td></tr>
		<tr><td>Magic Type:</td><td>Energy</td></tr>
		<tr><td>Vocation:</td><td>Druid, Knight, Paladin, Sorcerer</td></tr>
		<tr><td>Mag Lvl:</td><td>4</td></tr>
		<tr><td>Exp Lvl:</td><td>25</td></tr>
	</table>
</div>
</body></html>`

func TestParseSpell(t *testing.T) {
	spell, err := ParseSpell(spellPage)
	require.NoError(t, err)
	require.NotNil(t, spell)

	require.Equal(t, "heavymagicmissilerune", spell.Identifier)
	require.Equal(t, "Heavy Magic Missile Rune", spell.Name)
	require.Equal(t, "adori vis", spell.Words)
	require.Equal(t, "This rune shoots a strong magic missile.\nIt can be bought from magic shops.", spell.Description)
	require.Equal(t, []string{"Druid", "Sorcerer"}, spell.Vocations)
	require.Equal(t, []string{"Carlin", "Thais", "Venore"}, spell.Cities)
	require.Equal(t, SpellGroupSupport, spell.Group)
	require.Empty(t, spell.SecondaryGroup)
	require.Equal(t, SpellTypeRune, spell.Type)
	require.Equal(t, 2, spell.Cooldown)
	require.Equal(t, 2, spell.CooldownGroup)
	require.Zero(t, spell.CooldownSecondary)
	require.Equal(t, 25, spell.Level)
	require.Equal(t, 350, spell.Mana)
	require.Equal(t, 2, spell.SoulPoints)
	require.Equal(t, 10, spell.Amount)
	require.Equal(t, 1500, spell.Price)
	require.True(t, spell.Premium)

	require.NotNil(t, spell.Rune)
	require.Equal(t, "Heavy Magic Missile", spell.Rune.Name)
	require.Equal(t, SpellGroupAttack, spell.Rune.Group)
	require.Equal(t, "Energy", spell.Rune.MagicType)
	require.Equal(t, []string{"Druid", "Knight", "Paladin", "Sorcerer"}, spell.Rune.Vocations)
	require.Equal(t, 4, spell.Rune.MagicLevel)
	require.Equal(t, 25, spell.Rune.Level)
}

func TestParseSpellSecondaryGroup(t *testing.T) {
	page := `<table><tr><td><img src="spells/strongicestrike.png"/></td></tr></table>
<div class="TableContainer">
	<div class="Text">Spell Information</div>
	<table class="TableContent">
		<tr><td>Name:</td><td>Strong Ice Strike</td></tr>
		<tr><td>Formula:</td><td>exori gran frigo</td></tr>
		<tr><td>Vocation:</td><td>Druid</td></tr>
		<tr><td>Group:</td><td>Attack (Secondary Group: Focus)</td></tr>
		<tr><td>Type:</td><td>Instant</td></tr>
		<tr><td>Cooldown:</td><td>8s (Group: 2s, Secondary Group: 8)</td></tr>
		<tr><td>Exp Lvl:</td><td>80</td></tr>
		<tr><td>Mana:</td><td>60</td></tr>
		<tr><td>Price:</td><td>7,500</td></tr>
		<tr><td>City:</td><td>Edron</td></tr>
		<tr><td>Premium:</td><td>yes</td></tr>
	</table>
</div>`
	spell, err := ParseSpell(page)
	require.NoError(t, err)
	require.NotNil(t, spell)

	require.Equal(t, SpellGroupAttack, spell.Group)
	require.Equal(t, "Focus", spell.SecondaryGroup)
	require.Equal(t, 8, spell.Cooldown)
	require.Equal(t, 2, spell.CooldownGroup)
	require.Equal(t, 8, spell.CooldownSecondary)
}

func TestParseSpellNotFound(t *testing.T) {
	page := `<div class="TableContainer">
	<div class="Text">Spells</div>
	<table class="TableContent"><tr><td></td></tr></table>
</div>`
	spell, err := ParseSpell(page)
	require.NoError(t, err)
	require.Nil(t, spell)
}

func TestParseSpellInvalidContent(t *testing.T) {
	_, err := ParseSpell(`<div class="BoxContent">nothing</div>`)
	require.ErrorIs(t, err, ErrInvalidContent)
}
