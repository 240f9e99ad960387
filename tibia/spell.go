package tibia

import (
	"regexp"
	"strings"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SpellsSection is the spell library listing with its active filters.
type SpellsSection struct {
	VocationFilter string       `json:"vocation_filter,omitempty"`
	GroupFilter    string       `json:"group_filter,omitempty"`
	TypeFilter     string       `json:"type_filter,omitempty"`
	PremiumFilter  string       `json:"premium_filter,omitempty"`
	SortedBy       string       `json:"sorted_by,omitempty"`
	Entries        []SpellEntry `json:"entries"`
}

// SpellEntry is one row of the spell library listing.
type SpellEntry struct {
	Identifier string     `json:"identifier"`
	Name       string     `json:"name"`
	Words      string     `json:"words"`
	Group      SpellGroup `json:"group"`
	Type       SpellType  `json:"type"`
	Level      int        `json:"level"`
	Mana       int        `json:"mana,omitempty"`
	Price      int        `json:"price,omitempty"`
	Premium    bool       `json:"premium,omitempty"`
}

// Spell is a spell's own page.
type Spell struct {
	Identifier        string     `json:"identifier"`
	Name              string     `json:"name"`
	Words             string     `json:"words"`
	Description       string     `json:"description,omitempty"`
	Vocations         []string   `json:"vocations,omitempty"`
	Cities            []string   `json:"cities,omitempty"`
	Group             SpellGroup `json:"group"`
	SecondaryGroup    string     `json:"secondary_group,omitempty"`
	Type              SpellType  `json:"type"`
	Cooldown          int        `json:"cooldown"`
	CooldownGroup     int        `json:"cooldown_group,omitempty"`
	CooldownSecondary int        `json:"cooldown_secondary,omitempty"`
	Level             int        `json:"level"`
	Mana              int        `json:"mana,omitempty"`
	SoulPoints        int        `json:"soul_points,omitempty"`
	Amount            int        `json:"amount,omitempty"`
	Price             int        `json:"price,omitempty"`
	Premium           bool       `json:"premium,omitempty"`
	MagicType         string     `json:"magic_type,omitempty"`
	Rune              *Rune      `json:"rune,omitempty"`
}

// Rune is the projectile a conjuring spell produces, shown in its own table
// on the spell's page.
type Rune struct {
	Name       string     `json:"name"`
	Group      SpellGroup `json:"group"`
	MagicType  string     `json:"magic_type,omitempty"`
	Vocations  []string   `json:"vocations,omitempty"`
	MagicLevel int        `json:"magic_level,omitempty"`
	Level      int        `json:"level,omitempty"`
	Mana       int        `json:"mana,omitempty"`
}

var (
	spellNamePattern     = regexp.MustCompile(`([^(]+)\(([^)]+)\)`)
	spellGroupPattern    = regexp.MustCompile(`(\w+)(?:\s?\(Secondary Group: ([^)]+)\))?`)
	spellCooldownPattern = regexp.MustCompile(`(\d+)s\s?\(Group: (\d+)s(?:,\s?Secondary Group: (\d+))?`)
)

// ParseSpellsSection parses the spell library listing.
func ParseSpellsSection(content string) (*SpellsSection, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	container := doc.Find("div.InnerTableContainer").First()
	form := doc.Find("form").First()
	if container.Length() == 0 || form.Length() == 0 {
		return nil, invalidContentf("no spell list")
	}

	section := &SpellsSection{}
	data := parseutil.ParseForm(form)
	section.VocationFilter = data.Values["vocation"]
	section.GroupFilter = data.Values["group"]
	section.TypeFilter = data.Values["type"]
	section.PremiumFilter = data.Values["premium"]
	section.SortedBy = data.Values["sort"]

	container.Find(guildRowSelector).Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 7 {
			return
		}
		href, ok := cols[0].Find("a").Attr("href")
		if !ok {
			return
		}
		entry := SpellEntry{Identifier: htmlutil.QueryValue(href, "spell")}
		if m := spellNamePattern.FindStringSubmatch(cols[0].Text()); m != nil {
			entry.Name = parseutil.CleanText(m[1])
			entry.Words = parseutil.CleanText(m[2])
		}
		entry.Group = ParseSpellGroup(cols[1].Text())
		entry.Type = ParseSpellType(cols[2].Text())
		entry.Level = parseutil.ParseInteger(cols[3].Text(), 0)
		entry.Mana = parseutil.ParseInteger(cols[4].Text(), 0)
		entry.Price = parseutil.ParseInteger(cols[5].Text(), 0)
		entry.Premium = strings.Contains(cols[6].Text(), "yes")
		section.Entries = append(section.Entries, entry)
	})
	return section, nil
}

// ParseSpell parses a spell page. A spell listing page, served when the
// spell identifier is unknown, yields (nil, nil).
func ParseSpell(content string) (*Spell, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	tables := parseutil.SectionTables(doc)
	infoTable, ok := tables["Spell Information"]
	if !ok {
		if _, ok := tables["Spells"]; ok {
			return nil, nil
		}
		return nil, invalidContentf("no spell information table")
	}

	titleTable := doc.Find("table:not([class])").First()
	spell := &Spell{}
	if src, ok := titleTable.Find("img").First().Attr("src"); ok {
		identifier := fileIdentifier(src)
		identifier, _, _ = strings.Cut(identifier, ".")
		spell.Identifier = identifier
	}
	spell.Description = spellDescription(titleTable)

	attrs := tableAttributes(infoTable)
	spell.Name = attrs["name"]
	spell.Words = attrs["formula"]
	spell.Premium = strings.Contains(attrs["premium"], "yes")
	spell.Level = parseutil.ParseInteger(attrs["exp_lvl"], 0)
	spell.Vocations = splitAttribute(attrs["vocation"])
	if !strings.Contains(strings.ToLower(attrs["city"]), "none") {
		spell.Cities = splitAttribute(attrs["city"])
	}
	if m := spellGroupPattern.FindStringSubmatch(attrs["group"]); m != nil {
		spell.Group = ParseSpellGroup(m[1])
		spell.SecondaryGroup = m[2]
	}
	if m := spellCooldownPattern.FindStringSubmatch(attrs["cooldown"]); m != nil {
		spell.Cooldown = parseutil.ParseInteger(m[1], 0)
		spell.CooldownGroup = parseutil.ParseInteger(m[2], 0)
		spell.CooldownSecondary = parseutil.ParseInteger(m[3], 0)
	}
	spell.Type = ParseSpellType(attrs["type"])
	spell.SoulPoints = parseutil.ParseInteger(attrs["soul_points"], 0)
	spell.Mana = parseutil.ParseInteger(attrs["mana"], 0)
	spell.Amount = parseutil.ParseInteger(attrs["amount"], 0)
	spell.Price = parseutil.ParseInteger(attrs["price"], 0)
	spell.MagicType = attrs["magic_type"]

	if runeTable, ok := tables["Rune Information"]; ok {
		attrs := tableAttributes(runeTable)
		spell.Rune = &Rune{
			Name:       attrs["name"],
			Group:      ParseSpellGroup(attrs["group"]),
			MagicType:  attrs["magic_type"],
			Vocations:  splitAttribute(attrs["vocation"]),
			MagicLevel: parseutil.ParseInteger(attrs["mag_lvl"], 0),
			Level:      parseutil.ParseInteger(attrs["exp_lvl"], 0),
			Mana:       parseutil.ParseInteger(attrs["mana"], 0),
		}
	}
	return spell, nil
}

// spellDescription collects the loose text between the spell's title table
// and the next block, where the site puts the description.
func spellDescription(titleTable *goquery.Selection) string {
	if titleTable.Length() == 0 {
		return ""
	}
	var description strings.Builder
	for node := titleTable.Get(0).NextSibling; node != nil; node = node.NextSibling {
		if node.Type == html.ElementNode {
			if node.Data == "br" {
				description.WriteString("\n")
				continue
			}
			if node.Data == "table" || node.Data == "div" {
				break
			}
		}
		description.WriteString(htmlutil.GetText(node))
	}
	return strings.TrimSpace(description.String())
}

// tableAttributes flattens a two column key/value table into a map, with
// keys lowercased and underscored ("Exp Lvl:" becomes "exp_lvl").
func tableAttributes(table *goquery.Selection) map[string]string {
	attrs := map[string]string{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 2 {
			return
		}
		key := parseutil.CleanText(cols[0].Text())
		key = strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(key, ":", ""), " ", "_"))
		attrs[key] = parseutil.CleanText(cols[1].Text())
	})
	return attrs
}

func splitAttribute(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
