package tibia

import (
	"regexp"
	"strings"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// CreatureEntry is a creature or boss reference, identified by the key the
// library uses in its URLs and image file names.
type CreatureEntry struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// BoostedCreatures are the day's boosted creature and boss, shown in the
// header artwork of every section.
type BoostedCreatures struct {
	Creature CreatureEntry `json:"creature"`
	Boss     CreatureEntry `json:"boss"`
}

// CreaturesSection is the creature library's landing page.
type CreaturesSection struct {
	BoostedCreature CreatureEntry   `json:"boosted_creature"`
	Creatures       []CreatureEntry `json:"creatures"`
}

// BoostableBosses is the boostable bosses library page.
type BoostableBosses struct {
	BoostedBoss CreatureEntry   `json:"boosted_boss"`
	Bosses      []CreatureEntry `json:"bosses"`
}

// Creature is a creature's library page. The hitpoints and experience
// paragraphs carry the combat traits in prose, parsed into fields here.
type Creature struct {
	Name          string   `json:"name"`
	Identifier    string   `json:"identifier"`
	Description   string   `json:"description"`
	Hitpoints     int      `json:"hitpoints,omitempty"`
	Experience    int      `json:"experience,omitempty"`
	ImmuneTo      []string `json:"immune_to,omitempty"`
	WeakAgainst   []string `json:"weak_against,omitempty"`
	StrongAgainst []string `json:"strong_against,omitempty"`
	Loot          string   `json:"loot,omitempty"`
	ManaCost      int      `json:"mana_cost,omitempty"`
	Summonable    bool     `json:"summonable,omitempty"`
	Convinceable  bool     `json:"convinceable,omitempty"`
}

var (
	boostedAltPattern = regexp.MustCompile(`Today's boosted \w+: `)
	hitpointsPattern  = regexp.MustCompile(`have (\d+) hitpoints`)
	experiencePattern = regexp.MustCompile(`yield (\d+) experience`)
	immunePattern     = regexp.MustCompile(`immune to ([^.]+)`)
	weakPattern       = regexp.MustCompile(`weak against ([^.]+)`)
	strongPattern     = regexp.MustCompile(`strong against ([^.]+)`)
	lootPattern       = regexp.MustCompile(`They carry (.*) with them.`)
	manaCostPattern   = regexp.MustCompile(`takes (\d+) mana`)
)

var elements = []string{"ice", "fire", "earth", "poison", "death", "holy", "physical", "energy"}

// ParseBoostedCreatures reads the boosted creature and boss from the header
// artwork present on every page of the site.
func ParseBoostedCreatures(content string) (*BoostedCreatures, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	artwork := doc.Find("div#RightArtwork")
	creature, ok := boostedFromImage(artwork.Find("#Monster"))
	if !ok {
		return nil, invalidContentf("no boosted creature artwork")
	}
	boss, ok := boostedFromImage(artwork.Find("#Boss"))
	if !ok {
		return nil, invalidContentf("no boosted boss artwork")
	}
	return &BoostedCreatures{Creature: creature, Boss: boss}, nil
}

func boostedFromImage(img *goquery.Selection) (CreatureEntry, bool) {
	src, ok := img.Attr("src")
	if !ok {
		return CreatureEntry{}, false
	}
	return CreatureEntry{
		Name:       parseutil.CleanText(boostedAltPattern.ReplaceAllString(img.AttrOr("title", ""), "")),
		Identifier: fileIdentifier(src),
	}, true
}

// ParseCreaturesSection parses the creature library's landing page.
func ParseCreaturesSection(content string) (*CreaturesSection, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	boostedTable := doc.Find("div.TableContainer").First()
	if !strings.Contains(boostedTable.Find("div.Text").Text(), "Boosted") {
		return nil, invalidContentf("no boosted creature block")
	}

	section := &CreaturesSection{}
	boostedLink := boostedTable.Find("a").First()
	section.BoostedCreature = CreatureEntry{
		Name:       parseutil.CleanText(boostedLink.Text()),
		Identifier: htmlutil.QueryValue(boostedLink.AttrOr("href", ""), "race"),
	}

	libraryEntries(doc).Each(func(_ int, container *goquery.Selection) {
		link := container.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		section.Creatures = append(section.Creatures, CreatureEntry{
			Name:       parseutil.CleanText(container.Text()),
			Identifier: htmlutil.QueryValue(href, "race"),
		})
	})
	return section, nil
}

// ParseBoostableBosses parses the boostable bosses library page.
func ParseBoostableBosses(content string) (*BoostableBosses, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	boostedTable := doc.Find("div.TableContainer").First()
	if !strings.Contains(boostedTable.Find("div.Text").Text(), "Boosted") {
		return nil, invalidContentf("no boosted boss block")
	}

	bosses := &BoostableBosses{
		BoostedBoss: CreatureEntry{
			Name:       parseutil.CleanText(boostedTable.Find("b").First().Text()),
			Identifier: fileIdentifier(boostedTable.Find("img").First().AttrOr("src", "")),
		},
	}
	libraryEntries(doc).Each(func(_ int, container *goquery.Selection) {
		src, ok := container.Find("img").First().Attr("src")
		if !ok {
			return
		}
		bosses.Bosses = append(bosses.Bosses, CreatureEntry{
			Name:       parseutil.CleanText(container.Text()),
			Identifier: fileIdentifier(src),
		})
	})
	return bosses, nil
}

// ParseCreature parses a creature's library page. Pages without the
// creature layout yield (nil, nil), matching the site's behavior for
// unknown race identifiers.
func ParseCreature(content string) (*Creature, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	containers := doc.Find(`div[style*="position: relative"]`)
	if containers.Length() < 2 {
		return nil, invalidContentf("no creature layout")
	}
	blocks := containers.Eq(1).ChildrenFiltered("div")
	if blocks.Length() < 2 {
		return nil, nil
	}
	title := blocks.Eq(0)
	creature := &Creature{
		Name:       parseutil.CleanText(title.Find("h2").Text()),
		Identifier: fileIdentifier(title.Find("img").First().AttrOr("src", "")),
	}

	var paragraphs []string
	blocks.Eq(1).Find("p").Each(func(_ int, p *goquery.Selection) {
		paragraphs = append(paragraphs, parseutil.CleanText(textWithNewlines(p)))
	})
	if len(paragraphs) < 2 {
		return nil, nil
	}
	creature.Description = strings.TrimSpace(strings.Join(paragraphs[:len(paragraphs)-2], "\n"))
	parseCreatureTraits(creature, paragraphs[len(paragraphs)-2])
	parseCreatureYield(creature, paragraphs[len(paragraphs)-1])
	return creature, nil
}

// parseCreatureTraits reads the hitpoints paragraph, which also describes
// immunities, weaknesses and summoning.
func parseCreatureTraits(creature *Creature, text string) {
	if m := hitpointsPattern.FindStringSubmatch(text); m != nil {
		creature.Hitpoints = parseutil.ParseInteger(m[1], 0)
	}
	if m := immunePattern.FindStringSubmatch(text); m != nil {
		creature.ImmuneTo = parseElements(m[1])
	}
	if strings.Contains(text, "cannot be paralysed") {
		creature.ImmuneTo = append(creature.ImmuneTo, "paralyze")
	}
	if strings.Contains(text, "sense invisible") {
		creature.ImmuneTo = append(creature.ImmuneTo, "invisible")
	}
	if m := weakPattern.FindStringSubmatch(text); m != nil {
		creature.WeakAgainst = parseElements(m[1])
	}
	if m := strongPattern.FindStringSubmatch(text); m != nil {
		creature.StrongAgainst = parseElements(m[1])
	}
	if m := manaCostPattern.FindStringSubmatch(text); m != nil {
		creature.ManaCost = parseutil.ParseInteger(m[1], 0)
		switch {
		case strings.Contains(text, "summon or convince"):
			creature.Summonable = true
			creature.Convinceable = true
		case strings.Contains(text, "cannot be summoned"):
			creature.Convinceable = true
		case strings.Contains(text, "cannot be convinced"):
			creature.Summonable = true
		}
	}
}

func parseCreatureYield(creature *Creature, text string) {
	if m := experiencePattern.FindStringSubmatch(text); m != nil {
		creature.Experience = parseutil.ParseInteger(m[1], 0)
	}
	if m := lootPattern.FindStringSubmatch(text); m != nil {
		creature.Loot = m[1]
	}
}

// libraryEntries returns the floated boxes of a library list page.
func libraryEntries(doc *goquery.Document) *goquery.Selection {
	return doc.Find(`div[style*="display: table"] div[style*="float: left"]`)
}

func parseElements(text string) []string {
	var found []string
	for _, element := range elements {
		if strings.Contains(text, element) {
			found = append(found, element)
		}
	}
	return found
}

// fileIdentifier extracts a creature identifier from an image file name.
func fileIdentifier(src string) string {
	if i := strings.LastIndex(src, "/"); i >= 0 {
		src = src[i+1:]
	}
	return strings.TrimSuffix(src, ".gif")
}
