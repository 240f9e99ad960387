package parseutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SectionTables maps every content table on the page to its caption. Most
// sections lay out their content as captioned "TableContainer" blocks, so
// parsers key into this map to find their tables and to tell whether the
// page belongs to them at all.
func SectionTables(doc *goquery.Document) map[string]*goquery.Selection {
	tables := map[string]*goquery.Selection{}
	doc.Find("div.TableContainer").Each(func(_ int, container *goquery.Selection) {
		caption := CleanText(container.Find("div.Text").First().Text())
		table := container.Find("table.TableContent").First()
		if caption == "" || table.Length() == 0 {
			return
		}
		tables[caption] = table
	})
	return tables
}

// PageInfo describes a paginated listing.
type PageInfo struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	ResultsCount int `json:"results_count"`
}

var (
	pageParamPattern = regexp.MustCompile(`(?:currentpage|pagenumber|page)=(\d+)`)
	resultsPattern   = regexp.MustCompile(`Results: ([\d,]+)`)
)

// ParsePagination reads the page link block shown under paginated listings.
// The block holds two divs, the page links and a "Results: N" label. When
// the listing spans many pages the first and last links are labelled
// "First" and "Last" instead of numbers, so the total has to come from the
// last link's href.
func ParsePagination(sel *goquery.Selection) (PageInfo, error) {
	divs := sel.Find("div")
	if divs.Length() < 2 {
		return PageInfo{}, fmt.Errorf("missing pagination blocks")
	}
	pagesDiv := divs.Eq(0)
	resultsDiv := divs.Eq(1)

	info := PageInfo{CurrentPage: 1, TotalPages: 1}

	edges := pagesDiv.Find("span.FirstOrLastElement")
	pageLinks := pagesDiv.Find("span.PageLink")
	if edges.Length() > 0 {
		lastLink := edges.Last().Find("a")
		if href, ok := lastLink.Attr("href"); ok {
			if m := pageParamPattern.FindStringSubmatch(href); m != nil {
				info.TotalPages, _ = strconv.Atoi(m[1])
			}
		}
	} else if pageLinks.Length() > 0 {
		info.TotalPages = ParseInteger(pageLinks.Last().Text(), 1)
	}

	current := pagesDiv.Find("span.CurrentPageLink").First()
	currentText := CleanText(current.Text())
	if v, err := strconv.Atoi(currentText); err == nil {
		info.CurrentPage = v
	} else if strings.Contains(currentText, "Last") {
		info.CurrentPage = info.TotalPages
	}

	if m := resultsPattern.FindStringSubmatch(resultsDiv.Text()); m != nil {
		info.ResultsCount = ParseInteger(m[1], 0)
	}
	return info, nil
}

// ParsePopup extracts the title and inner document of an onmouseover popup,
// the inline javascript call the site uses for tooltips.
func ParsePopup(content string) (string, *goquery.Document, error) {
	parts := strings.SplitN(content, ",", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("not a popup call: %q", content)
	}
	title := strings.NewReplacer(`\'`, "'", "'", "", "ReturnWindow(", "").Replace(parts[0])
	title = CleanText(title)

	body := strings.NewReplacer(`\'`, `"`, "'", "", `\/`, "/").Replace(parts[1])
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, ";")
	body = strings.TrimSuffix(body, ")")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	return title, doc, nil
}

// Option is a single choice inside a form select, radio or checkbox group.
type Option struct {
	Text     string `json:"text"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// FormData holds the state of a filter form: submitted values plus every
// available choice, used by sections whose listings are driven by filters.
type FormData struct {
	Action  string              `json:"action"`
	Method  string              `json:"method"`
	Values  map[string]string   `json:"values"`
	Options map[string][]Option `json:"options"`
}

// ParseForm reads the values and available options of a form selection.
func ParseForm(sel *goquery.Selection) FormData {
	data := FormData{
		Values:  map[string]string{},
		Options: map[string][]Option{},
	}
	data.Action, _ = sel.Attr("action")
	data.Method = strings.ToLower(sel.AttrOr("method", "get"))

	sel.Find("input[type=text], input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		data.Values[name] = input.AttrOr("value", "")
	})
	sel.Find("input[type=radio], input[type=checkbox]").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		opt := Option{Value: input.AttrOr("value", "")}
		if _, checked := input.Attr("checked"); checked {
			opt.Selected = true
			data.Values[name] = opt.Value
		}
		data.Options[name] = append(data.Options[name], opt)
	})
	sel.Find("select").Each(func(_ int, selectTag *goquery.Selection) {
		name, ok := selectTag.Attr("name")
		if !ok {
			return
		}
		selectTag.Find("option").Each(func(_ int, option *goquery.Selection) {
			opt := Option{
				Text:  CleanText(option.Text()),
				Value: option.AttrOr("value", ""),
			}
			if _, selected := option.Attr("selected"); selected {
				opt.Selected = true
				data.Values[name] = opt.Value
			}
			data.Options[name] = append(data.Options[name], opt)
		})
	})
	return data
}

// SelectedText returns the label of the selected option of a group, or ""
// when nothing is selected.
func (f FormData) SelectedText(name string) string {
	for _, opt := range f.Options[name] {
		if opt.Selected {
			return opt.Text
		}
	}
	return ""
}
