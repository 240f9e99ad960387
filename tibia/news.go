package tibia

import (
	"strings"
	"time"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"

	"github.com/PuerkitoBio/goquery"
)

// NewsArchive is the result of a news archive search.
type NewsArchive struct {
	FromDate   time.Time      `json:"from_date"`
	ToDate     time.Time      `json:"to_date"`
	Types      []NewsType     `json:"types,omitempty"`
	Categories []NewsCategory `json:"categories,omitempty"`
	Entries    []NewsEntry    `json:"entries"`
}

// NewsEntry is one result row of the news archive.
type NewsEntry struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Category    NewsCategory `json:"category"`
	Type        NewsType     `json:"type"`
	PublishedOn time.Time    `json:"published_on"`
}

// News is a single news article. The article body is kept as raw HTML
// since the site mixes markup freely into it.
type News struct {
	ID          int          `json:"id"`
	Category    NewsCategory `json:"category"`
	Title       string       `json:"title"`
	PublishedOn time.Time    `json:"published_on"`
	Content     string       `json:"content"`
	ThreadID    int          `json:"thread_id,omitempty"`
}

var newsTypeFilters = map[string]NewsType{
	"filter_news":    NewsTypeNews,
	"filter_ticker":  NewsTypeNewsTicker,
	"filter_article": NewsTypeFeaturedArticle,
}

// ParseNewsArchive parses the news archive search page.
func ParseNewsArchive(content string) (*NewsArchive, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	tables := parseutil.SectionTables(doc)
	if _, ok := tables["News Archive Search"]; !ok {
		return nil, invalidContentf("no news archive search table")
	}

	archive := &NewsArchive{}
	form := doc.Find("form").First()
	if form.Length() > 0 {
		data := parseutil.ParseForm(form)
		archive.FromDate = filterDate(data, "filter_begin")
		archive.ToDate = filterDate(data, "filter_end")
		for _, name := range []string{"filter_news", "filter_ticker", "filter_article"} {
			if _, ok := data.Values[name]; ok {
				archive.Types = append(archive.Types, newsTypeFilters[name])
			}
		}
		for _, category := range newsCategories {
			if _, ok := data.Values["filter_"+string(category)]; ok {
				archive.Categories = append(archive.Categories, category)
			}
		}
	}

	results, ok := tables["Search Results"]
	if !ok {
		return archive, nil
	}
	results.Find("tr.Odd, tr.Even").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) != 3 {
			return
		}
		entry := NewsEntry{
			Category: ParseNewsCategory(cols[0].Find("img").AttrOr("src", "")),
			Title:    parseutil.CleanText(cols[2].Text()),
		}
		lines := strings.Split(textWithNewlines(cols[1]), "\n")
		if len(lines) >= 2 {
			if t, err := parseutil.ParseDate(lines[0]); err == nil {
				entry.PublishedOn = t
			}
			entry.Type = ParseNewsType(lines[1])
		}
		if href, ok := cols[2].Find("a").Attr("href"); ok {
			entry.ID = parseutil.ParseInteger(htmlutil.QueryValue(href, "id"), 0)
		}
		archive.Entries = append(archive.Entries, entry)
	})
	return archive, nil
}

func filterDate(data parseutil.FormData, prefix string) time.Time {
	year := parseutil.ParseInteger(data.Values[prefix+"_year"], 0)
	month := parseutil.ParseInteger(data.Values[prefix+"_month"], 0)
	day := parseutil.ParseInteger(data.Values[prefix+"_day"], 0)
	if year == 0 || month == 0 || day == 0 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseNews parses a news article page. The page itself does not repeat the
// article id, so callers that know it set it on the result. Pages for
// removed articles yield (nil, nil).
func ParseNews(content string) (*News, error) {
	if strings.Contains(content, "News not found") {
		return nil, nil
	}
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	headline := doc.Find("div.NewsHeadline").First()
	if headline.Length() == 0 {
		return nil, invalidContentf("no news headline")
	}

	news := &News{
		Category: ParseNewsCategory(headline.Find("img").AttrOr("src", "")),
		Title:    parseutil.CleanText(headline.Find("div.NewsHeadlineText").Text()),
	}
	date := strings.ReplaceAll(headline.Find("div.NewsHeadlineDate").Text(), "-", "")
	if t, err := parseutil.ParseDate(date); err == nil {
		news.PublishedOn = t
	}

	contentTable := doc.Find("table").First()
	if body, err := contentTable.Find("td").First().Html(); err == nil {
		news.Content = strings.TrimSpace(body)
	}
	if href, ok := contentTable.Find("div.NewsForumLink a").Attr("href"); ok {
		news.ThreadID = parseutil.ParseInteger(htmlutil.QueryValue(href, "threadid"), 0)
	}
	return news, nil
}
