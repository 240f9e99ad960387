package tibia

import (
	"regexp"
	"strings"
	"time"

	"tibiaweb/lib/htmlutil"
	"tibiaweb/lib/parseutil"
	"tibiaweb/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// ForumSection is one of the forum's top level sections, listing its
// boards.
type ForumSection struct {
	SectionID int          `json:"section_id"`
	Entries   []BoardEntry `json:"entries"`
}

// BoardEntry is one board row of a forum section.
type BoardEntry struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Posts       int       `json:"posts"`
	Threads     int       `json:"threads"`
	LastPost    *LastPost `json:"last_post,omitempty"`
}

// LastPost is the most recent post reference shown on board and thread
// rows.
type LastPost struct {
	Author   string    `json:"author"`
	PostID   int       `json:"post_id"`
	PostedOn time.Time `json:"posted_on"`
	Deleted  bool      `json:"deleted,omitempty"`
	Traded   bool      `json:"traded,omitempty"`
}

// ForumBoard is one page of a board's thread listing.
type ForumBoard struct {
	ID            int                 `json:"id"`
	Name          string              `json:"name"`
	Section       string              `json:"section"`
	SectionID     int                 `json:"section_id"`
	ThreadAge     int                 `json:"thread_age"`
	Page          parseutil.PageInfo  `json:"page"`
	Announcements []AnnouncementEntry `json:"announcements,omitempty"`
	Entries       []ThreadEntry       `json:"entries"`
}

// AnnouncementEntry is one pinned announcement row of a board.
type AnnouncementEntry struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ThreadEntry is one thread row of a board. Threads spanning several pages
// list page links next to the title.
type ThreadEntry struct {
	ID             int          `json:"id"`
	Title          string       `json:"title"`
	Status         ThreadStatus `json:"status,omitempty"`
	Pages          int          `json:"pages"`
	Starter        string       `json:"starter"`
	StarterTraded  bool         `json:"starter_traded,omitempty"`
	StarterDeleted bool         `json:"starter_deleted,omitempty"`
	Replies        int          `json:"replies"`
	Views          int          `json:"views"`
	LastPost       *LastPost    `json:"last_post,omitempty"`
	GoldenFrame    bool         `json:"golden_frame,omitempty"`
}

// ForumThread is one page of a thread with its posts.
type ForumThread struct {
	ID              int                `json:"id"`
	Title           string             `json:"title"`
	Section         string             `json:"section"`
	SectionID       int                `json:"section_id"`
	Board           string             `json:"board"`
	BoardID         int                `json:"board_id"`
	PreviousTopicID int                `json:"previous_topic_id,omitempty"`
	NextTopicID     int                `json:"next_topic_id,omitempty"`
	GoldenFrame     bool               `json:"golden_frame,omitempty"`
	Page            parseutil.PageInfo `json:"page"`
	Posts           []ForumPost        `json:"posts"`
}

// ForumAuthor is the character box shown next to a post. Deleted
// characters appear as plain text without a link.
type ForumAuthor struct {
	Name     string           `json:"name"`
	World    string           `json:"world,omitempty"`
	Position string           `json:"position,omitempty"`
	Title    string           `json:"title,omitempty"`
	Vocation Vocation         `json:"vocation,omitempty"`
	Level    int              `json:"level,omitempty"`
	Guild    *GuildMembership `json:"guild,omitempty"`
	Posts    int              `json:"posts,omitempty"`
	Deleted  bool             `json:"deleted,omitempty"`
	Traded   bool             `json:"traded,omitempty"`
}

// ForumPost is a single post. Content and signature are kept as raw HTML.
type ForumPost struct {
	ID          int         `json:"id"`
	Author      ForumAuthor `json:"author"`
	Title       string      `json:"title,omitempty"`
	Content     string      `json:"content"`
	Signature   string      `json:"signature,omitempty"`
	PostedOn    time.Time   `json:"posted_on"`
	EditedOn    *time.Time  `json:"edited_on,omitempty"`
	EditedBy    string      `json:"edited_by,omitempty"`
	GoldenFrame bool        `json:"golden_frame,omitempty"`
}

const signatureSeparator = "________________"

// special positions displayed instead of a character title
var forumPositions = []string{
	"Tutor", "Community Manager", "Customer Support", "Programmer",
	"Game Content Designer", "Tester",
}

var (
	threadPagesPattern    = regexp.MustCompile(`\(Pages[^)]+\)`)
	threadNumberPattern   = regexp.MustCompile(`#(\d+)`)
	forumDatePattern      = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}\s\d{2}:\d{2}:\d{2}`)
	editedByPattern       = regexp.MustCompile(`Edited by (.*) on \d{2}`)
	authorInfoPattern     = regexp.MustCompile(`Inhabitant of (\w+)\nVocation: ([\w\s]+)\nLevel: (\d+)`)
	authorPostsPattern    = regexp.MustCompile(`Posts: (\d+)`)
	authorGuildPattern    = regexp.MustCompile(`([\s\w()]+)\sof the\s(.+)`)
	guildRankTitlePattern = regexp.MustCompile(`([^(]+)\s\(([^)]+)\)`)
)

// ParseForumSection parses a forum section's board listing.
func ParseForumSection(content string) (*ForumSection, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	tables := parseutil.SectionTables(doc)
	boards, ok := tables["Boards"]
	if !ok {
		return nil, invalidContentf("no boards table")
	}

	section := &ForumSection{}
	if href, ok := doc.Find("p.ForumWelcome a").First().Attr("href"); ok {
		redirect := htmlutil.QueryValue(href, "redirect")
		section.SectionID = parseutil.ParseInteger(htmlutil.QueryValue(redirect, "sectionid"), 0)
	}
	offset := forumUTCOffset(doc.Find("div.CurrentTime").Text())

	boards.Find("tr").Not(".LabelH").Each(func(_ int, row *goquery.Selection) {
		cols := cells(row)
		if len(cols) < 5 {
			return
		}
		link := cols[1].Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		entry := BoardEntry{
			ID:          parseutil.ParseInteger(htmlutil.QueryValue(href, "boardid"), 0),
			Name:        parseutil.CleanText(link.Text()),
			Description: parseutil.CleanText(cols[1].Find("font").Text()),
			Posts:       parseutil.ParseInteger(cols[2].Text(), 0),
			Threads:     parseutil.ParseInteger(cols[3].Text(), 0),
			LastPost:    parseLastPost(cols[4], offset),
		}
		section.Entries = append(section.Entries, entry)
	})
	return section, nil
}

// ParseForumBoard parses one page of a board. Pages for unknown board ids
// yield (nil, nil).
func ParseForumBoard(content string) (*ForumBoard, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	breadcrumbs := doc.Find("div.ForumBreadCrumbs").First()
	if breadcrumbs.Length() == 0 {
		if strings.Contains(doc.Find("div.InnerTableContainer").Text(), "board you requested") {
			return nil, nil
		}
		return nil, invalidContentf("no board breadcrumbs")
	}

	board := &ForumBoard{}
	parts := strings.Split(parseutil.CleanText(breadcrumbs.Text()), "|")
	if len(parts) >= 2 {
		board.Section = strings.TrimSpace(parts[0])
		board.Name = strings.TrimSpace(parts[1])
	}
	if href, ok := breadcrumbs.Find("a").First().Attr("href"); ok {
		board.SectionID = parseutil.ParseInteger(htmlutil.QueryValue(href, "sectionid"), 0)
	}

	forms := doc.Find("form")
	if forms.Length() > 0 {
		data := parseutil.ParseForm(forms.Eq(0))
		board.ThreadAge = parseutil.ParseInteger(data.Values["threadage"], 0)
	}
	if forms.Length() > 2 {
		data := parseutil.ParseForm(forms.Eq(2))
		board.ID = parseutil.ParseInteger(data.Values["boardid"], 0)
	}
	if pagination := doc.Find("small").First(); pagination.Length() > 0 {
		if page, err := parseutil.ParsePagination(pagination); err == nil {
			board.Page = page
		}
	}

	tables := doc.Find("table.TableContent")
	if tables.Length() > 1 {
		tables.First().Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			links := row.Find("a")
			if links.Length() < 2 {
				return
			}
			titleLink := links.Eq(1)
			board.Announcements = append(board.Announcements, AnnouncementEntry{
				ID:     parseutil.ParseInteger(htmlutil.QueryValue(titleLink.AttrOr("href", ""), "announcementid"), 0),
				Title:  parseutil.CleanText(titleLink.Text()),
				Author: parseutil.CleanText(links.Eq(0).Text()),
			})
		})
	}

	threads := tables.Last()
	offset := forumUTCOffset(threads.Find("div.CurrentTime").Text())
	rows := threads.Find("tr")
	rows.Each(func(i int, row *goquery.Selection) {
		// the first row is the header, the last holds the timezone label
		if i == 0 || i == rows.Length()-1 {
			return
		}
		cols := cells(row)
		if len(cols) < 7 {
			return
		}
		entry, ok := parseThreadRow(cols, offset)
		if !ok {
			return
		}
		if class, exists := row.Attr("class"); exists && strings.Contains(class, "ClassifiedProposal") {
			entry.GoldenFrame = true
		}
		board.Entries = append(board.Entries, entry)
	})
	return board, nil
}

func parseThreadRow(cols []*goquery.Selection, offset int) (ThreadEntry, bool) {
	entry := ThreadEntry{Pages: 1}
	if src, ok := cols[0].Find("img").Attr("src"); ok {
		entry.Status = ParseThreadStatus(src)
	}

	links := cols[2].Find("a")
	if links.Length() == 0 {
		return entry, false
	}
	threadLink := links.First()
	entry.ID = parseutil.ParseInteger(htmlutil.QueryValue(threadLink.AttrOr("href", ""), "threadid"), 0)
	title := parseutil.CleanText(cols[2].Text())
	if links.Length() > 1 {
		lastPage := links.Last()
		entry.Pages = parseutil.ParseInteger(htmlutil.QueryValue(lastPage.AttrOr("href", ""), "pagenumber"), 1)
		title = parseutil.CleanText(threadPagesPattern.ReplaceAllString(title, ""))
	}
	entry.Title = title

	starter := parseutil.CleanText(cols[3].Text())
	if strings.Contains(starter, tradedLabel) {
		entry.StarterTraded = true
		starter = parseutil.CleanText(strings.ReplaceAll(starter, tradedLabel, ""))
	} else if cols[3].Find("a").Length() == 0 {
		entry.StarterDeleted = true
	}
	entry.Starter = starter
	entry.Replies = parseutil.ParseInteger(cols[4].Text(), 0)
	entry.Views = parseutil.ParseInteger(cols[5].Text(), 0)
	entry.LastPost = parseLastPost(cols[6], offset)
	return entry, true
}

// ParseForumThread parses one page of a thread. Pages for unknown thread
// ids yield (nil, nil).
func ParseForumThread(content string) (*ForumThread, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return nil, err
	}
	breadcrumbs := doc.Find("div.ForumBreadCrumbs").First()
	if breadcrumbs.Length() == 0 {
		if strings.Contains(doc.Find("div.InnerTableContainer").Text(), "not found") {
			return nil, nil
		}
		return nil, invalidContentf("no thread breadcrumbs")
	}

	thread := &ForumThread{}
	parts := strings.Split(parseutil.CleanText(breadcrumbs.Text()), "|")
	if len(parts) >= 3 {
		thread.Section = strings.TrimSpace(parts[0])
		thread.Board = strings.TrimSpace(parts[1])
		thread.Title = strings.TrimSpace(parts[2])
	}
	crumbLinks := breadcrumbs.Find("a")
	if href, ok := crumbLinks.Eq(0).Attr("href"); ok {
		thread.SectionID = parseutil.ParseInteger(htmlutil.QueryValue(href, "sectionid"), 0)
	}
	if href, ok := crumbLinks.Eq(1).Attr("href"); ok {
		thread.BoardID = parseutil.ParseInteger(htmlutil.QueryValue(href, "boardid"), 0)
	}

	titleContainer := doc.Find("div.ForumTitleText").First()
	if titleContainer.Length() == 0 {
		return thread, nil
	}
	thread.Title = parseutil.CleanText(titleContainer.Text())
	if border := titleContainer.Parent().Prev(); border.Length() > 0 {
		thread.GoldenFrame = strings.Contains(border.AttrOr("style", ""), "gold")
	}

	if pagination := doc.Find("td.PageNavigation").First(); pagination.Length() > 0 {
		if page, err := parseutil.ParsePagination(pagination); err == nil {
			thread.Page = page
		}
	}

	postsTable := doc.Find("table.TableContent").First()
	header := postsTable.Find("div.ForumPostHeaderText").First()
	if m := threadNumberPattern.FindStringSubmatch(header.Text()); m != nil {
		thread.ID = parseutil.ParseInteger(m[1], 0)
	}
	header.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		topicID := parseutil.ParseInteger(htmlutil.QueryValue(href, "threadid"), 0)
		if strings.Contains(link.Text(), "Previous") {
			thread.PreviousTopicID = topicID
		} else {
			thread.NextTopicID = topicID
		}
	})

	offset := forumUTCOffset(postsTable.Find("div.ForumContentFooterLeft").Text())
	postsTable.Find("div.PostBody").Each(func(_ int, container *goquery.Selection) {
		thread.Posts = append(thread.Posts, parseForumPost(container, offset))
	})
	return thread, nil
}

func parseForumPost(container *goquery.Selection, offset int) ForumPost {
	post := ForumPost{
		GoldenFrame: strings.Contains(container.Parent().AttrOr("class", ""), "CipPostWithBorderImage"),
		Author:      parseForumAuthor(container.Find("div.PostCharacterText").First()),
	}

	postText := container.Find("div.PostText").First()
	if title := postText.ChildrenFiltered("b").First(); title.Length() > 0 {
		post.Title = parseutil.CleanText(title.Text())
		title.Remove()
	}
	postText.ChildrenFiltered("img").First().Remove()
	postText.ChildrenFiltered("div").First().Remove()
	postText.Find("br").First().Remove()

	if signature := container.Find("td.ff_pagetext").First(); signature.Length() > 0 {
		if body, err := signature.Html(); err == nil {
			post.Signature = strings.TrimSpace(body)
		}
		signature.Remove()
	}
	if body, err := postText.Html(); err == nil {
		body = strings.TrimSpace(body)
		if post.Signature != "" {
			// the separator line stays behind in the content once the
			// signature block is detached
			if i := strings.LastIndex(body, signatureSeparator); i >= 0 {
				body = strings.TrimSpace(body[:i])
			}
		}
		post.Content = body
	}

	details := container.Find("div.PostDetails").First().Text()
	dates := forumDatePattern.FindAllString(details, -1)
	if len(dates) > 0 {
		if t, err := parseutil.ParseForumDateTime(dates[0], offset); err == nil {
			post.PostedOn = t
		}
	}
	if len(dates) > 1 {
		if t, err := parseutil.ParseForumDateTime(dates[1], offset); err == nil {
			post.EditedOn = &t
		}
		if m := editedByPattern.FindStringSubmatch(details); m != nil {
			post.EditedBy = strings.TrimSpace(m[1])
		}
	}
	post.ID = parseutil.ParseInteger(strings.ReplaceAll(container.Find("div.AdditionalBox").Text(), "Post #", ""), 0)
	return post
}

func parseForumAuthor(container *goquery.Selection) ForumAuthor {
	link := container.Find("a").First()
	if link.Length() == 0 {
		author := ForumAuthor{Name: parseutil.CleanText(container.Text())}
		if strings.Contains(author.Name, tradedLabel) {
			author.Traded = true
			author.Name = parseutil.CleanText(strings.ReplaceAll(author.Name, tradedLabel, ""))
		} else {
			author.Deleted = true
		}
		return author
	}

	author := ForumAuthor{Name: parseutil.CleanText(link.Text())}
	info := container.Find("font.ff_infotext").First()

	// titles and staff positions render the same way, so each line has to
	// be matched against the known positions
	position := container.Find("font.ff_smallinfo").First()
	if position.Length() > 0 && (info.Length() == 0 || !isDescendantOf(position, info)) {
		for _, line := range strings.Split(textWithNewlines(position), "\n") {
			line = parseutil.CleanText(line)
			if line == "" {
				continue
			}
			if isForumPosition(line) {
				author.Position = line
			} else {
				author.Title = line
			}
		}
	}

	infoText := textWithNewlines(info)
	if m := authorInfoPattern.FindStringSubmatch(infoText); m != nil {
		author.World = m[1]
		author.Vocation = ParseVocation(m[2])
		author.Level = parseutil.ParseInteger(m[3], 0)
	}
	if m := authorPostsPattern.FindStringSubmatch(infoText); m != nil {
		author.Posts = parseutil.ParseInteger(m[1], 0)
	}

	if guildInfo := info.Find("font.ff_smallinfo").First(); guildInfo.Length() > 0 {
		if m := authorGuildPattern.FindStringSubmatch(parseutil.CleanText(guildInfo.Text())); m != nil {
			guild := &GuildMembership{Rank: strings.TrimSpace(m[1]), Name: strings.TrimSpace(m[2])}
			if tm := guildRankTitlePattern.FindStringSubmatch(guild.Name); tm != nil {
				guild.Name = strings.TrimSpace(tm[1])
				guild.Title = tm[2]
			}
			author.Guild = guild
		}
	}
	return author
}

func parseLastPost(cell *goquery.Selection, offset int) *LastPost {
	info := cell.Find("div.LastPostInfo, span.LastPostInfo").First()
	if info.Length() == 0 {
		return nil
	}
	post := &LastPost{}
	if href, ok := info.Find("a").First().Attr("href"); ok {
		post.PostID = parseutil.ParseInteger(htmlutil.QueryValue(href, "postid"), 0)
	}
	if m := forumDatePattern.FindString(info.Text()); m != "" {
		if t, err := parseutil.ParseForumDateTime(m, offset); err == nil {
			post.PostedOn = t
		}
	}

	authorTag := cell.Find("font").First()
	post.Deleted = authorTag.Find("a").Length() == 0
	author := parseutil.CleanText(authorTag.Text())
	author = strings.TrimSpace(strings.Replace(author, "by", "", 1))
	if strings.Contains(author, tradedLabel) {
		author = parseutil.CleanText(strings.ReplaceAll(author, tradedLabel, ""))
		post.Traded = true
		post.Deleted = false
	}
	post.Author = author
	return post
}

// forumUTCOffset reads the forum's timezone label. Pages that omit the
// label fall back to the site's current offset.
func forumUTCOffset(label string) int {
	if strings.Contains(label, "CEST") {
		return 2
	}
	if strings.Contains(label, "CET") {
		return 1
	}
	return timezone.UTCOffsetAt(time.Now())
}

func isForumPosition(line string) bool {
	for _, position := range forumPositions {
		if line == position {
			return true
		}
	}
	return false
}

// isDescendantOf reports whether sel's first node sits inside container.
func isDescendantOf(sel, container *goquery.Selection) bool {
	if sel.Length() == 0 || container.Length() == 0 {
		return false
	}
	root := container.Get(0)
	for node := sel.Get(0).Parent; node != nil; node = node.Parent {
		if node == root {
			return true
		}
	}
	return false
}
