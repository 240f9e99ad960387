// Package tibia parses the public sections of Tibia.com into typed records.
// Every parser takes the raw HTML of one page and returns a record, without
// performing any network access. Pages that report the requested entity as
// missing yield (nil, nil); pages from a different section yield an error
// wrapping ErrInvalidContent. All timestamps are normalized to UTC.
package tibia

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parseDocument(content string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(content))
}

// cells collects the td selections of a table row.
func cells(row *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	row.Find("td").Each(func(_ int, cell *goquery.Selection) {
		out = append(out, cell)
	})
	return out
}
