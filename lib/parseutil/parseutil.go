// Package parseutil holds string, number and markup helpers shared by all
// section parsers. The site renders numbers with thousands separators,
// money amounts in "k" shorthand and non-breaking spaces inside labels, so
// everything funnels through here before conversion.
package parseutil

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CleanText collapses whitespace runs, converts non-breaking spaces and
// trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ParseInteger parses an integer rendered with "," or "." thousands
// separators, returning def when the text is not a number.
func ParseInteger(s string, def int) int {
	s = strings.NewReplacer(",", "", ".", "").Replace(CleanText(s))
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

var moneyPattern = regexp.MustCompile(`^(\d*\.?\d*)(k*)$`)

// ParseMoney parses gold amounts in the site's shorthand, where each
// trailing "k" multiplies by 1000 ("12kk" is 12 million).
func ParseMoney(s string) int {
	m := moneyPattern.FindStringSubmatch(strings.ToLower(CleanText(s)))
	if m == nil || m[1] == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return int(v * math.Pow(1000, float64(len(m[2]))))
}

// SplitList splits an english enumeration like "a, b and c" into its items.
func SplitList(s string) []string {
	if CleanText(s) == "" {
		return nil
	}
	items := strings.Split(s, ",")
	last := items[len(items)-1]
	items = items[:len(items)-1]
	items = append(items, strings.Split(last, " and ")...)
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = CleanText(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
