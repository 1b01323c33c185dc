// Package timeparsing recognizes the date headers a project log uses to
// establish "date context" for the lines that follow, and falls back to
// natural-language date parsing for headers that don't fit the three
// explicit forms spec.md names.
package timeparsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	isoHeader   = regexp.MustCompile(`^##\s+(\d{4})-(\d{2})-(\d{2})\b`)
	slashHeader = regexp.MustCompile(`^##\s+(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthHeader = regexp.MustCompile(`(?i)^##\s+([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})\b`)

	months = map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "sept": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}
)

var naturalParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// MatchDateHeader reports whether line is a "## <date>" header and, if so,
// returns the date it names normalized to YYYY-MM-DD. now anchors
// relative/natural-language headers (e.g. "## next Tuesday"). Malformed
// dates (month 13, day 40) are reported as non-matching rather than
// propagated as an error, per the parser's total-parse contract.
func MatchDateHeader(line string, now time.Time) (string, bool) {
	line = strings.TrimRight(line, " \t")

	if m := isoHeader.FindStringSubmatch(line); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return validate(y, time.Month(mo), d)
	}

	if m := slashHeader.FindStringSubmatch(line); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return validate(y, time.Month(mo), d)
	}

	if m := monthHeader.FindStringSubmatch(line); m != nil {
		mo, ok := months[strings.ToLower(m[1])]
		if !ok {
			return "", false
		}
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return validate(y, mo, d)
	}

	return matchNatural(line, now)
}

func validate(y int, mo time.Month, d int) (string, bool) {
	if y < 1000 || y > 9999 || mo < 1 || mo > 12 || d < 1 || d > 31 {
		return "", false
	}
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != int(mo) || t.Day() != d {
		return "", false // e.g. Feb 30 normalized away
	}
	return t.Format("2006-01-02"), true
}

// matchNatural handles "## <free-form date phrase>" headers that aren't one
// of the three explicit forms, via olebedev/when's English rule set.
func matchNatural(line string, now time.Time) (string, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	body := strings.TrimSpace(strings.TrimPrefix(line, "##"))
	if body == "" || strings.Contains(body, "|") {
		return "", false
	}
	// Reject anything that still looks like prose rather than a bare date
	// phrase: headers with many words are ordinary section titles.
	if len(strings.Fields(body)) > 4 {
		return "", false
	}

	res, err := naturalParser.Parse(body, now)
	if err != nil || res == nil {
		return "", false
	}
	return res.Time.Format("2006-01-02"), true
}

// DaysAgo returns the whole number of days between date (YYYY-MM-DD) and
// now, floored at 0.
func DaysAgo(date string, now time.Time) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	days := int(now.Truncate(24*time.Hour).Sub(t.Truncate(24*time.Hour)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
