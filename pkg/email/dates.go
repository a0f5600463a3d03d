package email

import (
	"regexp"
	"strings"
	"time"
)

// dateFormats lists the layouts mail clients paste into forwarded header
// blocks, tried in order. Numeric forms resolve month-first.
var dateFormats = []string{
	time.RFC1123Z,                    // "Mon, 02 Jan 2006 15:04:05 -0700"
	time.RFC1123,                     // "Mon, 02 Jan 2006 15:04:05 MST"
	"Mon, 2 Jan 2006 15:04:05 -0700", // Single digit day
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700", // No day of week
	"2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006 3:04:05 PM",
	"January 2, 2006 3:04 PM", // Outlook "Sent:" line, weekday already stripped
	"January 2, 2006 15:04",
	"January 2, 2006",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006, at 3:04 PM", // Apple Mail quote introducer
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"2 January 2006 15:04",
	"2 January 2006",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"1/2/2006",
}

var weekdayPrefix = regexp.MustCompile(`^[A-Za-z]+,\s*`)

// ParseDate parses a human-readable date string pasted into a message
// body by a mail client. Returns nil when no known layout matches; it
// never fails louder than that. Day-of-week tokens are not validated
// against the date they precede.
func ParseDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	if t := parseFormats(dateStr); t != nil {
		return t
	}

	// Clients such as Outlook spell out the full weekday
	// ("Thursday, January 9, 2025 7:06 PM"); drop it and retry.
	if stripped := weekdayPrefix.ReplaceAllString(dateStr, ""); stripped != dateStr {
		return parseFormats(stripped)
	}

	return nil
}

func parseFormats(dateStr string) *time.Time {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}
	return nil
}
