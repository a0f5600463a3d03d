package chain

import (
	"regexp"
	"strings"

	"github.com/mailtrail/mailtrail/pkg/email"
)

var headerLine = regexp.MustCompile(`(?i)^(From|To|Cc|Date|Sent|Subject):\s*(.*)$`)

// A short captured value means the client wrapped the real value onto the
// following line(s).
const continuationThreshold = 3

// An unlabeled line after the headers longer than this is body text, not
// a subject.
const maxInlineSubjectLen = 200

// ExtractSection parses one boundary-delimited slice of a body into a
// message record. It returns nil when the slice does not recover enough
// structure to count as a message; signatures, disclaimers and similar
// boilerplate land here and are dropped without logging.
func ExtractSection(section string) *email.ExtractedEmail {
	lines := strings.Split(section, "\n")

	i := 0
	if len(lines) > 0 && quoteIntroLine.MatchString(strings.TrimSpace(lines[0])) {
		i = 1
	}

	record := &email.ExtractedEmail{}
	headersFound := false
	bodyStart := -1

	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if m := headerLine.FindStringSubmatch(trimmed); m != nil {
			name := strings.ToLower(m[1])
			value := strings.TrimSpace(m[2])

			if len(value) < continuationThreshold {
				for i+1 < len(lines) {
					next := strings.TrimSpace(lines[i+1])
					if next == "" || headerLine.MatchString(next) {
						break
					}
					value = strings.TrimSpace(value + " " + next)
					i++
				}
			}

			value = CleanHeaderValue(value)

			switch name {
			case "from":
				record.From = value
				headersFound = true
			case "to":
				record.To = value
			case "cc":
				record.Cc = value
			case "date", "sent":
				record.Date = email.ParseDate(value)
			case "subject":
				record.Subject = value
			}
			continue
		}

		if !headersFound {
			continue
		}

		if trimmed == "" {
			bodyStart = i + 1
			break
		}

		// Some clients put the subject on its own unlabeled line right
		// below the headers. Anything long is body text instead.
		if record.Subject == "" && len(trimmed) < maxInlineSubjectLen {
			record.Subject = trimmed
			continue
		}

		bodyStart = i
		break
	}

	if bodyStart >= 0 && bodyStart < len(lines) {
		record.Body = joinBody(lines[bodyStart:])
	}

	if !record.Valid() {
		return nil
	}
	return record
}

// joinBody reassembles the body lines, dropping the separator run a
// boundary left at the tail of the section.
func joinBody(lines []string) string {
	for len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last != "" && !separatorRun.MatchString(last) {
			break
		}
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
