package chain

import (
	"strings"

	"github.com/mailtrail/mailtrail/pkg/email"
)

// ParseForwardedChain splits the message body at the detected boundaries
// and extracts a record from every section, stamping each with the
// message's source label. The result is non-nil only when at least two
// sections validate: a lone header block is a quoted signature or a
// stray match, not a chain, and the caller keeps its own top-level
// record for the message instead.
//
// The call is pure and deterministic; running it twice on the same input
// yields the same records.
func ParseForwardedChain(msg email.RawMessage) []*email.ExtractedEmail {
	if msg.Body == "" {
		return nil
	}

	boundaries := DetectBoundaries(msg.Body)
	if len(boundaries) == 0 {
		return nil
	}

	var records []*email.ExtractedEmail
	for i, start := range boundaries {
		end := len(msg.Body)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}
		// A separator at the very end of the body can place its offset
		// one past the end; clamp rather than reject.
		if end > len(msg.Body) {
			end = len(msg.Body)
		}
		if start >= end {
			continue
		}

		section := strings.TrimSpace(msg.Body[start:end])
		if section == "" {
			continue
		}

		record := ExtractSection(section)
		if record == nil {
			continue
		}
		record.SourceLabel = msg.SourceLabel
		records = append(records, record)
	}

	if len(records) < 2 {
		return nil
	}
	return records
}
