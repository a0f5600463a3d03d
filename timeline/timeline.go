// Package timeline flattens loaded messages into one deduplicated,
// chronologically ordered sequence of records.
package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/mailtrail/mailtrail/chain"
	"github.com/mailtrail/mailtrail/mailfile"
	"github.com/mailtrail/mailtrail/pkg/email"
)

// bodyKeyLen bounds how much body text feeds the dedup key.
const bodyKeyLen = 120

// Build runs chain extraction over every message and merges the results.
// A message whose body parses as a forwarded chain contributes the
// chain's records in place of itself; everything else contributes its
// top-level record.
func Build(messages []mailfile.Message) []*email.ExtractedEmail {
	var records []*email.ExtractedEmail
	for _, msg := range messages {
		raw := email.RawMessage{Body: msg.Body, SourceLabel: msg.Top.SourceLabel}
		if extracted := chain.ParseForwardedChain(raw); len(extracted) > 0 {
			records = append(records, extracted...)
			continue
		}
		records = append(records, msg.Top)
	}
	return Merge(records)
}

// Merge deduplicates records and sorts them chronologically. Records
// without a date sort last; ties break on source label, then subject.
// The sort is stable, so equal records keep their input order and the
// whole pass is deterministic for identical input.
func Merge(records []*email.ExtractedEmail) []*email.ExtractedEmail {
	seen := make(map[string]bool, len(records))
	out := make([]*email.ExtractedEmail, 0, len(records))
	for _, r := range records {
		key := dedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Date == nil && b.Date != nil:
			return false
		case a.Date != nil && b.Date == nil:
			return true
		case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
			return a.Date.Before(*b.Date)
		}
		if a.SourceLabel != b.SourceLabel {
			return a.SourceLabel < b.SourceLabel
		}
		return a.Subject < b.Subject
	})
	return out
}

func dedupKey(r *email.ExtractedEmail) string {
	date := ""
	if r.Date != nil {
		date = r.Date.UTC().Format(time.RFC3339)
	}
	body := r.Body
	if len(body) > bodyKeyLen {
		body = body[:bodyKeyLen]
	}
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.From)),
		date,
		strings.ToLower(strings.TrimSpace(r.Subject)),
		body,
	}, "|")
}
