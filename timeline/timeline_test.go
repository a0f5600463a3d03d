package timeline

import (
	"testing"
	"time"

	"github.com/mailtrail/mailtrail/mailfile"
	"github.com/mailtrail/mailtrail/pkg/email"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func record(from, subject string, date *time.Time) *email.ExtractedEmail {
	return &email.ExtractedEmail{From: from, Subject: subject, Date: date}
}

func TestMergeSortsChronologically(t *testing.T) {
	got := Merge([]*email.ExtractedEmail{
		record("b@x.com", "Second", ts("2025-01-07T11:00:00Z")),
		record("c@x.com", "Third", nil),
		record("a@x.com", "First", ts("2025-01-07T10:00:00Z")),
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].Subject != "First" || got[1].Subject != "Second" {
		t.Errorf("order = %q, %q", got[0].Subject, got[1].Subject)
	}
	if got[2].Date != nil {
		t.Errorf("undated record should sort last, got %q", got[2].Subject)
	}
}

func TestMergeDeduplicates(t *testing.T) {
	when := ts("2025-01-07T10:00:00Z")
	a := record("alice@x.com", "Status", when)
	b := record("Alice@X.com", " Status ", when)
	other := record("alice@x.com", "Status", ts("2025-01-08T10:00:00Z"))

	got := Merge([]*email.ExtractedEmail{a, b, other})
	if len(got) != 2 {
		t.Fatalf("expected 2 records after dedup, got %d", len(got))
	}
	if got[0] != a {
		t.Error("first occurrence should survive dedup")
	}
}

func TestMergeTieBreaksOnSourceThenSubject(t *testing.T) {
	when := ts("2025-01-07T10:00:00Z")
	x := record("a@x.com", "Beta", when)
	x.SourceLabel = "b.eml"
	y := record("b@x.com", "Alpha", when)
	y.SourceLabel = "a.eml"

	got := Merge([]*email.ExtractedEmail{x, y})
	if got[0] != y || got[1] != x {
		t.Errorf("order = %q, %q", got[0].SourceLabel, got[1].SourceLabel)
	}
}

func TestBuildExpandsChains(t *testing.T) {
	chainBody := "From: Alice <alice@example.com>\n" +
		"Sent: Tuesday, January 7, 2025 10:00 AM\n" +
		"To: Bob <bob@example.com>\n" +
		"Subject: Project status\n" +
		"\n" +
		"Hi Bob, see the thread below.\n" +
		"\n" +
		"________________________________________\n" +
		"From: Bob <bob@example.com>\n" +
		"Sent: Monday, January 6, 2025 4:30 PM\n" +
		"To: Alice <alice@example.com>\n" +
		"Subject: RE: Project status\n" +
		"\n" +
		"Looks good to me.\n"

	when := ts("2025-01-08T09:00:00Z")
	standalone := &email.ExtractedEmail{
		From:        "carol@example.com",
		Subject:     "Kickoff",
		Date:        when,
		SourceLabel: "kickoff.eml",
	}

	msgs := []mailfile.Message{
		{
			Top:  &email.ExtractedEmail{From: "alice@example.com", Subject: "Fwd: status", SourceLabel: "fwd.eml"},
			Body: chainBody,
		},
		{Top: standalone, Body: "Short note, no chain here."},
	}

	got := Build(msgs)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	// Chain records replace the carrier message and sort by their own dates.
	if got[0].Subject != "RE: Project status" {
		t.Errorf("first record = %q", got[0].Subject)
	}
	if got[1].Subject != "Project status" {
		t.Errorf("second record = %q", got[1].Subject)
	}
	if got[2] != standalone {
		t.Errorf("last record = %q, want the standalone message", got[2].Subject)
	}
	for _, r := range got[:2] {
		if r.SourceLabel != "fwd.eml" {
			t.Errorf("chain record source = %q", r.SourceLabel)
		}
	}
}

func TestBuildKeepsNonChainTop(t *testing.T) {
	top := &email.ExtractedEmail{From: "a@x.com", Subject: "Hi", SourceLabel: "hi.eml"}
	got := Build([]mailfile.Message{{Top: top, Body: "Just one message."}})
	if len(got) != 1 || got[0] != top {
		t.Fatalf("expected the top-level record, got %v", got)
	}
}
