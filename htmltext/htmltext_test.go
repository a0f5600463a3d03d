package htmltext

import "testing"

func TestToText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			"paragraphs and divs",
			"<p>Hello Bob.</p><div>See you Monday.</div>",
			"Hello Bob.\nSee you Monday.",
		},
		{
			"line breaks",
			"Hello,<br>how are you?",
			"Hello,\nhow are you?",
		},
		{
			"nested markup stripped",
			"<div><b>From:</b> Alice &lt;a@x.com&gt;</div>",
			"From: Alice <a@x.com>",
		},
		{
			"entities and nbsp",
			"<p>fish&nbsp;&amp;&nbsp;chips</p>",
			"fish & chips",
		},
		{
			"script and style dropped",
			"<style>p{color:red}</style><p>visible</p><script>alert(1)</script>",
			"visible",
		},
		{
			"table rows become lines",
			"<table><tr><td>From: a@x.com</td></tr><tr><td>To: b@x.com</td></tr></table>",
			"From: a@x.com\nTo: b@x.com",
		},
		{
			"whitespace collapsed",
			"<p>too    many\t spaces</p>",
			"too many spaces",
		},
		{
			"plain text passthrough",
			"no markup at all",
			"no markup at all",
		},
	}

	for _, tt := range tests {
		got, err := ToText(tt.markup)
		if err != nil {
			t.Fatalf("%s: ToText returned error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: ToText = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestToTextOutlookBody(t *testing.T) {
	markup := `<html><body>
<div>Hello Bob.</div>
<div><br></div>
<hr>
<div><b>From:</b> Bob &lt;b@x.com&gt;<br>
<b>Sent:</b> Tuesday, January 7, 2025 10:00 AM<br>
<b>Subject:</b> Re: Hi</div>
<div>Hi Alice.</div>
</body></html>`

	got, err := ToText(markup)
	if err != nil {
		t.Fatalf("ToText returned error: %v", err)
	}

	want := "Hello Bob.\n\nFrom: Bob <b@x.com>\nSent: Tuesday, January 7, 2025 10:00 AM\nSubject: Re: Hi\nHi Alice."
	if got != want {
		t.Errorf("ToText = %q, want %q", got, want)
	}
}
