// Package email provides the message records shared by the chain
// extraction engine and the timeline assembler.
package email

import "time"

// RawMessage is one decoded message body handed to the chain engine.
// Body is plain text (HTML bodies are reduced beforehand); SourceLabel
// identifies the originating file, not any embedded sub-message.
type RawMessage struct {
	Body        string
	SourceLabel string
}

// ExtractedEmail is a single reconstructed message: either the top-level
// message of a file or one section recovered from a forwarded chain.
// From, To and Cc are free-text address lists, cleaned but not split into
// individual addresses.
type ExtractedEmail struct {
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
	Cc          string     `json:"cc,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body,omitempty"`
	SourceLabel string     `json:"source,omitempty"`
}

// Valid reports whether the record recovered enough structure to count as
// a message: someone it is from or to, and a date or a subject. Sections
// that fail this are boilerplate (disclaimers, signatures) and are
// dropped without comment.
func (e *ExtractedEmail) Valid() bool {
	if e.From == "" && e.To == "" {
		return false
	}
	return e.Date != nil || e.Subject != ""
}
