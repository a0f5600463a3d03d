// Package mailfile loads user-supplied message files (.eml and .mbox)
// into the records the chain engine and timeline assembler consume.
package mailfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-mbox"
	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"

	"github.com/mailtrail/mailtrail/htmltext"
	"github.com/mailtrail/mailtrail/pkg/email"
)

// ErrEmptyMailbox is returned for an mbox file with no messages.
var ErrEmptyMailbox = errors.New("mbox file contains no messages")

// Message pairs the top-level record extracted from a file's own headers
// with the plain-text body handed to the chain engine. Top doubles as the
// fallback record when the body turns out not to be a chain.
type Message struct {
	Top  *email.ExtractedEmail
	Body string
}

// Load reads a message file and returns its messages. Files with an
// .mbox extension are iterated message by message; everything else is
// parsed as a single RFC 822 message.
func Load(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	label := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".mbox") {
		msgs, err := loadMbox(f, label)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return msgs, nil
	}

	msg, err := readMessage(f, label)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return []Message{msg}, nil
}

func loadMbox(r io.Reader, label string) ([]Message, error) {
	reader := mbox.NewReader(r)
	var out []Message
	for idx := 0; ; idx++ {
		mr, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("message %d: %w", idx, err)
		}
		msg, err := readMessage(mr, fmt.Sprintf("%s#%d", label, idx))
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", idx, err)
		}
		out = append(out, msg)
	}
	if len(out) == 0 {
		return nil, ErrEmptyMailbox
	}
	return out, nil
}

func readMessage(r io.Reader, label string) (Message, error) {
	mr, err := gomail.CreateReader(r)
	if err != nil {
		return Message{}, err
	}

	top := &email.ExtractedEmail{SourceLabel: label}
	top.From = addressText(mr.Header, "From")
	top.To = addressText(mr.Header, "To")
	top.Cc = addressText(mr.Header, "Cc")
	if subject, err := mr.Header.Subject(); err == nil {
		top.Subject = subject
	}
	if date, err := mr.Header.Date(); err == nil && !date.IsZero() {
		top.Date = &date
	}

	plain, htmlBody, err := readParts(mr)
	if err != nil {
		return Message{}, err
	}

	body := plain
	if body == "" && htmlBody != "" {
		if converted, err := htmltext.ToText(htmlBody); err == nil {
			body = converted
		}
	}
	body = strings.TrimSpace(strings.ReplaceAll(body, "\r\n", "\n"))
	top.Body = body

	return Message{Top: top, Body: body}, nil
}

// readParts walks the inline MIME parts and keeps the first text/plain
// and the first text/html body found. Attachments are skipped.
func readParts(mr *gomail.Reader) (string, string, error) {
	var plain, htmlBody string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", err
		}

		h, ok := p.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}
		mediaType, _, _ := h.ContentType()
		switch mediaType {
		case "text/plain":
			if plain != "" {
				continue
			}
			b, err := io.ReadAll(p.Body)
			if err != nil {
				return "", "", err
			}
			plain = string(b)
		case "text/html":
			if htmlBody != "" {
				continue
			}
			b, err := io.ReadAll(p.Body)
			if err != nil {
				return "", "", err
			}
			htmlBody = string(b)
		}
	}
	return plain, htmlBody, nil
}

// addressText renders an address header the way the chain records carry
// addresses: free text, "Name <addr>" entries joined with commas. Lists
// the address parser rejects fall back to the raw decoded header.
func addressText(h gomail.Header, key string) string {
	addrs, err := h.AddressList(key)
	if err != nil || len(addrs) == 0 {
		raw, _ := h.Text(key)
		return strings.TrimSpace(raw)
	}

	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a.Name != "" {
			parts = append(parts, fmt.Sprintf("%s <%s>", a.Name, a.Address))
		} else {
			parts = append(parts, a.Address)
		}
	}
	return strings.Join(parts, ", ")
}
