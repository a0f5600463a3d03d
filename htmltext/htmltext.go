// Package htmltext reduces HTML message bodies to the plain text the
// chain engine works on: block-level elements become line breaks, all
// other markup is dropped and whitespace is collapsed.
package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags end the current output line. <br> is handled separately
// because it forces a break even at the start of a line, which is how
// empty paragraphs survive as blank lines.
var blockTags = map[string]bool{
	"blockquote": true,
	"div":        true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"hr":         true,
	"li":         true,
	"ol":         true,
	"p":          true,
	"pre":        true,
	"table":      true,
	"tr":         true,
	"ul":         true,
}

var skipTags = map[string]bool{
	"head":   true,
	"script": true,
	"style":  true,
	"title":  true,
}

var spaceRun = regexp.MustCompile(`\s+`)

// ToText converts HTML markup to plain text.
func ToText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	var w textWriter
	for _, node := range doc.Selection.Nodes {
		w.walk(node)
	}
	return normalize(w.sb.String()), nil
}

// textWriter accumulates output while tracking the last emitted byte, so
// block boundaries produce exactly one line break no matter how many
// nested block tags close at the same point.
type textWriter struct {
	sb   strings.Builder
	last byte
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
		if n.Data == "br" {
			w.write("\n")
			return
		}
		if blockTags[n.Data] {
			w.lineBreak()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}

	if n.Type == html.ElementNode && blockTags[n.Data] {
		w.lineBreak()
	}
}

func (w *textWriter) text(s string) {
	s = spaceRun.ReplaceAllString(s, " ")
	if strings.TrimSpace(s) == "" {
		// Formatting whitespace between tags separates words, never
		// lines; at a line start it carries nothing at all.
		if w.last != 0 && w.last != '\n' {
			w.write(" ")
		}
		return
	}
	if w.last == 0 || w.last == '\n' {
		s = strings.TrimLeft(s, " ")
	}
	w.write(s)
}

func (w *textWriter) lineBreak() {
	if w.last != 0 && w.last != '\n' {
		w.write("\n")
	}
}

func (w *textWriter) write(s string) {
	if s == "" {
		return
	}
	w.sb.WriteString(s)
	w.last = s[len(s)-1]
}

// normalize replaces non-breaking spaces, trims each line and squeezes
// runs of blank lines down to one.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")

	var out []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
