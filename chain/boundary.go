package chain

import (
	"regexp"
	"strings"
)

// The three families of boundary markers. Each family is tested
// independently per line; a single line can record more than one offset
// and duplicates are not removed here. Empty sections produced by
// duplicate or adjacent offsets are skipped downstream.
type boundaryKind int

const (
	headerStart boundaryKind = iota
	quoteIntroducer
	separatorLine
)

var (
	headerStartLine = regexp.MustCompile(`^From:\s*\S`)
	quoteIntroLine  = regexp.MustCompile(`(?i)^On\s.+wrote:$`)
	separatorRun    = regexp.MustCompile(`^[_-]{20,}$`)
)

type boundaryPattern struct {
	kind boundaryKind
	re   *regexp.Regexp
}

var boundaryPatterns = []boundaryPattern{
	{headerStart, headerStartLine},
	{quoteIntroducer, quoteIntroLine},
	{separatorLine, separatorRun},
}

// headerLookahead matches the companion headers expected near a genuine
// pasted "From:" block. A bare "From:" inside running text has none.
var headerLookahead = regexp.MustCompile(`(?i)^(To|Date|Sent|Cc|Subject):`)

// lookaheadWindow is how many lines below a "From:" candidate are
// searched for a companion header.
const lookaheadWindow = 5

// DetectBoundaries scans body line by line and returns the character
// offsets at which an embedded message starts, in scan order. An empty
// result means the body is not a forwarded chain.
func DetectBoundaries(body string) []int {
	var boundaries []int
	lines := strings.Split(body, "\n")
	offset := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, pattern := range boundaryPatterns {
			if !pattern.re.MatchString(trimmed) {
				continue
			}
			switch pattern.kind {
			case headerStart:
				// The first candidate is taken on faith; later ones
				// need a companion header nearby so that body text
				// mentioning "From:" does not split the message.
				if len(boundaries) == 0 || hasCompanionHeader(lines, i) {
					boundaries = append(boundaries, offset)
				}
			case quoteIntroducer:
				// The introducer line opens the new section and is
				// skipped again during extraction.
				boundaries = append(boundaries, offset)
			case separatorLine:
				// The separator belongs to the section above it; the
				// next message starts right after.
				boundaries = append(boundaries, offset+len(line)+1)
			}
		}
		offset += len(line) + 1
	}

	return boundaries
}

func hasCompanionHeader(lines []string, i int) bool {
	for j := i + 1; j <= i+lookaheadWindow && j < len(lines); j++ {
		if headerLookahead.MatchString(lines[j]) {
			return true
		}
	}
	return false
}
