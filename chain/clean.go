// Package chain reconstructs the individual messages embedded as quoted
// or forwarded text inside a single email body. It works on the
// human-readable header blocks mail clients paste above quoted content,
// not on RFC 822 syntax.
package chain

import (
	"regexp"
	"strings"
)

var (
	mailtoLink    = regexp.MustCompile(`<mailto:[^>]*>`)
	bracketedAddr = regexp.MustCompile(`(\S+)\s*<([^<>\s]+)>`)
)

// CleanHeaderValue strips the artifacts mail clients leave in pasted
// header values: "<mailto:...>" link decorations are deleted, the
// "addr <addr>" duplication collapses to a single addr, and whitespace
// runs collapse to single spaces. Idempotent.
func CleanHeaderValue(value string) string {
	value = mailtoLink.ReplaceAllString(value, "")

	// RE2 has no backreferences, so the identical-token check for
	// "addr <addr>" is done here instead of in the pattern.
	value = bracketedAddr.ReplaceAllStringFunc(value, func(m string) string {
		parts := bracketedAddr.FindStringSubmatch(m)
		if parts[1] == parts[2] {
			return parts[1]
		}
		return m
	})

	return strings.Join(strings.Fields(value), " ")
}
