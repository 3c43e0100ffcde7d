package lexer

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vippsas/icumark/syntax"
)

// tryScanEntity recognizes an HTML entity ("&amp;", "&#39;", "&#x27;")
// starting at the current '&' and, if golang.org/x/net/html can actually
// decode it, consumes it and records the decoded form out-of-band on the
// resulting token (spec.md §4.1). It never errors: an unrecognized "&" is
// simply scanned as a one-byte TEXT token by the caller.
func (s *Scanner) tryScanEntity() (syntax.Kind, bool) {
	rest := s.buf[s.cur:]
	window := rest
	if len(window) > 34 {
		window = window[:34]
	}
	semi := strings.IndexByte(window, ';')
	if semi < 0 {
		return 0, false
	}
	candidate := rest[:semi+1]
	decoded := html.UnescapeString(candidate)
	if decoded == candidate {
		// x/net/html didn't recognize it as an entity at all.
		return 0, false
	}
	s.cur += len(candidate)
	s.pendingDecoded = decoded
	return syntax.HTML_ENTITY, true
}
