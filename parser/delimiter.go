package parser

import (
	"github.com/vippsas/icumark/lexer"
	"github.com/vippsas/icumark/syntax"
)

// delimEntry is one run on the delimiter stack: a maximal sequence of the
// same punctuation character with its computed flanking classification.
// Grounded on spec.md §4.6/§9's explicit recommendation for an
// arena-with-generational-index instead of a doubly linked list — a Go
// slice plays that role here: a matched opener is tombstoned
// (active=false) or shrunk in place (length) rather than removed; the only
// removal is resolveCloser truncating the entries above a matched opener,
// which leaves every index at or below it valid.
type delimEntry struct {
	ch         byte // '*', '_', or '~'
	checkpoint syntax.Checkpoint
	length     int // remaining (unconsumed) run length
	canOpen    bool
	canClose   bool
	icuDepth   int
	active     bool
}

// pushDelimiterRun is called immediately after the lexer produces a
// STAR/UNDERSCORE/TILDE token. It computes flanking, and if the run is a
// potential closer, attempts to resolve it against the nearest compatible
// opener already on the stack (spec.md §4.6 rule 1). If the run can open
// but isn't (fully) consumed as a closer, it is pushed for later resolution.
// A run that can neither open nor close is left as plain literal text (its
// token was already emitted; nothing further to do).
func (p *Parser) pushDelimiterRun(ch byte, cp syntax.Checkpoint, length int, flank lexer.Flank) {
	if !flank.CanOpen && !flank.CanClose {
		return
	}
	entry := delimEntry{
		ch:         ch,
		checkpoint: cp,
		length:     length,
		canOpen:    flank.CanOpen,
		canClose:   flank.CanClose,
		icuDepth:   p.icuDepth,
		active:     true,
	}

	if flank.CanClose {
		p.resolveCloser(entry)
		return
	}
	p.delims = append(p.delims, entry)
}

// resolveCloser attempts to pair closer against openers already on the
// stack, left-to-right in stack order scanned from the end (nearest first),
// repeating while the closer still has unconsumed length and a compatible
// opener remains (spec.md §4.6 rules 1-4). Any unconsumed remainder (because
// no further compatible opener exists) is pushed onto the stack, available
// to pair as an opener of its own if it could also open.
func (p *Parser) resolveCloser(closer delimEntry) {
	for closer.length > 0 {
		idx := p.findCompatibleOpener(closer)
		if idx < 0 {
			break
		}
		opener := p.delims[idx]

		var consumed int
		if closer.ch == '~' {
			if opener.length != closer.length {
				// Strikethrough requires exact length match (spec.md §4.6
				// rule 4); this opener doesn't qualify even though it
				// passed the coarse compatibility check, so stop trying.
				break
			}
			consumed = opener.length
		} else {
			consumed = opener.length
			if closer.length < consumed {
				consumed = closer.length
			}
		}

		openerCp := p.consumeFromRight(idx, consumed)
		closerCp := p.consumeFromLeft(&closer, consumed)

		// Every delimiter pushed after the opener and before this closer sits
		// strictly inside the span just completed (spec.md §4.6 rule 1's
		// CommonMark source: "remove any delimiters between opener and
		// closer from the stack"). They can never pair with anything outside
		// this span, so they're dropped here rather than left active for a
		// later closer to find across the span boundary.
		p.delims = p.delims[:idx+1]

		kind := syntax.EMPHASIS
		switch {
		case closer.ch == '~':
			kind = syntax.STRIKETHROUGH
		case consumed >= 2:
			kind = syntax.STRONG
		}
		NewMarkerSpan(openerCp, closerCp).Complete(p.builder, kind)
	}

	if closer.length > 0 && closer.canOpen {
		p.delims = append(p.delims, closer)
	}
}

// findCompatibleOpener scans the stack from the end (nearest occurrence
// first) for an active opener matching ch, at the same ICU nesting depth
// (spec.md §4.6 rule 6: no pairing across an ICU subtree boundary), and
// passing the "rule of 3" check (rule 2).
func (p *Parser) findCompatibleOpener(closer delimEntry) int {
	for i := len(p.delims) - 1; i >= 0; i-- {
		o := p.delims[i]
		if !o.active || !o.canOpen || o.ch != closer.ch || o.icuDepth != closer.icuDepth {
			continue
		}
		if !ruleOfThreeCompatible(o, closer) {
			continue
		}
		return i
	}
	return -1
}

// ruleOfThreeCompatible implements spec.md §4.6 rule 2: openers and closers
// from a run that can both open and close may not pair if the sum of their
// lengths is a multiple of 3, unless both individual lengths are also
// multiples of 3.
func ruleOfThreeCompatible(opener, closer delimEntry) bool {
	if !(opener.canOpen && opener.canClose) && !(closer.canOpen && closer.canClose) {
		return true
	}
	sum := opener.length + closer.length
	if sum%3 != 0 {
		return true
	}
	return opener.length%3 == 0 && closer.length%3 == 0
}

// consumeFromRight takes `consumed` delimiters from the right (inner) end of
// the opener at p.delims[idx] — the end nearest the content it opens — and
// returns the checkpoint of the consumed piece. The opener's remaining
// (left/outer) portion, if any, stays active on the stack.
func (p *Parser) consumeFromRight(idx int, consumed int) syntax.Checkpoint {
	e := p.delims[idx]
	if consumed == e.length {
		p.delims[idx].active = false
		return e.checkpoint
	}
	keepLeft := e.length - consumed
	left, right, _, _ := p.builder.SplitRunToken(e.checkpoint, keepLeft)
	p.delims[idx].checkpoint = left
	p.delims[idx].length = keepLeft
	return right
}

// consumeFromLeft takes `consumed` delimiters from the left (outer) end of
// closer — the end nearest the text that precedes it — and returns the
// checkpoint of the consumed piece, mutating closer in place to reflect the
// remaining (right) portion.
func (p *Parser) consumeFromLeft(closer *delimEntry, consumed int) syntax.Checkpoint {
	if consumed == closer.length {
		cp := closer.checkpoint
		closer.length = 0
		return cp
	}
	left, right, _, _ := p.builder.SplitRunToken(closer.checkpoint, consumed)
	closer.checkpoint = right
	closer.length -= consumed
	return left
}
