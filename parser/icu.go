package parser

import (
	"strings"

	"github.com/smasher164/xid"

	"github.com/vippsas/icumark/syntax"
)

// parseICU implements spec.md §4.5's ICU placeholder grammar:
//
//	icu        := '{' name (',' type (',' style | arms)? )? '}'
//	type       := 'plural' | 'selectordinal' | 'select' | 'date' | 'time' | 'number'
//	arms       := (key '{' message '}')+
//	key        := identifier | '=' digits
//
// Any structural failure (unterminated brace, unknown type keyword, malformed
// arm) degrades the whole construct to literal text per spec.md §7: the
// function simply returns without wrapping, leaving whatever tokens it
// already emitted as flat (unwrapped) children of the enclosing node. A
// missing `other` arm is not a structural failure here: the construct is
// still wrapped as an ICU node, and validate's MissingOtherArmRule reports it.
func (p *Parser) parseICU() {
	start := p.builder.Checkpoint()
	p.icuDepth++
	defer func() { p.icuDepth-- }()

	p.emit() // '{'
	p.skipICUWhitespace()

	name, ok := p.scanIdentifier()
	if !ok {
		return
	}
	_ = name
	p.skipICUWhitespace()

	if p.cur().Kind() == syntax.RCURLY {
		close := p.emit()
		NewMarkerSpan(start, close).Complete(p.builder, syntax.ICU_VARIABLE)
		return
	}
	if p.cur().Kind() != syntax.COMMA {
		return
	}
	p.emit() // ','
	p.skipICUWhitespace()

	typeName, ok := p.scanIdentifier()
	if !ok {
		return
	}
	p.skipICUWhitespace()

	switch typeName {
	case "plural":
		p.parsePluralOrSelect(start, syntax.ICU_PLURAL, true)
	case "selectordinal":
		p.parsePluralOrSelect(start, syntax.ICU_SELECT_ORDINAL, true)
	case "select":
		p.parsePluralOrSelect(start, syntax.ICU_SELECT, false)
	case "date":
		p.parseTypedStyle(start, syntax.ICU_DATE)
	case "time":
		p.parseTypedStyle(start, syntax.ICU_TIME)
	case "number":
		p.parseTypedStyle(start, syntax.ICU_NUMBER)
	default:
		// Unknown type keyword: degrade the whole placeholder to literal text.
	}
}

// parseTypedStyle handles the `date`/`time`/`number` argument types: an
// optional style/skeleton clause (consumed flat, never interpreted further)
// followed by the closing brace.
func (p *Parser) parseTypedStyle(start syntax.Checkpoint, kind syntax.Kind) {
	if p.cur().Kind() == syntax.COMMA {
		p.emit()
		p.skipICUWhitespace()
		for p.cur().Kind() != syntax.RCURLY && p.cur().Kind() != syntax.EOF {
			p.emit()
		}
	}
	if p.cur().Kind() != syntax.RCURLY {
		return
	}
	close := p.emit()
	NewMarkerSpan(start, close).Complete(p.builder, kind)
}

// parsePluralOrSelect handles the `plural`/`selectordinal`/`select` argument
// types: an optional `offset:N` clause (plural/selectordinal only), then one
// or more `key { message }` arms. Whether an `other` arm is present is not
// checked here.
func (p *Parser) parsePluralOrSelect(start syntax.Checkpoint, kind syntax.Kind, allowOffset bool) {
	if p.cur().Kind() != syntax.COMMA {
		return
	}
	p.emit() // ','
	p.skipICUWhitespace()

	if allowOffset && p.cur().Kind() == syntax.TEXT && strings.HasPrefix(p.cur().Text(), "offset:") {
		p.emit()
		p.skipICUWhitespace()
	}

	for {
		if p.cur().Kind() == syntax.RCURLY {
			break
		}
		if p.cur().Kind() == syntax.EOF {
			return
		}

		armKey, ok := p.scanPluralKey()
		if !ok {
			return
		}
		p.skipICUWhitespace()
		if p.cur().Kind() != syntax.LCURLY {
			return
		}

		armOpen := p.emit() // arm '{'
		outerDepth := p.pluralDepth
		if kind == syntax.ICU_PLURAL || kind == syntax.ICU_SELECT_ORDINAL {
			p.pluralDepth++
		}
		for p.cur().Kind() != syntax.RCURLY && p.cur().Kind() != syntax.EOF {
			p.parseInlineOne()
		}
		p.pluralDepth = outerDepth

		if p.cur().Kind() != syntax.RCURLY {
			return
		}
		armClose := p.emit() // arm '}'
		NewMarkerSpan(armOpen, armClose).Complete(p.builder, syntax.ICU_PLURAL_ARM)
		_ = armKey
		p.skipICUWhitespace()
	}

	// A missing "other" arm is still parsed as ICU (spec.md §7): it is left
	// for the validate package's missing-other-arm rule to flag, not
	// degraded to literal text here.
	close := p.emit() // outer '}'
	NewMarkerSpan(start, close).Complete(p.builder, kind)
}

// scanPluralKey reads one arm key: either a bare identifier ("one", "other",
// "few", ...) or an exact-value match of the form "=N".
func (p *Parser) scanPluralKey() (string, bool) {
	if p.cur().Kind() == syntax.EQUALS {
		p.emit()
		if p.cur().Kind() != syntax.TEXT {
			return "", false
		}
		key := "=" + p.cur().Text()
		p.emit()
		return key, true
	}
	return p.scanIdentifier()
}

// scanIdentifier consumes a maximal run of adjacent TEXT/UNDERSCORE tokens
// as a single identifier, validating each rune against the Unicode
// identifier character classes (spec.md §4.5's name grammar delegates to
// XID_Start/XID_Continue, plus '_' which Unicode's strict XID_Continue
// excludes but every C-like identifier grammar admits).
func (p *Parser) scanIdentifier() (string, bool) {
	if p.cur().Kind() != syntax.TEXT && p.cur().Kind() != syntax.UNDERSCORE {
		return "", false
	}
	var sb strings.Builder
	first := true
	for p.cur().Kind() == syntax.TEXT || p.cur().Kind() == syntax.UNDERSCORE {
		text := p.cur().Text()
		for i, r := range text {
			if first && i == 0 {
				if !xid.Start(r) && r != '_' {
					return "", false
				}
				continue
			}
			if !xid.Continue(r) && r != '_' {
				return "", false
			}
		}
		first = false
		sb.WriteString(text)
		p.emit()
	}
	return sb.String(), true
}

// skipICUWhitespace emits (rather than discards) WHITESPACE/NEWLINE tokens
// that separate ICU grammar elements, so the lossless round-trip invariant
// holds even though the whitespace carries no grammatical meaning here.
func (p *Parser) skipICUWhitespace() {
	for p.cur().Kind() == syntax.WHITESPACE || p.cur().Kind() == syntax.NEWLINE {
		p.emit()
	}
}
