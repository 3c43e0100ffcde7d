// Package variables implements the second CST visitor spec.md §4.8
// describes: a flat inventory of every ICU variable/typed-argument
// reference in a message, recording name, kind, and source span.
//
// Grounded on original_source's intl_database_core/src/message/value.rs
// occurrence-order symbol bookkeeping and on spec.md §4.8 directly, since
// no teacher file in vippsas-sqlcode builds a comparable symbol table.
package variables

import (
	"github.com/vippsas/icumark/intern"
	"github.com/vippsas/icumark/source"
	"github.com/vippsas/icumark/syntax"
)

// Kind classifies how a variable is used at a given occurrence.
type Kind int

const (
	PlainArgument Kind = iota
	DateArgument
	TimeArgument
	NumberArgument
	PluralArgument
	SelectOrdinalArgument
	SelectArgument
	HookArgument
	LinkArgument
	UnsafeArgument
)

// Occurrence is one recorded use of a named variable.
type Occurrence struct {
	Name string
	Kind Kind
	Span source.Span
}

// Inventory is the ordered list of every variable occurrence found in a
// CST. Name collisions with differing kinds are retained in occurrence
// order, per spec.md §4.8 — no error is raised here; that is the
// validate package's job.
type Inventory struct {
	Occurrences []Occurrence
}

// Names returns the distinct variable names seen, in first-occurrence
// order.
func (inv Inventory) Names() []string {
	seen := make(map[string]bool, len(inv.Occurrences))
	var names []string
	for _, occ := range inv.Occurrences {
		if !seen[occ.Name] {
			seen[occ.Name] = true
			names = append(names, occ.Name)
		}
	}
	return names
}

// Collect walks a parsed CST and returns its variable inventory. It is a
// standalone pass rather than one fused into the compiler, matching
// spec.md §4.8's "can be fused... but specified separately" — keeping it
// separate lets a caller request variables without compiling, or vice
// versa.
func Collect(n *syntax.Node) Inventory {
	var inv Inventory
	collect(n, &inv)
	return inv
}

// InternNames feeds every occurrence name in inv through in. Spec.md §9
// names variable names as one of the shared interner's intended uses: a
// catalog of many messages repeats the same handful of variable names
// ("name", "count", ...) across every one of them, which is exactly the
// repeated-short-string case the interner exists for. Collect itself
// stays interner-free so a caller inspecting one message in isolation
// never needs one.
func InternNames(inv Inventory, in *intern.Interner) {
	for _, occ := range inv.Occurrences {
		in.GetOrIntern(occ.Name)
	}
}

func collect(n *syntax.Node, inv *Inventory) {
	switch n.Kind() {
	case syntax.ICU_VARIABLE:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: PlainArgument, Span: n.Span()})
		return
	case syntax.ICU_DATE:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: DateArgument, Span: n.Span()})
		return
	case syntax.ICU_TIME:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: TimeArgument, Span: n.Span()})
		return
	case syntax.ICU_NUMBER:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: NumberArgument, Span: n.Span()})
		// number/date/time arguments never nest further ICU children.
		return
	case syntax.ICU_PLURAL:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: PluralArgument, Span: n.Span()})
	case syntax.ICU_SELECT_ORDINAL:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: SelectOrdinalArgument, Span: n.Span()})
	case syntax.ICU_SELECT:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(n), Kind: SelectArgument, Span: n.Span()})
	case syntax.ICU_UNSAFE:
		// spec.md §3.4: a variable only ever referenced inside `!!...!!` is
		// classified `unsafe` rather than by its wrapped argument kind.
		inner := firstIcuChild(n)
		if inner == nil {
			return
		}
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(inner), Kind: UnsafeArgument, Span: n.Span()})
		for _, child := range inner.NodeChildren() {
			collect(child, inv)
		}
		return
	case syntax.HOOK:
		inv.Occurrences = append(inv.Occurrences, Occurrence{Name: hookTargetName(n), Kind: HookArgument, Span: n.Span()})
	case syntax.LINK:
		collectLinkOccurrences(n, inv)
		return
	}
	for _, child := range n.NodeChildren() {
		collect(child, inv)
	}
}

// firstIcuChild returns an ICU_UNSAFE node's wrapped ICU node, mirroring
// compiler.firstIcuChild (duplicated for the same reason icuName is: spec.md
// §4.8 keeps this pass independent of the compiler package).
func firstIcuChild(n *syntax.Node) *syntax.Node {
	nodes := n.NodeChildren()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// hookTargetName recovers a hook's literal target identifier, mirroring
// compiler.hookName — a hook target is never dynamic (spec.md §4.3/§7), so
// the target string itself is the variable name recorded for it.
func hookTargetName(n *syntax.Node) string {
	const (
		beforeRBracket = iota
		beforeLParen
		insideParen
		done
	)
	state := beforeRBracket
	var name []byte
	for _, c := range n.Children() {
		tok, ok := c.(*syntax.Token)
		if !ok {
			continue
		}
		switch state {
		case beforeRBracket:
			if tok.Kind() == syntax.RBRACKET {
				state = beforeLParen
			}
		case beforeLParen:
			if tok.Kind() == syntax.LPAREN {
				state = insideParen
			}
		case insideParen:
			if tok.Kind() == syntax.RPAREN {
				state = done
			} else {
				name = append(name, tok.Text()...)
			}
		}
	}
	return string(name)
}

// collectLinkOccurrences records a link's dynamic destination variable
// (spec.md §4.3's "`dest` is ... an ICU variable `{name}`") under the
// `link` kind, rather than letting the generic ICU_VARIABLE case below
// classify it as `plain`; the label is collected normally since its
// contents are ordinary inline content, not a destination reference.
func collectLinkOccurrences(n *syntax.Node, inv *Inventory) {
	var contentNodes []*syntax.Node
	for _, c := range n.NodeChildren() {
		if c.Kind() == syntax.INLINE_CONTENT {
			contentNodes = append(contentNodes, c)
		}
	}
	if len(contentNodes) >= 1 {
		collect(contentNodes[0], inv)
	}
	if len(contentNodes) >= 2 {
		dest := contentNodes[1]
		if v := dest.FirstChildOfKind(syntax.ICU_VARIABLE); v != nil {
			inv.Occurrences = append(inv.Occurrences, Occurrence{Name: icuName(v), Kind: LinkArgument, Span: v.Span()})
			return
		}
		collect(dest, inv)
	}
}

// icuName mirrors compiler.icuName: the leading TEXT/UNDERSCORE run after
// an ICU node's opening '{', skipping any whitespace or newlines before it.
// Duplicated rather than imported to keep variables independent of the
// compiler package (spec.md §4.8 calls this out as a standalone pass).
func icuName(n *syntax.Node) string {
	var name []byte
	started := false
	for _, c := range n.Children() {
		tok, ok := c.(*syntax.Token)
		if !ok {
			break
		}
		if !started {
			if tok.Kind() == syntax.LCURLY {
				started = true
			}
			continue
		}
		if len(name) == 0 && (tok.Kind() == syntax.WHITESPACE || tok.Kind() == syntax.NEWLINE) {
			continue
		}
		if tok.Kind() == syntax.TEXT || tok.Kind() == syntax.UNDERSCORE {
			name = append(name, tok.Text()...)
			continue
		}
		break
	}
	return string(name)
}
