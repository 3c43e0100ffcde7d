package validate

import (
	"fmt"

	"github.com/vippsas/icumark"
	"github.com/vippsas/icumark/syntax"
)

// MissingOtherArmRule flags a plural or selectordinal argument that has no
// `other` arm. Spec.md §7: "Missing `other` in `plural` → parsed as ICU;
// validator later flags it" — the parser deliberately leaves such a tree
// intact (parser.parsePluralOrSelect never degrades on this), so this
// rule is the only place the omission is surfaced.
type MissingOtherArmRule struct{}

func (MissingOtherArmRule) Validate(mv icumark.MessageValue) []Diagnostic {
	var diags []Diagnostic
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if n.Kind() == syntax.ICU_PLURAL || n.Kind() == syntax.ICU_SELECT_ORDINAL {
			if !hasOtherArm(n) {
				span := n.Span()
				diags = append(diags, Diagnostic{
					Span:        &span,
					Severity:    Warning,
					Description: fmt.Sprintf("%s argument has no 'other' arm", kindLabel(n.Kind())),
					Help:        "add an `other { ... }` arm; it is required to cover unhandled plural categories",
				})
			}
		}
		for _, child := range n.NodeChildren() {
			walk(child)
		}
	}
	walk(mv.CST)
	return diags
}

func kindLabel(k syntax.Kind) string {
	if k == syntax.ICU_SELECT_ORDINAL {
		return "selectordinal"
	}
	return "plural"
}

// hasOtherArm scans an ICU_PLURAL/ICU_SELECT_ORDINAL node's direct
// children for an arm preceded by the literal key "other", using the same
// key-precedes-ICU_PLURAL_ARM positional rule compiler.compilePluralFields
// relies on.
func hasOtherArm(n *syntax.Node) bool {
	var key []byte
	for _, c := range n.Children() {
		switch v := c.(type) {
		case *syntax.Token:
			switch v.Kind() {
			case syntax.TEXT, syntax.UNDERSCORE:
				key = append(key, v.Text()...)
			case syntax.WHITESPACE, syntax.NEWLINE:
				// doesn't interrupt an in-progress key
			default:
				key = key[:0]
			}
		case *syntax.Node:
			if v.Kind() == syntax.ICU_PLURAL_ARM {
				if string(key) == "other" {
					return true
				}
				key = key[:0]
			}
		}
	}
	return false
}

// UnsafeVariableRule flags every ICU_UNSAFE node: an ICU construct wrapped
// in `!!...!!` (spec.md §4.3/§4.7) is compiled identically to a safe one,
// but a caller may want to know it opted out of escaping.
type UnsafeVariableRule struct{}

func (UnsafeVariableRule) Validate(mv icumark.MessageValue) []Diagnostic {
	var diags []Diagnostic
	var walk func(n *syntax.Node)
	walk = func(n *syntax.Node) {
		if n.Kind() == syntax.ICU_UNSAFE {
			span := n.Span()
			diags = append(diags, Diagnostic{
				Span:        &span,
				Severity:    Info,
				Description: "variable is marked unsafe (!!...!!) and will not be escaped by downstream HTML consumers",
			})
		}
		for _, child := range n.NodeChildren() {
			walk(child)
		}
	}
	walk(mv.CST)
	return diags
}
