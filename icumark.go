// Package icumark is the public entry point spec.md §6.1 describes: parse
// a message source into a lossless CST, compile it to a runtime tree, and
// serialize that tree to HTML or keyless JSON.
package icumark

import (
	"github.com/vippsas/icumark/compiler"
	"github.com/vippsas/icumark/format"
	"github.com/vippsas/icumark/parser"
	"github.com/vippsas/icumark/source"
	"github.com/vippsas/icumark/syntax"
	"github.com/vippsas/icumark/variables"
)

// MarkdownDocument is the result of a single-shot parse: the lossless
// CST, its compiled form under the default tag-name table, and its
// variable inventory. Spec.md §6.1: "{ cst, compiled, variables }".
type MarkdownDocument struct {
	CST       *syntax.Node
	Compiled  compiler.CompiledElement
	Variables variables.Inventory
}

// MessageValue bundles a message's raw source alongside its parsed forms
// for validator consumption. Spec.md §6.4: "consume a MessageValue (raw
// string + CST + compiled + variables)".
type MessageValue struct {
	Source    string
	CST       *syntax.Node
	Compiled  compiler.CompiledElement
	Variables variables.Inventory
}

// Value assembles a MessageValue from a parsed MarkdownDocument and its
// originating source text.
func Value(source_ string, doc MarkdownDocument) MessageValue {
	return MessageValue{
		Source:    source_,
		CST:       doc.CST,
		Compiled:  doc.Compiled,
		Variables: doc.Variables,
	}
}

// ParseMessage is spec.md §6.1's single-shot entry point. includeBlocks
// selects whether the source is scanned for block-level structure
// (headings, paragraphs, code blocks, thematic breaks) or parsed as one
// flat run of inline content.
func ParseMessage(source_ string, includeBlocks bool) MarkdownDocument {
	text := source.New("", source_)
	cst := parser.Parse(text, includeBlocks)
	compiled := compiler.Compile(cst, compiler.DefaultTagNames)
	return MarkdownDocument{
		CST:       cst,
		Compiled:  compiled,
		Variables: variables.Collect(cst),
	}
}

// Compile re-runs the compiler over an existing CST, e.g. with a
// different tag-name table than ParseMessage's default. Spec.md §6.1.
func Compile(cst *syntax.Node, tags compiler.TagNames) compiler.CompiledElement {
	return compiler.Compile(cst, tags)
}

// ToHTML formats a compiled tree as HTML under tags. Spec.md §6.1.
func ToHTML(compiled compiler.CompiledElement, tags compiler.TagNames) string {
	return format.ToHTML(compiled, tags)
}

// ToKeylessJSON formats a compiled tree as the positional JSON wire format
// spec.md §6.3 defines. Spec.md §6.1.
func ToKeylessJSON(compiled compiler.CompiledElement) string {
	return format.ToKeylessJSON(compiled)
}
