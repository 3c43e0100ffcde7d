package parser

import "github.com/vippsas/icumark/syntax"

// Marker is a single recorded position in the tree builder's event buffer
// that can later be completed into a node. Near-literal port of
// original_source's parser/marker.rs Marker, expressed against this
// package's syntax.Builder instead of a Rust green tree.
type Marker struct {
	checkpoint syntax.Checkpoint
}

// NewMarker wraps a checkpoint as a Marker.
func NewMarker(cp syntax.Checkpoint) Marker {
	return Marker{checkpoint: cp}
}

// Get returns the underlying checkpoint.
func (m Marker) Get() syntax.Checkpoint {
	return m.checkpoint
}

// SpanTo pairs this marker with a closing marker, forming a MarkerSpan that
// can be completed once in a single close-open pair.
func (m Marker) SpanTo(close Marker) MarkerSpan {
	return MarkerSpan{open: m, close: close}
}

// Complete retroactively wraps everything from m to the current end of the
// event buffer as a node of kind, opening and finishing it in one step.
func (m Marker) Complete(b *syntax.Builder, kind syntax.Kind) {
	b.StartNodeAt(kind, m.checkpoint)
	b.FinishNode()
}

// MarkerSpan represents two already-known points, an opening and a closing
// marker, that can be wrapped as a matching pair in one operation — the form
// used once delimiter pairing has found both ends of a span.
type MarkerSpan struct {
	open, close Marker
}

// NewMarkerSpan constructs a span directly from two checkpoints.
func NewMarkerSpan(openCp, closeCp syntax.Checkpoint) MarkerSpan {
	return MarkerSpan{open: NewMarker(openCp), close: NewMarker(closeCp)}
}

// Complete wraps the span [open, close] as a single node of kind.
func (s MarkerSpan) Complete(b *syntax.Builder, kind syntax.Kind) {
	b.WrapWithNode(kind, s.open.checkpoint, s.close.checkpoint)
}
