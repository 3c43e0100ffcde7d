package syntax

import "github.com/vippsas/icumark/source"

// Builder assembles a CST bottom-up from a flat event buffer plus a stack
// of checkpoints, exactly the idiom spec.md §4.3/§9 describes: the inline
// parser cannot know whether e.g. a `[` begins a LINK until it sees the
// matching `](dest)`, so tokens are emitted unconditionally and a node is
// wrapped around a range only once its kind is known — or never wrapped at
// all, in which case the tokens simply remain as flat (literal) content,
// which is exactly spec.md §7's "degrade to literal text" policy.
//
// Grounded on original_source's parser/marker.rs (Marker/MarkerSpan,
// checkpoint/complete) reexpressed as an explicit event list instead of a
// Rust green-tree, the same event-list-plus-retroactive-insert idiom used
// by rust-analyzer-style parsers.
type Builder struct {
	events []event
}

type eventKind int

const (
	eventToken eventKind = iota
	eventStartNode
	eventFinishNode
)

type event struct {
	kind     eventKind
	tok      *Token
	nodeKind Kind
}

// Checkpoint is a position in the event buffer recorded before some content
// was parsed, so that content can later be retroactively wrapped in a node
// (or left unwrapped, degrading to literal text).
type Checkpoint int

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// EmitToken appends a token event and returns the checkpoint at which it was
// inserted (equal to Checkpoint() called just before this call).
func (b *Builder) EmitToken(tok *Token) Checkpoint {
	cp := Checkpoint(len(b.events))
	b.events = append(b.events, event{kind: eventToken, tok: tok})
	return cp
}

// Checkpoint returns the current buffer position, to be passed to
// StartNodeAt or WrapWithNode once the caller knows what (if anything)
// should be wrapped starting here.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.events))
}

// StartNode opens a node unconditionally at the current position. Used for
// the common case where the kind is known before any children are parsed
// (e.g. the document root, a paragraph).
func (b *Builder) StartNode(kind Kind) {
	b.events = append(b.events, event{kind: eventStartNode, nodeKind: kind})
}

// StartNodeAt retroactively opens a node whose first child is the event at
// cp; every event from cp onward (until the matching FinishNode) becomes a
// child of the new node, including any nodes that were already fully closed
// in between.
func (b *Builder) StartNodeAt(kind Kind, cp Checkpoint) {
	b.insertAt(int(cp), event{kind: eventStartNode, nodeKind: kind})
}

// FinishNode closes the innermost still-open node.
func (b *Builder) FinishNode() {
	b.events = append(b.events, event{kind: eventFinishNode})
}

// WrapWithNode is the close-open pair form used when both the start and end
// of a span are already known (e.g. once delimiter pairing has found a
// matching opener and closer): it opens kind at open and closes it
// immediately after close.
func (b *Builder) WrapWithNode(kind Kind, open, close Checkpoint) {
	b.insertAt(int(close)+1, event{kind: eventFinishNode})
	b.insertAt(int(open), event{kind: eventStartNode, nodeKind: kind})
}

func (b *Builder) insertAt(i int, ev event) {
	b.events = append(b.events, event{})
	copy(b.events[i+1:], b.events[i:])
	b.events[i] = ev
}

// SplitRunToken splits a single-token delimiter run (STAR/UNDERSCORE/TILDE,
// whose text is the whole run e.g. "***") in place into two adjacent run
// tokens of length keepLeft and (total-keepLeft), replacing the one event at
// cp with (up to) two events. It returns checkpoints for the left and right
// pieces; either may be invalid (check hasLeft/hasRight) if keepLeft is 0 or equal to
// the run's full length. This is what lets the delimiter resolver consume
// only part of a run (spec.md §4.6 rule 3: "pair lengths consume
// min(opener_len, closer_len)").
func (b *Builder) SplitRunToken(cp Checkpoint, keepLeft int) (left, right Checkpoint, hasLeft, hasRight bool) {
	ev := b.events[cp]
	if ev.kind != eventToken {
		panic("syntax: SplitRunToken called on a non-token event")
	}
	tok := ev.tok
	total := len(tok.text)
	if keepLeft < 0 || keepLeft > total {
		panic("syntax: SplitRunToken keepLeft out of range")
	}

	var pieces []event
	base := tok.span.Start
	if keepLeft > 0 {
		leftTok := NewToken(tok.kind, source.NewSpan(base, base+keepLeft), tok.text[:keepLeft])
		leftTok.SetLeadingTrivia(tok.leadingTrivia)
		pieces = append(pieces, event{kind: eventToken, tok: leftTok})
	}
	if keepLeft < total {
		rightTok := NewToken(tok.kind, source.NewSpan(base+keepLeft, base+total), tok.text[keepLeft:])
		rightTok.SetTrailingTrivia(tok.trailingTrivia)
		pieces = append(pieces, event{kind: eventToken, tok: rightTok})
	}

	out := make([]event, 0, len(b.events)-1+len(pieces))
	out = append(out, b.events[:cp]...)
	out = append(out, pieces...)
	out = append(out, b.events[cp+1:]...)
	b.events = out

	if keepLeft > 0 {
		hasLeft = true
		left = cp
	}
	if keepLeft < total {
		hasRight = true
		if hasLeft {
			right = cp + 1
		} else {
			right = cp
		}
	}
	return
}

// Finish assembles the final tree bottom-up from the event buffer, which
// must be balanced (every StartNode has a matching FinishNode) with exactly
// one top-level node. Grounded on the standard event-list replay used by
// checkpoint-based parsers: a stack of in-progress child lists, popped and
// attached to their parent on each FinishNode.
func (b *Builder) Finish() *Node {
	type frame struct {
		kind     Kind
		children []Element
	}
	var stack []frame
	for _, ev := range b.events {
		switch ev.kind {
		case eventToken:
			if len(stack) == 0 {
				panic("syntax: token emitted outside any node")
			}
			top := &stack[len(stack)-1]
			top.children = append(top.children, ev.tok)
		case eventStartNode:
			stack = append(stack, frame{kind: ev.nodeKind})
		case eventFinishNode:
			if len(stack) == 0 {
				panic("syntax: unmatched FinishNode")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := NewNode(top.kind, top.children)
			if len(stack) == 0 {
				return node
			}
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}
	}
	panic("syntax: unbalanced events, no root node finished")
}
