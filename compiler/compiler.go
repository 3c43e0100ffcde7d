package compiler

import (
	"strconv"
	"strings"

	"github.com/vippsas/icumark/syntax"
)

// Compile is the entry point spec.md §4.7/§6.1 describes: a single visitor
// pass over a parsed CST producing a CompiledElement. When the document was
// parsed without block scanning, the CST has exactly one INLINE_CONTENT
// child and the result is that content compiled directly (a Literal or
// List); otherwise the document's block children compile into a BlockList.
//
// Grounded on sqlparser.Document.Parse's single-pass-over-children style and
// spec.md §9's explicit recommendation for explicit pattern matching over
// virtual dispatch: this is one Go type switch per node kind, not an
// interface-method-per-kind visitor.
func Compile(doc *syntax.Node, tags TagNames) CompiledElement {
	children := doc.NodeChildren()
	if len(children) == 1 && children[0].Kind() == syntax.INLINE_CONTENT {
		return compileInlineChildren(children[0].Children(), tags)
	}
	blocks := make([]CompiledElement, 0, len(children))
	for _, child := range children {
		blocks = append(blocks, compileBlock(child, tags))
	}
	return BlockList(blocks)
}

func compileBlock(n *syntax.Node, tags TagNames) CompiledElement {
	switch n.Kind() {
	case syntax.PARAGRAPH:
		return NodeElement{Node: Tag{Name: tags.Paragraph, Children: compileContentChild(n, tags)}}
	case syntax.ATX_HEADING, syntax.SETEXT_HEADING:
		return NodeElement{Node: Tag{Name: tags.Heading(headingLevel(n)), Children: compileContentChild(n, tags)}}
	case syntax.FENCED_CODE_BLOCK:
		return NodeElement{Node: Tag{Name: tags.CodeBlock, Children: Literal(extractCodeBody(n.FullText(), true))}}
	case syntax.INDENTED_CODE_BLOCK:
		return NodeElement{Node: Tag{Name: tags.CodeBlock, Children: Literal(extractCodeBody(n.FullText(), false))}}
	case syntax.THEMATIC_BREAK:
		return NodeElement{Node: Tag{Name: tags.Hr, Children: EmptyList()}}
	default:
		return Literal(n.FullText())
	}
}

func compileContentChild(n *syntax.Node, tags TagNames) CompiledElement {
	content := n.FirstChildOfKind(syntax.INLINE_CONTENT)
	if content == nil {
		return EmptyList()
	}
	return compileInlineChildren(content.Children(), tags)
}

// headingLevel recovers the 1-6 heading level from the raw token children,
// since the CST (deliberately) doesn't carry a separate level field: ATX
// headings count their leading HASH tokens, setext headings check for an
// EQUALS token (level 1) versus a bare "-" text run (level 2).
func headingLevel(n *syntax.Node) int {
	hashCount := 0
	sawContent := false
	for _, c := range n.Children() {
		if _, ok := c.(*syntax.Node); ok {
			sawContent = true
			continue
		}
		tok := c.(*syntax.Token)
		if tok.Kind() == syntax.HASH && !sawContent {
			hashCount++
		}
	}
	if hashCount > 0 {
		if hashCount > 6 {
			hashCount = 6
		}
		return hashCount
	}
	for _, c := range n.Children() {
		if tok, ok := c.(*syntax.Token); ok {
			if tok.Kind() == syntax.EQUALS || strings.Contains(tok.Text(), "=") {
				return 1
			}
		}
	}
	return 2
}

// extractCodeBody strips the block-level markers (fence lines, 4-space
// indent) from a code block's raw text, since spec.md §4.7 says the info
// string and markers are ignored for the compiled form.
func extractCodeBody(full string, fenced bool) string {
	if fenced {
		i := strings.IndexByte(full, '\n')
		if i < 0 {
			return ""
		}
		fenceChar, fenceLen := fenceRunChar(full[:i])
		lines := strings.Split(full[i+1:], "\n")
		if n := len(lines); n > 0 && isClosingFenceLine(lines[n-1], fenceChar, fenceLen) {
			lines = lines[:n-1]
		}
		return strings.Join(lines, "\n")
	}
	lines := strings.Split(full, "\n")
	for i, line := range lines {
		if len(line) >= 4 {
			lines[i] = line[4:]
		} else {
			lines[i] = strings.TrimLeft(line, " ")
		}
	}
	return strings.Join(lines, "\n")
}

// fenceRunChar mirrors blockscan.fenceRun: the fence character and run
// length of a fenced code block's opening (or candidate closing) line.
func fenceRunChar(line string) (byte, int) {
	trimmed := strings.TrimLeft(line, " ")
	if len(trimmed) == 0 {
		return 0, 0
	}
	ch := trimmed[0]
	length := 0
	for length < len(trimmed) && trimmed[length] == ch {
		length++
	}
	return ch, length
}

// isClosingFenceLine mirrors blockscan.scanFencedCode's own closing-fence
// test exactly: same character as the opener, at least as long a run, at
// most 3 leading spaces, and nothing but whitespace after the run. Unlike
// a bare "looks like a fence" heuristic, this can't mistake an unclosed
// block's genuine trailing content line (e.g. one made of a *different*
// fence character than the opener) for a closer.
func isClosingFenceLine(line string, fenceChar byte, fenceLen int) bool {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent >= 4 {
		return false
	}
	ch, length := fenceRunChar(line)
	return ch == fenceChar && length >= fenceLen && strings.TrimSpace(line[indent+length:]) == ""
}

// compileInlineChildren implements spec.md §4.7's literal-concatenation and
// empty-list rules over a flat child list (tokens and/or nodes).
func compileInlineChildren(children []syntax.Element, tags TagNames) CompiledElement {
	var pieces []CompiledElement
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, Literal(lit.String()))
			lit.Reset()
		}
	}
	var spliceInlineContent func(n *syntax.Node)
	spliceInlineContent = func(n *syntax.Node) {
		for _, gc := range n.Children() {
			switch g := gc.(type) {
			case *syntax.Token:
				lit.WriteString(tokenLiteralText(g))
			case *syntax.Node:
				if g.Kind() == syntax.INLINE_CONTENT {
					spliceInlineContent(g)
					continue
				}
				flush()
				pieces = append(pieces, compileInlineNode(g, tags))
			}
		}
	}

	for _, c := range children {
		switch v := c.(type) {
		case *syntax.Token:
			lit.WriteString(tokenLiteralText(v))
		case *syntax.Node:
			if v.Kind() == syntax.INLINE_CONTENT {
				// A dangling INLINE_CONTENT wrapper (no HOOK/LINK parent)
				// only arises from a degrade-to-literal case (spec.md §7's
				// dynamic hook target): splice its children into the
				// surrounding literal stream rather than treating it as
				// its own element.
				spliceInlineContent(v)
				continue
			}
			flush()
			pieces = append(pieces, compileInlineNode(v, tags))
		}
	}
	flush()

	if len(pieces) == 0 {
		return EmptyList()
	}
	if len(pieces) == 1 {
		if l, ok := pieces[0].(Literal); ok {
			return l
		}
	}
	return List(pieces)
}

// tokenLiteralText returns a token's rendered literal text: Decoded() falls
// back to Text() for any token that never had a decoded form recorded (every
// kind but HTML_ENTITY and an escaped-punctuation TEXT token), so this
// always does the right thing without a kind switch.
func tokenLiteralText(tok *syntax.Token) string {
	return tok.Decoded()
}

func compileInlineNode(n *syntax.Node, tags TagNames) CompiledElement {
	switch n.Kind() {
	case syntax.EMPHASIS:
		return wrapTag(tags.Emphasis, n, tags)
	case syntax.STRONG:
		return wrapTag(tags.Strong, n, tags)
	case syntax.STRIKETHROUGH:
		return wrapTag(tags.StrikeThrough, n, tags)
	case syntax.CODE_SPAN:
		return NodeElement{Node: Tag{Name: tags.Code, Children: Literal(codeSpanText(n))}}
	case syntax.LINK:
		return compileLink(n, tags)
	case syntax.HOOK:
		return compileHook(n, tags)
	case syntax.HARD_BREAK:
		return NodeElement{Node: LineBreak{}}
	case syntax.ICU_POUND:
		return NodeElement{Node: Pound{}}
	case syntax.ICU_VARIABLE, syntax.ICU_PLURAL, syntax.ICU_SELECT,
		syntax.ICU_SELECT_ORDINAL, syntax.ICU_DATE, syntax.ICU_TIME, syntax.ICU_NUMBER:
		return NodeElement{Node: IcuCompiledNode{Icu: compileIcuNode(n, tags)}}
	case syntax.ICU_UNSAFE:
		// spec.md §4.7: an unsafe ICU message compiles identically to a safe
		// one; the unsafe flag only matters to the validate package.
		inner := firstIcuChild(n)
		if inner == nil {
			return EmptyList()
		}
		return NodeElement{Node: IcuCompiledNode{Icu: compileIcuNode(inner, tags)}}
	default:
		return Literal(n.FullText())
	}
}

func stripDelimiters(n *syntax.Node) []syntax.Element {
	children := n.Children()
	if len(children) < 2 {
		return nil
	}
	return children[1 : len(children)-1]
}

func wrapTag(name string, n *syntax.Node, tags TagNames) CompiledElement {
	return NodeElement{Node: Tag{Name: name, Children: compileInlineChildren(stripDelimiters(n), tags)}}
}

// codeSpanText returns a code span's content exactly as written: backslash
// escapes and entities inside a code span are not decoded.
func codeSpanText(n *syntax.Node) string {
	var sb strings.Builder
	for _, c := range stripDelimiters(n) {
		if tok, ok := c.(*syntax.Token); ok {
			sb.WriteString(tok.Text())
		}
	}
	return sb.String()
}

func compileLink(n *syntax.Node, tags TagNames) CompiledElement {
	var contentNodes []*syntax.Node
	for _, c := range n.NodeChildren() {
		if c.Kind() == syntax.INLINE_CONTENT {
			contentNodes = append(contentNodes, c)
		}
	}
	label := CompiledElement(EmptyList())
	if len(contentNodes) >= 1 {
		label = compileInlineChildren(contentNodes[0].Children(), tags)
	}
	dest := CompiledElement(Literal(""))
	if len(contentNodes) >= 2 {
		dest = compileInlineChildren(contentNodes[1].Children(), tags)
	}
	return NodeElement{Node: Tag{Name: tags.Link, Children: label, Attributes: []CompiledElement{dest}}}
}

func compileHook(n *syntax.Node, tags TagNames) CompiledElement {
	label := CompiledElement(EmptyList())
	if content := n.FirstChildOfKind(syntax.INLINE_CONTENT); content != nil {
		label = compileInlineChildren(content.Children(), tags)
	}
	return NodeElement{Node: Tag{Name: hookName(n), Children: label}}
}

// hookName recovers the literal target identifier following a hook's
// `](` — it is never dynamic (spec.md §4.3/§7), so a flat token scan
// suffices without needing ICU sub-compilation.
func hookName(n *syntax.Node) string {
	const (
		beforeRBracket = iota
		beforeLParen
		insideParen
		done
	)
	state := beforeRBracket
	var sb strings.Builder
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
				sb.WriteString(tok.Text())
			}
		}
	}
	return sb.String()
}

func firstIcuChild(n *syntax.Node) *syntax.Node {
	nodes := n.NodeChildren()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// icuName reads the leading identifier of an ICU node — the run of
// TEXT/UNDERSCORE tokens after the opening '{', skipping any whitespace or
// newlines between the brace and the name.
func icuName(n *syntax.Node) string {
	var sb strings.Builder
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
		if sb.Len() == 0 && (tok.Kind() == syntax.WHITESPACE || tok.Kind() == syntax.NEWLINE) {
			continue
		}
		if tok.Kind() == syntax.TEXT || tok.Kind() == syntax.UNDERSCORE {
			sb.WriteString(tok.Text())
			continue
		}
		break
	}
	return sb.String()
}

// icuStyle reads a date/time/number argument's style clause: everything
// between the second top-level comma and the closing brace.
func icuStyle(n *syntax.Node) string {
	commas := 0
	collecting := false
	var sb strings.Builder
	for _, c := range n.Children() {
		tok, ok := c.(*syntax.Token)
		if !ok {
			continue
		}
		switch tok.Kind() {
		case syntax.COMMA:
			commas++
			if commas == 2 {
				collecting = true
			}
		case syntax.RCURLY:
			collecting = false
		default:
			if collecting {
				sb.WriteString(tok.Text())
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// compilePluralFields reads a plural/selectordinal/select argument's
// optional offset clause and its ordered arms, compiling each arm's body
// with compileInlineChildren. An arm's selector key is recovered from the
// plain TEXT/UNDERSCORE/EQUALS token(s) immediately preceding its
// ICU_PLURAL_ARM node — those tokens are siblings emitted by the parser
// before the arm's own '{' (see parser.parsePluralOrSelect).
func compilePluralFields(n *syntax.Node, tags TagNames) (offset int, arms []SelectorArm) {
	var key strings.Builder
	commas := 0
	for _, c := range n.Children() {
		switch v := c.(type) {
		case *syntax.Token:
			switch v.Kind() {
			case syntax.COMMA:
				commas++
				key.Reset()
			case syntax.TEXT:
				if commas < 2 {
					continue
				}
				if strings.HasPrefix(v.Text(), "offset:") {
					if val, err := strconv.Atoi(strings.TrimPrefix(v.Text(), "offset:")); err == nil {
						offset = val
					}
					key.Reset()
					continue
				}
				key.WriteString(v.Text())
			case syntax.UNDERSCORE, syntax.EQUALS:
				if commas >= 2 {
					key.WriteString(v.Text())
				}
			case syntax.WHITESPACE, syntax.NEWLINE:
				// whitespace between the type keyword/offset and the first
				// arm key never contributes to the key itself.
			default:
				key.Reset()
			}
		case *syntax.Node:
			if v.Kind() != syntax.ICU_PLURAL_ARM {
				key.Reset()
				continue
			}
			selector := key.String()
			key.Reset()
			body := compileInlineChildren(stripDelimiters(v), tags)
			arms = append(arms, SelectorArm{Selector: selector, Element: body})
		}
	}
	return offset, arms
}

func compileIcuNode(n *syntax.Node, tags TagNames) IcuNode {
	name := icuName(n)
	switch n.Kind() {
	case syntax.ICU_VARIABLE:
		return Argument{Name: name}
	case syntax.ICU_DATE:
		return TypedArgument{Kind: DateArgument, Name: name, Style: icuStyle(n)}
	case syntax.ICU_TIME:
		return TypedArgument{Kind: TimeArgument, Name: name, Style: icuStyle(n)}
	case syntax.ICU_NUMBER:
		return TypedArgument{Kind: NumberArgument, Name: name, Style: icuStyle(n)}
	case syntax.ICU_SELECT:
		_, arms := compilePluralFields(n, tags)
		return Select{Name: name, Arms: arms}
	case syntax.ICU_PLURAL:
		offset, arms := compilePluralFields(n, tags)
		return Plural{Name: name, Offset: offset, Arms: arms}
	case syntax.ICU_SELECT_ORDINAL:
		offset, arms := compilePluralFields(n, tags)
		return Plural{Name: name, Offset: offset, Arms: arms, Ordinal: true}
	default:
		panic("compiler: not an ICU node kind")
	}
}
