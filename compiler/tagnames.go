package compiler

// TagNames is the injectable tag-name table spec.md §6.2 describes: the
// compiler never hardcodes output tag names, so callers can rename them
// (e.g. to match an existing translation-management convention) without
// touching the CST or the parser.
//
// Direct port of original_source's icu/tags.rs TagNames struct and its
// DEFAULT_TAG_NAMES constant.
type TagNames struct {
	Strong        string
	Emphasis      string
	StrikeThrough string
	Paragraph     string
	Link          string
	Code          string
	CodeBlock     string
	Br            string
	Hr            string
	H1, H2, H3, H4, H5, H6 string
}

// DefaultTagNames is the table used when no override is supplied, matching
// original_source's DEFAULT_TAG_NAMES verbatim.
var DefaultTagNames = TagNames{
	Strong:        "$b",
	Emphasis:      "$i",
	StrikeThrough: "$del",
	Paragraph:     "$p",
	Link:          "$link",
	Code:          "$code",
	CodeBlock:     "$codeBlock",
	Br:            "$br",
	Hr:            "$hr",
	H1:            "$h1",
	H2:            "$h2",
	H3:            "$h3",
	H4:            "$h4",
	H5:            "$h5",
	H6:            "$h6",
}

// Heading returns the tag name for a heading of the given level (1-6).
func (t TagNames) Heading(level int) string {
	switch level {
	case 1:
		return t.H1
	case 2:
		return t.H2
	case 3:
		return t.H3
	case 4:
		return t.H4
	case 5:
		return t.H5
	case 6:
		return t.H6
	default:
		panic("compiler: heading level out of range")
	}
}
