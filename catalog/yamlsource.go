package catalog

import (
	"strings"

	"github.com/gofrs/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vippsas/icumark/intern"
)

// YAMLSource implements both MessageDefinitionSource and
// MessageTranslationSource over a flat `key: message source` YAML
// mapping. The default locale file and every `<name>.<locale>.yaml`
// sibling share this one format.
//
// Grounded on cli/cmd/config.go's yaml.Unmarshal usage and
// sqlparser/dom.go's Create.ParseYamlInDocstring (reading a YAML
// docstring embedded in a larger file) — repurposed here to read a
// catalog file wholesale instead of a docstring fragment.
type YAMLSource struct {
	// DefaultLocale is returned by GetDefaultLocale for every file; a real
	// catalog usually fixes this per project (e.g. "en").
	DefaultLocale string

	// Interner, if set, canonicalizes locale strings through the shared
	// process-wide interner (spec.md §9 names locale ids as one of its
	// intended uses) — a whole catalog's files repeat the same handful of
	// locale strings thousands of times over, which is exactly the
	// repeated-short-string case the interner is for. Nil is safe; locale
	// strings are simply returned as decoded without deduping.
	Interner *intern.Interner
}

func (y YAMLSource) GetDefaultLocale(fileName string) string {
	return y.intern(y.DefaultLocale)
}

// GetLocaleFromFileName extracts the locale segment from a
// "<name>.<locale>.yaml" translation file name, e.g. "messages.nb.yaml"
// -> "nb". Files with no locale segment return "".
func (y YAMLSource) GetLocaleFromFileName(fileName string) string {
	base := fileName
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	parts := strings.Split(base, ".")
	if len(parts) < 3 {
		return ""
	}
	return y.intern(parts[len(parts)-2])
}

func (y YAMLSource) intern(s string) string {
	if y.Interner == nil || s == "" {
		return s
	}
	h := y.Interner.GetOrIntern(s)
	canonical, _ := y.Interner.Resolve(h)
	return canonical
}

func (y YAMLSource) ExtractDefinitions(fileName, content string) (FileMeta, []RawMessageDefinition, error) {
	entries, err := decodeEntries(content)
	if err != nil {
		return FileMeta{}, nil, err
	}
	defs := make([]RawMessageDefinition, 0, len(entries))
	for _, e := range entries {
		defs = append(defs, RawMessageDefinition{ID: uuid.Must(uuid.NewV4()), Key: e.key, Source: e.value, Docstring: e.docstring})
	}
	return FileMeta{FileName: fileName, DefaultLocale: y.GetDefaultLocale(fileName)}, defs, nil
}

func (y YAMLSource) ExtractTranslations(fileName, content string) ([]RawMessageTranslation, error) {
	locale := y.GetLocaleFromFileName(fileName)
	entries, err := decodeEntries(content)
	if err != nil {
		return nil, err
	}
	out := make([]RawMessageTranslation, 0, len(entries))
	for _, e := range entries {
		out = append(out, RawMessageTranslation{ID: uuid.Must(uuid.NewV4()), Key: e.key, Locale: locale, Source: e.value})
	}
	return out, nil
}

type entry struct {
	key       string
	value     string
	docstring string
}

// decodeEntries reads a YAML mapping document preserving key order, since
// message catalogs are conventionally reviewed in file order. A key's
// docstring is the `#`-comment block immediately preceding it, the YAML
// equivalent of the teacher's sqlparser.Create.Docstring (comment lines
// immediately before a CREATE statement).
func decodeEntries(content string) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	mapping := doc.Content[0]
	entries := make([]entry, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		entries = append(entries, entry{
			key:       keyNode.Value,
			value:     mapping.Content[i+1].Value,
			docstring: docstringFromComment(keyNode.HeadComment),
		})
	}
	return entries, nil
}

// docstringFromComment strips the leading "# " (or "#") from each line of
// a yaml.Node HeadComment, mirroring Create.DocstringAsString's plain-text
// joining of comment lines.
func docstringFromComment(comment string) string {
	if comment == "" {
		return ""
	}
	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, "#")
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}
