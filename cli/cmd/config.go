package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vippsas/icumark/compiler"
)

// TagNameOverrides is the on-disk shape of a tag-name override file
// (spec.md §6.2's configurable mapping). Any field left blank falls back
// to compiler.DefaultTagNames.
//
// Grounded on cli/cmd/config.go's yaml.Unmarshal-into-a-struct pattern.
type TagNameOverrides struct {
	Strong        string `yaml:"strong"`
	Emphasis      string `yaml:"emphasis"`
	StrikeThrough string `yaml:"strike_through"`
	Paragraph     string `yaml:"paragraph"`
	Link          string `yaml:"link"`
	Code          string `yaml:"code"`
	CodeBlock     string `yaml:"code_block"`
	Br            string `yaml:"br"`
	Hr            string `yaml:"hr"`
	H1            string `yaml:"h1"`
	H2            string `yaml:"h2"`
	H3            string `yaml:"h3"`
	H4            string `yaml:"h4"`
	H5            string `yaml:"h5"`
	H6            string `yaml:"h6"`
}

// LoadTagNames reads path as a TagNameOverrides document and merges it
// over compiler.DefaultTagNames. A missing file is not an error: it just
// means "use the defaults".
func LoadTagNames(path string) (compiler.TagNames, error) {
	tags := compiler.DefaultTagNames

	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return tags, nil
	}
	if err != nil {
		return tags, err
	}

	var overrides TagNameOverrides
	if err := yaml.Unmarshal(buf, &overrides); err != nil {
		return tags, err
	}

	merge(&tags.Strong, overrides.Strong)
	merge(&tags.Emphasis, overrides.Emphasis)
	merge(&tags.StrikeThrough, overrides.StrikeThrough)
	merge(&tags.Paragraph, overrides.Paragraph)
	merge(&tags.Link, overrides.Link)
	merge(&tags.Code, overrides.Code)
	merge(&tags.CodeBlock, overrides.CodeBlock)
	merge(&tags.Br, overrides.Br)
	merge(&tags.Hr, overrides.Hr)
	merge(&tags.H1, overrides.H1)
	merge(&tags.H2, overrides.H2)
	merge(&tags.H3, overrides.H3)
	merge(&tags.H4, overrides.H4)
	merge(&tags.H5, overrides.H5)
	merge(&tags.H6, overrides.H6)

	return tags, nil
}

func merge(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}
