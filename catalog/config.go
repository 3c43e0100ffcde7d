package catalog

// Config names the filesystem roots a sync operation walks: one directory
// of default-locale definition files and zero or more directories of
// locale-specific translation files. Modeled on the teacher's
// cli/cmd/config.go Config, which keys a map of named databases; the roots
// here are plain fields and a slice, not a named map.
type Config struct {
	DefinitionsRoot  string   `yaml:"definitions_root"`
	TranslationRoots []string `yaml:"translation_roots"`
	DefaultLocale    string   `yaml:"default_locale"`
}
