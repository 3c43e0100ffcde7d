package catalog

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

var supportedCatalogExtensions = []string{".yaml", ".yml"}

// WalkDefinitions walks fsys collecting every message-catalog file and
// extracting its definitions through src, in stable lexical order.
//
// Grounded on sqlparser.ParseFilesystems: fs.WalkDir (lexical order per
// its docs), a file-extension allowlist, and skipping hidden directories.
func WalkDefinitions(fsys fs.FS, src MessageDefinitionSource) ([]RawMessageDefinition, error) {
	var all []RawMessageDefinition
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != "." {
				return fs.SkipDir
			}
			return nil
		}
		if !hasCatalogExtension(path) {
			return nil
		}
		buf, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, defs, err := src.ExtractDefinitions(path, string(buf))
		if err != nil {
			return err
		}
		all = append(all, defs...)
		return nil
	})
	return all, err
}

// WalkTranslations is WalkDefinitions' counterpart for translation files.
func WalkTranslations(fsys fs.FS, src MessageTranslationSource) ([]RawMessageTranslation, error) {
	var all []RawMessageTranslation
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != "." {
				return fs.SkipDir
			}
			return nil
		}
		if !hasCatalogExtension(path) {
			return nil
		}
		buf, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		translations, err := src.ExtractTranslations(path, string(buf))
		if err != nil {
			return err
		}
		all = append(all, translations...)
		return nil
	})
	return all, err
}

func hasCatalogExtension(path string) bool {
	return slices.Contains(supportedCatalogExtensions, filepath.Ext(path))
}
