// Package catalog implements the out-of-core collaborator contracts
// spec.md §6.4 names (MessageDefinitionSource, MessageTranslationSource)
// plus a concrete filesystem-backed implementation reading YAML catalog
// files.
package catalog

import "github.com/gofrs/uuid"

// FileMeta describes one source file a definition/translation extraction
// pass consumed.
type FileMeta struct {
	FileName      string
	DefaultLocale string
}

// RawMessageDefinition is one message key/source pair extracted from a
// definition file, before parsing. Docstring is the optional comment
// block immediately preceding the key in the source file, mirroring the
// teacher's sqlparser.Create.Docstring mechanism (comment lines before a
// CREATE statement, carried alongside it); empty when the key has no
// preceding comment.
type RawMessageDefinition struct {
	ID        uuid.UUID
	Key       string
	Source    string
	Docstring string
}

// RawMessageTranslation is one locale-specific translated source for an
// existing message key, before parsing.
type RawMessageTranslation struct {
	ID     uuid.UUID
	Key    string
	Locale string
	Source string
}

// MessageDefinitionSource extracts canonical (default-locale) message
// definitions from a file's raw content. Spec.md §6.4 verbatim.
type MessageDefinitionSource interface {
	GetDefaultLocale(fileName string) string
	ExtractDefinitions(fileName, content string) (FileMeta, []RawMessageDefinition, error)
}

// MessageTranslationSource extracts translated message sources from a
// file's raw content. Spec.md §6.4 verbatim.
type MessageTranslationSource interface {
	GetLocaleFromFileName(fileName string) string
	ExtractTranslations(fileName, content string) ([]RawMessageTranslation, error)
}
