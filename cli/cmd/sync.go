package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vippsas/icumark"
	"github.com/vippsas/icumark/catalog"
	"github.com/vippsas/icumark/intern"
	"github.com/vippsas/icumark/store"
	"github.com/vippsas/icumark/variables"
)

// SyncConfig is the on-disk shape of a sync run: the catalog roots to walk
// plus the backing store to upsert compiled messages into. Modeled on the
// teacher's cli/cmd/config.go Config/DatabaseConfig pairing.
type SyncConfig struct {
	Catalog catalog.Config `yaml:"catalog"`
	Store   store.Config   `yaml:"store"`
}

func loadSyncConfig(path string) (SyncConfig, error) {
	var cfg SyncConfig
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var (
	syncConflict string

	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Walk the configured message catalog, compile every entry, and upsert it into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logger()
			ctx := context.Background()

			cfg, err := loadSyncConfig(configFile)
			if err != nil {
				return err
			}

			strategy, err := parseConflictStrategy(syncConflict)
			if err != nil {
				return err
			}

			db, sqlDB, err := cfg.Store.Open()
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer sqlDB.Close()

			// One process-wide interner shared across the whole walk (spec.md
			// §9): every file's locale string and every message's variable
			// names fold into it, so a catalog of thousands of messages that
			// all reference {name}/{count}/... allocates each of those
			// strings once instead of once per occurrence.
			names := intern.New()
			src := catalog.YAMLSource{DefaultLocale: cfg.Catalog.DefaultLocale, Interner: names}

			defs, err := catalog.WalkDefinitions(os.DirFS(cfg.Catalog.DefinitionsRoot), src)
			if err != nil {
				return fmt.Errorf("walking definitions: %w", err)
			}
			for _, def := range defs {
				if err := syncDefinition(ctx, db, def, strategy, names); err != nil {
					logger.WithField("key", def.Key).WithError(err).Error("failed to sync message definition")
					return err
				}
			}
			logger.WithField("count", len(defs)).Info("synced message definitions")

			for _, root := range cfg.Catalog.TranslationRoots {
				translations, err := catalog.WalkTranslations(os.DirFS(root), src)
				if err != nil {
					return fmt.Errorf("walking translations in %s: %w", root, err)
				}
				for _, tr := range translations {
					if err := syncTranslation(ctx, db, tr, strategy, names); err != nil {
						logger.WithField("key", tr.Key).WithField("locale", tr.Locale).WithError(err).Error("failed to sync message translation")
						return err
					}
				}
				logger.WithField("root", root).WithField("count", len(translations)).Info("synced message translations")
			}
			logger.WithField("distinct_names", names.Count()).Info("interned locale and variable names across sync")

			return nil
		},
	}
)

func syncDefinition(ctx context.Context, db store.MessagesDatabase, def catalog.RawMessageDefinition, strategy store.ConflictStrategy, names *intern.Interner) error {
	compiledJSON, inv := compileToKeylessJSON(def.Source)
	variables.InternNames(inv, names)
	return db.InsertDefinition(ctx, store.DefinitionRow{
		ID:           def.ID.String(),
		Key:          def.Key,
		Source:       def.Source,
		CompiledJSON: compiledJSON,
	}, strategy)
}

func syncTranslation(ctx context.Context, db store.MessagesDatabase, tr catalog.RawMessageTranslation, strategy store.ConflictStrategy, names *intern.Interner) error {
	compiledJSON, inv := compileToKeylessJSON(tr.Source)
	variables.InternNames(inv, names)
	return db.InsertTranslation(ctx, store.TranslationRow{
		ID:           tr.ID.String(),
		Key:          tr.Key,
		Locale:       tr.Locale,
		Source:       tr.Source,
		CompiledJSON: compiledJSON,
	}, strategy)
}

func compileToKeylessJSON(src string) (string, variables.Inventory) {
	doc := icumark.ParseMessage(src, false)
	return icumark.ToKeylessJSON(doc.Compiled), doc.Variables
}

func parseConflictStrategy(s string) (store.ConflictStrategy, error) {
	switch s {
	case "error", "":
		return store.ConflictError, nil
	case "skip":
		return store.ConflictSkip, nil
	case "overwrite":
		return store.ConflictOverwrite, nil
	default:
		return store.ConflictError, fmt.Errorf("unknown conflict strategy %q, expected error, skip, or overwrite", s)
	}
}

func init() {
	syncCmd.Flags().StringVar(&syncConflict, "on-conflict", "error", "conflict strategy: error, skip, or overwrite")
	rootCmd.AddCommand(syncCmd)
}
