package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "icumark",
		Short:        "icumark",
		SilenceUsage: true,
		Long:         `CLI tool for parsing, compiling, and inspecting ICU-Markdown message sources.`,
	}

	includeBlocks bool
	configFile    string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVarP(&includeBlocks, "blocks", "b", false, "scan the source for block-level structure (headings, paragraphs, code blocks) instead of treating it as one flat inline run")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "icumark.yaml", "path to the config file (tag-name overrides for compile; catalog and store settings for sync)")
	return rootCmd.Execute()
}

func logger() logrus.FieldLogger {
	return logrus.StandardLogger()
}
