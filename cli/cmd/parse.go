package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vippsas/icumark"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a message source and print its variable inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <file>")
			}

			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc := icumark.ParseMessage(string(buf), includeBlocks)
			for _, occ := range doc.Variables.Occurrences {
				fmt.Printf("%s\tkind=%d\t[%d,%d)\n", occ.Name, occ.Kind, occ.Span.Start, occ.Span.End)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(parseCmd)
}
