package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/vippsas/icumark"
)

var (
	inspectCmd = &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a message source and dump its compiled tree with repr",
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
			fmt.Println(repr.String(doc.Compiled))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}
