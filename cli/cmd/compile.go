package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vippsas/icumark"
)

var (
	outputFormat string

	compileCmd = &cobra.Command{
		Use:   "compile <file>",
		Short: "Parse and compile a message source, printing it as HTML or keyless JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <file>")
			}

			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			tags, err := LoadTagNames(configFile)
			if err != nil {
				return err
			}

			doc := icumark.ParseMessage(string(buf), includeBlocks)
			compiled := icumark.Compile(doc.CST, tags)

			switch outputFormat {
			case "html":
				fmt.Println(icumark.ToHTML(compiled, tags))
			case "json":
				fmt.Println(icumark.ToKeylessJSON(compiled))
			default:
				return fmt.Errorf("unknown output format %q, expected html or json", outputFormat)
			}
			return nil
		},
	}
)

func init() {
	compileCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: html or json")
	rootCmd.AddCommand(compileCmd)
}
