package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	star "github.com/nefkit/go-star"
	"github.com/nefkit/go-star/nef"
)

func newFmtCmd() *cobra.Command {
	var (
		overwrite bool
		safe      bool
		modeName  string
	)

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a STAR file in canonical form",
		Long: `Parse a STAR file and print it back in canonical form: aligned
tags, recomputed quoting, loops closed with explicit stop_ terminators.

If no file is provided, reads from stdin. Use -w to overwrite the file
in place; with --safe the original is kept and the output goes to the
first free (n)-numbered name, which is printed.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeByName(modeName)
			if err != nil {
				return err
			}

			var source []byte
			var filename string
			if len(args) == 0 {
				if overwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				source, err = os.ReadFile(filename)
				if err != nil {
					return err
				}
			}

			doc, err := star.Parse(string(source), star.WithMode(mode))
			if err != nil {
				return err
			}
			output := doc.String()

			if overwrite {
				if safe {
					filename = nef.SafeFilename(filename)
					fmt.Fprintln(cmd.OutOrStdout(), filename)
				}
				return os.WriteFile(filename, []byte(output), 0o644)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&safe, "safe", false, "never clobber an existing file; write to a numbered name")
	cmd.Flags().StringVar(&modeName, "mode", "standard", "parse mode: lenient, standard, strict, or iucr")

	return cmd
}
