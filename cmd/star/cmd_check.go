package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	star "github.com/nefkit/go-star"
	"github.com/nefkit/go-star/nef"
)

func newCheckCmd() *cobra.Command {
	var (
		dialect  string
		modeName string
	)

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse a file and report the first problem",
		Long: `Parse a file and validate it. With --dialect star or nef the parsed
tree is also checked against the NMR-STAR or NEF conventions: saveframe
identification items, shared tag prefixes, and for NEF the category
naming rules.

Prints the error and exits non-zero when the file does not conform.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeByName(modeName)
			if err != nil {
				return err
			}

			var source []byte
			name := "stdin"
			if len(args) == 0 {
				source, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				name = args[0]
				source, err = os.ReadFile(name)
				if err != nil {
					return err
				}
			}

			switch dialect {
			case "generic":
				_, err = star.Parse(string(source), star.WithMode(mode))
			case "star":
				_, err = nef.ParseNmrStar(string(source), nef.WithMode(mode))
			case "nef":
				_, err = nef.ParseNef(string(source), nef.WithMode(mode))
			default:
				return fmt.Errorf("unknown dialect %q", dialect)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dialect, "dialect", "generic", "validation dialect: generic, star, or nef")
	cmd.Flags().StringVar(&modeName, "mode", "standard", "parse mode: lenient, standard, strict, or iucr")

	return cmd
}
