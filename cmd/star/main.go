package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	star "github.com/nefkit/go-star"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "star",
		Short: "Work with STAR, NMR-STAR, and NEF files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func modeByName(name string) (star.Mode, error) {
	switch name {
	case "lenient":
		return star.Lenient, nil
	case "standard":
		return star.Standard, nil
	case "strict":
		return star.Strict, nil
	case "iucr":
		return star.IUCr, nil
	}
	return star.Mode{}, fmt.Errorf("unknown parse mode %q", name)
}
