package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eggphy/eggphy-cli/internal/dataset"
	"github.com/eggphy/eggphy-cli/internal/facet"
	"github.com/eggphy/eggphy-cli/internal/stemma"
)

var listFilters filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List witnesses, filtered and sorted",
	RunE: func(cmd *cobra.Command, args []string) error {
		witnesses := dataset.New(cfg.Data).Load(cmd.Context())
		filtered := facet.Apply(witnesses, listFilters.selection(), listFilters.search, listFilters.sortKey())

		if len(filtered) == 0 {
			fmt.Println("no witnesses match the active filters")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tAUTHOR\tLANGUAGE\tFAMILY\tCONFIDENCE")
		for i := range filtered {
			w := &filtered[i]
			assessment := stemma.Confidence(w)
			conf := "n/a"
			if assessment.Assessed {
				conf = fmt.Sprintf("%.0f%%", assessment.Score*100)
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
				w.ID(), w.DateYear(), w.AuthorName(), w.LanguageName(), stemma.Classify(w), conf)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d of %d witnesses\n", len(filtered), len(witnesses))
		return nil
	},
}

func init() {
	listFilters.register(listCmd)
	rootCmd.AddCommand(listCmd)
}
