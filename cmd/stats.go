package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eggphy/eggphy-cli/internal/dataset"
	"github.com/eggphy/eggphy-cli/internal/stemma"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		witnesses := dataset.New(cfg.Data).Load(cmd.Context())
		fmt.Printf("witnesses: %d\n\n", len(witnesses))

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

		fmt.Fprintln(tw, "FAMILY\tCOUNT")
		for _, group := range stemma.FamilyGroups(witnesses) {
			fmt.Fprintf(tw, "%s\t%d\n", group.Info.Name, len(group.Members))
		}
		fmt.Fprintln(tw)

		languages := make(map[string]int)
		centuries := make(map[int]int)
		for i := range witnesses {
			languages[witnesses[i].LanguageName()]++
			centuries[witnesses[i].Century()]++
		}

		fmt.Fprintln(tw, "LANGUAGE\tCOUNT")
		for _, lang := range sortedKeys(languages) {
			fmt.Fprintf(tw, "%s\t%d\n", lang, languages[lang])
		}
		fmt.Fprintln(tw)

		fmt.Fprintln(tw, "CENTURY\tCOUNT")
		var cents []int
		for c := range centuries {
			cents = append(cents, c)
		}
		sort.Ints(cents)
		for _, c := range cents {
			fmt.Fprintf(tw, "%d\t%d\n", c, centuries[c])
		}

		return tw.Flush()
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
