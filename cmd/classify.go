package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eggphy/eggphy-cli/internal/dataset"
	"github.com/eggphy/eggphy-cli/internal/model"
	"github.com/eggphy/eggphy-cli/internal/stemma"
)

var classifyAll bool

// classifyWorkers bounds the batch classification fan-out.
const classifyWorkers = 8

var classifyCmd = &cobra.Command{
	Use:   "classify [witness-id...]",
	Short: "Classify witnesses into their textual-tradition families",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !classifyAll && len(args) == 0 {
			return eris.New("provide witness ids or --all")
		}

		witnesses := dataset.New(cfg.Data).Load(cmd.Context())

		var targets []model.Witness
		if classifyAll {
			targets = witnesses
		} else {
			byID := make(map[string]*model.Witness, len(witnesses))
			for i := range witnesses {
				byID[witnesses[i].ID()] = &witnesses[i]
			}
			for _, id := range args {
				w, ok := byID[id]
				if !ok {
					return eris.Errorf("witness %s not found", id)
				}
				targets = append(targets, *w)
			}
		}

		labels := make([]model.FamilyLabel, len(targets))
		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(classifyWorkers)
		for i := range targets {
			i := i
			g.Go(func() error {
				labels[i] = stemma.Classify(&targets[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tFAMILY\tSYMBOL\tNAME")
		for i := range targets {
			info := model.Family(labels[i])
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", targets[i].ID(), labels[i], info.Symbol, info.Name)
		}
		return tw.Flush()
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyAll, "all", false, "classify every witness in the dataset")
	rootCmd.AddCommand(classifyCmd)
}
