package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eggphy/eggphy-cli/internal/dataset"
	"github.com/eggphy/eggphy-cli/internal/store"
)

var importHistory bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the witness dataset into the local catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		if importHistory {
			runs, err := st.ListImports(cmd.Context(), 20)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSOURCE\tCOUNT\tIMPORTED")
			for _, run := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
					run.ID, run.Source, run.Count, run.ImportedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		}

		witnesses := dataset.New(cfg.Data).Load(cmd.Context())
		run, err := st.ReplaceWitnesses(cmd.Context(), witnesses, cfg.Data.Path)
		if err != nil {
			return err
		}

		zap.L().Info("dataset imported",
			zap.String("run_id", run.ID),
			zap.Int("count", run.Count),
		)
		fmt.Printf("imported %d witnesses (run %s)\n", run.Count, run.ID)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importHistory, "history", false, "show recent import runs instead of importing")
	rootCmd.AddCommand(importCmd)
}
