package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Zanice/2D-Game-Framework/internal/storage"
	"github.com/spf13/cobra"
)

var (
	historyDB    string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "gridsim.db", "SQLite history database")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	db, err := storage.OpenHistory(historyDB)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSEED\tTICKS\tSURVIVORS\tDEATHS\tCREATED\tREPLAY")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			r.RunID, r.Seed, r.Ticks, r.Survivors, r.Deaths,
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.ReplayPath)
	}
	return w.Flush()
}
