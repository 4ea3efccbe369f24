// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"audioscout/internal/research"
	"audioscout/internal/store"
	"audioscout/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored research runs",
	Long: `History lists runs saved by the research command, newest first. Use
subcommands to print one run's results or export them to CSV.`,
	RunE: runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	db, err := store.Open(resolveConfig(cmd).Store)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %s\n", "Run", "Date", "Keywords", "Valid")
	for _, rec := range records {
		fmt.Printf("%-36s  %-20s  %-8d  %d\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.KeywordCount, rec.ValidCount)
	}
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print one stored run's ranked results",
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := store.Open(resolveConfig(cmd).Store)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := loadRun(cmd, db, args)
	if err != nil {
		return err
	}
	if len(snapshot) == 0 {
		fmt.Println("No results.")
		return nil
	}

	summary := research.Summarize(snapshot)
	fmt.Printf("Keywords: %d  Valid: %d  Total supply: %d  Avg popularity: %d\n\n",
		len(snapshot), summary.ValidCount, summary.TotalSupply, summary.AvgPopularity)
	research.FormatTable(research.Rank(snapshot), os.Stdout)
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export a stored run to CSV",
	Long: `Export writes a stored run (the latest by default) as CSV with one quoted
row per keyword. The default filename embeds today's date.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	db, err := store.Open(resolveConfig(cmd).Store)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := loadRun(cmd, db, args)
	if err != nil {
		return err
	}
	if len(snapshot) == 0 {
		return fmt.Errorf("no stored run to export")
	}

	path, _ := cmd.Flags().GetString("csv")
	if path == "" {
		path = research.ExportFilename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	if err := research.WriteCSV(f, snapshot); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// loadRun returns the run named by args[0], or the latest run when no id
// is given.
func loadRun(cmd *cobra.Command, db *store.Store, args []string) (types.RunSnapshot, error) {
	ctx := context.Background()
	if len(args) > 0 {
		return db.Snapshot(ctx, args[0])
	}
	return db.LatestSnapshot(ctx)
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	historyExportCmd.Flags().String("csv", "", "output path (default: dated filename)")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
