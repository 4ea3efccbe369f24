// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"audioscout/internal/auth"
	"audioscout/internal/research"
	"audioscout/internal/spotify"
	"audioscout/internal/store"
	"audioscout/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a batch of keywords against the audiobook catalog",
	Long: `Research queries the catalog once per keyword, strictly in order, with a
throttle delay between requests. Each keyword yields supply, popularity,
and demand metrics plus trend deltas against the previous run. Per-keyword
failures are recorded and the batch continues; an expired token aborts the
remaining batch.

Keywords come from --keywords (comma-separated), --file (one per line), or
stdin when neither is given.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	raw, err := keywordInput(cmd)
	if err != nil {
		return err
	}

	cfg := resolveConfig(cmd)
	creds := resolveCredentials(cmd)
	applyResearchFlags(cmd, &cfg.Search)

	authClient := &http.Client{Timeout: cfg.Search.Timeout}
	session, err := auth.Exchange(context.Background(), authClient, creds)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	prev, err := previousSnapshot(cmd, db)
	if err != nil {
		return err
	}

	pipe := research.Pipeline{
		Searcher: spotify.NewClient(cfg.Search),
		Cfg:      cfg.Search,
		Log:      os.Stdout,
		Progress: func(completed, total int) {
			fmt.Fprintf(os.Stderr, "progress: %d/%d (%d%%)\n", completed, total, completed*100/total)
		},
	}

	snapshot, runErr := pipe.Run(context.Background(), raw, session.AccessToken, prev)
	if runErr != nil && !errors.Is(runErr, spotify.ErrTokenExpired) {
		return runErr
	}

	if len(snapshot) > 0 {
		fmt.Println()
		printResults(cmd, snapshot)
		if err := writeExports(cmd, cfg.Search, raw, snapshot); err != nil {
			return err
		}
	}

	// An aborted run is not saved: the previous snapshot stays the delta
	// baseline until a run completes.
	if runErr == nil {
		if _, err := db.SaveSnapshot(context.Background(), snapshot); err != nil {
			return err
		}
	}

	return runErr
}

func keywordInput(cmd *cobra.Command) (string, error) {
	kwFlag, _ := cmd.Flags().GetString("keywords")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case kwFlag != "" && file != "":
		return "", fmt.Errorf("use either --keywords or --file, not both")
	case kwFlag != "":
		return strings.ReplaceAll(kwFlag, ",", "\n"), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading keyword file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading keywords from stdin: %w", err)
		}
		return string(data), nil
	}
}

func applyResearchFlags(cmd *cobra.Command, cfg *types.SearchConfig) {
	if v, _ := cmd.Flags().GetString("market"); v != "" {
		cfg.Market = v
	}
	if cmd.Flags().Changed("delay") {
		d, _ := cmd.Flags().GetDuration("delay")
		cfg.RequestDelay = d
	}
}

func previousSnapshot(cmd *cobra.Command, db *store.Store) (types.RunSnapshot, error) {
	prevFile, _ := cmd.Flags().GetString("prev")
	if prevFile != "" {
		rf, err := research.ReadRunFile(prevFile)
		if err != nil {
			return nil, err
		}
		return rf.Snapshot(), nil
	}
	return db.LatestSnapshot(context.Background())
}

func printResults(cmd *cobra.Command, snapshot types.RunSnapshot) {
	ranked := research.Rank(snapshot)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(ranked)
		return
	}

	summary := research.Summarize(snapshot)
	fmt.Printf("Keywords: %d  Valid: %d  Total supply: %d  Avg popularity: %d\n\n",
		len(snapshot), summary.ValidCount, summary.TotalSupply, summary.AvgPopularity)
	research.FormatTable(ranked, os.Stdout)

	top := research.TopOpportunities(ranked, 10)
	if len(top) > 0 {
		fmt.Println("\nTop opportunities:")
		for i, r := range top {
			fmt.Printf("  %2d. %-30s  opportunity %d\n", i+1, r.Keyword, research.OpportunityScore(r))
		}
	}
}

func writeExports(cmd *cobra.Command, cfg types.SearchConfig, raw string, snapshot types.RunSnapshot) error {
	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		if csvPath == "auto" {
			csvPath = research.ExportFilename(time.Now())
		}
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating CSV file: %w", err)
		}
		defer f.Close()
		if err := research.WriteCSV(f, snapshot); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", csvPath)
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := research.WriteRunFile(outPath, research.ParseKeywords(raw), cfg, snapshot); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	}
	return nil
}

func init() {
	researchCmd.Flags().String("keywords", "", "comma-separated keywords")
	researchCmd.Flags().String("file", "", "file with one keyword per line")
	researchCmd.Flags().String("prev", "", "run file to use as the previous snapshot (default: latest stored run)")
	researchCmd.Flags().String("csv", "", "write CSV export to this path (\"auto\" for the dated filename)")
	researchCmd.Flags().String("out", "", "write a YAML run file to this path")
	researchCmd.Flags().String("market", "", "catalog market (ISO 3166-1 country code)")
	researchCmd.Flags().Duration("delay", 0, "throttle delay between keyword lookups")
	researchCmd.Flags().Bool("json", false, "output ranked results as JSON")

	rootCmd.AddCommand(researchCmd)
}
