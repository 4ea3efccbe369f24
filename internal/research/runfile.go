// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"audioscout/pkg/types"
)

// RunFile is the on-disk representation of one research run. A saved run
// can be reloaded later and passed back into the pipeline as the previous
// snapshot for delta computation, without a database.
type RunFile struct {
	Keywords []string              `yaml:"keywords"`
	Config   RunFileConfig         `yaml:"config"`
	Results  []types.KeywordResult `yaml:"results"`
	Summary  RunFileSummary        `yaml:"summary"`
}

// RunFileConfig stores the search configuration that produced the results.
type RunFileConfig struct {
	Limit        int           `yaml:"limit"`
	Market       string        `yaml:"market,omitempty"`
	RequestDelay time.Duration `yaml:"request_delay"`
}

// RunFileSummary stores result statistics and a timestamp.
type RunFileSummary struct {
	Total         int       `yaml:"total"`
	ValidCount    int       `yaml:"valid_count"`
	TotalSupply   int       `yaml:"total_supply"`
	AvgPopularity int       `yaml:"avg_popularity"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// WriteRunFile saves keywords, configuration, and results to a YAML file.
func WriteRunFile(path string, keywords []string, cfg types.SearchConfig, snapshot types.RunSnapshot) error {
	summary := Summarize(snapshot)
	rf := RunFile{
		Keywords: keywords,
		Config: RunFileConfig{
			Limit:        cfg.Limit,
			Market:       cfg.Market,
			RequestDelay: cfg.RequestDelay,
		},
		Results: snapshot,
		Summary: RunFileSummary{
			Total:         len(snapshot),
			ValidCount:    summary.ValidCount,
			TotalSupply:   summary.TotalSupply,
			AvgPopularity: summary.AvgPopularity,
			Timestamp:     time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

// Snapshot returns the stored results as a RunSnapshot.
func (rf *RunFile) Snapshot() types.RunSnapshot {
	return types.RunSnapshot(rf.Results)
}
