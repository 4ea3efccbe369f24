// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"math"
	"sort"

	"audioscout/pkg/types"
)

// UndefinedScore is the opportunity score of a failed result. It sorts
// below every computed score (which are all >= 0).
const UndefinedScore = -1

// OpportunityScore rewards high estimated demand against low existing
// supply: round(demandScore / (itemCount+1) * 100). Failed results have
// no defined score and return UndefinedScore. A zero score is a valid,
// displayable value, not an error.
func OpportunityScore(r types.KeywordResult) int {
	if r.Failed() {
		return UndefinedScore
	}
	return int(math.Round(float64(r.DemandScore) / float64(r.ItemCount+1) * 100))
}

// Summary holds reduced statistics over one snapshot.
type Summary struct {
	// ValidCount is the number of successful results.
	ValidCount int `json:"valid_count" yaml:"valid_count"`

	// TotalSupply sums ItemCount over results with a positive count.
	TotalSupply int `json:"total_supply" yaml:"total_supply"`

	// AvgPopularity is the rounded mean AvgPopularity over successful
	// results, 0 when there are none.
	AvgPopularity int `json:"avg_popularity" yaml:"avg_popularity"`
}

// Summarize reduces a snapshot to its summary statistics.
func Summarize(snapshot types.RunSnapshot) Summary {
	var s Summary
	popularitySum := 0
	for _, r := range snapshot {
		if r.Failed() {
			continue
		}
		s.ValidCount++
		popularitySum += r.AvgPopularity
		if r.ItemCount > 0 {
			s.TotalSupply += r.ItemCount
		}
	}
	if s.ValidCount > 0 {
		s.AvgPopularity = int(math.Round(float64(popularitySum) / float64(s.ValidCount)))
	}
	return s
}

// Rank returns the snapshot sorted descending by opportunity score.
// Failed results sort last; ties keep the original keyword-input order.
func Rank(snapshot types.RunSnapshot) types.RunSnapshot {
	ranked := make(types.RunSnapshot, len(snapshot))
	copy(ranked, snapshot)
	sort.SliceStable(ranked, func(i, j int) bool {
		return OpportunityScore(ranked[i]) > OpportunityScore(ranked[j])
	})
	return ranked
}

// TopOpportunities returns the first n successful entries of a ranked
// snapshot.
func TopOpportunities(ranked types.RunSnapshot, n int) types.RunSnapshot {
	var top types.RunSnapshot
	for _, r := range ranked {
		if r.Failed() {
			continue
		}
		top = append(top, r)
		if len(top) == n {
			break
		}
	}
	return top
}
