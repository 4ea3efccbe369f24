// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the audioscout pipeline.
package types

import "time"

// CatalogItem is one audiobook returned by a catalog search.
type CatalogItem struct {
	// ID is the catalog identifier for the audiobook.
	ID string `json:"id" yaml:"id"`

	// Name is the audiobook title as returned by the catalog.
	Name string `json:"name" yaml:"name"`

	// Publisher is the publishing label, when the catalog reports one.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Popularity is the catalog popularity value in [0,100]. Nil when the
	// catalog omits the field; consumers substitute a neutral default.
	Popularity *int `json:"popularity,omitempty" yaml:"popularity,omitempty"`
}

// KeywordResult is the outcome of researching a single keyword.
// A result is either ok (ErrorMessage empty, metrics populated) or failed
// (ErrorMessage set, ItemCount -1, every other metric zero). Nothing in
// between is ever produced.
type KeywordResult struct {
	// Keyword is the trimmed search term. It is the comparison key
	// across runs.
	Keyword string `json:"keyword" yaml:"keyword"`

	// ItemCount is the total number of matching audiobooks the catalog
	// reported, or -1 when the lookup failed.
	ItemCount int `json:"item_count" yaml:"item_count"`

	// AvgPopularity is the rounded mean popularity of the returned items,
	// in [0,100].
	AvgPopularity int `json:"avg_popularity" yaml:"avg_popularity"`

	// DemandScore is a derived demand proxy in [0,100], scaled from
	// ItemCount.
	DemandScore int `json:"demand_score" yaml:"demand_score"`

	// PopularityDelta is AvgPopularity minus the previous run's value for
	// the same keyword, 0 when the keyword has no prior result.
	PopularityDelta int `json:"popularity_delta" yaml:"popularity_delta"`

	// SupplyDelta is ItemCount minus the previous run's value for the
	// same keyword, 0 when the keyword has no prior result.
	SupplyDelta int `json:"supply_delta" yaml:"supply_delta"`

	// ErrorMessage describes why the lookup failed. Empty on success.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// CapturedAt is the calendar date of the run that produced this result.
	CapturedAt time.Time `json:"captured_at" yaml:"captured_at"`
}

// Failed reports whether this result records a lookup failure.
func (r KeywordResult) Failed() bool {
	return r.ErrorMessage != ""
}

// RunSnapshot is the ordered result set from one pipeline invocation.
// Order matches the keyword input order.
type RunSnapshot []KeywordResult

// Find returns the result for keyword (exact match) and whether one exists.
func (s RunSnapshot) Find(keyword string) (KeywordResult, bool) {
	for _, r := range s {
		if r.Keyword == keyword {
			return r, true
		}
	}
	return KeywordResult{}, false
}
