// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"math"

	"audioscout/pkg/types"
)

// defaultPopularity substitutes for items whose popularity the catalog
// omits, and for keywords whose item list comes back empty.
const defaultPopularity = 50

// averagePopularity returns the rounded mean popularity of items. Items
// without a popularity value count as defaultPopularity; an empty list
// averages to defaultPopularity outright.
func averagePopularity(items []types.CatalogItem) int {
	if len(items) == 0 {
		return defaultPopularity
	}
	sum := 0
	for _, item := range items {
		if item.Popularity != nil {
			sum += *item.Popularity
		} else {
			sum += defaultPopularity
		}
	}
	return int(math.Round(float64(sum) / float64(len(items))))
}

// demandScore derives a demand proxy from the catalog match count:
// min(100, round(itemCount/5)). It is a cheap stand-in for an external
// demand signal, capped to keep the range bounded.
func demandScore(itemCount int) int {
	score := int(math.Round(float64(itemCount) / 5))
	if score > 100 {
		return 100
	}
	return score
}
