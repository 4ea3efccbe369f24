// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs the keyword research pipeline: it queries the
// audiobook catalog once per keyword, derives supply/demand metrics,
// compares against the previous run, and ranks opportunities.
package research

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"audioscout/internal/spotify"
	"audioscout/pkg/types"
)

var (
	// ErrNoKeywords means the keyword input contained no non-empty lines.
	ErrNoKeywords = errors.New("no keywords to research")

	// ErrMissingToken means no bearer token was supplied.
	ErrMissingToken = errors.New("missing access token")
)

// Searcher queries the catalog for a single keyword. *spotify.Client
// implements it; tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, token, keyword string) (total int, items []types.CatalogItem, err error)
}

// ProgressFunc observes pipeline progress after each completed keyword.
type ProgressFunc func(completed, total int)

// Pipeline executes the sequential fetch-throttle-aggregate loop. One
// request is in flight at a time; the throttle delay between keywords is
// a cooperative wait that cancels with the context.
type Pipeline struct {
	Searcher Searcher
	Cfg      types.SearchConfig

	// Progress, when set, is called with (completed, total) after each
	// keyword's result is appended.
	Progress ProgressFunc

	// Log receives per-keyword status lines. Defaults to io.Discard.
	Log io.Writer
}

// ParseKeywords splits raw input on newlines, trims each line, and drops
// empty lines.
func ParseKeywords(raw string) []string {
	var keywords []string
	for _, line := range strings.Split(raw, "\n") {
		if kw := strings.TrimSpace(line); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// Run researches every keyword in raw, strictly in order, and returns the
// snapshot of results. prev supplies the previous run's results for delta
// computation and may be empty.
//
// A catalog 401 aborts the remaining batch immediately: Run returns the
// partial snapshot together with an error wrapping spotify.ErrTokenExpired,
// and unprocessed keywords get no result. Any other per-keyword failure is
// recorded in the snapshot and the batch continues.
func (p *Pipeline) Run(ctx context.Context, raw, token string, prev types.RunSnapshot) (types.RunSnapshot, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	keywords := ParseKeywords(raw)
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	w := p.Log
	if w == nil {
		w = io.Discard
	}

	capturedAt := time.Now()
	snapshot := make(types.RunSnapshot, 0, len(keywords))

	for i, kw := range keywords {
		if i > 0 && p.Cfg.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				return snapshot, ctx.Err()
			case <-time.After(p.Cfg.RequestDelay):
			}
		}

		total, items, err := p.Searcher.Search(ctx, token, kw)
		if errors.Is(err, spotify.ErrTokenExpired) {
			fmt.Fprintf(w, "aborted: %s (%v)\n", kw, err)
			return snapshot, fmt.Errorf("after %d of %d keywords: %w", i, len(keywords), err)
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", kw, err)
			snapshot = append(snapshot, types.KeywordResult{
				Keyword:      kw,
				ItemCount:    -1,
				ErrorMessage: err.Error(),
				CapturedAt:   capturedAt,
			})
			p.publish(i+1, len(keywords))
			continue
		}

		r := types.KeywordResult{
			Keyword:       kw,
			ItemCount:     total,
			AvgPopularity: averagePopularity(items),
			DemandScore:   demandScore(total),
			CapturedAt:    capturedAt,
		}
		if prior, ok := prev.Find(kw); ok {
			r.PopularityDelta = r.AvgPopularity - prior.AvgPopularity
			r.SupplyDelta = r.ItemCount - prior.ItemCount
		}

		fmt.Fprintf(w, "ok:      %s (%d found, popularity %d)\n", kw, r.ItemCount, r.AvgPopularity)
		snapshot = append(snapshot, r)
		p.publish(i+1, len(keywords))
	}

	return snapshot, nil
}

func (p *Pipeline) publish(completed, total int) {
	if p.Progress != nil {
		p.Progress(completed, total)
	}
}
