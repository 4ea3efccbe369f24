package research

import (
	"testing"

	"audioscout/pkg/types"
)

func okResult(keyword string, itemCount, avgPop, demand int) types.KeywordResult {
	return types.KeywordResult{
		Keyword:       keyword,
		ItemCount:     itemCount,
		AvgPopularity: avgPop,
		DemandScore:   demand,
	}
}

func failedResult(keyword string) types.KeywordResult {
	return types.KeywordResult{
		Keyword:      keyword,
		ItemCount:    -1,
		ErrorMessage: "HTTP 500",
	}
}

// --- OpportunityScore ---

func TestOpportunityScore(t *testing.T) {
	tests := []struct {
		name   string
		result types.KeywordResult
		want   int
	}{
		{"zero supply scores demand times 100", okResult("a", 0, 50, 3), 300},
		{"reference case", okResult("b", 499, 50, 99), 20}, // round(99/500*100)
		{"zero demand is a valid zero score", okResult("c", 40, 50, 0), 0},
		{"failed result is undefined", failedResult("d"), UndefinedScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OpportunityScore(tt.result); got != tt.want {
				t.Errorf("OpportunityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

// --- Summarize ---

func TestSummarize(t *testing.T) {
	snapshot := types.RunSnapshot{
		okResult("a", 10, 60, 2),
		failedResult("b"),
		okResult("c", 0, 40, 0),
		okResult("d", 30, 80, 6),
	}

	s := Summarize(snapshot)
	if s.ValidCount != 3 {
		t.Errorf("ValidCount = %d, want 3", s.ValidCount)
	}
	// Failed (-1) and zero counts are excluded from supply.
	if s.TotalSupply != 40 {
		t.Errorf("TotalSupply = %d, want 40", s.TotalSupply)
	}
	if s.AvgPopularity != 60 {
		t.Errorf("AvgPopularity = %d, want 60", s.AvgPopularity)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.ValidCount != 0 || s.TotalSupply != 0 || s.AvgPopularity != 0 {
		t.Errorf("empty snapshot summary = %+v, want zeros", s)
	}
}

func TestSummarizeAllFailed(t *testing.T) {
	s := Summarize(types.RunSnapshot{failedResult("a"), failedResult("b")})
	if s.ValidCount != 0 || s.AvgPopularity != 0 {
		t.Errorf("all-failed summary = %+v, want zeros", s)
	}
}

// --- Rank ---

func TestRankDescendingFailedLast(t *testing.T) {
	snapshot := types.RunSnapshot{
		okResult("low", 499, 50, 99),  // opportunity 20
		failedResult("broken"),
		okResult("high", 0, 50, 3),    // opportunity 300
		okResult("zero", 40, 50, 0),   // opportunity 0
	}

	ranked := Rank(snapshot)
	wantOrder := []string{"high", "low", "zero", "broken"}
	for i, want := range wantOrder {
		if ranked[i].Keyword != want {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Keyword, want)
		}
	}

	// Input snapshot must stay untouched.
	if snapshot[0].Keyword != "low" {
		t.Error("Rank mutated its input")
	}
}

func TestRankAllFailedKeepsInputOrder(t *testing.T) {
	snapshot := types.RunSnapshot{
		failedResult("first"),
		failedResult("second"),
		failedResult("third"),
	}
	ranked := Rank(snapshot)
	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].Keyword != want {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Keyword, want)
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	snapshot := types.RunSnapshot{
		okResult("a", 9, 50, 2), // opportunity 20
		okResult("b", 9, 50, 2), // opportunity 20
	}
	ranked := Rank(snapshot)
	if ranked[0].Keyword != "a" || ranked[1].Keyword != "b" {
		t.Errorf("tied order = %q, %q, want a, b", ranked[0].Keyword, ranked[1].Keyword)
	}
}

// --- TopOpportunities ---

func TestTopOpportunities(t *testing.T) {
	var snapshot types.RunSnapshot
	for i := 0; i < 12; i++ {
		snapshot = append(snapshot, okResult(string(rune('a'+i)), 0, 50, i))
	}
	snapshot = append(snapshot, failedResult("broken"))

	top := TopOpportunities(Rank(snapshot), 10)
	if len(top) != 10 {
		t.Fatalf("len(top) = %d, want 10", len(top))
	}
	for _, r := range top {
		if r.Failed() {
			t.Errorf("failed result %q in top opportunities", r.Keyword)
		}
	}
}

func TestTopOpportunitiesIncludesZeroScore(t *testing.T) {
	snapshot := types.RunSnapshot{okResult("zero", 40, 50, 0)}
	top := TopOpportunities(Rank(snapshot), 10)
	if len(top) != 1 {
		t.Fatalf("zero opportunity score should still be listed, got %d entries", len(top))
	}
}
