package allocation

import (
	"testing"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
)

func defaultWeighter() *Weighter {
	return NewWeighter(config.Default().Allocation)
}

func rankingsFixture() []*domain.ContentRanking {
	return []*domain.ContentRanking{
		{ContentType: "ppv", Tier: domain.PerformanceTierTop},
		{ContentType: "bundle", Tier: domain.PerformanceTierMid},
		{ContentType: "tip_menu", Tier: domain.PerformanceTierLow},
		{ContentType: "game", Tier: domain.PerformanceTierAvoid},
	}
}

func TestAllocate_EmptyWithoutRankings(t *testing.T) {
	w := defaultWeighter()

	if got := w.Allocate(35, nil); len(got) != 0 {
		t.Errorf("Expected empty allocation without rankings, got %v", got)
	}
	if got := w.Allocate(0, rankingsFixture()); len(got) != 0 {
		t.Errorf("Expected empty allocation with zero budget, got %v", got)
	}
}

func TestAllocate_SharesAndAvoid(t *testing.T) {
	w := defaultWeighter()

	got := w.Allocate(35, rankingsFixture())

	if got["game"] != 0 {
		t.Errorf("AVOID type must get zero, got %d", got["game"])
	}
	// Shares 0.6/0.3/0.1 of 35: 21/10.5/3.5 → largest-remainder keeps the sum.
	if got["ppv"] != 21 {
		t.Errorf("TOP allocation = %d, want 21", got["ppv"])
	}

	sum := 0
	for _, n := range got {
		sum += n
	}
	if sum != 35 {
		t.Errorf("Allocations sum to %d, want 35", sum)
	}
	if got["ppv"] < got["bundle"] || got["bundle"] < got["tip_menu"] {
		t.Errorf("Tier ordering violated: %v", got)
	}
}

func TestAllocate_RenormalizesOverPresentTiers(t *testing.T) {
	w := defaultWeighter()

	// Only MID and LOW present: shares 0.3/0.1 renormalize to 3/4 and 1/4.
	rankings := []*domain.ContentRanking{
		{ContentType: "bundle", Tier: domain.PerformanceTierMid},
		{ContentType: "tip_menu", Tier: domain.PerformanceTierLow},
	}

	got := w.Allocate(28, rankings)

	if got["bundle"] != 21 {
		t.Errorf("MID allocation = %d, want 21", got["bundle"])
	}
	if got["tip_menu"] != 7 {
		t.Errorf("LOW allocation = %d, want 7", got["tip_menu"])
	}
}

func TestAllocate_EvenSplitWithinTier(t *testing.T) {
	w := defaultWeighter()

	rankings := []*domain.ContentRanking{
		{ContentType: "ppv", Tier: domain.PerformanceTierTop},
		{ContentType: "custom", Tier: domain.PerformanceTierTop},
	}

	got := w.Allocate(10, rankings)

	if got["ppv"]+got["custom"] != 10 {
		t.Errorf("Allocations sum to %d, want 10", got["ppv"]+got["custom"])
	}
	if got["ppv"] != 5 || got["custom"] != 5 {
		t.Errorf("Expected even split 5/5, got %v", got)
	}
}

func TestAllocate_OnlyAvoidPresent(t *testing.T) {
	w := defaultWeighter()

	rankings := []*domain.ContentRanking{
		{ContentType: "game", Tier: domain.PerformanceTierAvoid},
	}

	got := w.Allocate(35, rankings)

	if got["game"] != 0 {
		t.Errorf("AVOID type must get zero, got %d", got["game"])
	}
	sum := 0
	for _, n := range got {
		sum += n
	}
	if sum != 0 {
		t.Errorf("Nothing should be allocated when only AVOID exists, got %d", sum)
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	w := defaultWeighter()

	first := w.Allocate(33, rankingsFixture())
	for i := 0; i < 10; i++ {
		if got := w.Allocate(33, rankingsFixture()); len(got) != len(first) {
			t.Fatalf("Allocation size changed between runs")
		} else {
			for ct, n := range got {
				if first[ct] != n {
					t.Fatalf("Allocation not deterministic for %s: %d vs %d", ct, first[ct], n)
				}
			}
		}
	}
}
