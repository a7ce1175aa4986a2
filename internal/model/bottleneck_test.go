package model

import "testing"

// TestRankBottlenecks verifies ranking by error rate, highest first.
func TestRankBottlenecks(t *testing.T) {
	t.Parallel()

	ranked := RankBottlenecks(Bottlenecks())
	want := []string{"Transferência", "I/O", "CPU", "Banco de Dados"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(ranked))
	}
	for i := range want {
		if ranked[i].Category != want[i] {
			t.Errorf("rank %d: expected %q, got %q", i, want[i], ranked[i].Category)
		}
	}

	// Input must not be reordered.
	if Bottlenecks()[0].Category != "CPU" {
		t.Error("expected declaration order to be preserved")
	}
}

// TestRankBottlenecksStableTies ensures equal error rates keep input order.
func TestRankBottlenecksStableTies(t *testing.T) {
	t.Parallel()

	in := []Bottleneck{
		{Category: "a", ErrorPercent: 10},
		{Category: "b", ErrorPercent: 20},
		{Category: "c", ErrorPercent: 10},
	}
	ranked := RankBottlenecks(in)
	got := ranked[0].Category + ranked[1].Category + ranked[2].Category
	if got != "bac" {
		t.Errorf("expected order bac, got %s", got)
	}
}

// TestSplitByThreshold verifies the 30% reference classification.
func TestSplitByThreshold(t *testing.T) {
	t.Parallel()

	above, below := SplitByThreshold(Bottlenecks(), BottleneckThreshold)

	inAbove := map[string]bool{}
	for _, b := range above {
		inAbove[b.Category] = true
	}
	for _, c := range []string{"I/O", "Transferência", "CPU"} {
		if !inAbove[c] {
			t.Errorf("expected %q above the threshold", c)
		}
	}
	if len(below) != 1 || below[0].Category != "Banco de Dados" {
		t.Errorf("expected only Banco de Dados below the threshold, got %+v", below)
	}
}

// TestBottleneckLabels tests label formatting.
func TestBottleneckLabels(t *testing.T) {
	t.Parallel()

	b := Bottleneck{Category: "I/O", Endpoint: "heavy-io"}
	if b.Label() != "I/O\n(heavy-io)" {
		t.Errorf("unexpected label %q", b.Label())
	}
	if b.InlineLabel() != "I/O (heavy-io)" {
		t.Errorf("unexpected inline label %q", b.InlineLabel())
	}
}
