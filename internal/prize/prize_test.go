package prize

import (
	"testing"

	"github.com/vovakirdan/beambox/internal/beam"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected Category
	}{
		{Jackpot, CategoryMoney},
		{SmallSum, CategoryMoney},
		{Plus5Beams, CategoryInventory},
		{Minus1Beam, CategoryInventory},
		{ShadowBeam, CategoryBeam},
		{WaterBeam, CategoryBeam},
		{Bomb, CategoryBomb},
	}
	for _, tc := range tests {
		if got := tc.kind.Category(); got != tc.expected {
			t.Errorf("%v.Category() = %v, expected %v", tc.kind, got, tc.expected)
		}
	}
}

func TestBeamPrizes(t *testing.T) {
	got, ok := FlashCannonBeam.Beam()
	if !ok || got != beam.FlashCannon {
		t.Errorf("FlashCannonBeam.Beam() = %v, %v", got, ok)
	}
	if _, ok := Jackpot.Beam(); ok {
		t.Error("jackpot should not grant a beam")
	}

	granted := make(map[beam.Kind]bool)
	for _, k := range All() {
		if b, ok := k.Beam(); ok {
			granted[b] = true
		}
	}
	if granted[beam.Normal] {
		t.Error("normal beam should not be a prize")
	}
	if len(granted) != len(beam.All())-1 {
		t.Errorf("beam prizes cover %d kinds, expected %d", len(granted), len(beam.All())-1)
	}
}

func TestNegative(t *testing.T) {
	for _, k := range All() {
		expected := k == Minus1Beam || k == Bomb
		if k.Negative() != expected {
			t.Errorf("%v.Negative() = %v, expected %v", k, k.Negative(), expected)
		}
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range All() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("treasure"); err == nil {
		t.Error("expected error for unknown prize")
	}
}

func TestShortLabelsUnique(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range All() {
		if len(k.Short()) != 2 {
			t.Errorf("%v.Short() = %q, expected two characters", k, k.Short())
		}
		if other, ok := seen[k.Short()]; ok {
			t.Errorf("%v and %v share label %q", k, other, k.Short())
		}
		seen[k.Short()] = k
	}
}
