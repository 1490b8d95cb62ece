// Package prize lists the rewards and hazards that sit on the ring of
// tiles around a board.
package prize

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/beambox/internal/beam"
)

// Kind identifies a prize.
type Kind uint8

const (
	Jackpot Kind = iota
	LargeSum
	MediumSum
	SmallSum
	Plus3Beams
	Plus5Beams
	Minus1Beam
	CometBeam
	FlameBeam
	FlashCannonBeam
	ShadowBeam
	PsyBeam
	DoublePrizeBeam
	WaterBeam
	Bomb
)

// Category groups prize kinds for placement quotas.
type Category uint8

const (
	CategoryMoney Category = iota
	CategoryInventory
	CategoryBeam
	CategoryBomb
)

// Categories lists every category.
var Categories = []Category{CategoryMoney, CategoryInventory, CategoryBeam, CategoryBomb}

func (c Category) String() string {
	switch c {
	case CategoryMoney:
		return "money"
	case CategoryInventory:
		return "inventory"
	case CategoryBeam:
		return "beam"
	case CategoryBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

type info struct {
	name     string
	short    string
	category Category
	beam     beam.Kind
	negative bool
}

var infos = [...]info{
	Jackpot:         {name: "jackpot", short: "JP", category: CategoryMoney},
	LargeSum:        {name: "large-sum", short: "$L", category: CategoryMoney},
	MediumSum:       {name: "medium-sum", short: "$M", category: CategoryMoney},
	SmallSum:        {name: "small-sum", short: "$S", category: CategoryMoney},
	Plus3Beams:      {name: "plus-3-beams", short: "+3", category: CategoryInventory},
	Plus5Beams:      {name: "plus-5-beams", short: "+5", category: CategoryInventory},
	Minus1Beam:      {name: "minus-1-beam", short: "-1", category: CategoryInventory, negative: true},
	CometBeam:       {name: "comet", short: "Co", category: CategoryBeam, beam: beam.Comet},
	FlameBeam:       {name: "flame", short: "Fl", category: CategoryBeam, beam: beam.Flame},
	FlashCannonBeam: {name: "flash-cannon", short: "FC", category: CategoryBeam, beam: beam.FlashCannon},
	ShadowBeam:      {name: "shadow", short: "Sh", category: CategoryBeam, beam: beam.Shadow},
	PsyBeam:         {name: "psybeam", short: "Ps", category: CategoryBeam, beam: beam.Psybeam},
	DoublePrizeBeam: {name: "double-prize", short: "x2", category: CategoryBeam, beam: beam.DoublePrize},
	WaterBeam:       {name: "water", short: "Wa", category: CategoryBeam, beam: beam.Water},
	Bomb:            {name: "bomb", short: "**", category: CategoryBomb, negative: true},
}

// All returns every prize kind in canonical order. The generator places
// minimum counts in this order.
func All() []Kind {
	kinds := make([]Kind, len(infos))
	for i := range infos {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) valid() bool {
	return int(k) < len(infos)
}

// String returns the prize identifier.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("prize(%d)", k)
	}
	return infos[k].name
}

// Short returns a two-character label for compact board dumps.
func (k Kind) Short() string {
	if !k.valid() {
		return "??"
	}
	return infos[k].short
}

// Category returns the quota group of the prize.
func (k Kind) Category() Category {
	if !k.valid() {
		return CategoryMoney
	}
	return infos[k].category
}

// Beam returns the beam granted by a beam prize.
func (k Kind) Beam() (beam.Kind, bool) {
	if k.Category() != CategoryBeam {
		return beam.Normal, false
	}
	return infos[k].beam, true
}

// Negative reports whether collecting the prize hurts the player.
func (k Kind) Negative() bool {
	return k.valid() && infos[k].negative
}

// ParseKind converts an identifier such as "large-sum" into a Kind.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for i, inf := range infos {
		if inf.name == norm || strings.ReplaceAll(inf.name, "-", "") == norm {
			return Kind(i), nil
		}
	}
	return Jackpot, fmt.Errorf("unknown prize %q", s)
}

// MarshalText implements encoding.TextMarshaler so prize kinds can key
// YAML maps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
