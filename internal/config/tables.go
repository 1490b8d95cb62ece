package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/beambox/internal/prize"
)

// Tables are the generator tables with prize names resolved.
type Tables struct {
	Levels                 int
	MaxUnreachable         float64
	HiddenObstacles        []int
	DefaultProbUnreachable float64
	ProbUnreachable        map[prize.Kind]float64
	Yields                 map[prize.Kind][]Range
}

// Tables resolves prize names and checks the tables for consistency.
// Every prize must have a yield for every level.
func (g GeneratorConfig) Tables() (Tables, error) {
	t := Tables{
		Levels:                 len(g.HiddenObstacles),
		MaxUnreachable:         g.MaxUnreachable,
		HiddenObstacles:        append([]int(nil), g.HiddenObstacles...),
		DefaultProbUnreachable: g.DefaultProbUnreachable,
		ProbUnreachable:        make(map[prize.Kind]float64, len(g.ProbUnreachable)),
		Yields:                 make(map[prize.Kind][]Range, len(g.Yields)),
	}

	var errs []error
	if t.Levels == 0 {
		errs = append(errs, errors.New("hidden_obstacles: at least one level is required"))
	}
	if g.MaxUnreachable < 0 || g.MaxUnreachable > 1 {
		errs = append(errs, fmt.Errorf("max_unreachable: %v is outside [0, 1]", g.MaxUnreachable))
	}
	if g.DefaultProbUnreachable < 0 || g.DefaultProbUnreachable > 1 {
		errs = append(errs, fmt.Errorf("default_prob_unreachable: %v is outside [0, 1]", g.DefaultProbUnreachable))
	}

	for _, name := range sortedKeys(g.ProbUnreachable) {
		kind, err := prize.ParseKind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("prob_unreachable: %w", err))
			continue
		}
		p := g.ProbUnreachable[name]
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("prob_unreachable.%s: %v is outside [0, 1]", name, p))
		}
		t.ProbUnreachable[kind] = p
	}

	for _, name := range sortedKeys(g.Yields) {
		kind, err := prize.ParseKind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("yields: %w", err))
			continue
		}
		ranges := g.Yields[name]
		if len(ranges) != t.Levels {
			errs = append(errs, fmt.Errorf("yields.%s: %d levels, expected %d", name, len(ranges), t.Levels))
		}
		for i, r := range ranges {
			if r.Min < 0 || r.Max < r.Min {
				errs = append(errs, fmt.Errorf("yields.%s level %d: invalid range [%d, %d]", name, i+1, r.Min, r.Max))
			}
		}
		t.Yields[kind] = append([]Range(nil), ranges...)
	}
	for _, kind := range prize.All() {
		if _, ok := t.Yields[kind]; !ok {
			errs = append(errs, fmt.Errorf("yields: missing prize %s", kind))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Tables{}, fmt.Errorf("generator config: %w", err)
	}
	return t, nil
}

// ValidLevel reports whether the tables cover the level.
func (t Tables) ValidLevel(level int) bool {
	return level >= 1 && level <= t.Levels
}

// Yield returns the count range of a prize at a level.
func (t Tables) Yield(kind prize.Kind, level int) Range {
	ranges := t.Yields[kind]
	if level < 1 || level > len(ranges) {
		return Range{}
	}
	return ranges[level-1]
}

// Hidden returns the number of hidden obstacles at a level.
func (t Tables) Hidden(level int) int {
	if !t.ValidLevel(level) {
		return 0
	}
	return t.HiddenObstacles[level-1]
}

// ProbUnreachableOf returns the chance a prize is placed out of reach.
func (t Tables) ProbUnreachableOf(kind prize.Kind) float64 {
	if p, ok := t.ProbUnreachable[kind]; ok {
		return p
	}
	return t.DefaultProbUnreachable
}

// PayoutTable is the payout configuration with prize names resolved.
type PayoutTable struct {
	Jackpot []int
	Prizes  map[prize.Kind]int
}

// Table resolves prize names.
func (p PayoutConfig) Table() (PayoutTable, error) {
	t := PayoutTable{
		Jackpot: append([]int(nil), p.Jackpot...),
		Prizes:  make(map[prize.Kind]int, len(p.Prizes)),
	}
	var errs []error
	if len(p.Jackpot) == 0 {
		errs = append(errs, errors.New("jackpot: at least one level is required"))
	}
	for _, name := range sortedKeys(p.Prizes) {
		kind, err := prize.ParseKind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("prizes: %w", err))
			continue
		}
		if kind == prize.Jackpot {
			errs = append(errs, errors.New("prizes: jackpot is paid from the jackpot list"))
			continue
		}
		t.Prizes[kind] = p.Prizes[name]
	}
	if err := errors.Join(errs...); err != nil {
		return PayoutTable{}, fmt.Errorf("payout config: %w", err)
	}
	return t, nil
}

// Amount returns the value of a prize at a level. Levels past the end of
// the jackpot list pay the last entry.
func (t PayoutTable) Amount(kind prize.Kind, level int) int {
	if kind != prize.Jackpot {
		return t.Prizes[kind]
	}
	if len(t.Jackpot) == 0 {
		return 0
	}
	idx := min(max(level, 1), len(t.Jackpot)) - 1
	return t.Jackpot[idx]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
