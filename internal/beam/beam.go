// Package beam defines the beam kinds a player can fire and the way each
// kind interacts with obstacles.
package beam

import (
	"fmt"
	"strings"
)

// Kind identifies a type of beam.
type Kind uint8

const (
	Normal Kind = iota
	Comet
	Flame
	FlashCannon
	Shadow
	Psybeam
	DoublePrize
	Water
)

var kindNames = [...]string{
	Normal:      "normal",
	Comet:       "comet",
	Flame:       "flame",
	FlashCannon: "flash-cannon",
	Shadow:      "shadow",
	Psybeam:     "psybeam",
	DoublePrize: "double-prize",
	Water:       "water",
}

// All returns every beam kind in display order.
func All() []Kind {
	return []Kind{Normal, Comet, Flame, FlashCannon, Shadow, Psybeam, DoublePrize, Water}
}

// String returns the beam's identifier.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("beam(%d)", k)
}

// Title returns a human-readable name.
func (k Kind) Title() string {
	parts := strings.Split(k.String(), "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ParseKind converts an identifier such as "flash-cannon" into a Kind.
// Matching ignores case, spaces and underscores.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, k := range All() {
		if k.String() == norm || strings.ReplaceAll(k.String(), "-", "") == norm {
			return k, nil
		}
	}
	return Normal, fmt.Errorf("unknown beam %q", s)
}

// MarshalText implements encoding.TextMarshaler.
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

// Profile describes how a beam reacts to obstacles.
// A profile can change while a single beam travels; see AfterDestroy.
type Profile struct {
	Deflectable bool // turns when passing beside an obstacle
	Collidable  bool // stops when striking an obstacle head on
	CanDestroy  bool // removes an obstacle it strikes head on
}

// CanPhase reports whether the beam passes through obstacles untouched.
func (p Profile) CanPhase() bool {
	return !p.Collidable && !p.CanDestroy
}

// AfterDestroy returns the profile a beam carries for the rest of its
// flight once it has destroyed an obstacle: it keeps going, but the next
// obstacle it strikes stops it.
func (p Profile) AfterDestroy() Profile {
	p.Collidable = true
	p.CanDestroy = false
	return p
}

// Profile returns the initial interaction profile of the beam kind.
func (k Kind) Profile() Profile {
	switch k {
	case Normal, Comet, DoublePrize, Water:
		return Profile{Deflectable: true, Collidable: true}
	case Flame:
		return Profile{Deflectable: true, CanDestroy: true}
	case FlashCannon:
		return Profile{Collidable: true}
	case Shadow:
		return Profile{Deflectable: true}
	case Psybeam:
		return Profile{}
	default:
		return Profile{Deflectable: true, Collidable: true}
	}
}

// EmitsOpposite reports whether the beam skips the board entirely and
// leaves from the ring cell straight across from where it entered.
func (k Kind) EmitsOpposite() bool {
	return k == Psybeam
}

// TriggersBomb reports whether landing on a bomb with this beam sets it off.
// Other beams defuse the bomb instead.
func (k Kind) TriggersBomb() bool {
	switch k {
	case Normal, Comet, Shadow, Psybeam, DoublePrize:
		return true
	default:
		return false
	}
}

// PayoutFactor is the multiplier applied to money won with this beam.
func (k Kind) PayoutFactor() int {
	if k == DoublePrize {
		return 2
	}
	return 1
}
