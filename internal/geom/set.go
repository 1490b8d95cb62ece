package geom

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// keySet is the subset of mapset behaviour CoordSet relies on.
type keySet interface {
	Put(uint64)
	Has(uint64) bool
	Remove(uint64)
	Size() int
	Each(func(uint64))
}

// CoordSet is a set of coordinates keyed by their packed integer form.
// The zero value is not usable; create sets with NewCoordSet.
type CoordSet struct {
	keys keySet
}

// NewCoordSet returns a set holding the given coordinates.
func NewCoordSet(coords ...Coord) CoordSet {
	s := CoordSet{keys: mapset.New[uint64]()}
	for _, c := range coords {
		s.Add(c)
	}
	return s
}

// Add inserts c into the set.
func (s CoordSet) Add(c Coord) {
	s.keys.Put(c.Key())
}

// Has reports whether c is in the set.
func (s CoordSet) Has(c Coord) bool {
	return s.keys.Has(c.Key())
}

// Remove deletes c from the set.
func (s CoordSet) Remove(c Coord) {
	s.keys.Remove(c.Key())
}

// Len returns the number of coordinates in the set.
func (s CoordSet) Len() int {
	return s.keys.Size()
}

// Clone returns an independent copy of the set.
func (s CoordSet) Clone() CoordSet {
	out := NewCoordSet()
	s.keys.Each(func(k uint64) { out.keys.Put(k) })
	return out
}

// Union returns the coordinates present in either set.
func (s CoordSet) Union(other CoordSet) CoordSet {
	out := s.Clone()
	other.keys.Each(func(k uint64) { out.keys.Put(k) })
	return out
}

// Intersect returns the coordinates present in both sets.
func (s CoordSet) Intersect(other CoordSet) CoordSet {
	out := NewCoordSet()
	s.keys.Each(func(k uint64) {
		if other.keys.Has(k) {
			out.keys.Put(k)
		}
	})
	return out
}

// Difference returns the coordinates of s that are not in other.
func (s CoordSet) Difference(other CoordSet) CoordSet {
	out := NewCoordSet()
	s.keys.Each(func(k uint64) {
		if !other.keys.Has(k) {
			out.keys.Put(k)
		}
	})
	return out
}

// Slice returns the coordinates sorted row-major, so iteration order never
// depends on map layout.
func (s CoordSet) Slice() []Coord {
	coords := make([]Coord, 0, s.Len())
	s.keys.Each(func(k uint64) { coords = append(coords, CoordFromKey(k)) })
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	return coords
}
