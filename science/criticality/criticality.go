/*
Copyright © 2019 the puffins authors.
This file is part of puffins.

puffins is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

puffins is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with puffins.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package criticality locates the poleward edge of a Hadley cell from
// a profile of absolute vorticity.
package criticality

import (
	"fmt"
	"math"
	"sort"

	"github.com/spatialmodel/puffins"
)

// Hemisphere selects the half of the latitude grid that is searched.
type Hemisphere int

const (
	// Northern comprises latitudes ≥ 0.
	Northern Hemisphere = iota
	// Southern comprises latitudes ≤ 0.
	Southern
)

func (h Hemisphere) String() string {
	switch h {
	case Northern:
		return "Northern"
	case Southern:
		return "Southern"
	default:
		return fmt.Sprintf("Hemisphere(%d)", int(h))
	}
}

func (h Hemisphere) contains(lat float64) bool {
	switch h {
	case Northern:
		return lat >= 0
	case Southern:
		return lat <= 0
	default:
		return false
	}
}

type sample struct {
	lat, v float64
}

// ZeroCross returns the latitude in hemisphere h at which f changes
// sign, which for absolute vorticity is taken to be the cell edge.
//
// Samples are scanned from the equator toward the pole, and the first
// sign change is returned. The crossing is found by linear
// interpolation between the two bracketing samples. Samples that are
// exactly zero do not bracket a crossing themselves; if one or more of
// them lie between two samples of opposite sign, the latitude of the
// first is returned. The equator belongs to both hemispheres.
//
// A field with a Level axis gives puffins.ErrShape, NaN values in the
// hemisphere give puffins.ErrDomain, and a hemisphere without a sign
// change gives puffins.ErrNoCrossing.
func ZeroCross(f *puffins.Field, h Hemisphere) (float64, error) {
	if f.HasLevels() {
		return 0, fmt.Errorf("puffins: ZeroCross: field must be a function of latitude only: %w", puffins.ErrShape)
	}
	if h != Northern && h != Southern {
		return 0, fmt.Errorf("puffins: ZeroCross: invalid hemisphere %v: %w", h, puffins.ErrDomain)
	}
	lats := f.Coord(puffins.Latitude)
	vals := f.Values()
	var s []sample
	for i, lat := range lats {
		if !h.contains(lat) {
			continue
		}
		if math.IsNaN(vals[i]) {
			return 0, fmt.Errorf("puffins: ZeroCross: NaN value at latitude %g: %w", lat, puffins.ErrDomain)
		}
		s = append(s, sample{lat: lat, v: vals[i]})
	}
	sort.SliceStable(s, func(i, j int) bool { return math.Abs(s[i].lat) < math.Abs(s[j].lat) })

	prev, zero := -1, -1
	for i, p := range s {
		if p.v == 0 {
			if prev >= 0 && zero < 0 {
				zero = i
			}
			continue
		}
		if prev >= 0 && (p.v > 0) != (s[prev].v > 0) {
			if zero >= 0 {
				return s[zero].lat, nil
			}
			a := s[prev]
			return a.lat + (p.lat-a.lat)*a.v/(a.v-p.v), nil
		}
		prev, zero = i, -1
	}
	return 0, fmt.Errorf("puffins: ZeroCross: no sign change in the %v Hemisphere: %w", h, puffins.ErrNoCrossing)
}
