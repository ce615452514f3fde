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

package puffinsutil

import (
	"fmt"
	"math"

	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
)

// Latitude spacing options.
const (
	// DegreeSpacing gives latitudes uniformly spaced in degrees.
	DegreeSpacing = "degrees"
	// SineSpacing gives latitudes uniformly spaced in sin(lat).
	SineSpacing = "sine"
)

// Grid specifies the latitude and height coordinates that fields are
// computed on.
type Grid struct {
	// LatMin and LatMax are the first and last latitudes [degrees].
	LatMin, LatMax float64

	// NLat is the number of latitudes.
	NLat int

	// Spacing is either DegreeSpacing or SineSpacing.
	Spacing string

	// ZTop is the highest level [m], and NLev is the number of
	// uniformly spaced levels between the surface and ZTop.
	ZTop float64
	NLev int
}

func (g *Grid) check() error {
	switch {
	case !(g.LatMin >= -90 && g.LatMax <= 90 && g.LatMin < g.LatMax):
		return fmt.Errorf("puffins: invalid latitude range [%g, %g]", g.LatMin, g.LatMax)
	case g.NLat < 2:
		return fmt.Errorf("puffins: Grid.NLat=%d but should be at least 2", g.NLat)
	case g.Spacing != DegreeSpacing && g.Spacing != SineSpacing:
		return fmt.Errorf("puffins: Grid.Spacing must be %q or %q but is %q", DegreeSpacing, SineSpacing, g.Spacing)
	case !(g.ZTop > 0):
		return fmt.Errorf("puffins: Grid.ZTop=%g but should be >0", g.ZTop)
	case g.NLev < 2:
		return fmt.Errorf("puffins: Grid.NLev=%d but should be at least 2", g.NLev)
	}
	return nil
}

// Lats returns the latitudes of the grid, in ascending order.
func (g *Grid) Lats() []float64 {
	o := make([]float64, g.NLat)
	switch g.Spacing {
	case SineSpacing:
		s0, s1 := puffins.SinDeg(g.LatMin), puffins.SinDeg(g.LatMax)
		for i := range o {
			s := s0 + (s1-s0)*float64(i)/float64(g.NLat-1)
			o[i] = math.Asin(s) * 180 / math.Pi
		}
		o[0], o[g.NLat-1] = g.LatMin, g.LatMax
	default:
		for i := range o {
			o[i] = g.LatMin + (g.LatMax-g.LatMin)*float64(i)/float64(g.NLat-1)
		}
	}
	return o
}

// Heights returns the levels of the grid [m], starting at the surface.
func (g *Grid) Heights() []float64 {
	o := make([]float64, g.NLev)
	for i := range o {
		o[i] = g.ZTop * float64(i) / float64(g.NLev-1)
	}
	return o
}

// TrimInvalid removes from lats the points at which the LH88 gradient
// wind for forcing f is undefined. For forcing north of the equator,
// every latitude at or south of the limit given by lh88.MinValidLat is
// removed; forcing south of the equator is handled symmetrically, so
// the remaining grid is contiguous. Forcing centered on the equator
// leaves lats unchanged.
func TrimInvalid(lats []float64, f lh88.Forcing, c puffins.Constants) ([]float64, error) {
	if f.LatMax == 0 {
		return lats, nil
	}
	limit, err := lh88.MinValidLat(f.LatMax, lh88.RossbyFromForcing{DeltaH: f.DeltaH, Height: c.HeightTropo}, c)
	if err != nil {
		return nil, err
	}
	var o []float64
	for _, φ := range lats {
		if (f.LatMax > 0 && φ > limit) || (f.LatMax < 0 && φ < -limit) {
			o = append(o, φ)
		}
	}
	if len(o) < 2 {
		return nil, fmt.Errorf("puffins: fewer than 2 latitudes remain poleward of %g°", limit)
	}
	return o, nil
}
