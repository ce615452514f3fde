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
	"math"
	"testing"

	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
)

func TestGridLats(t *testing.T) {
	g := &Grid{LatMin: 0, LatMax: 90, NLat: 91, Spacing: DegreeSpacing, ZTop: 1000, NLev: 11}
	if err := g.check(); err != nil {
		t.Fatal(err)
	}
	lats := g.Lats()
	for i, φ := range lats {
		if math.Abs(φ-float64(i)) > 1e-12 {
			t.Errorf("%d: have %g, want %d", i, φ, i)
		}
	}
	z := g.Heights()
	if z[0] != 0 || z[len(z)-1] != 1000 || len(z) != 11 {
		t.Errorf("heights: %v", z)
	}

	g.Spacing = SineSpacing
	lats = g.Lats()
	if lats[0] != 0 || lats[len(lats)-1] != 90 {
		t.Errorf("endpoints: %g, %g", lats[0], lats[len(lats)-1])
	}
	ds := puffins.SinDeg(lats[1]) - puffins.SinDeg(lats[0])
	for i := 1; i < len(lats); i++ {
		if d := puffins.SinDeg(lats[i]) - puffins.SinDeg(lats[i-1]); math.Abs(d-ds) > 1e-12 {
			t.Errorf("%d: sin spacing %g, want %g", i, d, ds)
		}
		if lats[i] <= lats[i-1] {
			t.Errorf("%d: latitudes not increasing", i)
		}
	}
}

func TestGridCheck(t *testing.T) {
	good := Grid{LatMin: -90, LatMax: 90, NLat: 10, Spacing: DegreeSpacing, ZTop: 1, NLev: 2}
	for name, mod := range map[string]func(*Grid){
		"reversed": func(g *Grid) { g.LatMin, g.LatMax = 10, 0 },
		"too far":  func(g *Grid) { g.LatMax = 100 },
		"one lat":  func(g *Grid) { g.NLat = 1 },
		"spacing":  func(g *Grid) { g.Spacing = "cosine" },
		"ztop":     func(g *Grid) { g.ZTop = 0 },
		"nlev":     func(g *Grid) { g.NLev = 1 },
	} {
		g := good
		mod(&g)
		if err := g.check(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if err := good.check(); err != nil {
		t.Error(err)
	}
}

func TestTrimInvalid(t *testing.T) {
	c := puffins.DefaultConstants()
	g := &Grid{LatMin: -89.5, LatMax: 89.5, NLat: 180, Spacing: DegreeSpacing}
	lats := g.Lats()

	f := lh88.DefaultForcing(20, c)
	limit, err := lh88.MinValidLat(f.LatMax, lh88.RossbyFromForcing{DeltaH: f.DeltaH, Height: c.HeightTropo}, c)
	if err != nil {
		t.Fatal(err)
	}
	trimmed, err := TrimInvalid(lats, f, c)
	if err != nil {
		t.Fatal(err)
	}
	if trimmed[0] <= limit || trimmed[0] > limit+1 {
		t.Errorf("first latitude %g, limit %g", trimmed[0], limit)
	}
	if _, err := lh88.URCE(trimmed, f.LatMax, lh88.RossbyFromForcing{DeltaH: f.DeltaH, Height: c.HeightTropo}, c); err != nil {
		t.Error(err)
	}

	f.LatMax = -20
	trimmed, err = TrimInvalid(lats, f, c)
	if err != nil {
		t.Fatal(err)
	}
	if last := trimmed[len(trimmed)-1]; last >= -limit || last < -limit-1 {
		t.Errorf("last latitude %g, limit %g", last, -limit)
	}

	f.LatMax = 0
	trimmed, err = TrimInvalid(lats, f, c)
	if err != nil {
		t.Fatal(err)
	}
	if len(trimmed) != len(lats) {
		t.Errorf("equatorial forcing removed %d latitudes", len(lats)-len(trimmed))
	}
}
