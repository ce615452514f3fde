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

package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/puffins"
)

func absDifferent(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b)
}

func latRange(start, end, step float64) []float64 {
	var o []float64
	for φ := start; φ <= end+step/2; φ += step {
		o = append(o, φ)
	}
	return o
}

func TestCoriolisParamOdd(t *testing.T) {
	c := puffins.DefaultConstants()
	if f := CoriolisParam(0, c); f != 0 {
		t.Errorf("f(0) = %g", f)
	}
	for _, Ω := range []float64{c.RotRate, 1.e-6, 3.3e-4} {
		cc := c
		cc.RotRate = Ω
		for _, φ := range []float64{0.1, 1, 12.5, 30, 45, 71.3, 90} {
			if CoriolisParam(-φ, cc) != -CoriolisParam(φ, cc) {
				t.Errorf("Ω=%g, lat=%g: f(-φ)=%g, -f(φ)=%g", Ω, φ, CoriolisParam(-φ, cc), -CoriolisParam(φ, cc))
			}
		}
	}
	if f := CoriolisParam(90, c); absDifferent(f, 2*c.RotRate, 1.e-18) {
		t.Errorf("f(90) = %g", f)
	}
}

func TestVorticityFormulasAgree(t *testing.T) {
	c := puffins.DefaultConstants()
	lats := latRange(-89.5, 89.5, 0.5)
	// A smooth jet-like wind that vanishes at the poles.
	u := puffins.LatFunc(lats, func(φ float64) float64 {
		s := puffins.SinDeg(φ)
		return 40 * s * s * puffins.CosDeg(φ)
	})
	fromU, err := AbsVortFromU(u, c)
	if err != nil {
		t.Fatal(err)
	}
	fromM, err := AbsVortVertComp(AbsAngMom(u, c), c)
	if err != nil {
		t.Fatal(err)
	}
	for j, φ := range lats {
		if math.Abs(φ) > 80 {
			continue
		}
		a, b := fromU.At(0, j), fromM.At(0, j)
		if absDifferent(a, b, 1.e-7) {
			t.Errorf("lat %g: from u %g, from M %g", φ, a, b)
		}
	}
}

func TestAbsVortRestingAtmosphere(t *testing.T) {
	c := puffins.DefaultConstants()
	lats := latRange(-80, 80, 2)
	u := puffins.LatFunc(lats, func(float64) float64 { return 0 })
	eta, err := AbsVortFromU(u, c)
	if err != nil {
		t.Fatal(err)
	}
	for j, φ := range lats {
		if absDifferent(eta.At(0, j), CoriolisParam(φ, c), 1.e-18) {
			t.Errorf("lat %g: η=%g, f=%g", φ, eta.At(0, j), CoriolisParam(φ, c))
		}
	}
}

func TestVorticityPoles(t *testing.T) {
	c := puffins.DefaultConstants()
	u := puffins.LatFunc(latRange(0, 90, 1), func(float64) float64 { return 1 })
	if _, err := AbsVortFromU(u, c); !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("AbsVortFromU: have %v, want ErrDomain", err)
	}
	if _, err := AbsVortVertComp(AbsAngMom(u, c), c); !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("AbsVortVertComp: have %v, want ErrDomain", err)
	}
}

func TestThermRossNum(t *testing.T) {
	c := puffins.DefaultConstants()
	ro := ThermRossNum(c.DeltaH, c.HeightTropo, c)
	want := c.DeltaH * c.HeightTropo * c.Grav / (c.RotRate * c.RotRate * c.Radius * c.Radius)
	if absDifferent(ro, want, 1.e-12) {
		t.Errorf("have %g, want %g", ro, want)
	}

	u := c.Units()
	r := unit.Div(unit.Mul(u["DeltaH"], u["HeightTropo"], u["Grav"]),
		unit.Mul(u["RotRate"], u["Radius"], u["RotRate"], u["Radius"]))
	if err := r.Check(unit.Dimensions{}); err != nil {
		t.Errorf("thermal Rossby number is not dimensionless: %v", err)
	}
	if absDifferent(r.Value(), ro, 1.e-12) {
		t.Errorf("unit calculation %g != %g", r.Value(), ro)
	}
}

func TestVorticityInvalidConstants(t *testing.T) {
	lats := latRange(-60, 60, 5)
	for name, modify := range map[string]func(*puffins.Constants){
		"zero rotation": func(c *puffins.Constants) { c.RotRate = 0 },
		"zero radius":   func(c *puffins.Constants) { c.Radius = 0 },
	} {
		c := puffins.DefaultConstants()
		modify(&c)
		u := puffins.LatFunc(lats, func(φ float64) float64 { return 10 * puffins.CosDeg(φ) })
		if eta, err := AbsVortFromU(u, c); !errors.Is(err, puffins.ErrDomain) || eta != nil {
			t.Errorf("%s: AbsVortFromU: have %v, want ErrDomain", name, err)
		}
		if eta, err := AbsVortVertComp(u, c); !errors.Is(err, puffins.ErrDomain) || eta != nil {
			t.Errorf("%s: AbsVortVertComp: have %v, want ErrDomain", name, err)
		}
	}
	c := puffins.DefaultConstants()
	c.ThetaRef = 0
	if _, err := BruntVaisalaFreq(3.e-3, c); !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("zero reference temperature: have %v, want ErrDomain", err)
	}
}

func TestBruntVaisalaFreq(t *testing.T) {
	c := puffins.DefaultConstants()
	n, err := BruntVaisalaFreq(3.e-3, c)
	if err != nil {
		t.Fatal(err)
	}
	if absDifferent(n, math.Sqrt(c.Grav*3.e-3/c.ThetaRef), 1.e-15) {
		t.Errorf("N = %g", n)
	}
	if n, err := BruntVaisalaFreq(0, c); err != nil || n != 0 {
		t.Errorf("neutral stratification: N=%g, err=%v", n, err)
	}
	n, err = BruntVaisalaFreq(-1.e-3, c)
	if !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("unstable stratification: have %v, want ErrDomain", err)
	}
	if math.IsNaN(n) {
		t.Error("NaN returned for unstable stratification")
	}
}

func TestRossbyRadius(t *testing.T) {
	c := puffins.DefaultConstants()
	l, err := RossbyRadius(45, 3.e-3, 1.e4, c)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := BruntVaisalaFreq(3.e-3, c)
	if absDifferent(l, n*1.e4/CoriolisParam(45, c), 1.e-6) {
		t.Errorf("L = %g", l)
	}
	if l2, _ := RossbyRadius(-45, 3.e-3, 1.e4, c); l2 != -l {
		t.Errorf("southern hemisphere radius %g != %g", l2, -l)
	}
	if _, err := RossbyRadius(0, 3.e-3, 1.e4, c); !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("equator: have %v, want ErrDomain", err)
	}
	if _, err := RossbyRadius(45, -3.e-3, 1.e4, c); !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("unstable: have %v, want ErrDomain", err)
	}
}

func TestZonalFricInferredSteady(t *testing.T) {
	c := puffins.DefaultConstants()
	lats := latRange(-60, 60, 5)
	levs := []float64{1000, 5000, 9000, 13000}
	zero, err := puffins.GridFunc(lats, levs, func(φ, z float64) float64 { return 0 })
	if err != nil {
		t.Fatal(err)
	}
	v, err := puffins.GridFunc(lats, levs, func(φ, z float64) float64 { return -2 * puffins.SinDeg(φ) })
	if err != nil {
		t.Fatal(err)
	}
	// Vertical flux linear in height has a constant divergence.
	w, err := puffins.GridFunc(lats, levs, func(φ, z float64) float64 { return 3.e-5 * z })
	if err != nil {
		t.Fatal(err)
	}

	fric, err := ZonalFricInferredSteady(zero, w, v, nil, c)
	if err != nil {
		t.Fatal(err)
	}
	for k := range levs {
		for j, φ := range lats {
			want := 3.e-5 - CoriolisParam(φ, c)*(-2*puffins.SinDeg(φ))
			if absDifferent(fric.At(k, j), want, 1.e-12) {
				t.Errorf("(%g, %g): have %g, want %g", levs[k], φ, fric.At(k, j), want)
			}
		}
	}

	// An explicit vertical coordinate takes precedence.
	fric2, err := ZonalFricInferredSteady(zero, w, v, []float64{0, 8000, 16000, 24000}, c)
	if err != nil {
		t.Fatal(err)
	}
	want := 1.5e-5 - CoriolisParam(lats[0], c)*(-2*puffins.SinDeg(lats[0]))
	if absDifferent(fric2.At(0, 0), want, 1.e-12) {
		t.Errorf("explicit coordinate: have %g, want %g", fric2.At(0, 0), want)
	}
}

func TestZonalFricInferredSteadyShape(t *testing.T) {
	c := puffins.DefaultConstants()
	lats := latRange(-60, 60, 5)
	flat := puffins.LatFunc(lats, func(float64) float64 { return 1 })
	if _, err := ZonalFricInferredSteady(flat, flat, flat, nil, c); !errors.Is(err, puffins.ErrShape) {
		t.Errorf("have %v, want ErrShape", err)
	}
}
