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

package fixedtt

import (
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
)

func lats(start, end, step float64) []float64 {
	var o []float64
	for x := start; x <= end+step/2; x += step {
		o = append(o, x)
	}
	return o
}

func TestUniformThetaNoWind(t *testing.T) {
	c := puffins.DefaultConstants()
	p := lh88.DefaultFixedTropoParams(c)
	for _, theta0 := range []float64{c.ThetaRef, 300} {
		theta := puffins.LatFunc(lats(5, 80, 2.5), func(float64) float64 { return theta0 })
		u, err := Boussinesq{}.GradientWind(theta, p, c)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range u.Values() {
			if v != 0 {
				t.Errorf("θ=%g, %d: have %g, want 0", theta0, i, v)
			}
		}
	}
}

func TestDepth(t *testing.T) {
	c := puffins.DefaultConstants()
	p := lh88.DefaultFixedTropoParams(c)
	theta := puffins.LatFunc([]float64{10, 20}, func(float64) float64 { return c.ThetaRef + 15 })
	d, err := Boussinesq{}.Depth(theta, p, c)
	if err != nil {
		t.Fatal(err)
	}
	want := (c.ThetaRef + 15/p.DThetaDTs - p.TempTropo) / p.Gamma
	for _, v := range d.Values() {
		if math.Abs(v-want) > 1e-8 {
			t.Errorf("have %g, want %g", v, want)
		}
	}
	p.ComputeTempSfc = false
	d, err = Boussinesq{}.Depth(theta, p, c)
	if err != nil {
		t.Fatal(err)
	}
	want = (c.ThetaRef + 15 - p.TempTropo) / p.Gamma
	if v := d.Values()[0]; math.Abs(v-want) > 1e-8 {
		t.Errorf("have %g, want %g", v, want)
	}
}

func TestLH88Forcing(t *testing.T) {
	c := puffins.DefaultConstants()
	p := lh88.DefaultFixedTropoParams(c)
	f := lh88.DefaultForcing(40, c)
	l := lats(25, 60, 0.5)
	u, err := lh88.URCEFixedTropoTemp(l, f, Boussinesq{}, p, c)
	if err != nil {
		t.Fatal(err)
	}
	uv := u.Values()
	for i, φ := range l {
		switch {
		case φ == 40:
			if math.Abs(uv[i]) > 0.05 {
				t.Errorf("u(lat_max) = %g, want ≈ 0", uv[i])
			}
		case φ < 39:
			if uv[i] >= 0 {
				t.Errorf("u(%g) = %g, want easterly", φ, uv[i])
			}
		case φ > 41:
			if uv[i] <= 0 {
				t.Errorf("u(%g) = %g, want westerly", φ, uv[i])
			}
		}
	}
}

func TestDomainErrors(t *testing.T) {
	c := puffins.DefaultConstants()
	theta := puffins.LatFunc(lats(10, 60, 1), func(φ float64) float64 { return c.ThetaRef })
	tests := []struct {
		name  string
		theta *puffins.Field
		mod   func(*lh88.FixedTropoParams)
	}{
		{name: "superadiabatic", theta: theta, mod: func(p *lh88.FixedTropoParams) { p.Gamma = 2 * c.Grav / c.Cp }},
		{name: "zero lapse rate", theta: theta, mod: func(p *lh88.FixedTropoParams) { p.Gamma = 0 }},
		{name: "zero sensitivity", theta: theta, mod: func(p *lh88.FixedTropoParams) { p.DThetaDTs = 0 }},
		{name: "warm tropopause", theta: theta, mod: func(p *lh88.FixedTropoParams) { p.TempTropo = 400 }},
		{
			name:  "equator",
			theta: puffins.LatFunc(lats(-10, 10, 1), func(float64) float64 { return c.ThetaRef }),
			mod:   func(*lh88.FixedTropoParams) {},
		},
		{
			name:  "pole",
			theta: puffins.LatFunc(lats(70, 90, 1), func(float64) float64 { return c.ThetaRef }),
			mod:   func(*lh88.FixedTropoParams) {},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := lh88.DefaultFixedTropoParams(c)
			test.mod(&p)
			u, err := Boussinesq{}.GradientWind(test.theta, p, c)
			if !errors.Is(err, puffins.ErrDomain) {
				t.Errorf("have %v, want ErrDomain", err)
			}
			if u != nil {
				t.Error("partial result returned with error")
			}
		})
	}
}

func TestNegativeRadicand(t *testing.T) {
	c := puffins.DefaultConstants()
	p := lh88.DefaultFixedTropoParams(c)
	f := lh88.DefaultForcing(40, c)
	_, err := lh88.URCEFixedTropoTemp(lats(5, 60, 0.5), f, Boussinesq{}, p, c)
	if !errors.Is(err, puffins.ErrDomain) {
		t.Errorf("have %v, want ErrDomain", err)
	}
}
