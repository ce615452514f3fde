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

package puffins

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/unit"
)

// Constants holds the physical constants used by the formulas in this
// module. A Constants value is passed explicitly to every formula; to
// override a default, copy the value returned by DefaultConstants and
// change the field of interest:
//
//	c := puffins.DefaultConstants()
//	c.RotRate *= 0.5
type Constants struct {
	Grav           float64 // Gravitational acceleration [m/s²]
	RotRate        float64 // Planetary rotation rate [1/s]
	Radius         float64 // Planetary radius [m]
	ThetaRef       float64 // Reference potential temperature [K]
	HeightTropo    float64 // Tropopause height [m]
	TempTropo      float64 // Tropopause temperature [K]
	P0             float64 // Reference surface pressure [Pa]
	Rd             float64 // Gas constant of dry air [J/kg/K]
	Cp             float64 // Specific heat of dry air at constant pressure [J/kg/K]
	DeltaH         float64 // Fractional equator-to-pole RCE potential temperature difference [-]
	DeltaV         float64 // Fractional surface-to-tropopause RCE potential temperature difference [-]
	GammaMoist     float64 // Moist adiabatic lapse rate [K/m]
	DThetaDTsMoist float64 // Sensitivity of free-tropospheric θ to surface temperature along a moist adiabat [-]
}

// DefaultConstants returns the Earth-like defaults.
func DefaultConstants() Constants {
	return Constants{
		Grav:           9.81,
		RotRate:        7.292e-5,
		Radius:         6.371e6,
		ThetaRef:       290,
		HeightTropo:    1.5e4,
		TempTropo:      200,
		P0:             1.0e5,
		Rd:             287.04,
		Cp:             1004,
		DeltaH:         1. / 3.,
		DeltaV:         1. / 8.,
		GammaMoist:     6.5e-3,
		DThetaDTsMoist: 1.5,
	}
}

// Validate checks that the scales in c are physically meaningful.
func (c Constants) Validate() error {
	positive := map[string]float64{
		"Grav":           c.Grav,
		"RotRate":        c.RotRate,
		"Radius":         c.Radius,
		"ThetaRef":       c.ThetaRef,
		"HeightTropo":    c.HeightTropo,
		"TempTropo":      c.TempTropo,
		"P0":             c.P0,
		"Rd":             c.Rd,
		"Cp":             c.Cp,
		"GammaMoist":     c.GammaMoist,
		"DThetaDTsMoist": c.DThetaDTsMoist,
	}
	for _, name := range sortedKeys(positive) {
		v := positive[name]
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("puffins: constant %s=%g must be positive and finite: %w", name, v, ErrDomain)
		}
	}
	nonNegative := map[string]float64{"DeltaH": c.DeltaH, "DeltaV": c.DeltaV}
	for _, name := range sortedKeys(nonNegative) {
		v := nonNegative[name]
		if !(v >= 0) || math.IsInf(v, 0) {
			return fmt.Errorf("puffins: constant %s=%g must be non-negative and finite: %w", name, v, ErrDomain)
		}
	}
	return nil
}

// Units returns the constants as dimensioned quantities, keyed by
// field name.
func (c Constants) Units() map[string]*unit.Unit {
	var (
		accel    = unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -2}
		rate     = unit.Dimensions{unit.TimeDim: -1}
		length   = unit.Dimensions{unit.LengthDim: 1}
		temp     = unit.Dimensions{unit.TemperatureDim: 1}
		pressure = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
		heatCap  = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2, unit.TemperatureDim: -1}
		lapse    = unit.Dimensions{unit.TemperatureDim: 1, unit.LengthDim: -1}
		none     = unit.Dimensions{}
	)
	return map[string]*unit.Unit{
		"Grav":           unit.New(c.Grav, accel),
		"RotRate":        unit.New(c.RotRate, rate),
		"Radius":         unit.New(c.Radius, length),
		"ThetaRef":       unit.New(c.ThetaRef, temp),
		"HeightTropo":    unit.New(c.HeightTropo, length),
		"TempTropo":      unit.New(c.TempTropo, temp),
		"P0":             unit.New(c.P0, pressure),
		"Rd":             unit.New(c.Rd, heatCap),
		"Cp":             unit.New(c.Cp, heatCap),
		"DeltaH":         unit.New(c.DeltaH, none),
		"DeltaV":         unit.New(c.DeltaV, none),
		"GammaMoist":     unit.New(c.GammaMoist, lapse),
		"DThetaDTsMoist": unit.New(c.DThetaDTsMoist, none),
	}
}

// UnitNames returns the keys of Units in sorted order.
func (c Constants) UnitNames() []string {
	u := c.Units()
	names := make([]string, 0, len(u))
	for n := range u {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SinDeg returns the sine of x, where x is in degrees.
func SinDeg(x float64) float64 { return math.Sin(x * math.Pi / 180) }

// CosDeg returns the cosine of x, where x is in degrees.
func CosDeg(x float64) float64 { return math.Cos(x * math.Pi / 180) }

// DegToRad converts degrees to radians.
func DegToRad(x float64) float64 { return x * math.Pi / 180 }
