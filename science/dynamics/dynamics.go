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

// Package dynamics provides fundamental diagnostics of axisymmetric
// atmospheric dynamics: planetary vorticity, angular momentum, absolute
// vorticity, static stability and the momentum budget.
package dynamics

import (
	"fmt"
	"math"

	"github.com/spatialmodel/puffins"
)

// CoriolisParam returns the Coriolis parameter f = 2Ω sin(lat), with lat
// in degrees.
func CoriolisParam(lat float64, c puffins.Constants) float64 {
	return 2 * c.RotRate * puffins.SinDeg(lat)
}

// Coriolis returns the Coriolis parameter at each of lats.
func Coriolis(lats []float64, c puffins.Constants) *puffins.Field {
	return puffins.LatFunc(lats, func(φ float64) float64 { return CoriolisParam(φ, c) })
}

// ThermRossNum returns the thermal Rossby number
// Ro_T = Δh·H·g / (ΩR)², where deltaH is the fractional equator-to-pole
// temperature difference and height is the depth of the layer.
func ThermRossNum(deltaH, height float64, c puffins.Constants) float64 {
	return deltaH * height * c.Grav / math.Pow(c.RotRate*c.Radius, 2)
}

// AbsAngMom returns the absolute angular momentum per unit mass
// M = R cosφ (ΩR cosφ + u) of zonal wind u.
func AbsAngMom(u *puffins.Field, c puffins.Constants) *puffins.Field {
	return u.MapLat(func(φ, uu float64) float64 {
		cosφ := puffins.CosDeg(φ)
		return c.Radius * cosφ * (c.RotRate*c.Radius*cosφ + uu)
	})
}

// AbsVortVertComp returns the vertical component of absolute vorticity
// computed from the absolute angular momentum m in the axisymmetric
// case: η = -(1/(R² cosφ)) ∂M/∂φ.
func AbsVortVertComp(m *puffins.Field, c puffins.Constants) (*puffins.Field, error) {
	if err := checkNoPoles("AbsVortVertComp", m); err != nil {
		return nil, err
	}
	if err := checkConstants("AbsVortVertComp", c); err != nil {
		return nil, err
	}
	dmdlat, err := puffins.LatDeriv(m)
	if err != nil {
		return nil, fmt.Errorf("puffins: AbsVortVertComp: %w", err)
	}
	return dmdlat.MapLat(func(φ, dm float64) float64 {
		return -dm / (c.Radius * c.Radius * puffins.CosDeg(φ))
	}), nil
}

// AbsVortFromU returns the absolute vorticity computed directly from the
// zonal wind u: η = u sinφ/(R cosφ) - (1/R) ∂u/∂φ + 2Ω sinφ.
func AbsVortFromU(u *puffins.Field, c puffins.Constants) (*puffins.Field, error) {
	if err := checkNoPoles("AbsVortFromU", u); err != nil {
		return nil, err
	}
	if err := checkConstants("AbsVortFromU", c); err != nil {
		return nil, err
	}
	dudlat, err := puffins.LatDeriv(u)
	if err != nil {
		return nil, fmt.Errorf("puffins: AbsVortFromU: %w", err)
	}
	planetary := u.MapLat(func(φ, uu float64) float64 {
		sinφ, cosφ := puffins.SinDeg(φ), puffins.CosDeg(φ)
		return uu*sinφ/(c.Radius*cosφ) + 2*c.RotRate*sinφ
	})
	eta, err := planetary.Sub(dudlat.Scale(1 / c.Radius))
	if err != nil {
		return nil, fmt.Errorf("puffins: AbsVortFromU: %w", err)
	}
	return eta, nil
}

// BruntVaisalaFreq returns the Brunt–Väisälä frequency N = (g/θ_ref
// ∂θ/∂z)^½. Statically unstable input (dthetaDz < 0) is rejected
// with puffins.ErrDomain.
func BruntVaisalaFreq(dthetaDz float64, c puffins.Constants) (float64, error) {
	if err := checkConstants("BruntVaisalaFreq", c); err != nil {
		return 0, err
	}
	arg := c.Grav * dthetaDz / c.ThetaRef
	if !(arg >= 0) {
		return 0, fmt.Errorf("puffins: BruntVaisalaFreq: g/θ_ref·dθ/dz = %g is negative: %w", arg, puffins.ErrDomain)
	}
	return math.Sqrt(arg), nil
}

// RossbyRadius returns the Rossby radius of deformation N·H/f at
// latitude lat (degrees), for stratification dthetaDz and depth height.
// It is undefined at the equator.
func RossbyRadius(lat, dthetaDz, height float64, c puffins.Constants) (float64, error) {
	n, err := BruntVaisalaFreq(dthetaDz, c)
	if err != nil {
		return 0, fmt.Errorf("puffins: RossbyRadius: %w", err)
	}
	f := CoriolisParam(lat, c)
	if f == 0 {
		return 0, fmt.Errorf("puffins: RossbyRadius: Coriolis parameter is zero at latitude %g: %w", lat, puffins.ErrDomain)
	}
	return n * height / f, nil
}

// ZonalFricInferredSteady returns the zonal friction implied by a
// steady zonal momentum budget: the divergence of the meridional eddy
// flux uMeridFlux and of the vertical flux uVertFlux, minus f times the
// meridional wind vWind. The three fields must share a latitude × level
// grid. If vertCoord is nil, uVertFlux's own level coordinate is used.
func ZonalFricInferredSteady(uMeridFlux, uVertFlux, vWind *puffins.Field, vertCoord []float64,
	c puffins.Constants) (*puffins.Field, error) {
	if err := checkNoPoles("ZonalFricInferredSteady", uMeridFlux); err != nil {
		return nil, err
	}
	if err := checkConstants("ZonalFricInferredSteady", c); err != nil {
		return nil, err
	}
	fluxCos := uMeridFlux.MapLat(func(φ, v float64) float64 { return v * puffins.CosDeg(φ) })
	dFluxCos, err := puffins.LatDeriv(fluxCos)
	if err != nil {
		return nil, fmt.Errorf("puffins: ZonalFricInferredSteady: %w", err)
	}
	meridDiv := dFluxCos.MapLat(func(φ, v float64) float64 {
		cosφ := puffins.CosDeg(φ)
		return v / (c.Radius * cosφ * cosφ)
	})

	if vertCoord == nil {
		vertCoord = uVertFlux.Coord(puffins.Level)
	}
	vertDiv, err := puffins.ZDeriv(uVertFlux, vertCoord)
	if err != nil {
		return nil, fmt.Errorf("puffins: ZonalFricInferredSteady: %w", err)
	}

	fluxDiv, err := meridDiv.Add(vertDiv)
	if err != nil {
		return nil, fmt.Errorf("puffins: ZonalFricInferredSteady: %w", err)
	}
	fv := vWind.MapLat(func(φ, v float64) float64 { return CoriolisParam(φ, c) * v })
	o, err := fluxDiv.Sub(fv)
	if err != nil {
		return nil, fmt.Errorf("puffins: ZonalFricInferredSteady: %w", err)
	}
	return o, nil
}

// checkNoPoles returns puffins.ErrDomain if f is defined at either pole,
// where formulas dividing by cos(lat) are singular.
func checkNoPoles(name string, f *puffins.Field) error {
	for _, φ := range f.Coord(puffins.Latitude) {
		if math.Abs(φ) >= 90 {
			return fmt.Errorf("puffins: %s: singular at latitude %g: %w", name, φ, puffins.ErrDomain)
		}
	}
	return nil
}

// checkConstants wraps the result of c.Validate with the name of the
// calling function.
func checkConstants(name string, c puffins.Constants) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("puffins: %s: %w", name, err)
	}
	return nil
}
