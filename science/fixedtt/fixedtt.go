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

// Package fixedtt computes gradient-balance winds under the assumption
// that the tropopause temperature, rather than its height, is fixed.
package fixedtt

import (
	"fmt"
	"math"

	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
)

// Boussinesq is the Boussinesq gradient-wind relation for a troposphere
// whose depth is set by a fixed tropopause temperature. It implements
// lh88.GradientWindRelation.
//
// The column depth is H = (Ts - Tt)/Γ, where the surface temperature
// Ts is either the potential temperature itself or, when
// ComputeTempSfc is set, θref + (θ - θref)/(dθ/dTs). The wind is then
//
//	u = Ω R cosφ [(1 - F/(Ω² R² sinφ cosφ))^½ - 1],
//
// with F = (g/θref) ∂[H (θ - θref)]/∂φ.
type Boussinesq struct{}

var _ lh88.GradientWindRelation = Boussinesq{}

// Depth returns the tropospheric depth [m] implied by theta.
func (Boussinesq) Depth(theta *puffins.Field, p lh88.FixedTropoParams, c puffins.Constants) (*puffins.Field, error) {
	if err := checkParams(p, c); err != nil {
		return nil, err
	}
	tsfc := theta
	if p.ComputeTempSfc {
		tsfc = theta.AddConst(-c.ThetaRef).Scale(1 / p.DThetaDTs).AddConst(c.ThetaRef)
	}
	depth := tsfc.AddConst(-p.TempTropo).Scale(1 / p.Gamma)
	for i, h := range depth.Values() {
		if !(h > 0) {
			return nil, fmt.Errorf("puffins: fixedtt: non-positive tropospheric depth %g m at latitude %g "+
				"(tropopause temperature %g K): %w", h, theta.Coord(puffins.Latitude)[i%theta.Len(puffins.Latitude)],
				p.TempTropo, puffins.ErrDomain)
		}
	}
	return depth, nil
}

// GradientWind returns the zonal wind [m/s] in gradient balance with
// theta.
func (b Boussinesq) GradientWind(theta *puffins.Field, p lh88.FixedTropoParams, c puffins.Constants) (*puffins.Field, error) {
	if theta.HasLevels() {
		return nil, fmt.Errorf("puffins: fixedtt: potential temperature must be a function of latitude only: %w",
			puffins.ErrShape)
	}
	depth, err := b.Depth(theta, p, c)
	if err != nil {
		return nil, err
	}
	heat, err := depth.Mul(theta.AddConst(-c.ThetaRef))
	if err != nil {
		return nil, err
	}
	dheat, err := puffins.LatDeriv(heat)
	if err != nil {
		return nil, fmt.Errorf("puffins: fixedtt: %w", err)
	}
	omegaR := c.RotRate * c.Radius
	lats := theta.Coord(puffins.Latitude)
	forcing := dheat.Scale(c.Grav / c.ThetaRef).Values()
	vals := make([]float64, len(lats))
	for i, φ := range lats {
		sinφ, cosφ := puffins.SinDeg(φ), puffins.CosDeg(φ)
		if math.Abs(φ) >= 90 || sinφ == 0 {
			return nil, fmt.Errorf("puffins: fixedtt: gradient wind singular at latitude %g: %w", φ, puffins.ErrDomain)
		}
		arg := 1 - forcing[i]/(omegaR*omegaR*sinφ*cosφ)
		if arg < 0 {
			return nil, fmt.Errorf("puffins: fixedtt: radicand %g < 0 at latitude %g: %w", arg, φ, puffins.ErrDomain)
		}
		vals[i] = omegaR * cosφ * (math.Sqrt(arg) - 1)
	}
	return puffins.NewField(lats, vals)
}

func checkParams(p lh88.FixedTropoParams, c puffins.Constants) error {
	gammaDry := c.Grav / c.Cp
	switch {
	case !(p.Gamma > 0):
		return fmt.Errorf("puffins: fixedtt: lapse rate %g must be positive: %w", p.Gamma, puffins.ErrDomain)
	case p.Gamma > gammaDry:
		return fmt.Errorf("puffins: fixedtt: lapse rate %g K/m exceeds the dry adiabatic lapse rate %g K/m: %w",
			p.Gamma, gammaDry, puffins.ErrDomain)
	case p.ComputeTempSfc && !(p.DThetaDTs > 0):
		return fmt.Errorf("puffins: fixedtt: dθ/dTs %g must be positive: %w", p.DThetaDTs, puffins.ErrDomain)
	}
	return nil
}
