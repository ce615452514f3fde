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

package lh88

import (
	"fmt"
	"math"

	"github.com/spatialmodel/puffins"
)

// radicand returns 1 + 2 Ro (1 - sin(latMax)/sin(lat)), the argument of
// the square root in the LH88 gradient wind.
func radicand(φ, sinMax, ro float64) (float64, error) {
	sinφ := puffins.SinDeg(φ)
	var ratio float64
	switch {
	case sinMax == 0:
		// The limit as lat → 0 is also zero.
	case sinφ == 0:
		return 0, fmt.Errorf("singular at the equator when the forcing maximum is off the equator: %w", puffins.ErrDomain)
	default:
		ratio = sinMax / sinφ
	}
	return 1 + 2*ro*(1-ratio), nil
}

// URCE returns the gradient-balance (angular-momentum-conserving)
// zonal wind in balance with the LH88 RCE temperature,
//
//	u = [(1 + 2 Ro (1 - sinφmax/sinφ))^½ - 1] Ω R cosφ.
//
// Where the radicand is negative no steady balanced wind exists and
// puffins.ErrDomain is returned; MinValidLat gives the equatorward
// limit of the region where the wind is defined.
func URCE(lats []float64, latMax float64, ro ThermalRossby, c puffins.Constants) (*puffins.Field, error) {
	r, err := ThermRoss(ro, c)
	if err != nil {
		return nil, fmt.Errorf("puffins: URCE: %w", err)
	}
	sinMax := puffins.SinDeg(latMax)
	vals := make([]float64, len(lats))
	for i, φ := range lats {
		arg, err := radicand(φ, sinMax, r)
		if err != nil {
			return nil, fmt.Errorf("puffins: URCE: latitude %g: %w", φ, err)
		}
		if arg < 0 {
			return nil, fmt.Errorf("puffins: URCE: radicand %g < 0 at latitude %g (lat_max=%g, Ro=%g): %w",
				arg, φ, latMax, r, puffins.ErrDomain)
		}
		vals[i] = (math.Sqrt(arg) - 1) * c.RotRate * c.Radius * puffins.CosDeg(φ)
	}
	return puffins.NewField(lats, vals)
}

// MinValidLat returns the latitude (degrees) in the hemisphere of the
// forcing maximum equatorward of which URCE has no real solution. It
// returns 0 when the wind is defined everywhere off the equator.
func MinValidLat(latMax float64, ro ThermalRossby, c puffins.Constants) (float64, error) {
	r, err := ThermRoss(ro, c)
	if err != nil {
		return 0, fmt.Errorf("puffins: MinValidLat: %w", err)
	}
	s := 2 * r * math.Abs(puffins.SinDeg(latMax)) / (1 + 2*r)
	return math.Asin(s) * 180 / math.Pi, nil
}

// AbsVortNorm returns the analytical absolute vorticity of the LH88
// gradient wind, normalized by the planetary rotation rate.
func AbsVortNorm(lats []float64, latMax float64, ro ThermalRossby, c puffins.Constants) (*puffins.Field, error) {
	r, err := ThermRoss(ro, c)
	if err != nil {
		return nil, fmt.Errorf("puffins: AbsVortNorm: %w", err)
	}
	sinMax := puffins.SinDeg(latMax)
	vals := make([]float64, len(lats))
	for i, φ := range lats {
		arg, err := radicand(φ, sinMax, r)
		if err != nil {
			return nil, fmt.Errorf("puffins: AbsVortNorm: latitude %g: %w", φ, err)
		}
		if !(arg > 0) {
			return nil, fmt.Errorf("puffins: AbsVortNorm: radicand %g ≤ 0 at latitude %g: %w",
				arg, φ, puffins.ErrDomain)
		}
		sinφ, cosφ := puffins.SinDeg(φ), puffins.CosDeg(φ)
		term2 := 2 * sinφ
		if sinMax != 0 {
			term2 -= r * cosφ * cosφ * sinMax / (sinφ * sinφ * arg)
		}
		vals[i] = math.Sqrt(arg) * term2
	}
	return puffins.NewField(lats, vals)
}

// CritVortMetric returns the analytical Plumb & Hou (1992) criticality
// metric for the LH88 forcing, with ascent at latitude ascentLat.
// Positive values indicate that the RCE state is supercritical.
func CritVortMetric(lats []float64, ascentLat float64, ro ThermalRossby, c puffins.Constants) (*puffins.Field, error) {
	r, err := ThermRoss(ro, c)
	if err != nil {
		return nil, fmt.Errorf("puffins: CritVortMetric: %w", err)
	}
	sinAscent := puffins.SinDeg(ascentLat)
	vals := make([]float64, len(lats))
	for i, φ := range lats {
		sinφ, cosφ := puffins.SinDeg(φ), puffins.CosDeg(φ)
		var ascentTerm float64
		if sinAscent != 0 {
			if sinφ == 0 {
				return nil, fmt.Errorf("puffins: CritVortMetric: singular at the equator for ascent latitude %g: %w",
					ascentLat, puffins.ErrDomain)
			}
			ascentTerm = sinAscent / sinφ * (3 + 1/(sinφ*sinφ))
		}
		vals[i] = -2 * math.Pow(c.RotRate*c.Radius, 2) * cosφ * cosφ * cosφ * sinφ *
			(2 + r*(4-ascentTerm))
	}
	return puffins.NewField(lats, vals)
}
