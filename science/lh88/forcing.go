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

// Package lh88 implements the radiative-convective equilibrium (RCE)
// solution of Lindzen & Hou (1988), "Hadley circulations for zonally
// averaged heating centered off the equator", J. Atmos. Sci. 45,
// 2416–2427, along with extensions of it.
package lh88

import (
	"fmt"
	"math"

	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/dynamics"
)

// Forcing holds the parameters of the LH88 RCE potential temperature.
type Forcing struct {
	// LatMax is the latitude of maximum RCE temperature [degrees].
	LatMax float64
	// DeltaH is the fractional horizontal temperature difference.
	DeltaH float64
	// DeltaV is the fractional vertical temperature difference.
	DeltaV float64
}

// DefaultForcing returns forcing centered at latMax with the amplitudes
// in c.
func DefaultForcing(latMax float64, c puffins.Constants) Forcing {
	return Forcing{LatMax: latMax, DeltaH: c.DeltaH, DeltaV: c.DeltaV}
}

// MidTroposphere returns the height at which the vertical term of the
// RCE potential temperature vanishes.
func MidTroposphere(c puffins.Constants) float64 { return 0.5 * c.HeightTropo }

// potTemp is Eq. (1b) of LH88 at a single point.
func potTemp(φ, z float64, f Forcing, c puffins.Constants) float64 {
	d := puffins.SinDeg(φ) - puffins.SinDeg(f.LatMax)
	return c.ThetaRef * (1 + f.DeltaH/3*(1-3*d*d) + (z/c.HeightTropo-0.5)*f.DeltaV)
}

// PotTempRCE returns the RCE potential temperature at height z on
// latitudes lats.
func PotTempRCE(lats []float64, z float64, f Forcing, c puffins.Constants) *puffins.Field {
	return puffins.LatFunc(lats, func(φ float64) float64 { return potTemp(φ, z, f, c) })
}

// PotTempRCEHeights returns the RCE potential temperature on the
// lats × heights grid. heights must not be empty.
func PotTempRCEHeights(lats, heights []float64, f Forcing, c puffins.Constants) (*puffins.Field, error) {
	theta, err := puffins.GridFunc(lats, heights, func(φ, z float64) float64 { return potTemp(φ, z, f, c) })
	if err != nil {
		return nil, fmt.Errorf("puffins: PotTempRCEHeights: %w", err)
	}
	return theta, nil
}

// DThetaRCEDLat returns the exact meridional derivative (per radian) of
// the RCE potential temperature, divided by the reference potential
// temperature.
func DThetaRCEDLat(lats []float64, f Forcing) *puffins.Field {
	sinMax := puffins.SinDeg(f.LatMax)
	return puffins.LatFunc(lats, func(φ float64) float64 {
		return -2 * f.DeltaH * puffins.CosDeg(φ) * (puffins.SinDeg(φ) - sinMax)
	})
}

// ThermalRossby specifies the thermal Rossby number, either directly
// (RossbyNumber) or through the forcing it is derived from
// (RossbyFromForcing).
type ThermalRossby interface {
	thermalRossby(c puffins.Constants) (float64, error)
}

// RossbyNumber is a thermal Rossby number given directly.
type RossbyNumber float64

func (r RossbyNumber) thermalRossby(puffins.Constants) (float64, error) {
	v := float64(r)
	if !(v >= 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("puffins: thermal Rossby number %g must be non-negative and finite: %w", v, puffins.ErrDomain)
	}
	return v, nil
}

// RossbyFromForcing derives the thermal Rossby number from the
// fractional temperature difference DeltaH across a layer of depth
// Height [m].
type RossbyFromForcing struct {
	DeltaH float64
	Height float64
}

func (r RossbyFromForcing) thermalRossby(c puffins.Constants) (float64, error) {
	if !(r.DeltaH >= 0) || math.IsInf(r.DeltaH, 0) {
		return 0, fmt.Errorf("puffins: DeltaH %g must be non-negative and finite: %w", r.DeltaH, puffins.ErrDomain)
	}
	if !(r.Height > 0) || math.IsInf(r.Height, 0) {
		return 0, fmt.Errorf("puffins: height %g must be positive and finite: %w", r.Height, puffins.ErrDomain)
	}
	ro := dynamics.ThermRossNum(r.DeltaH, r.Height, c)
	if math.IsNaN(ro) || math.IsInf(ro, 0) {
		return 0, fmt.Errorf("puffins: thermal Rossby number %g derived from DeltaH=%g, height=%g is not finite: %w",
			ro, r.DeltaH, r.Height, puffins.ErrDomain)
	}
	return ro, nil
}

// ThermRoss returns the validated value of the thermal Rossby number
// specified by ro. Invalid constants in c give puffins.ErrDomain.
func ThermRoss(ro ThermalRossby, c puffins.Constants) (float64, error) {
	if ro == nil {
		return 0, fmt.Errorf("puffins: thermal Rossby number not specified: %w", puffins.ErrDomain)
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return ro.thermalRossby(c)
}
