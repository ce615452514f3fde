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

// logThetaRatio returns ln(θ(z)/θ(0)) for the RCE potential
// temperature on the lats × heights grid.
func logThetaRatio(lats, heights []float64, f Forcing, c puffins.Constants) (*puffins.Field, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	vals := make([]float64, 0, len(lats)*len(heights))
	for _, z := range heights {
		for _, φ := range lats {
			ratio := potTemp(φ, z, f, c) / potTemp(φ, 0, f, c)
			if !(ratio > 0) || math.IsInf(ratio, 0) {
				return nil, fmt.Errorf("θ(z)/θ(0) = %g is not positive at latitude %g, height %g: %w",
					ratio, φ, z, puffins.ErrDomain)
			}
			vals = append(vals, math.Log(ratio))
		}
	}
	return puffins.NewField2D(lats, heights, vals)
}

// LapseRateRCE returns dT/dz [K/m] consistent with the LH88 RCE
// potential temperature on the lats × heights grid.
func LapseRateRCE(lats, heights []float64, f Forcing, c puffins.Constants) (*puffins.Field, error) {
	logRatio, err := logThetaRatio(lats, heights, f, c)
	if err != nil {
		return nil, fmt.Errorf("puffins: LapseRateRCE: %w", err)
	}
	gammaDry := c.Grav / c.Cp
	dthetaDz := c.ThetaRef * f.DeltaV / c.HeightTropo
	return logRatio.AddConst(1).Scale(-gammaDry).AddConst(dthetaDz), nil
}

// PressureRCE returns the hydrostatic pressure [Pa] consistent with the
// LH88 RCE potential temperature on the lats × heights grid. The
// pressure at z = 0 is c.P0.
func PressureRCE(lats, heights []float64, f Forcing, c puffins.Constants) (*puffins.Field, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("puffins: PressureRCE: %w", err)
	}
	dthetaDz := c.ThetaRef * f.DeltaV / c.HeightTropo
	if dthetaDz == 0 {
		return nil, fmt.Errorf("puffins: PressureRCE: RCE stratification is zero (DeltaV=0): %w", puffins.ErrDomain)
	}
	logRatio, err := logThetaRatio(lats, heights, f, c)
	if err != nil {
		return nil, fmt.Errorf("puffins: PressureRCE: %w", err)
	}
	leading := c.Grav / c.Cp / dthetaDz
	kappaInv := c.Cp / c.Rd
	vals := logRatio.Values()
	for i, lr := range vals {
		base := 1 - leading*lr
		if base < 0 {
			k, j := i/len(lats), i%len(lats)
			return nil, fmt.Errorf("puffins: PressureRCE: pressure undefined above the top of the "+
				"atmosphere at latitude %g, height %g: %w", lats[j], heights[k], puffins.ErrDomain)
		}
		vals[i] = c.P0 * math.Pow(base, kappaInv)
	}
	return puffins.NewField2D(lats, heights, vals)
}
