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

	"github.com/spatialmodel/puffins"
)

// FixedTropoParams holds the parameters of a gradient-wind calculation
// in which the tropopause temperature, rather than its height, is
// held fixed.
type FixedTropoParams struct {
	// TempTropo is the tropopause temperature [K].
	TempTropo float64
	// Gamma is the tropospheric lapse rate [K/m].
	Gamma float64
	// DThetaDTs is the sensitivity of free-tropospheric potential
	// temperature to surface temperature.
	DThetaDTs float64
	// ComputeTempSfc specifies whether surface temperature should be
	// derived from the potential temperature field using DThetaDTs. If
	// false the potential temperature is used directly.
	ComputeTempSfc bool
}

// DefaultFixedTropoParams returns moist-adiabatic parameters from c.
func DefaultFixedTropoParams(c puffins.Constants) FixedTropoParams {
	return FixedTropoParams{
		TempTropo:      c.TempTropo,
		Gamma:          c.GammaMoist,
		DThetaDTs:      c.DThetaDTsMoist,
		ComputeTempSfc: true,
	}
}

// GradientWindRelation computes the zonal wind in gradient balance with
// the potential temperature field theta under a fixed tropopause
// temperature. Package fixedtt provides an implementation.
type GradientWindRelation interface {
	GradientWind(theta *puffins.Field, p FixedTropoParams, c puffins.Constants) (*puffins.Field, error)
}

// URCEFixedTropoTemp returns the LH88 RCE zonal wind computed assuming
// a fixed tropopause temperature. The forcing potential temperature is
// evaluated at mid-depth, where the vertical term vanishes, and the
// wind is delegated to rel.
func URCEFixedTropoTemp(lats []float64, f Forcing, rel GradientWindRelation, p FixedTropoParams,
	c puffins.Constants) (*puffins.Field, error) {
	if rel == nil {
		return nil, fmt.Errorf("puffins: URCEFixedTropoTemp: no gradient wind relation specified: %w", puffins.ErrDomain)
	}
	unitDepth := c
	unitDepth.HeightTropo = 1
	theta := PotTempRCE(lats, 0.5, f, unitDepth)
	u, err := rel.GradientWind(theta, p, c)
	if err != nil {
		return nil, fmt.Errorf("puffins: URCEFixedTropoTemp: %w", err)
	}
	return u, nil
}
