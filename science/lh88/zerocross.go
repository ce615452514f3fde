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
	"github.com/spatialmodel/puffins/science/criticality"
	"github.com/spatialmodel/puffins/science/dynamics"
)

// EtaZeroCross returns the Northern Hemisphere latitude at which the
// absolute vorticity of the LH88 RCE wind changes sign, with the
// thermal Rossby number derived from f.DeltaH and c.HeightTropo.
func EtaZeroCross(lats []float64, f Forcing, c puffins.Constants) (float64, error) {
	u, err := URCE(lats, f.LatMax, RossbyFromForcing{DeltaH: f.DeltaH, Height: c.HeightTropo}, c)
	if err != nil {
		return 0, fmt.Errorf("puffins: EtaZeroCross: %w", err)
	}
	return etaZeroCross(u, c)
}

// EtaFixedTropoZeroCross is like EtaZeroCross, but with the wind
// computed assuming a fixed tropopause temperature.
func EtaFixedTropoZeroCross(lats []float64, f Forcing, rel GradientWindRelation, p FixedTropoParams,
	c puffins.Constants) (float64, error) {
	u, err := URCEFixedTropoTemp(lats, f, rel, p, c)
	if err != nil {
		return 0, fmt.Errorf("puffins: EtaFixedTropoZeroCross: %w", err)
	}
	return etaZeroCross(u, c)
}

func etaZeroCross(u *puffins.Field, c puffins.Constants) (float64, error) {
	eta, err := dynamics.AbsVortFromU(u, c)
	if err != nil {
		return 0, err
	}
	return criticality.ZeroCross(eta, criticality.Northern)
}
