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

package puffinsutil

import (
	"fmt"

	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/dynamics"
	"github.com/spatialmodel/puffins/science/fixedtt"
	"github.com/spatialmodel/puffins/science/lh88"
)

// fixedttRelation is the gradient wind relation used by the
// "fixedtt" variant.
var fixedttRelation lh88.GradientWindRelation = fixedtt.Boussinesq{}

// Fields holds the LH88 fields computed on a grid.
type Fields struct {
	// Lat holds one-dimensional fields, evaluated in the middle of
	// the troposphere.
	Lat map[string]*puffins.Field

	// Height holds fields on the latitude × height grid.
	Height map[string]*puffins.Field
}

// fieldInfo holds the description and units of every field
// that ComputeFields returns.
var fieldInfo = map[string]struct{ description, units string }{
	"theta":      {"RCE potential temperature", "K"},
	"dthetadlat": {"Meridional derivative of RCE potential temperature divided by reference potential temperature", "rad-1"},
	"coriolis":   {"Coriolis parameter", "s-1"},
	"u":          {"Gradient-balance zonal wind", "m s-1"},
	"angmom":     {"Absolute angular momentum", "m2 s-1"},
	"eta":        {"Absolute vorticity computed from the wind", "s-1"},
	"etaM":       {"Absolute vorticity computed from angular momentum", "s-1"},
	"etanorm":    {"Analytical absolute vorticity divided by the rotation rate", "-"},
	"critmetric": {"Criticality metric with ascent at the forcing maximum", "m2 s-2"},
	"theta2d":    {"RCE potential temperature", "K"},
	"pressure":   {"Hydrostatic pressure", "Pa"},
	"lapserate":  {"Temperature lapse rate", "K m-1"},
}

// ComputeFields computes the LH88 RCE fields for forcing f on lats and
// heights.
func ComputeFields(lats, heights []float64, f lh88.Forcing, c puffins.Constants) (*Fields, error) {
	ro := lh88.RossbyFromForcing{DeltaH: f.DeltaH, Height: c.HeightTropo}
	o := &Fields{
		Lat: map[string]*puffins.Field{
			"theta":      lh88.PotTempRCE(lats, lh88.MidTroposphere(c), f, c),
			"dthetadlat": lh88.DThetaRCEDLat(lats, f),
			"coriolis":   dynamics.Coriolis(lats, c),
		},
		Height: make(map[string]*puffins.Field),
	}
	var err error
	if o.Height["theta2d"], err = lh88.PotTempRCEHeights(lats, heights, f, c); err != nil {
		return nil, err
	}
	u, err := lh88.URCE(lats, f.LatMax, ro, c)
	if err != nil {
		return nil, err
	}
	o.Lat["u"] = u
	o.Lat["angmom"] = dynamics.AbsAngMom(u, c)
	if o.Lat["eta"], err = dynamics.AbsVortFromU(u, c); err != nil {
		return nil, err
	}
	if o.Lat["etaM"], err = dynamics.AbsVortVertComp(o.Lat["angmom"], c); err != nil {
		return nil, err
	}
	if o.Lat["etanorm"], err = lh88.AbsVortNorm(lats, f.LatMax, ro, c); err != nil {
		return nil, err
	}
	if o.Lat["critmetric"], err = lh88.CritVortMetric(lats, f.LatMax, ro, c); err != nil {
		return nil, err
	}
	if o.Height["pressure"], err = lh88.PressureRCE(lats, heights, f, c); err != nil {
		return nil, err
	}
	if o.Height["lapserate"], err = lh88.LapseRateRCE(lats, heights, f, c); err != nil {
		return nil, err
	}
	return o, nil
}

// Edge returns the Northern Hemisphere cell edge for forcing f on lats.
// variant is either "lh88" or "fixedtt".
func Edge(variant string, lats []float64, f lh88.Forcing, p lh88.FixedTropoParams, c puffins.Constants) (float64, error) {
	switch variant {
	case "lh88":
		return lh88.EtaZeroCross(lats, f, c)
	case "fixedtt":
		return lh88.EtaFixedTropoZeroCross(lats, f, fixedttRelation, p, c)
	default:
		return 0, fmt.Errorf("puffins: invalid variant %q; valid options are \"lh88\" and \"fixedtt\"", variant)
	}
}
