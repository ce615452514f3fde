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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
	"github.com/spf13/cast"
)

// constantOptions maps configuration variable names to the physical
// constants they override.
var constantOptions = []struct {
	name string
	ptr  func(*puffins.Constants) *float64
}{
	{"Constants.Grav", func(c *puffins.Constants) *float64 { return &c.Grav }},
	{"Constants.RotRate", func(c *puffins.Constants) *float64 { return &c.RotRate }},
	{"Constants.Radius", func(c *puffins.Constants) *float64 { return &c.Radius }},
	{"Constants.ThetaRef", func(c *puffins.Constants) *float64 { return &c.ThetaRef }},
	{"Constants.HeightTropo", func(c *puffins.Constants) *float64 { return &c.HeightTropo }},
	{"Constants.TempTropo", func(c *puffins.Constants) *float64 { return &c.TempTropo }},
	{"Constants.P0", func(c *puffins.Constants) *float64 { return &c.P0 }},
	{"Constants.Rd", func(c *puffins.Constants) *float64 { return &c.Rd }},
	{"Constants.Cp", func(c *puffins.Constants) *float64 { return &c.Cp }},
	{"Constants.DeltaH", func(c *puffins.Constants) *float64 { return &c.DeltaH }},
	{"Constants.DeltaV", func(c *puffins.Constants) *float64 { return &c.DeltaV }},
	{"Constants.GammaMoist", func(c *puffins.Constants) *float64 { return &c.GammaMoist }},
	{"Constants.DThetaDTsMoist", func(c *puffins.Constants) *float64 { return &c.DThetaDTsMoist }},
}

// ConstantsConfig returns the physical constants specified in cfg.
// Constants that are not set keep their default values.
func ConstantsConfig(cfg *viper.Viper) (puffins.Constants, error) {
	c := puffins.DefaultConstants()
	for _, o := range constantOptions {
		if !cfg.IsSet(o.name) {
			continue
		}
		v, err := cast.ToFloat64E(cfg.Get(o.name))
		if err != nil {
			return c, fmt.Errorf("puffins: parsing configuration variable %s: %v", o.name, err)
		}
		*o.ptr(&c) = v
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// ForcingConfig returns the LH88 forcing specified in cfg.
func ForcingConfig(cfg *viper.Viper, c puffins.Constants) (lh88.Forcing, error) {
	latMax, err := cast.ToFloat64E(cfg.Get("LatMax"))
	if err != nil {
		return lh88.Forcing{}, fmt.Errorf("puffins: parsing configuration variable LatMax: %v", err)
	}
	if !(latMax > -90 && latMax < 90) {
		return lh88.Forcing{}, fmt.Errorf("puffins: LatMax=%g but should be between -90 and 90", latMax)
	}
	return lh88.DefaultForcing(latMax, c), nil
}

// FixedTropoConfig returns the fixed-tropopause-temperature parameters
// specified in cfg.
func FixedTropoConfig(cfg *viper.Viper, c puffins.Constants) lh88.FixedTropoParams {
	p := lh88.DefaultFixedTropoParams(c)
	p.ComputeTempSfc = cfg.GetBool("FixedTropo.ComputeTempSfc")
	return p
}

// GridConfig returns the latitude grid specified in cfg.
func GridConfig(cfg *viper.Viper) (*Grid, error) {
	g := &Grid{
		LatMin:  cfg.GetFloat64("Grid.LatMin"),
		LatMax:  cfg.GetFloat64("Grid.LatMax"),
		NLat:    cfg.GetInt("Grid.NLat"),
		Spacing: os.ExpandEnv(cfg.GetString("Grid.Spacing")),
		ZTop:    cfg.GetFloat64("Grid.ZTop"),
		NLev:    cfg.GetInt("Grid.NLev"),
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("there are no variables specified for output. Please fill in " +
			"the OutputVariables configuration and try again")
	}
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if v == "" {
			return make(map[string]string), nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("puffins: parsing configuration variable %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("puffins: invalid type for configuration variable %s: %#v", varName, i)
	}
}

// getFloat64Slice returns a []float64 from a viper configuration,
// where the values may have been set as strings from the command line
// or as numbers in a configuration file.
func getFloat64Slice(varName string, cfg *viper.Viper) ([]float64, error) {
	i := cfg.Get(varName)
	var items []interface{}
	switch v := i.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, strings.TrimSpace(s))
		}
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		for _, s := range strings.Split(strings.Trim(v, "[]"), ",") {
			items = append(items, strings.TrimSpace(s))
		}
	default:
		return nil, fmt.Errorf("puffins: invalid type for configuration variable %s: %#v", varName, i)
	}
	o := make([]float64, len(items))
	for j, item := range items {
		f, err := cast.ToFloat64E(item)
		if err != nil {
			return nil, fmt.Errorf("puffins: parsing configuration variable %s: %v", varName, err)
		}
		o[j] = f
	}
	return o, nil
}
