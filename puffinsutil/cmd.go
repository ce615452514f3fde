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

	"github.com/kr/pretty"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives log messages.
var Log logrus.FieldLogger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	c := puffins.DefaultConstants()

	// Options are the configuration options available to puffins.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum severity of log messages
              to print: one of debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LatMax",
			usage: `
              LatMax is the latitude of maximum radiative-convective
              equilibrium temperature [degrees].`,
			defaultVal: 6.0,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags(), edgeCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Grid.LatMin",
			usage: `
              Grid.LatMin is the first latitude of the grid [degrees].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags(), edgeCmd.Flags(), sweepCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Grid.LatMax",
			usage: `
              Grid.LatMax is the last latitude of the grid [degrees].`,
			defaultVal: 89.5,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags(), edgeCmd.Flags(), sweepCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Grid.NLat",
			usage: `
              Grid.NLat is the number of latitudes in the grid.`,
			defaultVal: 180,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags(), edgeCmd.Flags(), sweepCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Grid.Spacing",
			usage: `
              Grid.Spacing specifies whether latitudes are spaced uniformly
              in degrees ("degrees") or in sin(lat) ("sine").`,
			defaultVal: DegreeSpacing,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags(), edgeCmd.Flags(), sweepCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Grid.ZTop",
			usage: `
              Grid.ZTop is the height of the highest level [m].`,
			defaultVal: c.HeightTropo,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags()},
		},
		{
			name: "Grid.NLev",
			usage: `
              Grid.NLev is the number of levels between the surface and
              Grid.ZTop.`,
			defaultVal: 16,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags()},
		},
		{
			name: "TrimInvalid",
			usage: `
              TrimInvalid specifies whether latitudes where the
              gradient-balance wind has no real solution should be removed
              from the grid. If false, such latitudes cause an error.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags(), edgeCmd.Flags(), sweepCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Variant",
			usage: `
              Variant specifies how the zonal wind is calculated: "lh88"
              for the Lindzen & Hou (1988) solution or "fixedtt" for a
              fixed tropopause temperature.`,
			defaultVal: "lh88",
			flagsets:   []*pflag.FlagSet{edgeCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "FixedTropo.ComputeTempSfc",
			usage: `
              FixedTropo.ComputeTempSfc specifies whether the surface
              temperature in the fixedtt variant is derived from potential
              temperature using Constants.DThetaDTsMoist.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{edgeCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the NetCDF file where fields
              should be written.`,
			shorthand:  "o",
			defaultVal: "puffins.nc",
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables maps the names of one-dimensional output
              variables to expressions of the computed fields (theta,
              dthetadlat, coriolis, u, angmom, eta, etaM, etanorm,
              critmetric), lat, and sinlat. It should be in JSON format
              when set as a command-line argument or environment variable.`,
			defaultVal: map[string]string{"theta": "theta", "u": "u", "eta": "eta"},
			flagsets:   []*pflag.FlagSet{fieldsCmd.Flags()},
		},
		{
			name: "Sweep.File",
			usage: `
              Sweep.File is an optional TOML file defining LatMax, DeltaH and
              Variant for a sweep. If set, it overrides the other Sweep options.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.LatMax",
			usage: `
              Sweep.LatMax lists the forcing latitudes to sweep over [degrees].`,
			defaultVal: []string{"2", "4", "6", "8", "10", "15", "20"},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.DeltaH",
			usage: `
              Sweep.DeltaH lists the fractional horizontal temperature
              differences to sweep over.`,
			defaultVal: []string{"0.1666667", "0.3333333"},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.OutputFile",
			usage: `
              Sweep.OutputFile is where the sweep results are written, as
              a Microsoft Excel file if it ends in .xlsx and as CSV otherwise.`,
			defaultVal: "sweep.csv",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is where the figure is saved. The format is
              determined by the extension, for example .png or .svg.`,
			defaultVal: "puffins.png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "open",
			usage: `
              open specifies whether to open the figure after saving it.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}
	for _, o := range constantOptions {
		options = append(options, struct {
			name, usage, shorthand string
			defaultVal             interface{}
			flagsets               []*pflag.FlagSet
		}{
			name: o.name,
			usage: fmt.Sprintf(`
              %s overrides the default value of this physical constant.`, o.name),
			defaultVal: *o.ptr(&c),
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		})
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PUFFINS")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				set.StringP(option.name, option.shorthand, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(constantsCmd)
	Root.AddCommand(fieldsCmd)
	Root.AddCommand(edgeCmd)
	Root.AddCommand(sweepCmd)
	Root.AddCommand(plotCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("puffins: problem reading configuration file: %v", err)
		}
	}
	lvl, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("puffins: %v", err)
	}
	if l, ok := Log.(*logrus.Logger); ok {
		l.SetLevel(lvl)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "puffins",
	Short: "Axisymmetric Hadley cell theory calculations.",
	Long: `puffins evaluates the Lindzen & Hou (1988) radiative-convective
equilibrium solution for Hadley circulations forced off the equator, and
locates the poleward edge of the circulation.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PUFFINS_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of puffins.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "puffins v%s\n", puffins.Version)
	},
	DisableAutoGenTag: true,
}

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the physical constants.",
	Long: `constants prints the physical constants in effect, after applying
any configuration overrides, along with their units.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ConstantsConfig(Cfg)
		if err != nil {
			return err
		}
		units := c.Units()
		w := cmd.OutOrStdout()
		for _, name := range c.UnitNames() {
			fmt.Fprintf(w, "%-16s %v\n", name, units[name])
		}
		pretty.Fprintf(w, "%# v\n", c)
		return nil
	},
	DisableAutoGenTag: true,
}

// setup reads the configuration shared by the calculation commands.
func setup() (puffins.Constants, *Grid, error) {
	c, err := ConstantsConfig(Cfg)
	if err != nil {
		return c, nil, err
	}
	g, err := GridConfig(Cfg)
	if err != nil {
		return c, nil, err
	}
	return c, g, nil
}

// forcingLats returns the configured forcing and the grid latitudes,
// trimmed if the TrimInvalid option is set.
func forcingLats(c puffins.Constants, g *Grid) (lh88.Forcing, []float64, error) {
	f, err := ForcingConfig(Cfg, c)
	if err != nil {
		return f, nil, err
	}
	lats := g.Lats()
	if !Cfg.GetBool("TrimInvalid") {
		return f, lats, nil
	}
	trimmed, err := TrimInvalid(lats, f, c)
	if err != nil {
		return f, nil, err
	}
	if len(trimmed) != len(lats) {
		Log.WithFields(logrus.Fields{
			"lat_max": f.LatMax,
			"removed": len(lats) - len(trimmed),
			"first":   trimmed[0],
			"last":    trimmed[len(trimmed)-1],
		}).Info("puffins: removed latitudes without a gradient-balance wind")
	}
	return f, trimmed, nil
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Calculate RCE fields.",
	Long: `fields calculates the Lindzen & Hou (1988) radiative-convective
equilibrium fields and writes them, along with any OutputVariables, to a
NetCDF file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, g, err := setup()
		if err != nil {
			return err
		}
		f, lats, err := forcingLats(c, g)
		if err != nil {
			return err
		}
		outVars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		o, err := NewOutputter(outVars, nil)
		if err != nil {
			return err
		}
		fields, err := ComputeFields(lats, g.Heights(), f, c)
		if err != nil {
			return err
		}
		results, err := o.Results(fields.Lat)
		if err != nil {
			return err
		}
		vars := make(map[string]NetCDFVar)
		for name, field := range fields.Height {
			vars[name] = NetCDFVar{Field: field, Description: fieldInfo[name].description, Units: fieldInfo[name].units}
		}
		for name, field := range results {
			v := NetCDFVar{Field: field, Description: outVars[name]}
			if info, ok := fieldInfo[outVars[name]]; ok {
				v.Description, v.Units = info.description, info.units
			}
			vars[name] = v
		}
		fileName := os.ExpandEnv(Cfg.GetString("OutputFile"))
		if err := WriteNetCDF(fileName, vars); err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{"file": fileName, "variables": len(vars)}).Info("puffins: wrote fields")
		return nil
	},
	DisableAutoGenTag: true,
}

var edgeCmd = &cobra.Command{
	Use:   "edge",
	Short: "Calculate the cell edge.",
	Long: `edge calculates the Northern Hemisphere latitude at which the absolute
vorticity of the radiative-convective equilibrium wind changes sign.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, g, err := setup()
		if err != nil {
			return err
		}
		f, lats, err := forcingLats(c, g)
		if err != nil {
			return err
		}
		edge, err := Edge(Cfg.GetString("Variant"), lats, f, FixedTropoConfig(Cfg, c), c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g\n", edge)
		return nil
	},
	DisableAutoGenTag: true,
}

// SweepConfig returns the sweep specified in cfg.
func SweepConfig(cfg *viper.Viper) (*Sweep, error) {
	if file := os.ExpandEnv(cfg.GetString("Sweep.File")); file != "" {
		r, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("puffins: opening sweep file: %v", err)
		}
		defer r.Close()
		return ReadSweep(r)
	}
	latMax, err := getFloat64Slice("Sweep.LatMax", cfg)
	if err != nil {
		return nil, err
	}
	deltaH, err := getFloat64Slice("Sweep.DeltaH", cfg)
	if err != nil {
		return nil, err
	}
	return &Sweep{LatMax: latMax, DeltaH: deltaH, Variant: cfg.GetString("Variant")}, nil
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Calculate the cell edge for many forcings.",
	Long: `sweep calculates the cell edge for every combination of Sweep.LatMax
and Sweep.DeltaH. Failed combinations are logged and recorded in the output
rather than stopping the sweep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, g, err := setup()
		if err != nil {
			return err
		}
		s, err := SweepConfig(Cfg)
		if err != nil {
			return err
		}
		results := s.Run(g, Cfg.GetBool("TrimInvalid"), FixedTropoConfig(Cfg, c), c, Log)
		sum := Summarize(results)
		Log.WithFields(logrus.Fields{
			"n":         sum.N,
			"failed":    sum.Failed,
			"min":       sum.Min,
			"max":       sum.Max,
			"mean":      sum.Mean,
			"std":       sum.Std,
			"slope":     sum.Slope,
			"intercept": sum.Intercept,
			"r2":        sum.RSquared,
		}).Info("puffins: sweep complete")
		return WriteSweep(os.ExpandEnv(Cfg.GetString("Sweep.OutputFile")), results)
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the RCE wind and vorticity.",
	Long: `plot draws the radiative-convective equilibrium zonal wind and absolute
vorticity against sin(lat) and saves the figure to PlotFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, g, err := setup()
		if err != nil {
			return err
		}
		f, lats, err := forcingLats(c, g)
		if err != nil {
			return err
		}
		g.ZTop, g.NLev = c.HeightTropo, 2
		fields, err := ComputeFields(lats, g.Heights(), f, c)
		if err != nil {
			return err
		}
		fileName := os.ExpandEnv(Cfg.GetString("PlotFile"))
		err = PlotProfiles(fileName,
			PlotPanel{
				Title: "u (m/s)",
				Lines: map[string]*puffins.Field{"u": fields.Lat["u"]},
				Order: []string{"u"},
			},
			PlotPanel{
				Title: "η / Ω",
				Lines: map[string]*puffins.Field{
					"numerical":  fields.Lat["eta"].Scale(1 / c.RotRate),
					"analytical": fields.Lat["etanorm"],
				},
				Order: []string{"numerical", "analytical"},
			},
		)
		if err != nil {
			return err
		}
		Log.WithField("file", fileName).Info("puffins: saved figure")
		if Cfg.GetBool("open") {
			return open.Run(fileName)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
