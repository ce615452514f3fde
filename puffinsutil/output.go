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
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/spatialmodel/puffins"
	"gonum.org/v1/gonum/floats"
)

// Outputter calculates output variables from the one-dimensional
// computed fields.
//
// outputVariables maps the names of the variables for which data
// should be returned to expressions that define how the
// requested data should be calculated. These expressions can utilize
// the computed fields, "lat", "sinlat", other output variables, and
// functions.
//
// modelVariables is automatically generated based on the fields that
// are required to calculate the requested output variables.
type Outputter struct {
	outputVariables map[string]string
	modelVariables  []string
	outputFunctions map[string]govaluate.ExpressionFunction
}

func oneArg(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("puffins: got %d arguments for function '%s', but needs 1", len(arg), name)
		}
		v, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("puffins: invalid argument %v for function '%s'", arg[0], name)
		}
		return f(v), nil
	}
}

// NewOutputter initializes a new Outputter and adds a set of default
// output functions: 'exp(x)', 'sqrt(x)', 'abs(x)', and 'sind(x)' and
// 'cosd(x)', which take their arguments in degrees.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp":  oneArg("exp", math.Exp),
		"sqrt": oneArg("sqrt", math.Sqrt),
		"abs":  oneArg("abs", math.Abs),
		"sind": oneArg("sind", puffins.SinDeg),
		"cosd": oneArg("cosd", puffins.CosDeg),
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}
	vars, err := checkOutputVars(outputVariables)
	if err != nil {
		return nil, err
	}
	o := &Outputter{
		outputVariables: vars,
		outputFunctions: defaultOutputFuncs,
	}
	if err := checkOutputNames(o.outputVariables); err != nil {
		return nil, err
	}
	if err := o.checkForDerivatives(0); err != nil {
		return nil, err
	}
	return o, nil
}

// ModelVariables returns the names of the fields required to calculate
// the output variables.
func (o *Outputter) ModelVariables() []string {
	return append([]string(nil), o.modelVariables...)
}

// removeDuplicates removes all duplicated strings from a slice, returning a
// slice that contains only unique strings.
func removeDuplicates(s []string) []string {
	result := make([]string, 0, len(s))
	seen := make(map[string]struct{})
	for _, val := range s {
		if _, ok := seen[val]; !ok {
			result = append(result, val)
			seen[val] = struct{}{}
		}
	}
	return result
}

var identChar = regexp.MustCompile("[a-zA-Z0-9_]")

// checkForDerivatives replaces any output variable appearing in another
// output variable's expression by the expression that defines it, and
// then identifies the unique fields required to calculate the
// requested output variables.
func (o *Outputter) checkForDerivatives(depth int) error {
	if depth > 100 {
		return fmt.Errorf("puffins: output variables contain a circular reference")
	}
	o.modelVariables = make([]string, 0, len(o.outputVariables))
	for key, val := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(val, o.outputFunctions)
		if err != nil {
			return fmt.Errorf("puffins: output variable %s: %v", key, err)
		}
		uniqueVars := removeDuplicates(expression.Vars())
		o.modelVariables = append(o.modelVariables, uniqueVars...)
		for _, uniqueVar := range uniqueVars {
			def, ok := o.outputVariables[uniqueVar]
			if !ok || def == uniqueVar {
				continue
			}
			if uniqueVar == key {
				return fmt.Errorf("puffins: output variable %s refers to itself", key)
			}
			// An instance of the variable name is only replaced if it is
			// not part of a longer variable name.
			splitVal := strings.Split(val, uniqueVar)
			for i := 0; i < len(splitVal)-1; i++ {
				isSuffix := splitVal[i] != "" && identChar.MatchString(splitVal[i][len(splitVal[i])-1:])
				isPrefix := splitVal[i+1] != "" && identChar.MatchString(splitVal[i+1][:1])
				if !isSuffix && !isPrefix {
					splitVal[i] += "(" + def + ")"
				} else {
					splitVal[i] += uniqueVar
				}
			}
			o.outputVariables[key] = strings.Join(splitVal, "")
			return o.checkForDerivatives(depth + 1)
		}
	}
	o.modelVariables = removeDuplicates(o.modelVariables)
	sort.Strings(o.modelVariables)
	return nil
}

var outputName = regexp.MustCompile(`^[A-Za-z]\w*$`)

// checkOutputNames checks that the output variable names are valid
// NetCDF variable names.
func checkOutputNames(o map[string]string) error {
	for key := range o {
		if !outputName.MatchString(key) {
			return fmt.Errorf("puffins: output variable name '%s' includes unsupported characters", key)
		}
	}
	return nil
}

// Results calculates the output variables from fields, which must all
// be functions of latitude only and share the same latitudes.
func (o *Outputter) Results(fields map[string]*puffins.Field) (map[string]*puffins.Field, error) {
	var lats []float64
	for _, f := range fields {
		if f.HasLevels() {
			return nil, fmt.Errorf("puffins: output fields must be functions of latitude only: %w", puffins.ErrShape)
		}
		if lats == nil {
			lats = f.Coord(puffins.Latitude)
		} else if l := f.Coord(puffins.Latitude); len(l) != len(lats) || !floats.Equal(l, lats) {
			return nil, fmt.Errorf("puffins: output fields are on different latitudes: %w", puffins.ErrShape)
		}
	}
	if lats == nil {
		return nil, fmt.Errorf("puffins: no fields to calculate output from")
	}
	values := make(map[string][]float64, len(o.modelVariables))
	for _, v := range o.modelVariables {
		switch v {
		case "lat":
			values[v] = lats
		case "sinlat":
			values[v] = puffins.LatFunc(lats, puffins.SinDeg).Values()
		default:
			f, ok := fields[v]
			if !ok {
				return nil, fmt.Errorf("puffins: undefined variable name '%s'", v)
			}
			values[v] = f.Values()
		}
	}
	results := make(map[string]*puffins.Field, len(o.outputVariables))
	for name, exp := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(exp, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("puffins: output variable %s: %v", name, err)
		}
		vars := expression.Vars()
		out := make([]float64, len(lats))
		params := make(map[string]interface{}, len(vars))
		for j := range lats {
			for _, v := range vars {
				params[v] = values[v][j]
			}
			r, err := expression.Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("puffins: evaluating output variable %s: %v", name, err)
			}
			switch rv := r.(type) {
			case float64:
				out[j] = rv
			case bool:
				if rv {
					out[j] = 1
				}
			default:
				return nil, fmt.Errorf("puffins: output variable %s evaluates to %T, not a number", name, r)
			}
		}
		if results[name], err = puffins.NewField(lats, out); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// fieldArray returns the contents of f as a levels × latitudes
// array, or a latitude vector for one-dimensional fields.
func fieldArray(f *puffins.Field) *sparse.DenseArray {
	if !f.HasLevels() {
		return vector(f.Values())
	}
	m := f.Dense()
	a := sparse.ZerosDense(m.Dims())
	copy(a.Elements, m.RawMatrix().Data)
	return a
}

func vector(x []float64) *sparse.DenseArray {
	a := sparse.ZerosDense(len(x))
	copy(a.Elements, x)
	return a
}

// NetCDFVar is a field to be written to a NetCDF file.
type NetCDFVar struct {
	Field              *puffins.Field
	Description, Units string
}

// WriteNetCDF writes vars to a new NetCDF file at fileName. All
// variables must share the same latitudes, and those with a vertical
// axis must share the same levels. Latitude and level coordinate
// variables "lat" and "lev" are added.
func WriteNetCDF(fileName string, vars map[string]NetCDFVar) error {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	var lats, levs []float64
	for _, n := range names {
		f := vars[n].Field
		if lats == nil {
			lats = f.Coord(puffins.Latitude)
		} else if !sameCoord(lats, f.Coord(puffins.Latitude)) {
			return fmt.Errorf("puffins: writing NetCDF: variable %s has different latitudes: %w", n, puffins.ErrShape)
		}
		if !f.HasLevels() {
			continue
		}
		if levs == nil {
			levs = f.Coord(puffins.Level)
		} else if !sameCoord(levs, f.Coord(puffins.Level)) {
			return fmt.Errorf("puffins: writing NetCDF: variable %s has different levels: %w", n, puffins.ErrShape)
		}
	}
	if lats == nil {
		return fmt.Errorf("puffins: writing NetCDF: no variables")
	}
	dims, lengths := []string{"lat"}, []int{len(lats)}
	if levs != nil {
		dims, lengths = append(dims, "lev"), append(lengths, len(levs))
	}
	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "comment", "Lindzen & Hou (1988) radiative-convective equilibrium fields")
	h.AddAttribute("", "version", puffins.Version)
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddAttribute("lat", "units", "degrees_north")
	if levs != nil {
		h.AddVariable("lev", []string{"lev"}, []float64{0})
		h.AddAttribute("lev", "units", "m")
	}
	for _, n := range names {
		v := vars[n]
		if v.Field.HasLevels() {
			h.AddVariable(n, []string{"lev", "lat"}, []float64{0})
		} else {
			h.AddVariable(n, []string{"lat"}, []float64{0})
		}
		h.AddAttribute(n, "description", v.Description)
		h.AddAttribute(n, "units", v.Units)
	}
	h.Define()

	ff, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("puffins: creating NetCDF file: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h) // writes the header to ff
	if err != nil {
		return fmt.Errorf("puffins: creating NetCDF file: %v", err)
	}
	if err := writeNCF(f, "lat", vector(lats)); err != nil {
		return err
	}
	if levs != nil {
		if err := writeNCF(f, "lev", vector(levs)); err != nil {
			return err
		}
	}
	for _, n := range names {
		if err := writeNCF(f, n, fieldArray(vars[n].Field)); err != nil {
			return err
		}
	}
	return ff.Sync()
}

func sameCoord(a, b []float64) bool {
	return len(a) == len(b) && floats.Equal(a, b)
}

func writeNCF(f *cdf.File, v string, data *sparse.DenseArray) error {
	end := f.Header.Lengths(v)
	start := make([]int, len(end))
	w := f.Writer(v, start, end)
	if _, err := w.Write(data.Elements); err != nil {
		return fmt.Errorf("puffins: writing NetCDF variable %s: %v", v, err)
	}
	return nil
}
