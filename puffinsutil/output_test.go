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
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/puffins"
)

func TestOutputter(t *testing.T) {
	o, err := NewOutputter(map[string]string{
		"u":   "u",
		"u2":  "u * 2",
		"x":   "u2 + lat",
		"s":   "sind(lat)",
		"pos": "u > 15",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := o.ModelVariables(), []string{"lat", "u"}; !reflect.DeepEqual(have, want) {
		t.Errorf("model variables: have %v, want %v", have, want)
	}
	lats := []float64{10, 20, 30}
	u := puffins.LatFunc(lats, func(φ float64) float64 { return φ })
	r, err := o.Results(map[string]*puffins.Field{"u": u})
	if err != nil {
		t.Fatal(err)
	}
	for j, φ := range lats {
		for name, want := range map[string]float64{
			"u":  φ,
			"u2": 2 * φ,
			"x":  3 * φ,
			"s":  math.Sin(φ * math.Pi / 180),
		} {
			if have := r[name].Values()[j]; math.Abs(have-want) > 1e-12 {
				t.Errorf("%s at %g: have %g, want %g", name, φ, have, want)
			}
		}
	}
	if have, want := r["pos"].Values(), []float64{0, 1, 1}; !reflect.DeepEqual(have, want) {
		t.Errorf("pos: have %v, want %v", have, want)
	}
}

func TestOutputterErrors(t *testing.T) {
	if _, err := NewOutputter(nil, nil); err == nil {
		t.Error("no variables: expected an error")
	}
	if _, err := NewOutputter(map[string]string{"1u": "u"}, nil); err == nil {
		t.Error("invalid name: expected an error")
	}
	if _, err := NewOutputter(map[string]string{"a": "b + 1", "b": "a + 1"}, nil); err == nil {
		t.Error("circular: expected an error")
	}
	if _, err := NewOutputter(map[string]string{"a": "u +"}, nil); err == nil {
		t.Error("syntax: expected an error")
	}

	o, err := NewOutputter(map[string]string{"a": "v"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	u := puffins.LatFunc([]float64{10, 20}, func(φ float64) float64 { return φ })
	if _, err := o.Results(map[string]*puffins.Field{"u": u}); err == nil {
		t.Error("undefined variable: expected an error")
	}
	u2, err := puffins.GridFunc([]float64{10, 20}, []float64{0, 1}, func(φ, z float64) float64 { return φ })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.Results(map[string]*puffins.Field{"v": u2}); !errors.Is(err, puffins.ErrShape) {
		t.Errorf("have %v, want ErrShape", err)
	}
	v := puffins.LatFunc([]float64{10, 21}, func(φ float64) float64 { return φ })
	if _, err := o.Results(map[string]*puffins.Field{"u": u, "v": v}); !errors.Is(err, puffins.ErrShape) {
		t.Errorf("have %v, want ErrShape", err)
	}
}

func readNCFVar(t *testing.T, f *cdf.File, name string) []float64 {
	end := f.Header.Lengths(name)
	if len(end) == 0 {
		t.Fatalf("variable %s not in file", name)
	}
	n := 1
	for _, l := range end {
		n *= l
	}
	r := f.Reader(name, make([]int, len(end)), end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	return buf.([]float64)
}

func TestWriteNetCDF(t *testing.T) {
	lats := []float64{-30, 0, 30}
	levs := []float64{0, 1000}
	u := puffins.LatFunc(lats, func(φ float64) float64 { return 2 * φ })
	p, err := puffins.GridFunc(lats, levs, func(φ, z float64) float64 { return φ + z })
	if err != nil {
		t.Fatal(err)
	}
	fileName := filepath.Join(t.TempDir(), "fields.nc")
	err = WriteNetCDF(fileName, map[string]NetCDFVar{
		"u": {Field: u, Description: "wind", Units: "m s-1"},
		"p": {Field: p, Description: "test", Units: "Pa"},
	})
	if err != nil {
		t.Fatal(err)
	}
	ff, err := os.Open(fileName)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string][]float64{
		"lat": lats,
		"lev": levs,
		"u":   u.Values(),
		"p":   p.Values(),
	} {
		if have := readNCFVar(t, f, name); !reflect.DeepEqual(have, want) {
			t.Errorf("%s: have %v, want %v", name, have, want)
		}
	}
	if have := f.Header.Lengths("p"); !reflect.DeepEqual(have, []int{2, 3}) {
		t.Errorf("p dimensions: %v", have)
	}

	other := puffins.LatFunc([]float64{-30, 0, 31}, func(φ float64) float64 { return φ })
	err = WriteNetCDF(fileName, map[string]NetCDFVar{"u": {Field: u}, "v": {Field: other}})
	if !errors.Is(err, puffins.ErrShape) {
		t.Errorf("have %v, want ErrShape", err)
	}
}
