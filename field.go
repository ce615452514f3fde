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

package puffins

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Axis identifies a coordinate axis of a Field.
type Axis int

const (
	// Latitude is the meridional axis, in degrees.
	Latitude Axis = iota
	// Level is the vertical axis, in whatever units the caller chooses
	// (height, pressure, sigma...).
	Level
)

func (a Axis) String() string {
	switch a {
	case Latitude:
		return "latitude"
	case Level:
		return "level"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Field is a numeric array addressed by latitude and, optionally, by
// vertical level. Values are stored level-major: the value at
// level k and latitude j is at index k*nlat + j. A Field is never
// modified after it is created; all operations return a new Field.
type Field struct {
	lat  []float64
	lev  []float64
	data []float64
}

// NewField creates a one-dimensional field of values on latitudes lats
// (in degrees). The input slices are copied.
func NewField(lats, values []float64) (*Field, error) {
	if len(lats) != len(values) {
		return nil, fmt.Errorf("puffins: NewField: %d latitudes but %d values: %w", len(lats), len(values), ErrShape)
	}
	return &Field{
		lat:  append([]float64(nil), lats...),
		data: append([]float64(nil), values...),
	}, nil
}

// NewField2D creates a field on the latitude × level grid. values must
// hold len(levs)*len(lats) values ordered level-major.
func NewField2D(lats, levs, values []float64) (*Field, error) {
	if len(levs) == 0 {
		return nil, fmt.Errorf("puffins: NewField2D: no levels: %w", ErrShape)
	}
	if len(values) != len(lats)*len(levs) {
		return nil, fmt.Errorf("puffins: NewField2D: %d×%d grid but %d values: %w",
			len(levs), len(lats), len(values), ErrShape)
	}
	return &Field{
		lat:  append([]float64(nil), lats...),
		lev:  append([]float64(nil), levs...),
		data: append([]float64(nil), values...),
	}, nil
}

// LatFunc returns the one-dimensional field fn(lat) evaluated at
// each of lats.
func LatFunc(lats []float64, fn func(lat float64) float64) *Field {
	f := &Field{
		lat:  append([]float64(nil), lats...),
		data: make([]float64, len(lats)),
	}
	for j, φ := range lats {
		f.data[j] = fn(φ)
	}
	return f
}

// GridFunc returns the two-dimensional field fn(lat, lev) evaluated on
// the lats × levs grid. levs must not be empty.
func GridFunc(lats, levs []float64, fn func(lat, lev float64) float64) (*Field, error) {
	if len(levs) == 0 {
		return nil, fmt.Errorf("puffins: GridFunc: no levels: %w", ErrShape)
	}
	f := &Field{
		lat:  append([]float64(nil), lats...),
		lev:  append([]float64(nil), levs...),
		data: make([]float64, len(lats)*len(levs)),
	}
	for k, z := range levs {
		for j, φ := range lats {
			f.data[k*len(lats)+j] = fn(φ, z)
		}
	}
	return f, nil
}

// HasLevels reports whether f has a vertical axis.
func (f *Field) HasLevels() bool { return f.lev != nil }

// Len returns the number of points along axis a. A field without a
// vertical axis has zero points along Level.
func (f *Field) Len(a Axis) int {
	switch a {
	case Latitude:
		return len(f.lat)
	case Level:
		return len(f.lev)
	default:
		panic(fmt.Errorf("puffins: invalid axis %v", a))
	}
}

// Coord returns a copy of the coordinate values along axis a, or nil
// if f has no such axis.
func (f *Field) Coord(a Axis) []float64 {
	switch a {
	case Latitude:
		return append([]float64(nil), f.lat...)
	case Level:
		if f.lev == nil {
			return nil
		}
		return append([]float64(nil), f.lev...)
	default:
		panic(fmt.Errorf("puffins: invalid axis %v", a))
	}
}

// Values returns a copy of the underlying values, level-major.
func (f *Field) Values() []float64 { return append([]float64(nil), f.data...) }

// At returns the value at level index k and latitude index j. k must
// be zero for one-dimensional fields.
func (f *Field) At(k, j int) float64 {
	if j < 0 || j >= len(f.lat) || k < 0 || k >= f.nlev() {
		panic(fmt.Errorf("puffins: index (%d, %d) out of range", k, j))
	}
	return f.data[k*len(f.lat)+j]
}

// Column returns the values at latitude index j on every level.
func (f *Field) Column(j int) []float64 {
	nlev := f.nlev()
	o := make([]float64, nlev)
	for k := 0; k < nlev; k++ {
		o[k] = f.At(k, j)
	}
	return o
}

// AtLevel returns the one-dimensional latitude field at level index k.
func (f *Field) AtLevel(k int) *Field {
	if k < 0 || k >= f.nlev() {
		panic(fmt.Errorf("puffins: level index %d out of range", k))
	}
	n := len(f.lat)
	return &Field{
		lat:  f.lat,
		data: append([]float64(nil), f.data[k*n:(k+1)*n]...),
	}
}

// Dense returns a copy of f as a levels × latitudes matrix. A field
// without a vertical axis is returned as a single row. Dense returns
// nil for an empty field.
func (f *Field) Dense() *mat.Dense {
	if len(f.data) == 0 {
		return nil
	}
	return mat.NewDense(f.nlev(), len(f.lat), f.Values())
}

// Add returns f + g.
func (f *Field) Add(g *Field) (*Field, error) {
	if err := f.checkCompatible(g); err != nil {
		return nil, fmt.Errorf("puffins: Add: %w", err)
	}
	o := f.withData(make([]float64, len(f.data)))
	floats.AddTo(o.data, f.data, g.data)
	return o, nil
}

// Sub returns f - g.
func (f *Field) Sub(g *Field) (*Field, error) {
	if err := f.checkCompatible(g); err != nil {
		return nil, fmt.Errorf("puffins: Sub: %w", err)
	}
	o := f.withData(make([]float64, len(f.data)))
	floats.SubTo(o.data, f.data, g.data)
	return o, nil
}

// Mul returns the elementwise product f * g.
func (f *Field) Mul(g *Field) (*Field, error) {
	if err := f.checkCompatible(g); err != nil {
		return nil, fmt.Errorf("puffins: Mul: %w", err)
	}
	o := f.withData(make([]float64, len(f.data)))
	floats.MulTo(o.data, f.data, g.data)
	return o, nil
}

// Scale returns c * f.
func (f *Field) Scale(c float64) *Field {
	o := f.withData(f.Values())
	floats.Scale(c, o.data)
	return o
}

// AddConst returns f + c.
func (f *Field) AddConst(c float64) *Field {
	o := f.withData(f.Values())
	floats.AddConst(c, o.data)
	return o
}

// MapLat returns the field fn(lat, v) for every value v of f, where lat
// is the latitude at which v is located.
func (f *Field) MapLat(fn func(lat, v float64) float64) *Field {
	o := f.withData(make([]float64, len(f.data)))
	n := len(f.lat)
	for i, v := range f.data {
		o.data[i] = fn(f.lat[i%n], v)
	}
	return o
}

// withData returns a field with f's coordinates and the given data.
// Coordinates are shared, which is safe because they are never
// modified.
func (f *Field) withData(data []float64) *Field {
	return &Field{lat: f.lat, lev: f.lev, data: data}
}

func (f *Field) nlev() int {
	if f.lev == nil {
		return 1
	}
	return len(f.lev)
}

// checkCompatible checks that g is defined on the same grid as f.
func (f *Field) checkCompatible(g *Field) error {
	if f.HasLevels() != g.HasLevels() {
		return fmt.Errorf("one field has a level axis and the other does not: %w", ErrShape)
	}
	if len(f.lat) != len(g.lat) || len(f.lev) != len(g.lev) {
		return fmt.Errorf("grid %d×%d does not match %d×%d: %w",
			len(f.lev), len(f.lat), len(g.lev), len(g.lat), ErrShape)
	}
	if !floats.Equal(f.lat, g.lat) || !floats.Equal(f.lev, g.lev) {
		return fmt.Errorf("coordinate values differ: %w", ErrShape)
	}
	return nil
}
