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

import "fmt"

// Deriv returns the derivative of f along axis with respect to coord,
// on the same grid as f. coord must be monotonic and hold one value
// for every point of f along axis.
//
// Interior points use the second-order centered difference for
// non-uniform spacing; the first and last points use one-sided
// first-order differences.
func Deriv(f *Field, axis Axis, coord []float64) (*Field, error) {
	n := f.Len(axis)
	if axis == Level && !f.HasLevels() {
		return nil, fmt.Errorf("puffins: Deriv: field has no %v axis: %w", axis, ErrShape)
	}
	if len(coord) != n {
		return nil, fmt.Errorf("puffins: Deriv: %d %v coordinates for %d points: %w",
			len(coord), axis, n, ErrShape)
	}
	if n < 2 {
		return nil, fmt.Errorf("puffins: Deriv: need at least 2 points along %v, have %d: %w",
			axis, n, ErrShape)
	}
	o := f.withData(make([]float64, len(f.data)))
	nlat := len(f.lat)
	switch axis {
	case Latitude:
		for k := 0; k < f.nlev(); k++ {
			gradient(o.data, f.data, coord, k*nlat, 1)
		}
	case Level:
		for j := 0; j < nlat; j++ {
			gradient(o.data, f.data, coord, j, nlat)
		}
	}
	return o, nil
}

// LatDeriv returns the derivative of f with respect to latitude in
// radians, using f's own latitude coordinate.
func LatDeriv(f *Field) (*Field, error) {
	return LatDerivCoord(f, f.lat)
}

// LatDerivCoord is like LatDeriv, but differentiates with respect to the
// supplied latitudes (in degrees) instead of f's own coordinate.
func LatDerivCoord(f *Field, lats []float64) (*Field, error) {
	rad := make([]float64, len(lats))
	for i, φ := range lats {
		rad[i] = DegToRad(φ)
	}
	return Deriv(f, Latitude, rad)
}

// ZDeriv returns the derivative of f along its vertical axis with
// respect to vert, which holds one value per level.
func ZDeriv(f *Field, vert []float64) (*Field, error) {
	return Deriv(f, Level, vert)
}

// ZDerivField returns the derivative of f along its vertical axis with
// respect to the vertical coordinate field vert, such as pressure,
// which must be defined on the same grid as f. The derivative is taken
// column by column, so vert may vary with latitude.
func ZDerivField(f, vert *Field) (*Field, error) {
	if !f.HasLevels() {
		return nil, fmt.Errorf("puffins: ZDerivField: field has no %v axis: %w", Level, ErrShape)
	}
	if err := f.checkCompatible(vert); err != nil {
		return nil, fmt.Errorf("puffins: ZDerivField: %w", err)
	}
	nlat, nlev := len(f.lat), len(f.lev)
	if nlev < 2 {
		return nil, fmt.Errorf("puffins: ZDerivField: need at least 2 points along %v, have %d: %w",
			Level, nlev, ErrShape)
	}
	o := f.withData(make([]float64, len(f.data)))
	col := make([]float64, nlev)
	for j := 0; j < nlat; j++ {
		for k := range col {
			col[k] = vert.data[k*nlat+j]
		}
		gradient(o.data, f.data, col, j, nlat)
	}
	return o, nil
}

// gradient writes into dst the derivative of the n = len(x) values of
// y located at off, off+stride, ..., off+(n-1)*stride.
func gradient(dst, y, x []float64, off, stride int) {
	n := len(x)
	at := func(i int) float64 { return y[off+i*stride] }
	dst[off] = (at(1) - at(0)) / (x[1] - x[0])
	dst[off+(n-1)*stride] = (at(n-1) - at(n-2)) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		hs := x[i] - x[i-1]
		hd := x[i+1] - x[i]
		// Written in terms of differences so that constant input gives
		// exactly zero.
		dst[off+i*stride] = (hs*hs*(at(i+1)-at(i)) + hd*hd*(at(i)-at(i-1))) /
			(hs * hd * (hs + hd))
	}
}
