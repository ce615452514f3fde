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

import "errors"

var (
	// ErrDomain is returned when a formula input lies outside the
	// mathematical domain of the formula, e.g. a negative square-root
	// radicand, a non-positive logarithm argument, or a latitude where
	// the formula is singular.
	ErrDomain = errors.New("puffins: input outside of formula domain")

	// ErrShape is returned when field and coordinate lengths do not
	// agree, or when a field has too few points along an axis.
	ErrShape = errors.New("puffins: incompatible field shape")

	// ErrNoCrossing is returned when a zero-crossing search finds no
	// sign change in the scanned latitude range.
	ErrNoCrossing = errors.New("puffins: no admissible zero crossing")
)
