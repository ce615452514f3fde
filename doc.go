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

// Package puffins evaluates formulas from the theory of axisymmetric
// Hadley circulations (Held & Hou 1980; Lindzen & Hou 1988).
//
// The root package holds the pieces shared by the science subpackages:
// the physical constant set, the latitude/level Field type and the
// finite-difference operators that act on it. The formulas themselves
// live in science/dynamics, science/lh88 and science/criticality.
//
// Every function is a deterministic transform of its inputs. Nothing is
// cached and no package-level state is mutated, so independent
// evaluations may be run concurrently by the caller.
package puffins

// Version gives the version number.
const Version = "0.3.0"
