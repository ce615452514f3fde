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

// Command puffins is a command-line interface for the puffins
// Hadley cell theory calculations.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/puffins/puffinsutil"
)

func main() {
	if err := puffinsutil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
