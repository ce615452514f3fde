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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
	"github.com/tealeg/xlsx"
)

// Sweep specifies a set of cell-edge calculations over every
// combination of forcing latitude and horizontal temperature
// difference.
type Sweep struct {
	// LatMax holds the latitudes of maximum forcing [degrees].
	LatMax []float64

	// DeltaH holds the fractional horizontal temperature differences.
	DeltaH []float64

	// Variant is either "lh88" or "fixedtt".
	Variant string
}

// ReadSweep reads a sweep definition in TOML format from r.
func ReadSweep(r io.Reader) (*Sweep, error) {
	s := new(Sweep)
	if _, err := toml.DecodeReader(r, s); err != nil {
		return nil, fmt.Errorf("puffins: reading sweep definition: %v", err)
	}
	if s.Variant == "" {
		s.Variant = "lh88"
	}
	return s, nil
}

// SweepResult is the outcome of one sweep calculation. If the
// calculation failed, Err holds the reason and Edge is zero.
type SweepResult struct {
	LatMax, DeltaH float64
	Edge           float64
	Err            error
}

// Run calculates the cell edge for every combination of s.LatMax and
// s.DeltaH, using c for all other constants. The calculations are run
// concurrently. A failed calculation is recorded in its result and
// logged to log, and does not stop the others.
func (s *Sweep) Run(g *Grid, trim bool, p lh88.FixedTropoParams, c puffins.Constants, log logrus.FieldLogger) []SweepResult {
	results := make([]SweepResult, 0, len(s.LatMax)*len(s.DeltaH))
	for _, dh := range s.DeltaH {
		for _, lm := range s.LatMax {
			results = append(results, SweepResult{LatMax: lm, DeltaH: dh})
		}
	}
	lats := g.Lats()

	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ii := pp; ii < len(results); ii += nprocs {
				r := &results[ii]
				r.Edge, r.Err = s.edge(lats, r.LatMax, r.DeltaH, trim, p, c)
				if r.Err != nil {
					r.Edge = 0
					log.WithFields(logrus.Fields{
						"lat_max": r.LatMax,
						"delta_h": r.DeltaH,
						"variant": s.Variant,
						"error":   r.Err,
					}).Warn("puffins sweep: no cell edge")
				}
			}
		}(pp)
	}
	wg.Wait()
	return results
}

func (s *Sweep) edge(lats []float64, latMax, deltaH float64, trim bool, p lh88.FixedTropoParams,
	c puffins.Constants) (float64, error) {
	f := lh88.DefaultForcing(latMax, c)
	f.DeltaH = deltaH
	if trim {
		var err error
		if lats, err = TrimInvalid(lats, f, c); err != nil {
			return 0, err
		}
	}
	return Edge(s.Variant, lats, f, p, c)
}

// SweepSummary holds statistics of the successful calculations in a
// sweep.
type SweepSummary struct {
	N, Failed           int
	Min, Max, Mean, Std float64

	// Slope, Intercept and RSquared describe the least-squares fit of
	// the cell edge to the forcing latitude.
	Slope, Intercept, RSquared float64
}

// Summarize returns statistics of the successful results.
func Summarize(results []SweepResult) SweepSummary {
	var s SweepSummary
	var x, y []float64
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		x = append(x, r.LatMax)
		y = append(y, r.Edge)
	}
	s.N = len(y)
	if s.N == 0 {
		return s
	}
	s.Min = stats.StatsMin(y)
	s.Max = stats.StatsMax(y)
	s.Mean = stats.StatsMean(y)
	if s.N > 1 {
		s.Std = stats.StatsSampleStandardDeviation(y)
		if stats.StatsMin(x) != stats.StatsMax(x) {
			s.Slope, s.Intercept, s.RSquared, _, _, _ = stats.LinearRegression(x, y)
		}
	}
	return s
}

var sweepHeader = []string{"lat_max", "delta_h", "edge", "error"}

func (r SweepResult) record() []string {
	var edge, msg string
	if r.Err != nil {
		msg = r.Err.Error()
	} else {
		edge = strconv.FormatFloat(r.Edge, 'g', -1, 64)
	}
	return []string{
		strconv.FormatFloat(r.LatMax, 'g', -1, 64),
		strconv.FormatFloat(r.DeltaH, 'g', -1, 64),
		edge, msg,
	}
}

// WriteSweepCSV writes results to w in CSV format. Failed
// calculations have an empty edge and an error message.
func WriteSweepCSV(w io.Writer, results []SweepResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sweepHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSweepXLSX writes results and their summary to a Microsoft
// Excel file at fileName.
func WriteSweepXLSX(fileName string, results []SweepResult) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("sweep")
	if err != nil {
		return err
	}
	row := sheet.AddRow()
	for _, h := range sweepHeader {
		row.AddCell().SetString(h)
	}
	for _, r := range results {
		row = sheet.AddRow()
		row.AddCell().SetFloat(r.LatMax)
		row.AddCell().SetFloat(r.DeltaH)
		if r.Err != nil {
			row.AddCell().SetString("")
			row.AddCell().SetString(r.Err.Error())
		} else {
			row.AddCell().SetFloat(r.Edge)
		}
	}

	summary, err := f.AddSheet("summary")
	if err != nil {
		return err
	}
	s := Summarize(results)
	for _, kv := range []struct {
		k string
		v float64
	}{
		{"n", float64(s.N)}, {"failed", float64(s.Failed)},
		{"min", s.Min}, {"max", s.Max}, {"mean", s.Mean}, {"std", s.Std},
		{"slope", s.Slope}, {"intercept", s.Intercept}, {"r2", s.RSquared},
	} {
		row := summary.AddRow()
		row.AddCell().SetString(kv.k)
		row.AddCell().SetFloat(kv.v)
	}
	return f.Save(fileName)
}

// WriteSweep writes results to fileName, in Excel format if the file
// extension is ".xlsx" and in CSV format otherwise.
func WriteSweep(fileName string, results []SweepResult) error {
	if strings.ToLower(filepath.Ext(fileName)) == ".xlsx" {
		return WriteSweepXLSX(fileName, results)
	}
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("puffins: creating sweep output file: %v", err)
	}
	if err := WriteSweepCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
