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
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/puffins"
	"github.com/spatialmodel/puffins/science/lh88"
	"github.com/tealeg/xlsx"
)

func TestReadSweep(t *testing.T) {
	s, err := ReadSweep(strings.NewReader("LatMax = [2.0, 4.0]\nDeltaH = [0.2]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.LatMax) != 2 || s.LatMax[1] != 4 || len(s.DeltaH) != 1 || s.Variant != "lh88" {
		t.Errorf("sweep %+v", s)
	}
	if _, err := ReadSweep(strings.NewReader("LatMax = [")); err == nil {
		t.Error("expected a parsing error")
	}
}

func TestSweepRun(t *testing.T) {
	c := puffins.DefaultConstants()
	g := &Grid{LatMin: 0, LatMax: 89.5, NLat: 180, Spacing: DegreeSpacing}
	s := &Sweep{LatMax: []float64{0, 6, 10}, DeltaH: []float64{c.DeltaH / 2, c.DeltaH}, Variant: "lh88"}
	log, hook := test.NewNullLogger()
	results := s.Run(g, true, lh88.DefaultFixedTropoParams(c), c, log)
	if len(results) != 6 {
		t.Fatalf("have %d results, want 6", len(results))
	}
	lats := g.Lats()
	for _, r := range results {
		if r.LatMax == 0 {
			if !errors.Is(r.Err, puffins.ErrNoCrossing) {
				t.Errorf("%+v: want ErrNoCrossing", r)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("%+v: %v", r, r.Err)
			continue
		}
		f := lh88.DefaultForcing(r.LatMax, c)
		f.DeltaH = r.DeltaH
		trimmed, err := TrimInvalid(lats, f, c)
		if err != nil {
			t.Fatal(err)
		}
		want, err := lh88.EtaZeroCross(trimmed, f, c)
		if err != nil {
			t.Fatal(err)
		}
		if r.Edge != want {
			t.Errorf("%+v: want edge %g", r, want)
		}
		if r.Edge <= r.LatMax {
			t.Errorf("%+v: edge should be poleward of the forcing", r)
		}
	}
	if n := len(hook.Entries); n != 2 {
		t.Errorf("have %d log entries, want 2", n)
	}

	s.Variant = "bogus"
	for _, r := range s.Run(g, true, lh88.DefaultFixedTropoParams(c), c, log) {
		if r.Err == nil {
			t.Errorf("%+v: expected an error", r)
		}
	}
}

func testResults() []SweepResult {
	return []SweepResult{
		{LatMax: 2, DeltaH: 0.1, Edge: 10},
		{LatMax: 4, DeltaH: 0.1, Edge: 12},
		{LatMax: 6, DeltaH: 0.1, Edge: 14},
		{LatMax: 0, DeltaH: 0.1, Err: fmt.Errorf("no edge: %w", puffins.ErrNoCrossing)},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testResults())
	for name, v := range map[string][2]float64{
		"n":         {float64(s.N), 3},
		"failed":    {float64(s.Failed), 1},
		"min":       {s.Min, 10},
		"max":       {s.Max, 14},
		"mean":      {s.Mean, 12},
		"std":       {s.Std, 2},
		"slope":     {s.Slope, 1},
		"intercept": {s.Intercept, 8},
		"r2":        {s.RSquared, 1},
	} {
		if math.Abs(v[0]-v[1]) > 1e-10 {
			t.Errorf("%s: have %g, want %g", name, v[0], v[1])
		}
	}
	if s := Summarize(nil); s.N != 0 || s.Mean != 0 {
		t.Errorf("empty summary %+v", s)
	}
}

func TestWriteSweepCSV(t *testing.T) {
	b := new(bytes.Buffer)
	if err := WriteSweepCSV(b, testResults()); err != nil {
		t.Fatal(err)
	}
	recs, err := csv.NewReader(b).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 5 {
		t.Fatalf("have %d records, want 5", len(recs))
	}
	if recs[1][2] != "10" || recs[4][2] != "" || !strings.Contains(recs[4][3], "no edge") {
		t.Errorf("records %v", recs)
	}
}

func TestWriteSweepXLSX(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "sweep.xlsx")
	if err := WriteSweep(fileName, testResults()); err != nil {
		t.Fatal(err)
	}
	f, err := xlsx.OpenFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	sheet, ok := f.Sheet["sweep"]
	if !ok {
		t.Fatal("missing sweep sheet")
	}
	if len(sheet.Rows) != 5 {
		t.Fatalf("have %d rows, want 5", len(sheet.Rows))
	}
	edge, err := sheet.Rows[3].Cells[2].Float()
	if err != nil {
		t.Fatal(err)
	}
	if edge != 14 {
		t.Errorf("edge: have %g, want 14", edge)
	}
	if _, ok := f.Sheet["summary"]; !ok {
		t.Error("missing summary sheet")
	}
}
