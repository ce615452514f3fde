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
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spatialmodel/puffins"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// sinLatTicks places ticks at round latitudes on an axis that is
// linear in sin(lat).
type sinLatTicks struct{}

func (sinLatTicks) Ticks(min, max float64) []plot.Tick {
	var t []plot.Tick
	for lat := -90.; lat <= 90; lat += 10 {
		s := puffins.SinDeg(lat)
		if s < min-1e-12 || s > max+1e-12 {
			continue
		}
		tick := plot.Tick{Value: s}
		if math.Mod(lat, 30) == 0 {
			tick.Label = fmt.Sprintf("%g°", lat)
		}
		t = append(t, tick)
	}
	return t
}

// PlotPanel is one panel of a profile figure.
type PlotPanel struct {
	// Title is the y-axis label.
	Title string

	// Lines maps legend entries to the fields drawn.
	Lines map[string]*puffins.Field

	// Order specifies the order in which Lines are drawn.
	Order []string
}

var lineColors = []color.Color{
	color.NRGBA{0, 0, 0, 255},
	color.NRGBA{200, 40, 40, 255},
	color.NRGBA{40, 80, 200, 255},
	color.NRGBA{127, 127, 127, 255},
}

// newPanel creates a plot of panel against sin(lat).
func newPanel(panel PlotPanel) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Latitude"
	p.X.Tick.Marker = sinLatTicks{}
	p.Y.Label.Text = panel.Title
	p.Legend.Top = true
	for i, name := range panel.Order {
		f, ok := panel.Lines[name]
		if !ok {
			return nil, fmt.Errorf("puffins: plotting: no field %s", name)
		}
		if f.HasLevels() {
			return nil, fmt.Errorf("puffins: plotting %s: field must be a function of latitude only: %w",
				name, puffins.ErrShape)
		}
		lats, vals := f.Coord(puffins.Latitude), f.Values()
		xy := make(plotter.XYs, len(lats))
		for j, φ := range lats {
			xy[j].X = puffins.SinDeg(φ)
			xy[j].Y = vals[j]
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, fmt.Errorf("puffins: plotting %s: %v", name, err)
		}
		l.Color = lineColors[i%len(lineColors)]
		l.Width = vg.Points(1)
		if i >= len(lineColors) {
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(l)
		p.Legend.Add(name, l)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// PlotProfiles draws panels stacked vertically against sin(lat) and
// saves the figure to fileName. The file format is determined by its
// extension, for example ".png" or ".svg".
func PlotProfiles(fileName string, panels ...PlotPanel) error {
	if len(panels) == 0 {
		return fmt.Errorf("puffins: plotting: no panels")
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	const width = 6 * vg.Inch
	panelHeight := 2.5 * vg.Inch
	height := panelHeight * vg.Length(len(panels))
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return fmt.Errorf("puffins: plotting: %v", err)
	}
	dc := draw.New(c)
	for i, panel := range panels {
		p, err := newPanel(panel)
		if err != nil {
			return err
		}
		bottom := height - panelHeight*vg.Length(i+1)
		top := bottom + panelHeight - height
		p.Draw(draw.Crop(dc, 0, 0, bottom, top))
	}
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("puffins: plotting: %v", err)
	}
	if _, err = c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("puffins: plotting: %v", err)
	}
	return f.Close()
}
