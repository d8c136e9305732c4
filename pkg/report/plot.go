// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package report

import (
	"fmt"
	"io"

	"github.com/consensys/go-hipmem/pkg/record"
	"github.com/consensys/go-hipmem/pkg/trace"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Dimensions of a single plot (or panel).
var (
	PLOT_WIDTH  = 24 * vg.Centimeter
	PLOT_HEIGHT = 12 * vg.Centimeter
	PANEL_PAD   = 4 * vg.Millimeter
)

// SpikeRaster plots every spike of the given populations, one row per neuron
// and one colour per population.  Populations are stacked bottom to top in
// the order given.  The reserved decoder line is not shown.
func SpikeRaster(pops []trace.Population, title string) (*plot.Plot, error) {
	var (
		p    = plot.New()
		base = 0
	)
	//
	p.Title.Text = title
	p.X.Label.Text = "Simulation time (ms)"
	p.Y.Label.Text = "Neuron"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	//
	for i, pop := range pops {
		var xys plotter.XYs
		//
		for n, spikes := range pop.Spikes {
			if pop.Role == trace.RoleDecoder && n == 0 {
				continue
			}
			//
			for _, t := range spikes {
				xys = append(xys, plotter.XY{X: t, Y: float64(base + n)})
			}
		}
		//
		base += len(pop.Spikes)
		// Nothing fired
		if len(xys) == 0 {
			continue
		}
		//
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		//
		scatter.GlyphStyle.Color = plotutil.Color(i)
		scatter.GlyphStyle.Shape = draw.BoxGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
		p.Legend.Add(pop.Label, scatter)
	}
	//
	p.Y.Min = -1
	p.Y.Max = float64(base)
	//
	return p, nil
}

// WriteSpikeRaster renders the spike raster of some populations as a PNG.
func WriteSpikeRaster(w io.Writer, pops []trace.Population, title string) error {
	p, err := SpikeRaster(pops, title)
	if err != nil {
		return err
	}
	//
	wt, err := p.WriterTo(PLOT_WIDTH, PLOT_HEIGHT, "png")
	if err != nil {
		return err
	}
	//
	_, err = wt.WriteTo(w)
	//
	return err
}

// InputOutput selects the input and output layers from a set of populations.
func InputOutput(pops []trace.Population) []trace.Population {
	var selected []trace.Population
	//
	for _, pop := range pops {
		if pop.Role == trace.RoleInput || pop.Role == trace.RoleOutput {
			selected = append(selected, pop)
		}
	}
	//
	return selected
}

// MembranePotentials plots the membrane potential of every neuron in a
// population, one line per neuron.  Sample k is at time k*timeStep.
func MembranePotentials(series [][]float64, timeStep float64, title string) (*plot.Plot, error) {
	p := plot.New()
	//
	p.Title.Text = title
	p.X.Label.Text = "Simulation time (ms)"
	p.Y.Label.Text = "Membrane potential (mV)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	//
	for n, samples := range series {
		if len(samples) == 0 {
			continue
		}
		//
		xys := make(plotter.XYs, len(samples))
		for k, v := range samples {
			xys[k] = plotter.XY{X: float64(k) * timeStep, Y: v}
		}
		//
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		//
		line.LineStyle.Color = plotutil.Color(n)
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("neuron %d", n), line)
	}
	//
	return p, nil
}

// WriteMembranePotentials renders the membrane potentials of a population as a
// PNG.
func WriteMembranePotentials(w io.Writer, series [][]float64, timeStep float64, title string) error {
	if len(series) == 0 {
		return fmt.Errorf("no membrane potentials recorded")
	}
	//
	p, err := MembranePotentials(series, timeStep, title)
	if err != nil {
		return err
	}
	//
	wt, err := p.WriterTo(PLOT_WIDTH, PLOT_HEIGHT, "png")
	if err != nil {
		return err
	}
	//
	_, err = wt.WriteTo(w)
	//
	return err
}

// WeightPanels builds one plot per destination neuron of a weight series, each
// showing the evolution of every synapse onto that neuron.  The weight axis
// spans [wMin-0.5, wMax+0.5].
func WeightPanels(series *record.WeightSeries, wMin float64, wMax float64, title string) ([]*plot.Plot, error) {
	var (
		panels  []*plot.Plot
		sources = series.Sources()
	)
	//
	for _, dst := range series.Destinations() {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s %d", title, dst)
		p.X.Label.Text = "Time (ms)"
		p.Y.Label.Text = "Synaptic weight (nA)"
		p.Y.Min = wMin - 0.5
		p.Y.Max = wMax + 0.5
		p.Legend.Top = true
		p.Add(plotter.NewGrid())
		//
		for i, src := range sources {
			times, weights := series.Synapse(src, dst)
			if len(times) == 0 {
				continue
			}
			//
			xys := make(plotter.XYs, len(times))
			for k := range times {
				xys[k] = plotter.XY{X: times[k], Y: weights[k]}
			}
			//
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, err
			}
			//
			line.LineStyle.Color = plotutil.Color(i)
			line.LineStyle.Width = vg.Points(1.5)
			p.Add(line)
			p.Legend.Add(fmt.Sprintf("src %d", src), line)
		}
		//
		panels = append(panels, p)
	}
	//
	return panels, nil
}

// WriteWeights renders the weight panels of a series as a single PNG, one
// panel per row.
func WriteWeights(w io.Writer, series *record.WeightSeries, wMin float64, wMax float64, title string) error {
	panels, err := WeightPanels(series, wMin, wMax, title)
	if err != nil {
		return err
	} else if len(panels) == 0 {
		return fmt.Errorf("no weights recorded")
	}
	//
	log.Debugf("plotting %d weight panels (%d samples)", len(panels), series.Len())
	//
	var (
		rows  = make([][]*plot.Plot, len(panels))
		img   = vgimg.New(PLOT_WIDTH, PLOT_HEIGHT*vg.Length(len(panels)))
		tiles = draw.Tiles{
			Rows: len(panels), Cols: 1,
			PadTop: PANEL_PAD, PadBottom: PANEL_PAD, PadLeft: PANEL_PAD, PadRight: PANEL_PAD,
			PadX: PANEL_PAD, PadY: PANEL_PAD,
		}
	)
	//
	for i, p := range panels {
		rows[i] = []*plot.Plot{p}
	}
	//
	canvases := plot.Align(rows, tiles, draw.New(img))
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}
	//
	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	//
	return err
}
