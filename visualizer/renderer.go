// Copyright 2025 Sonic Labs
// This file is part of Poissonlab, a counting-statistics laboratory
//
// Poissonlab is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Poissonlab is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Poissonlab. If not, see <http://www.gnu.org/licenses/>.

// Package visualizer serves the charts of an experiment result with a local
// web server.
package visualizer

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/0xsoniclabs/poissonlab/simulation"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const pmfRef = "pmf-stats"
const cdfRef = "cdf-stats"
const frequencyRef = "frequency-stats"
const runSumRef = "run-sum-stats"
const convergenceRef = "convergence-stats"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Poissonlab: Counting Statistics</title>
    <link rel="stylesheet" href="style.css">
    <script src="script.js"></script>
  </head>
  <body>
    <h1>Poissonlab: Counting Statistics</h1>
    <ul>
    <li> <h3> <a href="/` + pmfRef + `"> Probability Mass Function </a> </h3> </li>
    <li> <h3> <a href="/` + cdfRef + `"> Cumulative Distribution Function </a> </h3> </li>
    <li> <h3> <a href="/` + frequencyRef + `"> Observed Frequencies </a> </h3> </li>
    <li> <h3> <a href="/` + runSumRef + `"> Run Sum Distribution </a> </h3> </li>
    <li> <h3> <a href="/` + convergenceRef + `"> Convergence of Run Means </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// convertCurveData converts curve points to chart points.
func convertCurveData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// convertDistributionData converts per-outcome values to chart points.
func convertDistributionData(data []float64) []opts.LineData {
	items := []opts.LineData{}
	for x, p := range data {
		items = append(items, opts.LineData{Value: [2]float64{float64(x), p}})
	}
	return items
}

// convertFrequencyData converts per-outcome values to scatter points.
func convertFrequencyData(data []float64) []opts.ScatterData {
	items := []opts.ScatterData{}
	for x, p := range data {
		items = append(items, opts.ScatterData{Value: [2]float64{float64(x), p}, SymbolSize: 5})
	}
	return items
}

// convertMassData converts per-outcome values to bar heights.
func convertMassData(data []float64) []opts.BarData {
	items := []opts.BarData{}
	for i := 0; i < len(data); i++ {
		items = append(items, opts.BarData{Value: data[i]})
	}
	return items
}

// convertOutcomeLabel produces outcome labels for the bar chart axis.
func convertOutcomeLabel(data []int) []string {
	items := []string{}
	for i := 0; i < len(data); i++ {
		items = append(items, strconv.Itoa(data[i]))
	}
	return items
}

// newMassChart creates a bar chart for a probability mass function.
func newMassChart(title string, outcomes []int, mass []float64) *charts.Bar {
	chart := charts.NewBar()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: title,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}))
	chart.SetXAxis(convertOutcomeLabel(outcomes)).AddSeries("Probability", convertMassData(mass))
	return chart
}

// newCurveChart creates a line chart for a cumulative distribution or a
// convergence series.
func newCurveChart(title string, subtitle string) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	return chart
}

// renderMass renders the probability mass function.
func renderMass(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	title := fmt.Sprintf("Probability Mass Function (rate %v)", view.result.Experiment.Rate)
	chart := newMassChart(title, view.outcomes, view.pmf)
	_ = chart.Render(w)
}

// renderCumulative renders the cumulative distribution function.
func renderCumulative(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	title := fmt.Sprintf("Cumulative Distribution Function (rate %v)", view.result.Experiment.Rate)
	chart := newCurveChart(title, "")
	chart.AddSeries("Probability", convertDistributionData(view.cdf))
	_ = chart.Render(w)
}

// renderFrequencies renders the observed frequencies against the
// theoretical mass function.
func renderFrequencies(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Observed Frequencies",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: "Observed Frequencies",
		}))
	scatter.AddSeries("Observed", convertFrequencyData(view.frequencies)).
		AddSeries("Theory", convertFrequencyData(view.pmf))
	_ = scatter.Render(w)
}

// renderRunSums renders the empirical distribution of the run sums.
func renderRunSums(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	chart := newCurveChart("Run Sum Distribution", "Empirical CDF in the unit square")
	chart.AddSeries("eCDF", convertCurveData(view.result.RunSumECDF))
	_ = chart.Render(w)
}

// renderConvergence renders the running mean of the run sums against the
// expected sum.
func renderConvergence(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	n := len(view.runningMean)
	reference := [][2]float64{
		{1.0, view.expectedSum},
		{float64(n), view.expectedSum},
	}
	title := fmt.Sprintf("Convergence of Run Means (expected sum %v)", view.expectedSum)
	chart := newCurveChart(title, "")
	chart.AddSeries("Running Mean", convertCurveData(view.runningMean)).
		AddSeries("Expected Sum", convertCurveData(reference))
	_ = chart.Render(w)
}

// FireUpWeb produces a view model for an experiment result and visualizes
// it with a local web-server.
func FireUpWeb(result *simulation.Result, addr string) error {
	if err := setViewState(result); err != nil {
		return err
	}

	// create web server
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+pmfRef, renderMass)
	http.HandleFunc("/"+cdfRef, renderCumulative)
	http.HandleFunc("/"+frequencyRef, renderFrequencies)
	http.HandleFunc("/"+runSumRef, renderRunSums)
	http.HandleFunc("/"+convergenceRef, renderConvergence)
	return http.ListenAndServe(":"+addr, nil)
}
