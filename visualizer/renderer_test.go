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

package visualizer

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0xsoniclabs/poissonlab/simulation"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *simulation.Result {
	return &simulation.Result{
		FileId: "experiment",
		Experiment: simulation.Experiment{
			Rate:        2.0,
			DrawsPerRun: 10,
			NumRuns:     3,
			RandomSeed:  999,
		},
		Runs: []simulation.RunRecord{
			{Run: 0, Sum: 18, Mean: 1.8, Min: 0, Max: 5},
			{Run: 1, Sum: 22, Mean: 2.2, Min: 0, Max: 6},
			{Run: 2, Sum: 20, Mean: 2.0, Min: 0, Max: 4},
		},
		Frequencies: []float64{0.1, 0.25, 0.3, 0.2, 0.1, 0.05},
		RunSumECDF:  [][2]float64{{0.0, 0.0}, {0.5, 0.4}, {1.0, 1.0}},
		Summary: simulation.Summary{
			ExpectedSum:   20.0,
			MeanSum:       20.0,
			StdDevSum:     1.63,
			MinSum:        18.0,
			MaxSum:        22.0,
			P05:           18.0,
			P50:           20.0,
			P95:           22.0,
			RelativeError: 0.0,
		},
	}
}

func mustSetView(t *testing.T, result *simulation.Result) {
	t.Helper()
	require.NoError(t, setViewState(result))
}

func clearView(t *testing.T) {
	t.Helper()
	currentMu.Lock()
	currentState = nil
	currentMu.Unlock()
}

func TestVisualizer_renderMain(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderMain)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, MainHtml, rr.Body.String())
}

func TestVisualizer_convertCurveData(t *testing.T) {
	testData := [][2]float64{{1.0, 2.0}, {3.0, 4.0}, {5.0, 6.0}}

	result := convertCurveData(testData)

	assert.Len(t, result, 3)
	assert.Equal(t, opts.LineData{Value: [2]float64{1.0, 2.0}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{3.0, 4.0}}, result[1])
	assert.Equal(t, opts.LineData{Value: [2]float64{5.0, 6.0}}, result[2])
}

func TestVisualizer_convertDistributionData(t *testing.T) {
	testData := []float64{0.1, 0.4, 0.8, 1.0}

	result := convertDistributionData(testData)

	assert.Len(t, result, 4)
	assert.Equal(t, opts.LineData{Value: [2]float64{0.0, 0.1}}, result[0])
	assert.Equal(t, opts.LineData{Value: [2]float64{1.0, 0.4}}, result[1])
	assert.Equal(t, opts.LineData{Value: [2]float64{2.0, 0.8}}, result[2])
	assert.Equal(t, opts.LineData{Value: [2]float64{3.0, 1.0}}, result[3])
}

func TestVisualizer_convertFrequencyData(t *testing.T) {
	testData := []float64{0.1, 0.2, 0.3, 0.4}

	result := convertFrequencyData(testData)

	assert.Len(t, result, 4)
	assert.Equal(t, opts.ScatterData{Value: [2]float64{0.0, 0.1}, SymbolSize: 5}, result[0])
	assert.Equal(t, opts.ScatterData{Value: [2]float64{1.0, 0.2}, SymbolSize: 5}, result[1])
	assert.Equal(t, opts.ScatterData{Value: [2]float64{2.0, 0.3}, SymbolSize: 5}, result[2])
	assert.Equal(t, opts.ScatterData{Value: [2]float64{3.0, 0.4}, SymbolSize: 5}, result[3])
}

func TestVisualizer_convertMassData(t *testing.T) {
	testData := []float64{0.1, 0.2, 0.3}

	result := convertMassData(testData)

	assert.Len(t, result, 3)
	assert.Equal(t, opts.BarData{Value: 0.1}, result[0])
	assert.Equal(t, opts.BarData{Value: 0.2}, result[1])
	assert.Equal(t, opts.BarData{Value: 0.3}, result[2])
}

func TestVisualizer_convertOutcomeLabel(t *testing.T) {
	testData := []int{0, 1, 2}

	result := convertOutcomeLabel(testData)

	assert.Len(t, result, 3)
	assert.Equal(t, "0", result[0])
	assert.Equal(t, "1", result[1])
	assert.Equal(t, "2", result[2])
}

func TestVisualizer_newMassChart(t *testing.T) {
	chart := newMassChart("Test Title", []int{0, 1, 2}, []float64{0.2, 0.5, 0.3})

	assert.NotNil(t, chart)
}

func TestVisualizer_newCurveChart(t *testing.T) {
	chart := newCurveChart("Test Title", "Test Subtitle")

	assert.NotNil(t, chart)
}

func TestVisualizer_renderMass(t *testing.T) {
	mustSetView(t, sampleResult())

	req, err := http.NewRequest("GET", "/pmf-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderMass)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderCumulative(t *testing.T) {
	mustSetView(t, sampleResult())

	req, err := http.NewRequest("GET", "/cdf-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderCumulative)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderFrequencies(t *testing.T) {
	mustSetView(t, sampleResult())

	req, err := http.NewRequest("GET", "/frequency-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderFrequencies)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderRunSums(t *testing.T) {
	mustSetView(t, sampleResult())

	req, err := http.NewRequest("GET", "/run-sum-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderRunSums)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_renderConvergence(t *testing.T) {
	mustSetView(t, sampleResult())

	req, err := http.NewRequest("GET", "/convergence-stats", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(renderConvergence)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}

func TestVisualizer_handlersWithoutState(t *testing.T) {
	handlers := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"renderMass", renderMass},
		{"renderCumulative", renderCumulative},
		{"renderFrequencies", renderFrequencies},
		{"renderRunSums", renderRunSums},
		{"renderConvergence", renderConvergence},
	}
	for _, tc := range handlers {
		t.Run(tc.name, func(t *testing.T) {
			clearView(t)
			req, err := http.NewRequest("GET", "/", nil)
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			tc.handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}

func TestVisualizer_FireUpWeb(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- FireUpWeb(sampleResult(), "0")
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(1 * time.Second):
		// If no error after 1 second, pass the test
	}
}

func TestVisualizer_FireUpWebErrorsOnNilResult(t *testing.T) {
	err := FireUpWeb(nil, "0")
	assert.Error(t, err)
}
