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
	"fmt"
	"sync"

	"github.com/0xsoniclabs/poissonlab/simulation"
	"github.com/0xsoniclabs/poissonlab/statistics/poisson"
	umath "github.com/0xsoniclabs/poissonlab/utils/math"
)

type viewState struct {
	result      *simulation.Result
	outcomes    []int     // outcome axis shared by the pmf, cdf and frequency views
	pmf         []float64 // theoretical probability mass per outcome
	cdf         []float64 // theoretical cumulative probability per outcome
	frequencies []float64 // observed relative frequency per outcome
	runningMean [][2]float64
	expectedSum float64
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(result *simulation.Result) error {
	if result == nil {
		return fmt.Errorf("visualizer: result is nil")
	}
	derived, err := buildViewState(result)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(result *simulation.Result) (*viewState, error) {
	d, err := poisson.New(result.Experiment.Rate)
	if err != nil {
		return nil, fmt.Errorf("visualizer: create distribution: %w", err)
	}
	if len(result.Runs) == 0 {
		return nil, fmt.Errorf("visualizer: result has no runs")
	}

	upper, err := d.Quantile(0.9999)
	if err != nil {
		return nil, fmt.Errorf("visualizer: upper quantile: %w", err)
	}
	kMax := umath.Max(upper+2, len(result.Frequencies)-1)

	outcomes := make([]int, kMax+1)
	pmf := make([]float64, kMax+1)
	cdf := make([]float64, kMax+1)
	frequencies := make([]float64, kMax+1)
	copy(frequencies, result.Frequencies)
	for k := 0; k <= kMax; k++ {
		outcomes[k] = k
		pmf[k] = d.PMF(k)
		cdf[k] = d.CDF(k)
	}

	runningMean := make([][2]float64, len(result.Runs))
	runningSum := 0.0
	for i, r := range result.Runs {
		runningSum += float64(r.Sum)
		runningMean[i] = [2]float64{float64(i + 1), runningSum / float64(i+1)}
	}

	return &viewState{
		result:      result,
		outcomes:    outcomes,
		pmf:         pmf,
		cdf:         cdf,
		frequencies: frequencies,
		runningMean: runningMean,
		expectedSum: result.Summary.ExpectedSum,
	}, nil
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: result not initialised")
	}
	return currentState, nil
}
