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

// Package simulation runs Monte Carlo experiments on the Poisson counting
// distribution. An experiment consists of independent runs; each run draws a
// fixed number of variates and is reduced to its aggregate statistics. With
// many runs the mean of the run sums converges to the expected sum, making
// the Law of Large Numbers observable in the result.
package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/0xsoniclabs/poissonlab/statistics/aggregate"
	"github.com/0xsoniclabs/poissonlab/statistics/empirical"
	"github.com/0xsoniclabs/poissonlab/statistics/poisson"
	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/0xsoniclabs/poissonlab/utils/analytics"
	"gonum.org/v1/gonum/stat"
)

// Experiment describes one Law-of-Large-Numbers experiment: NumRuns
// independent runs of DrawsPerRun draws each, drawn from a Poisson
// distribution with the given rate. RandomSeed is the seed the caller
// derived the generator from; negative when unknown.
type Experiment struct {
	Rate        float64 `json:"rate"`
	DrawsPerRun int     `json:"drawsPerRun"`
	NumRuns     int     `json:"numRuns"`
	RandomSeed  int64   `json:"randomSeed"`
}

// Run executes numRuns independent runs of drawsPerRun draws each against
// the given distribution and reduces them to a Result. All randomness is
// drawn from the supplied generator, so equal seeds reproduce the result
// exactly.
func Run(d *poisson.Distribution, numRuns int, drawsPerRun int, rg *rand.Rand, log logger.Logger) (*Result, error) {
	if d == nil {
		return nil, fmt.Errorf("distribution must not be nil")
	}
	if rg == nil {
		return nil, fmt.Errorf("random generator must not be nil")
	}
	if numRuns <= 0 {
		return nil, fmt.Errorf("number of runs must be greater than zero; got %v", numRuns)
	}
	if drawsPerRun <= 0 {
		return nil, fmt.Errorf("number of draws per run must be greater than zero; got %v", drawsPerRun)
	}

	expected := d.Mean() * float64(drawsPerRun)
	log.Noticef("running %v runs of %v draws each at rate %v", numRuns, drawsPerRun, d.Rate())
	log.Noticef("expected sum of one run is %v", expected)

	var (
		start   = time.Now()
		sec     float64
		lastSec float64
	)
	tracker := utils.NewProgressTracker(numRuns*drawsPerRun, log)

	records := make([]RunRecord, 0, numRuns)
	sums := make([]float64, 0, numRuns)
	intSums := make([]int, 0, numRuns)
	sumStats := analytics.NewIncrementalStats()
	counts := []float64{}
	samples := make([]int, drawsPerRun)

	for run := 0; run < numRuns; run++ {
		for i := 0; i < drawsPerRun; i++ {
			k := d.Rand(rg)
			samples[i] = k
			for k >= len(counts) {
				counts = append(counts, 0)
			}
			counts[k]++
			tracker.PrintProgress()
		}

		summary, err := aggregate.Summarize(samples)
		if err != nil {
			return nil, fmt.Errorf("cannot summarize run %v; %w", run, err)
		}
		records = append(records, RunRecord{
			Run:  run,
			Sum:  summary.Sum,
			Mean: summary.Mean,
			Min:  summary.Min,
			Max:  summary.Max,
		})
		sums = append(sums, float64(summary.Sum))
		intSums = append(intSums, int(summary.Sum))
		sumStats.Update(float64(summary.Sum))

		sec = time.Since(start).Seconds()
		if sec-lastSec >= 15 {
			log.Debugf("Elapsed time: %.0f s, at run %v", sec, run)
			lastSec = sec
		}
	}

	totalDraws := float64(numRuns * drawsPerRun)
	for i := range counts {
		counts[i] /= totalDraws
	}

	ecdf, err := empirical.ECDF(intSums)
	if err != nil {
		return nil, fmt.Errorf("cannot compute run sum distribution; %w", err)
	}

	sort.Float64s(sums)
	summary := Summary{
		ExpectedSum: expected,
		MeanSum:     sumStats.GetMean(),
		StdDevSum:   sumStats.GetStandardDeviation(),
		MinSum:      sumStats.GetMin(),
		MaxSum:      sumStats.GetMax(),
		P05:         stat.Quantile(0.05, stat.Empirical, sums, nil),
		P50:         stat.Quantile(0.50, stat.Empirical, sums, nil),
		P95:         stat.Quantile(0.95, stat.Empirical, sums, nil),
	}
	summary.RelativeError = math.Abs(summary.MeanSum-expected) / expected

	sec = time.Since(start).Seconds()
	log.Noticef("Total elapsed time: %.3f s, processed %v runs", sec, numRuns)
	log.Noticef("mean of run sums: %v (expected %v)", summary.MeanSum, expected)
	log.Noticef("relative error: %.4f%%", summary.RelativeError*100)

	return &Result{
		FileId: resultFileId,
		Experiment: Experiment{
			Rate:        d.Rate(),
			DrawsPerRun: drawsPerRun,
			NumRuns:     numRuns,
			RandomSeed:  -1,
		},
		Runs:        records,
		Frequencies: counts,
		RunSumECDF:  empirical.Compress(ecdf, empirical.NumECDFPoints),
		Summary:     summary,
	}, nil
}
