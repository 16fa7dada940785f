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

package empirical

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/0xsoniclabs/poissonlab/statistics/aggregate"
)

// Package for presentation-side statistics of observed outcome samples.

// NumECDFPoints is the number of points kept when an empirical CDF is
// compressed for plotting.
const NumECDFPoints = 300

// Frequencies computes the relative frequency of every outcome from
// zero up to the largest observed outcome.
func Frequencies(samples []int) ([]float64, error) {
	low, err := aggregate.Min(samples)
	if err != nil {
		return nil, err
	}
	if low < 0 {
		return nil, fmt.Errorf("negative outcome %d in samples", low)
	}
	high, err := aggregate.Max(samples)
	if err != nil {
		return nil, err
	}

	freq := make([]float64, high+1)
	for _, k := range samples {
		freq[k]++
	}
	n := float64(len(samples))
	for i := range freq {
		freq[i] /= n
	}
	return freq, nil
}

// ECDF computes the empirical cumulative distribution function of the
// samples as a piecewise linear function normalized to the unit square.
// The first point is (0,0) and the last point is (1,1); each outcome
// sits at the midpoint of its cell on the x axis. Frequencies are
// accumulated with compensated summation since they may be very small.
func ECDF(samples []int) ([][2]float64, error) {
	freq, err := Frequencies(samples)
	if err != nil {
		return nil, err
	}
	n := len(freq)

	fn := make([][2]float64, 0, n+2)
	fn = append(fn, [2]float64{0.0, 0.0})
	sumP := 0.0 // Kahan's summation algorithm for the frequency sum
	cP := 0.0   // Compensation term of Kahan's algorithm
	for arg := 0; arg < n; arg++ {
		x := (float64(arg) + 0.5) / float64(n)
		yP := freq[arg] - cP
		tP := sumP + yP
		cP = (tP - sumP) - yP
		sumP = tP
		fn = append(fn, [2]float64{x, math.Min(sumP, 1.0)})
	}
	fn = append(fn, [2]float64{1.0, 1.0})
	return fn, nil
}

// Compress reduces a piecewise linear CDF to at most n points using the
// Visvalingam-Whyatt algorithm. See:
// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func Compress(f [][2]float64, n int) [][2]float64 {
	if len(f) <= n {
		return f
	}
	ls := make(orb.LineString, len(f))
	for i := range f {
		ls[i] = orb.Point(f[i])
	}
	simplifier := simplify.VisvalingamKeep(n)
	simplified := simplifier.Simplify(ls).(orb.LineString)

	out := make([][2]float64, len(simplified))
	for i := range simplified {
		out[i] = [2]float64(simplified[i])
	}
	return out
}

// CheckECDF reports whether the piecewise linear function is valid as an
// empirical CDF. The function must start at (0,0), end at (1,1), and its
// points must be increasing in x and non-decreasing in y.
func CheckECDF(f [][2]float64) bool {
	if len(f) < 2 {
		return false
	}
	if f[0][0] != 0.0 || f[0][1] != 0.0 {
		return false
	}
	last := len(f) - 1
	if f[last][0] != 1.0 || f[last][1] != 1.0 {
		return false
	}
	for i := 0; i < last; i++ {
		if f[i][0] >= f[i+1][0] {
			return false
		}
		if f[i][1] > f[i+1][1] {
			return false
		}
	}
	return true
}
