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

// Package analytics provides one-pass statistics over a stream of values.
package analytics

import (
	"encoding/json"
	"math"
)

// IncrementalStats maintains count, extrema and the first four central
// moments of a stream without storing the values. The sum is carried with
// Kahan compensation, the moments follow the standard one-pass update
// formulas.
type IncrementalStats struct {
	count uint64  // number of observed values
	min   float64 // smallest observed value
	max   float64 // largest observed value

	ksum float64 // compensated running sum
	c    float64 // Kahan correction term

	m1 float64 // mean
	m2 float64 // second central moment, scaled by count
	m3 float64 // third central moment, scaled by count
	m4 float64 // fourth central moment, scaled by count
}

func NewIncrementalStats() *IncrementalStats {
	return &IncrementalStats{}
}

// Update incorporates a single value into the statistics.
func (s *IncrementalStats) Update(x float64) {
	if s.count == 0 {
		s.min = x
		s.max = x
	} else {
		if x < s.min {
			s.min = x
		}
		if x > s.max {
			s.max = x
		}
	}

	// Kahan's summation algorithm for the running sum
	y := x - s.c
	t := s.ksum + y
	s.c = (t - s.ksum) - y
	s.ksum = t

	n1 := float64(s.count)
	s.count++
	n := float64(s.count)
	delta := x - s.m1
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1
	s.m1 += deltaN
	s.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(n-2) - 3*deltaN*s.m2
	s.m2 += term1
}

func (s *IncrementalStats) GetCount() uint64 {
	return s.count
}

func (s *IncrementalStats) GetMin() float64 {
	if s.count == 0 {
		return 0
	}
	return s.min
}

func (s *IncrementalStats) GetMax() float64 {
	if s.count == 0 {
		return 0
	}
	return s.max
}

func (s *IncrementalStats) GetSum() float64 {
	return s.ksum
}

func (s *IncrementalStats) GetMean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.ksum / float64(s.count)
}

// GetVariance returns the population variance of the observed values.
func (s *IncrementalStats) GetVariance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.m2 / float64(s.count)
}

func (s *IncrementalStats) GetStandardDeviation() float64 {
	return math.Sqrt(s.GetVariance())
}

// GetSkewness returns the population skewness; zero for constant streams.
func (s *IncrementalStats) GetSkewness() float64 {
	if s.m2 == 0 {
		return 0
	}
	return math.Sqrt(float64(s.count)) * s.m3 / math.Pow(s.m2, 1.5)
}

// GetKurtosis returns the population kurtosis (3 for a normal distribution);
// zero for constant streams.
func (s *IncrementalStats) GetKurtosis() float64 {
	if s.m2 == 0 {
		return 0
	}
	return float64(s.count) * s.m4 / (s.m2 * s.m2)
}

func (s IncrementalStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count    uint64  `json:"count"`
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Mean     float64 `json:"mean"`
		Variance float64 `json:"variance"`
		StdDev   float64 `json:"stdDev"`
		Skewness float64 `json:"skewness"`
		Kurtosis float64 `json:"kurtosis"`
	}{
		Count:    s.GetCount(),
		Min:      s.GetMin(),
		Max:      s.GetMax(),
		Mean:     s.GetMean(),
		Variance: s.GetVariance(),
		StdDev:   s.GetStandardDeviation(),
		Skewness: s.GetSkewness(),
		Kurtosis: s.GetKurtosis(),
	})
}

func (s IncrementalStats) String() string {
	j, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(j)
}
