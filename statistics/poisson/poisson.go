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

package poisson

import (
	"errors"
	"fmt"
	"math"
)

// Package for the Poisson distribution with a fixed event rate.

const (
	directPMFLimit = 20          // largest outcome for which the PMF is evaluated by direct products
	directRateMax  = 700.0       // largest rate for which exp(-rate) stays a normal float64
	tailSumLevel   = 1.0 - 1e-10 // CDF level above which the survival sums the upper tail directly
)

var (
	// ErrInvalidParameter indicates a distribution parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidArgument indicates an operation argument outside its domain.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumericOverflow indicates a computation that exceeded its iteration limit.
	ErrNumericOverflow = errors.New("numeric overflow")
)

// Distribution is a Poisson distribution with a fixed event rate.
// An instance is immutable after construction and can be shared
// between goroutines.
type Distribution struct {
	lambda float64
}

// New creates a Poisson distribution for the given event rate.
// The rate must be positive and finite.
func New(lambda float64) (*Distribution, error) {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("%w: rate must be a finite number; got %v", ErrInvalidParameter, lambda)
	}
	if lambda <= 0.0 {
		return nil, fmt.Errorf("%w: rate must be positive; got %v", ErrInvalidParameter, lambda)
	}
	return &Distribution{lambda: lambda}, nil
}

// Rate returns the event rate of the distribution.
func (d *Distribution) Rate() float64 {
	return d.lambda
}

// Mean returns the expected number of events.
func (d *Distribution) Mean() float64 {
	return d.lambda
}

// Variance returns the variance of the number of events, which
// coincides with the rate.
func (d *Distribution) Variance() float64 {
	return d.lambda
}

// StdDev returns the standard deviation of the number of events.
func (d *Distribution) StdDev() float64 {
	return math.Sqrt(d.lambda)
}

// PMF is the probability mass function. It returns the probability of
// observing exactly k events. Outcomes outside the support (k < 0) have
// probability zero. Small outcomes are computed by direct products;
// larger ones in log space via the log-gamma function so that large
// factorials cannot overflow.
func (d *Distribution) PMF(k int) float64 {
	if k < 0 {
		return 0.0
	}
	if k <= directPMFLimit && d.lambda < directRateMax {
		p := math.Exp(-d.lambda)
		for i := 1; i <= k; i++ {
			p *= d.lambda / float64(i)
		}
		return p
	}
	kf := float64(k)
	lg, _ := math.Lgamma(kf + 1.0)
	return math.Exp(kf*math.Log(d.lambda) - d.lambda - lg)
}

// CDF is the cumulative distribution function. It returns the
// probability of observing at most k events. The probability masses are
// accumulated in increasing outcome order so that small terms are not
// absorbed by large partial sums.
func (d *Distribution) CDF(k int) float64 {
	if k < 0 {
		return 0.0
	}
	sum := 0.0 // Kahan's summation algorithm for the probability sum
	c := 0.0   // Compensation term of Kahan's algorithm
	for i := 0; i <= k; i++ {
		y := d.PMF(i) - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return math.Min(sum, 1.0)
}

// Survival returns the probability of observing more than k events.
// Deep in the right tail, where the CDF is within 1e-10 of one,
// complementing the CDF would cancel all significant digits; there the
// upper tail is summed directly instead.
func (d *Distribution) Survival(k int) float64 {
	if k < 0 {
		return 1.0
	}
	cdf := d.CDF(k)
	if cdf <= tailSumLevel {
		return 1.0 - cdf
	}
	sum := 0.0 // Kahan's summation algorithm for the tail sum
	c := 0.0   // Compensation term of Kahan's algorithm
	for i := k + 1; ; i++ {
		p := d.PMF(i)
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if p == 0.0 || p < sum*1e-17 {
			return sum
		}
	}
}

// Quantile is the inverse cumulative distribution function. For a
// probability p in the open interval (0,1) it returns the smallest
// outcome k whose cumulative probability reaches p. The search
// accumulates probability masses in increasing outcome order and is
// capped at rate + 40*sqrt(rate) + 100 terms; a p closer to one than
// the cap can resolve is reported as ErrNumericOverflow.
func (d *Distribution) Quantile(p float64) (int, error) {
	if math.IsNaN(p) || p <= 0.0 || p >= 1.0 {
		return 0, fmt.Errorf("%w: probability must be in the open interval (0,1); got %v", ErrInvalidArgument, p)
	}
	maxTerms := d.lambda + 40.0*math.Sqrt(d.lambda) + 100.0
	if maxTerms >= math.MaxInt32 {
		return 0, fmt.Errorf("%w: rate %v requires too many terms for a quantile search", ErrNumericOverflow, d.lambda)
	}
	maxK := int(maxTerms)
	sum := 0.0 // Kahan's summation algorithm for the probability sum
	c := 0.0   // Compensation term of Kahan's algorithm
	for k := 0; k <= maxK; k++ {
		y := d.PMF(k) - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if p <= sum {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: no outcome reaches p=%v within %d terms (rate %v)", ErrNumericOverflow, p, maxK+1, d.lambda)
}
