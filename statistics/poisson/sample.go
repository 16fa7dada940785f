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
	"fmt"
	"math"
	"math/rand"
)

// Rate at which sampling switches from inversion by multiplication to
// the transformed rejection method.
const rejectionRateMin = 10.0

// Rand draws a single variate of the distribution using the random
// generator rg. The result is a pure function of the rate and the
// generator state; generators seeded identically reproduce identical
// draws.
func (d *Distribution) Rand(rg *rand.Rand) int {
	if d.lambda < rejectionRateMin {
		return d.randInversion(rg)
	}
	return d.randTransformedRejection(rg)
}

// Sample draws n independent variates of the distribution using the
// random generator rg.
func (d *Distribution) Sample(rg *rand.Rand, n int) ([]int, error) {
	if rg == nil {
		return nil, fmt.Errorf("%w: random generator must not be nil", ErrInvalidArgument)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: number of draws must be positive; got %d", ErrInvalidArgument, n)
	}
	samples := make([]int, n)
	for i := 0; i < n; i++ {
		samples[i] = d.Rand(rg)
	}
	return samples, nil
}

// randInversion draws a variate by Knuth's inversion by multiplication.
// The expected number of uniform draws grows linearly with the rate,
// which restricts the method to small rates.
func (d *Distribution) randInversion(rg *rand.Rand) int {
	limit := math.Exp(-d.lambda)
	k := 0
	p := rg.Float64()
	for p > limit {
		p *= rg.Float64()
		k++
	}
	return k
}

// randTransformedRejection draws a variate by the transformed rejection
// method with squeeze (Hörmann's PTRS algorithm). Two uniform draws per
// attempt; the acceptance rate stays above 90% for all rates the method
// serves.
func (d *Distribution) randTransformedRejection(rg *rand.Rand) int {
	b := 0.931 + 2.53*math.Sqrt(d.lambda)
	a := -0.059 + 0.02483*b
	invAlpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2.0)
	logLambda := math.Log(d.lambda)

	for {
		u := rg.Float64() - 0.5
		v := rg.Float64()
		us := 0.5 - math.Abs(u)
		k := math.Floor((2.0*a/us+b)*u + d.lambda + 0.43)
		if us >= 0.07 && v <= vr {
			return int(k)
		}
		if k < 0.0 || (us < 0.013 && v > us) {
			continue
		}
		lg, _ := math.Lgamma(k + 1.0)
		if math.Log(v*invAlpha/(a/(us*us)+b)) <= k*logLambda-d.lambda-lg {
			return int(k)
		}
	}
}
