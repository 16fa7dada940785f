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

package aggregate

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Package for order and moment summaries of integer outcome slices.

// ErrEmptyInput indicates an aggregation over no values.
var ErrEmptyInput = errors.New("empty input")

// Sum returns the sum of all values widened to 64 bits.
func Sum[T constraints.Integer](values []T) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: sum of no values", ErrEmptyInput)
	}
	total := int64(0)
	for _, v := range values {
		total += int64(v)
	}
	return total, nil
}

// Mean returns the arithmetic mean of all values.
func Mean[T constraints.Integer](values []T) (float64, error) {
	sum, err := Sum(values)
	if err != nil {
		return 0.0, err
	}
	return float64(sum) / float64(len(values)), nil
}

// Min returns the smallest value.
func Min[T constraints.Integer](values []T) (T, error) {
	if len(values) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: minimum of no values", ErrEmptyInput)
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

// Max returns the largest value.
func Max[T constraints.Integer](values []T) (T, error) {
	if len(values) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: maximum of no values", ErrEmptyInput)
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// Summary is an order and moment summary of a slice of counts.
type Summary struct {
	Count int     `json:"count"`
	Sum   int64   `json:"sum"`
	Mean  float64 `json:"mean"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
}

// Summarize computes the summary of all values in a single pass.
func Summarize[T constraints.Integer](values []T) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("%w: summary of no values", ErrEmptyInput)
	}
	s := Summary{Count: len(values), Min: int64(values[0]), Max: int64(values[0])}
	for _, v := range values {
		x := int64(v)
		s.Sum += x
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	s.Mean = float64(s.Sum) / float64(s.Count)
	return s, nil
}
