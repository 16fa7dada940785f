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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAggregate_EmptyInput checks that every aggregation rejects a slice
// with no values.
func TestAggregate_EmptyInput(t *testing.T) {
	var empty []int

	_, err := Sum(empty)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Mean(empty)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Min(empty)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Max(empty)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Summarize(empty)
	require.ErrorIs(t, err, ErrEmptyInput)
}

// TestAggregate_KnownValues checks the aggregations on a small slice of
// counts.
func TestAggregate_KnownValues(t *testing.T) {
	values := []int{4, 9, 1, 7, 4}

	sum, err := Sum(values)
	require.NoError(t, err)
	assert.Equal(t, int64(25), sum)

	mean, err := Mean(values)
	require.NoError(t, err)
	assert.Equal(t, 5.0, mean)

	min, err := Min(values)
	require.NoError(t, err)
	assert.Equal(t, 1, min)

	max, err := Max(values)
	require.NoError(t, err)
	assert.Equal(t, 9, max)
}

// TestAggregate_SingleValue checks that a one-element slice is its own
// sum, mean, minimum and maximum.
func TestAggregate_SingleValue(t *testing.T) {
	values := []int{11}

	sum, err := Sum(values)
	require.NoError(t, err)
	assert.Equal(t, int64(11), sum)

	mean, err := Mean(values)
	require.NoError(t, err)
	assert.Equal(t, 11.0, mean)

	min, err := Min(values)
	require.NoError(t, err)
	assert.Equal(t, 11, min)

	max, err := Max(values)
	require.NoError(t, err)
	assert.Equal(t, 11, max)
}

// TestAggregate_MeanIsRealValued checks that the mean divides in the
// real numbers rather than truncating.
func TestAggregate_MeanIsRealValued(t *testing.T) {
	mean, err := Mean([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.5, mean)
}

// TestAggregate_OtherIntegerTypes checks the aggregations for a
// different element type.
func TestAggregate_OtherIntegerTypes(t *testing.T) {
	values := []uint16{3, 60000, 12}

	sum, err := Sum(values)
	require.NoError(t, err)
	assert.Equal(t, int64(60015), sum)

	min, err := Min(values)
	require.NoError(t, err)
	assert.Equal(t, uint16(3), min)

	max, err := Max(values)
	require.NoError(t, err)
	assert.Equal(t, uint16(60000), max)
}

// TestAggregate_Summarize checks the one-pass summary against the
// individual aggregations.
func TestAggregate_Summarize(t *testing.T) {
	values := []int{4, 9, 1, 7, 4}

	s, err := Summarize(values)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, int64(25), s.Sum)
	assert.Equal(t, 5.0, s.Mean)
	assert.Equal(t, int64(1), s.Min)
	assert.Equal(t, int64(9), s.Max)
}
