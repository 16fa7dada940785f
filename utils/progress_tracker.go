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

package utils

import (
	"time"

	"github.com/0xsoniclabs/poissonlab/logger"
)

// OperationThreshold is the number of steps between two progress reports.
const OperationThreshold = 100_000

// ProgressTracker reports progress of a long running loop at a fixed step
// granularity.
type ProgressTracker struct {
	step   int       // number of completed steps
	target int       // total number of steps
	start  time.Time // start time of the loop
	last   time.Time // time of the last report
	rate   float64   // smoothed step rate
	log    logger.Logger
}

func NewProgressTracker(target int, log logger.Logger) *ProgressTracker {
	now := time.Now()
	return &ProgressTracker{
		step:   0,
		target: target,
		start:  now,
		last:   now,
		rate:   0.0,
		log:    log,
	}
}

// PrintProgress advances the tracker by one step and logs a progress line
// every OperationThreshold steps.
func (pt *ProgressTracker) PrintProgress() {
	pt.step++
	if pt.step%OperationThreshold == 0 {
		now := time.Now()
		currentRate := OperationThreshold / now.Sub(pt.last).Seconds()
		pt.rate = currentRate*0.1 + pt.rate*0.9
		pt.last = now
		progress := 100 * float64(pt.step) / float64(pt.target)
		elapsed := int(now.Sub(pt.start).Seconds())
		eta := int(float64(pt.target-pt.step) / pt.rate)
		pt.log.Infof("elapsed time: %d s; reached step %d of %d (%.1f%%); rate %.1f steps/s; eta %d s", elapsed, pt.step, pt.target, progress, currentRate, eta)
	}
}
