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

package register

import (
	"fmt"

	"github.com/0xsoniclabs/poissonlab/utils"
)

const (
	RunsCreateTableIfNotExist = `
		CREATE TABLE IF NOT EXISTS runs (
			RunId text not null,
			Run integer not null,
			Sum integer,
			Mean real,
			Min integer,
			Max integer,
			PRIMARY KEY (RunId, Run)
		)
	`
	RunsInsertOrReplace = `
		INSERT or REPLACE INTO runs (RunId, Run, Sum, Mean, Min, Max) VALUES (?, ?, ?, ?, ?, ?)
	`

	// RunBufferSize is the number of run summaries collected before they are
	// flushed to the registry in one transaction.
	RunBufferSize = 100
)

// RunRecorder streams the per-run summaries of an experiment into the run
// registry. Rows are buffered and written in batches so that experiments
// with many runs do not pay for one insert transaction per run.
type RunRecorder struct {
	runId   string
	row     []any
	buffer  *utils.PrinterToBuffer
	flusher *utils.Flusher
}

// MakeRunRecorder opens the run registry given by the connection string and
// binds a buffered printer for the run summaries of the identified run.
func MakeRunRecorder(connection string, id *RunIdentity) (*RunRecorder, error) {
	runId, err := id.GetId()
	if err != nil {
		return nil, fmt.Errorf("unable to generate run id; %w", err)
	}

	rr := &RunRecorder{runId: runId}
	p, err := utils.NewPrinterToSqlite3(connection, RunsCreateTableIfNotExist, RunsInsertOrReplace, func() [][]any {
		return [][]any{rr.row}
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open run registry %s; %w", connection, err)
	}
	rr.buffer, rr.flusher = p.Bufferize(RunBufferSize)

	return rr, nil
}

// Record buffers the summary of one run. A full buffer is flushed to the
// registry before Record returns.
func (rr *RunRecorder) Record(run int, sum int64, mean float64, min int64, max int64) error {
	rr.row = []any{rr.runId, run, sum, mean, min, max}
	return rr.buffer.Print()
}

// Flush writes the buffered run summaries to the registry.
func (rr *RunRecorder) Flush() error {
	if rr.buffer.Length() == 0 {
		return nil
	}
	return rr.flusher.Print()
}

func (rr *RunRecorder) Close() {
	rr.flusher.Close()
}
