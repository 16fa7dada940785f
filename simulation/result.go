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

package simulation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// resultFileId is the file identification string for experiment results.
const resultFileId = "experiment"

// RunRecord is the aggregate of a single run.
type RunRecord struct {
	Run  int     `json:"run"`
	Sum  int64   `json:"sum"`
	Mean float64 `json:"mean"`
	Min  int64   `json:"min"`
	Max  int64   `json:"max"`
}

// Summary reduces the run sums of an experiment to location and spread. The
// quantiles are empirical quantiles of the run sums; RelativeError is the
// distance of the mean sum from the expected sum in units of the expected sum.
type Summary struct {
	ExpectedSum   float64 `json:"expectedSum"`
	MeanSum       float64 `json:"meanSum"`
	StdDevSum     float64 `json:"stdDevSum"`
	MinSum        float64 `json:"minSum"`
	MaxSum        float64 `json:"maxSum"`
	P05           float64 `json:"p05"`
	P50           float64 `json:"p50"`
	P95           float64 `json:"p95"`
	RelativeError float64 `json:"relativeError"`
}

// Result is the outcome of an experiment. Frequencies holds the observed
// relative frequency of each outcome over all draws, indexed by outcome;
// RunSumECDF is the compressed empirical distribution of the run sums.
type Result struct {
	FileId      string       `json:"fileId"`
	Experiment  Experiment   `json:"experiment"`
	Runs        []RunRecord  `json:"runs"`
	Frequencies []float64    `json:"frequencies"`
	RunSumECDF  [][2]float64 `json:"runSumEcdf"`
	Summary     Summary      `json:"summary"`
}

// WriteJSON writes a result in JSON format. Filenames ending in ".gz" are
// gzip compressed.
func (r *Result) WriteJSON(filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("cannot open JSON file; %v", fErr)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)
	var out io.Writer = f
	if strings.HasSuffix(filename, ".gz") {
		gz := gzip.NewWriter(f)
		defer func(gz *gzip.Writer) {
			err = errors.Join(err, gz.Close())
		}(gz)
		out = gz
	}
	jOut, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert JSON file; %v", err)
	}
	_, err = fmt.Fprintln(out, string(jOut))
	if err != nil {
		return fmt.Errorf("failed to convert JSON file; %v", err)
	}
	return nil
}

// ReadResult reads a result from a JSON file written by WriteJSON. Filenames
// ending in ".gz" are expected to be gzip compressed.
func ReadResult(filename string) (res *Result, err error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %s, does it exist? %w", filename, err)
	}
	if stat.IsDir() {
		return nil, errors.New("given path to result file is a directory")
	}
	if stat.Size() == 0 {
		return nil, errors.New("given result file is empty")
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open result file: %s, %w", filename, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	var in io.Reader = file
	if strings.HasSuffix(filename, ".gz") {
		gz, gzErr := gzip.NewReader(file)
		if gzErr != nil {
			return nil, fmt.Errorf("could not create gzip reader for result file: %s, %w", filename, gzErr)
		}
		defer func(gz *gzip.Reader) {
			err = errors.Join(err, gz.Close())
		}(gz)
		in = gz
	}
	contents, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed reading result file; %v", err)
	}
	var result Result
	err = json.Unmarshal(contents, &result)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal result; %v", err)
	}
	if result.FileId != resultFileId {
		return nil, fmt.Errorf("file %v is not an experiment result file", filename)
	}
	return &result, nil
}
