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

package lab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCmd_RunSampleCommand(t *testing.T) {
	// given
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "sample.txt")
	app := cli.NewApp()
	app.Commands = []*cli.Command{&SampleCommand}
	args := utils.NewArgs("test").
		Arg(SampleCommand.Name).
		Flag(utils.RateFlag.Name, 4.0).
		Flag(utils.DrawsPerRunFlag.Name, 200).
		Flag(utils.RandomSeedFlag.Name, int64(999)).
		Flag(utils.OutputFlag.Name, outputFile).
		Build()

	// when
	err := app.Run(args)

	// then
	assert.NoError(t, err)
	contents, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Sample of 200 draws at rate 4")
	assert.Contains(t, string(contents), "Frequencies")
}

func TestCmd_RunSampleCommandIsReproducible(t *testing.T) {
	// given
	tmpDir := t.TempDir()
	first := filepath.Join(tmpDir, "first.txt")
	second := filepath.Join(tmpDir, "second.txt")
	app := cli.NewApp()
	app.Commands = []*cli.Command{&SampleCommand}
	run := func(outputFile string) error {
		return app.Run(utils.NewArgs("test").
			Arg(SampleCommand.Name).
			Flag(utils.RateFlag.Name, 4.0).
			Flag(utils.DrawsPerRunFlag.Name, 100).
			Flag(utils.RandomSeedFlag.Name, int64(999)).
			Flag(utils.OutputFlag.Name, outputFile).
			Build())
	}

	// when
	require.NoError(t, run(first))
	require.NoError(t, run(second))

	// then
	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCmd_RunSampleCommandInvalidDraws(t *testing.T) {
	// given
	app := cli.NewApp()
	app.Commands = []*cli.Command{&SampleCommand}
	args := utils.NewArgs("test").
		Arg(SampleCommand.Name).
		Flag(utils.DrawsPerRunFlag.Name, 0).
		Build()

	// when
	err := app.Run(args)

	// then
	assert.Error(t, err)
}
