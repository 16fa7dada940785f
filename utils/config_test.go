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
	"flag"
	"math"
	"testing"

	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/mock/gomock"
)

func prepareMockCliContext(args ...string) *cli.Context {
	flagSet := flag.NewFlagSet("utils_config_test", 0)
	flagSet.Float64(RateFlag.Name, 7.0, "expected number of events per observation window")
	flagSet.Float64(ProbabilityFlag.Name, 0.9, "probability level of the quantile query")
	flagSet.Int(DrawsPerRunFlag.Name, 365, "number of draws forming one run")
	flagSet.Int(NumRunsFlag.Name, 500, "number of independent runs")
	flagSet.Int64(RandomSeedFlag.Name, 42, "set random seed")
	flagSet.String(logger.LogLevelFlag.Name, "info", "level of the logging")
	if err := flagSet.Parse(args); err != nil {
		panic(err)
	}

	ctx := cli.NewContext(cli.NewApp(), flagSet, nil)

	command := &cli.Command{
		Name: "test_command",
		Flags: []cli.Flag{
			&RateFlag,
			&ProbabilityFlag,
			&DrawsPerRunFlag,
			&NumRunsFlag,
			&RandomSeedFlag,
			&logger.LogLevelFlag,
		},
	}
	ctx.Command = command

	return ctx
}

func TestUtilsConfig_NewConfig(t *testing.T) {
	ctx := prepareMockCliContext()

	cfg, err := NewConfig(ctx, NoArgs)
	require.NoError(t, err)

	assert.Equal(t, "test_command", cfg.CommandName)
	assert.Equal(t, 7.0, cfg.Rate)
	assert.Equal(t, 0.9, cfg.Probability)
	assert.Equal(t, 365, cfg.DrawsPerRun)
	assert.Equal(t, 500, cfg.NumRuns)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestUtilsConfig_NewConfig_UndeclaredFlagsFallBackToDefaults(t *testing.T) {
	flagSet := flag.NewFlagSet("utils_config_test", 0)
	ctx := cli.NewContext(cli.NewApp(), flagSet, nil)
	ctx.Command = &cli.Command{Name: "bare_command"}

	cfg, err := NewConfig(ctx, NoArgs)
	require.NoError(t, err)

	assert.Equal(t, RateFlag.Value, cfg.Rate)
	assert.Equal(t, ProbabilityFlag.Value, cfg.Probability)
	assert.Equal(t, DrawsPerRunFlag.Value, cfg.DrawsPerRun)
	assert.Equal(t, NumRunsFlag.Value, cfg.NumRuns)
	assert.Equal(t, PortFlag.Value, cfg.Port)
	// the negative seed default is replaced by a time based seed
	assert.GreaterOrEqual(t, cfg.RandomSeed, int64(0))
}

func TestUtilsConfig_NewConfig_PathArgument(t *testing.T) {
	ctx := prepareMockCliContext("result.json")

	cfg, err := NewConfig(ctx, PathArg)
	require.NoError(t, err)
	assert.Equal(t, "result.json", cfg.ResultFile)
}

func TestUtilsConfig_NewConfig_PathArgumentMissing(t *testing.T) {
	ctx := prepareMockCliContext()

	_, err := NewConfig(ctx, PathArg)
	assert.ErrorContains(t, err, "requires a file path")
}

func TestUtilsConfig_NewConfig_UnexpectedArgument(t *testing.T) {
	ctx := prepareMockCliContext("surplus")

	_, err := NewConfig(ctx, NoArgs)
	assert.ErrorContains(t, err, "takes no arguments")
}

func TestUtilsConfig_ValidateConfig(t *testing.T) {
	valid := Config{
		Rate:        7.0,
		Probability: 0.5,
		DrawsPerRun: 365,
		NumRuns:     500,
		Port:        "8080",
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{name: "zero rate", mutate: func(cfg *Config) { cfg.Rate = 0 }, wantErr: "rate must be"},
		{name: "negative rate", mutate: func(cfg *Config) { cfg.Rate = -2.5 }, wantErr: "rate must be"},
		{name: "nan rate", mutate: func(cfg *Config) { cfg.Rate = math.NaN() }, wantErr: "rate must be"},
		{name: "infinite rate", mutate: func(cfg *Config) { cfg.Rate = math.Inf(1) }, wantErr: "rate must be"},
		{name: "zero probability", mutate: func(cfg *Config) { cfg.Probability = 0 }, wantErr: "probability must lie"},
		{name: "unit probability", mutate: func(cfg *Config) { cfg.Probability = 1 }, wantErr: "probability must lie"},
		{name: "nan probability", mutate: func(cfg *Config) { cfg.Probability = math.NaN() }, wantErr: "probability must lie"},
		{name: "zero draws", mutate: func(cfg *Config) { cfg.DrawsPerRun = 0 }, wantErr: "draws per run"},
		{name: "zero runs", mutate: func(cfg *Config) { cfg.NumRuns = 0 }, wantErr: "number of runs"},
		{name: "empty port is allowed", mutate: func(cfg *Config) { cfg.Port = "" }},
		{name: "non numeric port", mutate: func(cfg *Config) { cfg.Port = "web" }, wantErr: "invalid port"},
		{name: "out of range port", mutate: func(cfg *Config) { cfg.Port = "70000" }, wantErr: "invalid port"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid
			test.mutate(&cfg)
			err := validateConfig(&cfg)
			if test.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, test.wantErr)
			}
		})
	}
}

func TestUtilsConfig_AdjustMissingConfigValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debugf(gomock.Any(), gomock.Any())

	cfg := &Config{RandomSeed: -1}
	adjustMissingConfigValues(cfg, log)
	assert.GreaterOrEqual(t, cfg.RandomSeed, int64(0))

	cfg = &Config{RandomSeed: 42}
	adjustMissingConfigValues(cfg, log)
	assert.Equal(t, int64(42), cfg.RandomSeed)
}
