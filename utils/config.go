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
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/urfave/cli/v2"
)

type ArgumentMode int

// An argument mode determines the count and the meaning of the positional
// arguments a command expects.
const (
	NoArgs  ArgumentMode = iota // command takes no positional arguments
	PathArg                     // command takes a single file path
)

// Config is the configuration of a single poissonlab command invocation,
// assembled from command line flags and positional arguments.
type Config struct {
	AppName     string
	CommandName string

	Rate           float64 // expected number of events per observation window
	Outcome        int     // event count the probability queries are evaluated at
	Probability    float64 // probability level of the quantile query
	DrawsPerRun    int     // number of draws forming one run of the experiment
	NumRuns        int     // number of independent runs of the experiment
	RandomSeed     int64   // seed of the random generator; negative means unseeded
	Output         string  // output file of the command
	ResultFile     string  // experiment result file consumed by the command
	RegisterDb     string  // sqlite3 connection the run metadata is registered into
	OverwriteRunId string  // run id overriding the generated one
	Port           string  // port of the visualization web server
	LogLevel       string  // level of the logging
}

// NewConfig creates a config for the command given by the context and the
// argument mode, validates it and fills in values no flag was given for.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	log := logger.NewLogger(ctx.String(logger.LogLevelFlag.Name), "Config")

	cfg := createConfigFromFlags(ctx)

	err := updateConfigFromArguments(ctx, cfg, mode)
	if err != nil {
		return nil, err
	}

	err = validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	adjustMissingConfigValues(cfg, log)

	return cfg, nil
}

// createConfigFromFlags returns the config for the flags of the invoked
// command, falling back to the default value of a flag the command does not
// declare.
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Rate:           getFlagValue(ctx, RateFlag).(float64),
		Outcome:        getFlagValue(ctx, OutcomeFlag).(int),
		Probability:    getFlagValue(ctx, ProbabilityFlag).(float64),
		DrawsPerRun:    getFlagValue(ctx, DrawsPerRunFlag).(int),
		NumRuns:        getFlagValue(ctx, NumRunsFlag).(int),
		RandomSeed:     getFlagValue(ctx, RandomSeedFlag).(int64),
		Output:         getFlagValue(ctx, OutputFlag).(string),
		RegisterDb:     getFlagValue(ctx, RegisterDbFlag).(string),
		OverwriteRunId: getFlagValue(ctx, OverwriteRunIdFlag).(string),
		Port:           getFlagValue(ctx, PortFlag).(string),
		LogLevel:       getFlagValue(ctx, logger.LogLevelFlag).(string),
	}

	return cfg
}

// getFlagValue returns the value specified by the user if the flag is present
// in the cli context, otherwise the default value of the flag.
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}

	return nil
}

// updateConfigFromArguments applies the positional arguments of the command
// according to the given argument mode.
func updateConfigFromArguments(ctx *cli.Context, cfg *Config, mode ArgumentMode) error {
	switch mode {
	case NoArgs:
		if ctx.Args().Len() > 0 {
			return fmt.Errorf("command %q takes no arguments", cfg.CommandName)
		}
	case PathArg:
		if ctx.Args().Len() != 1 {
			return fmt.Errorf("command %q requires a file path as its single argument", cfg.CommandName)
		}
		cfg.ResultFile = ctx.Args().Get(0)
	default:
		return fmt.Errorf("unknown argument mode %v", mode)
	}
	return nil
}

// validateConfig checks that the flag values lie in the domain the commands
// operate on.
func validateConfig(cfg *Config) error {
	if cfg.Rate <= 0 || math.IsNaN(cfg.Rate) || math.IsInf(cfg.Rate, 0) {
		return fmt.Errorf("rate must be a positive finite number; got %v", cfg.Rate)
	}
	if cfg.Probability <= 0 || cfg.Probability >= 1 || math.IsNaN(cfg.Probability) {
		return fmt.Errorf("probability must lie strictly between 0 and 1; got %v", cfg.Probability)
	}
	if cfg.DrawsPerRun <= 0 {
		return fmt.Errorf("number of draws per run must be greater than zero; got %v", cfg.DrawsPerRun)
	}
	if cfg.NumRuns <= 0 {
		return fmt.Errorf("number of runs must be greater than zero; got %v", cfg.NumRuns)
	}
	if cfg.Port != "" {
		port, err := strconv.Atoi(cfg.Port)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %q", cfg.Port)
		}
	}
	return nil
}

// adjustMissingConfigValues fills in config values no sensible flag default
// exists for. A negative random seed is replaced by a time based one so that
// repeated unseeded invocations draw different samples.
func adjustMissingConfigValues(cfg *Config, log logger.Logger) {
	if cfg.RandomSeed < 0 {
		cfg.RandomSeed = time.Now().UnixNano()
		log.Debugf("no random seed given; seeding from current time with %d", cfg.RandomSeed)
	}
}
