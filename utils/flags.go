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

import "github.com/urfave/cli/v2"

// Command line options shared by the poissonlab commands.
var (
	RateFlag = cli.Float64Flag{
		Name:    "rate",
		Aliases: []string{"r"},
		Usage:   "expected number of events per observation window",
		Value:   1.0,
	}
	OutcomeFlag = cli.IntFlag{
		Name:  "outcome",
		Usage: "event count the probability queries are evaluated at",
		Value: 0,
	}
	ProbabilityFlag = cli.Float64Flag{
		Name:  "probability",
		Usage: "probability level of the quantile query, strictly between 0 and 1",
		Value: 0.5,
	}
	DrawsPerRunFlag = cli.IntFlag{
		Name:  "draws",
		Usage: "number of draws forming one run of the experiment",
		Value: 365,
	}
	NumRunsFlag = cli.IntFlag{
		Name:  "runs",
		Usage: "number of independent runs of the experiment",
		Value: 500,
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "random-seed",
		Usage: "set random seed for reproducible sampling; a negative value seeds from the current time",
		Value: -1,
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file of the command",
	}
	RegisterDbFlag = cli.PathFlag{
		Name:  "register",
		Usage: "sqlite3 connection the run metadata is registered into",
	}
	OverwriteRunIdFlag = cli.StringFlag{
		Name:  "overwrite-run-id",
		Usage: "use the given run id instead of the generated one when registering",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "enable visualization on `PORT`",
		Value: "8080",
	}
)
