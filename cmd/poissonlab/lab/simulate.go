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
	"fmt"
	"math/rand"
	"time"

	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/0xsoniclabs/poissonlab/register"
	"github.com/0xsoniclabs/poissonlab/simulation"
	"github.com/0xsoniclabs/poissonlab/statistics/poisson"
	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// SimulateCommand data structure for the simulate app.
var SimulateCommand = cli.Command{
	Action:    simulateAction,
	Name:      "simulate",
	Usage:     "run a Law-of-Large-Numbers experiment",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.RateFlag,
		&utils.DrawsPerRunFlag,
		&utils.NumRunsFlag,
		&utils.RandomSeedFlag,
		&utils.OutputFlag,
		&utils.RegisterDbFlag,
		&utils.OverwriteRunIdFlag,
	},
	Description: `
The simulate command runs independent runs of draws from the distribution and
reports how the mean of the run sums converges to the expected sum. The result
can be written to a JSON file (gzip compressed with a .gz suffix) for the
visualize command, and the run can be registered in a sqlite3 database.`,
}

// simulateReport renders the summary table of an experiment result.
func simulateReport(r *simulation.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Experiment: %d runs of %d draws at rate %v", r.Experiment.NumRuns, r.Experiment.DrawsPerRun, r.Experiment.Rate)
	tw.AppendHeader(table.Row{"statistic", "value"})
	s := r.Summary
	tw.AppendRow(table.Row{"expected sum", fmt.Sprintf("%.4f", s.ExpectedSum)})
	tw.AppendRow(table.Row{"mean of run sums", fmt.Sprintf("%.4f", s.MeanSum)})
	tw.AppendRow(table.Row{"std dev of run sums", fmt.Sprintf("%.4f", s.StdDevSum)})
	tw.AppendRow(table.Row{"relative error", percent(s.RelativeError)})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"min", fmt.Sprintf("%.0f", s.MinSum)})
	tw.AppendRow(table.Row{"p05", fmt.Sprintf("%.0f", s.P05)})
	tw.AppendRow(table.Row{"p50", fmt.Sprintf("%.0f", s.P50)})
	tw.AppendRow(table.Row{"p95", fmt.Sprintf("%.0f", s.P95)})
	tw.AppendRow(table.Row{"max", fmt.Sprintf("%.0f", s.MaxSum)})
	return tw.Render()
}

// simulateAction runs the experiment and reports its result.
func simulateAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Poisson Simulate")
	d, err := poisson.New(cfg.Rate)
	if err != nil {
		return err
	}
	rg := rand.New(rand.NewSource(cfg.RandomSeed))
	log.Noticef("using random seed %d", cfg.RandomSeed)

	result, err := simulation.Run(d, cfg.NumRuns, cfg.DrawsPerRun, rg, log)
	if err != nil {
		return err
	}
	result.Experiment.RandomSeed = cfg.RandomSeed

	report := simulateReport(result) + "\n"
	ps := utils.NewPrinters().AddPrinterToConsole(false, func() string { return report })
	defer ps.Close()
	ps.Print()

	if cfg.Output != "" {
		log.Noticef("write result file %v", cfg.Output)
		if err := result.WriteJSON(cfg.Output); err != nil {
			return err
		}
	}
	if cfg.RegisterDb != "" {
		id := register.MakeRunIdentity(time.Now().Unix(), cfg)
		rm, err := register.MakeRunMetadata(cfg.RegisterDb, id, register.FetchUnixInfo)
		if err != nil {
			return err
		}
		defer rm.Close()
		rm.Print()

		rr, err := register.MakeRunRecorder(cfg.RegisterDb, id)
		if err != nil {
			return err
		}
		defer rr.Close()
		for _, run := range result.Runs {
			if err := rr.Record(run.Run, run.Sum, run.Mean, run.Min, run.Max); err != nil {
				return err
			}
		}
		if err := rr.Flush(); err != nil {
			return err
		}
		log.Noticef("run registered in %v", cfg.RegisterDb)
	}
	return nil
}
