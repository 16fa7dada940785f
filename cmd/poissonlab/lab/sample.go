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
	"math"
	"math/rand"

	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/0xsoniclabs/poissonlab/statistics/aggregate"
	"github.com/0xsoniclabs/poissonlab/statistics/empirical"
	"github.com/0xsoniclabs/poissonlab/statistics/poisson"
	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// SampleCommand data structure for the sample app.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "draw random variates from the Poisson counting distribution",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.RateFlag,
		&utils.DrawsPerRunFlag,
		&utils.RandomSeedFlag,
		&utils.OutputFlag,
	},
	Description: `
The sample command draws random variates from the distribution and reports
their aggregate summary and a frequency table against the theoretical mass
function. The draw is reproducible with an explicit random seed.`,
}

// sampleReport renders the aggregate summary of the drawn variates.
func sampleReport(d *poisson.Distribution, s aggregate.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Sample of %d draws at rate %v", s.Count, d.Rate())
	tw.AppendHeader(table.Row{"statistic", "observed", "theory"})
	tw.AppendRow(table.Row{"sum", s.Sum, ""})
	tw.AppendRow(table.Row{"mean", fmt.Sprintf("%.6f", s.Mean), fmt.Sprintf("%.6f", d.Mean())})
	tw.AppendRow(table.Row{"min", s.Min, ""})
	tw.AppendRow(table.Row{"max", s.Max, ""})
	return tw.Render()
}

// frequencyReport renders the observed frequency of each outcome against
// the theoretical mass function.
func frequencyReport(d *poisson.Distribution, freq []float64, n int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Frequencies")
	tw.AppendHeader(table.Row{"outcome", "count", "observed", "theory"})
	for k, f := range freq {
		count := int(math.Round(f * float64(n)))
		tw.AppendRow(table.Row{k, count, percent(f), percent(d.PMF(k))})
	}
	return tw.Render()
}

// sampleAction draws random variates and reports their statistics.
func sampleAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Poisson Sample")
	d, err := poisson.New(cfg.Rate)
	if err != nil {
		return err
	}
	rg := rand.New(rand.NewSource(cfg.RandomSeed))
	log.Noticef("using random seed %d", cfg.RandomSeed)

	samples, err := d.Sample(rg, cfg.DrawsPerRun)
	if err != nil {
		return err
	}
	summary, err := aggregate.Summarize(samples)
	if err != nil {
		return err
	}
	freq, err := empirical.Frequencies(samples)
	if err != nil {
		return err
	}
	report := sampleReport(d, summary) + "\n" + frequencyReport(d, freq, summary.Count) + "\n"

	ps := utils.NewPrinters().
		AddPrinterToConsole(false, func() string { return report }).
		AddPrinterToFile(cfg.Output, func() string { return report })
	defer ps.Close()
	ps.Print()
	if cfg.Output != "" {
		log.Noticef("report written to %v", cfg.Output)
	}
	return nil
}
