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

	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/0xsoniclabs/poissonlab/statistics/poisson"
	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// QueryCommand data structure for the query app.
var QueryCommand = cli.Command{
	Action:    queryAction,
	Name:      "query",
	Usage:     "report probabilities of the Poisson counting distribution",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.RateFlag,
		&utils.OutcomeFlag,
		&utils.ProbabilityFlag,
		&utils.OutputFlag,
	},
	Description: `
The query command reports the mass, cumulative and survival probabilities of
the given outcome, the quantile of the given probability, and a quantile table
of the distribution. Probabilities are printed as decimals and percentages.`,
}

// quantileTable are the probabilities of the quantile report.
var quantileTable = []float64{0.10, 0.25, 0.50, 0.75, 0.90, 0.99}

// percent formats a probability as a percentage.
func percent(p float64) string {
	return fmt.Sprintf("%.4f%%", 100.0*p)
}

// queryReport renders the report card of a distribution at one outcome.
func queryReport(d *poisson.Distribution, outcome int, probability float64, quantile int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Poisson distribution at rate %v", d.Rate())
	tw.AppendHeader(table.Row{"statistic", "value", "percent"})
	tw.AppendRow(table.Row{fmt.Sprintf("PMF(%d)", outcome), fmt.Sprintf("%.6f", d.PMF(outcome)), percent(d.PMF(outcome))})
	tw.AppendRow(table.Row{fmt.Sprintf("CDF(%d)", outcome), fmt.Sprintf("%.6f", d.CDF(outcome)), percent(d.CDF(outcome))})
	tw.AppendRow(table.Row{fmt.Sprintf("Survival(%d)", outcome), fmt.Sprintf("%.6f", d.Survival(outcome)), percent(d.Survival(outcome))})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{fmt.Sprintf("Quantile(%.2f)", probability), quantile, ""})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"mean", fmt.Sprintf("%.6f", d.Mean()), ""})
	tw.AppendRow(table.Row{"variance", fmt.Sprintf("%.6f", d.Variance()), ""})
	tw.AppendRow(table.Row{"std dev", fmt.Sprintf("%.6f", d.StdDev()), ""})
	return tw.Render()
}

// quantileReport renders the quantile table of a distribution.
func quantileReport(d *poisson.Distribution) (string, error) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Quantiles")
	tw.AppendHeader(table.Row{"p", "percent", "outcome"})
	for _, p := range quantileTable {
		k, err := d.Quantile(p)
		if err != nil {
			return "", fmt.Errorf("cannot compute quantile of %v; %w", p, err)
		}
		tw.AppendRow(table.Row{fmt.Sprintf("%.2f", p), percent(p), k})
	}
	return tw.Render(), nil
}

// queryAction reports point statistics of a Poisson distribution.
func queryAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Poisson Query")
	d, err := poisson.New(cfg.Rate)
	if err != nil {
		return err
	}
	log.Infof("querying distribution at rate %v for outcome %v", cfg.Rate, cfg.Outcome)

	quantile, err := d.Quantile(cfg.Probability)
	if err != nil {
		return err
	}
	quantiles, err := quantileReport(d)
	if err != nil {
		return err
	}
	report := queryReport(d, cfg.Outcome, cfg.Probability, quantile) + "\n" + quantiles + "\n"

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
