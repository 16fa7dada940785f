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
	"github.com/0xsoniclabs/poissonlab/logger"
	"github.com/0xsoniclabs/poissonlab/simulation"
	"github.com/0xsoniclabs/poissonlab/utils"
	"github.com/0xsoniclabs/poissonlab/visualizer"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand data structure for the visualize app.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "visualize an experiment result in a web browser",
	ArgsUsage: "<result-file>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&utils.PortFlag,
	},
	Description: `
The visualize command requires one argument: <result-file>

<result-file> is an experiment result produced by the simulate command.`,
}

// visualizeAction serves the charts of an experiment result.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.PathArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Poisson Visualize")
	log.Infof("reading result file %v", cfg.ResultFile)
	result, err := simulation.ReadResult(cfg.ResultFile)
	if err != nil {
		return err
	}
	log.Noticef("open http://localhost:%v with a web browser", cfg.Port)
	return visualizer.FireUpWeb(result, cfg.Port)
}
