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

package main

import (
	"log"
	"os"

	"github.com/0xsoniclabs/poissonlab/cmd/poissonlab/lab"
	"github.com/urfave/cli/v2"
)

// PoissonlabApp data structure
var PoissonlabApp = cli.App{
	Name:      "Poissonlab Counting Statistics",
	HelpName:  "poissonlab",
	Usage:     "query, sample and simulate the Poisson counting distribution",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&lab.QueryCommand,
		&lab.SampleCommand,
		&lab.SimulateCommand,
		&lab.VisualizeCommand,
	},
}

// main implements the poissonlab commands
func main() {
	if err := PoissonlabApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
