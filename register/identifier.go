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

package register

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/poissonlab/utils"
)

// RunIdentity identifies one experiment run by its start time and the
// configuration it ran under.
type RunIdentity struct {
	Timestamp int64
	Cfg       *utils.Config
}

func MakeRunIdentity(t int64, cfg *utils.Config) *RunIdentity {
	return &RunIdentity{
		Timestamp: t,
		Cfg:       cfg,
	}
}

// GetId returns the id of the run. The id is stable: the same timestamp and
// configuration always hash to the same id. A non-empty OverwriteRunId takes
// precedence over the generated one.
func (id *RunIdentity) GetId() (string, error) {
	if id.Cfg.OverwriteRunId != "" {
		return id.Cfg.OverwriteRunId, nil
	}

	info, err := id.fetchConfigInfo()
	if err != nil {
		return "", err
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%s;", k, info[k])
	}

	return fmt.Sprintf("%x", md5.Sum([]byte(b.String()))), nil
}

// fetchConfigInfo returns the configuration values that identify a run,
// printed as strings.
func (id *RunIdentity) fetchConfigInfo() (map[string]string, error) {
	return map[string]string{
		"AppName":        id.Cfg.AppName,
		"CommandName":    id.Cfg.CommandName,
		"RegisterDb":     id.Cfg.RegisterDb,
		"OverwriteRunId": id.Cfg.OverwriteRunId,
		"Rate":           strconv.FormatFloat(id.Cfg.Rate, 'g', -1, 64),
		"DrawsPerRun":    strconv.Itoa(id.Cfg.DrawsPerRun),
		"NumRuns":        strconv.Itoa(id.Cfg.NumRuns),
		"RandomSeed":     strconv.FormatInt(id.Cfg.RandomSeed, 10),
		"Timestamp":      strconv.FormatInt(id.Timestamp, 10),
	}, nil
}
