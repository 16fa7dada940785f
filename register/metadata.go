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

// Package register records experiment runs into a sqlite3 run registry so
// that results produced on different machines and days stay attributable.
package register

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/poissonlab/utils"
)

const (
	MetadataCreateTableIfNotExist = `
		CREATE TABLE IF NOT EXISTS metadata (
			RunId text not null,
			Key text not null,
			Value text,
			PRIMARY KEY (RunId, Key)
		)
	`
	MetadataInsertOrReplace = `
		INSERT or REPLACE INTO metadata (RunId, Key, Value) VALUES (?, ?, ?)
	`
)

// RunMetadata describes one run as a set of key/value pairs: the run
// parameters together with the environment the run executed in.
type RunMetadata struct {
	Meta map[string]string
	Ps   *utils.Printers
}

// MakeRunMetadata collects metadata about the run configuration and the
// environment and binds a printer on the registry database. Values fetched
// later win over earlier ones with the same key.
func MakeRunMetadata(connection string, id *RunIdentity, fetchEnv func() (map[string]string, error)) (*RunMetadata, error) {
	rm := &RunMetadata{
		Meta: make(map[string]string),
		Ps:   utils.NewPrinters(),
	}

	cfgInfo, err := id.fetchConfigInfo()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch config info; %w", err)
	}
	for k, v := range cfgInfo {
		rm.Meta[k] = v
	}

	envInfo, err := fetchEnv()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch environment info; %w", err)
	}
	for k, v := range envInfo {
		rm.Meta[k] = v
	}

	runId, err := id.GetId()
	if err != nil {
		return nil, fmt.Errorf("unable to generate run id; %w", err)
	}
	rm.Meta["RunId"] = runId

	rm.Ps.AddPrinterToSqlite3(rm.sqlite3(connection))

	return rm, nil
}

func (rm *RunMetadata) Print() {
	rm.Ps.Print()
}

func (rm *RunMetadata) Close() {
	rm.Ps.Close()
}

func (rm *RunMetadata) sqlite3(conn string) (string, string, string, func() [][]any) {
	return conn, MetadataCreateTableIfNotExist, MetadataInsertOrReplace,
		func() [][]any {
			values := [][]any{}
			runId := rm.Meta["RunId"]
			for k, v := range rm.Meta {
				values = append(values, []any{runId, k, v})
			}
			return values
		}
}

// FetchUnixInfo probes the machine the run executes on. A probe that fails
// on this machine is recorded as an empty value rather than an error.
func FetchUnixInfo() (map[string]string, error) {
	return fetchUnixInfo(utils.NewShell())
}

func fetchUnixInfo(sh utils.ShellExecutor) (map[string]string, error) {
	info := map[string]string{
		"GoVersion": runtime.Version(),
		"Arch":      runtime.GOARCH,
		"NumCpu":    strconv.Itoa(runtime.NumCPU()),
	}

	cmds := map[string]string{
		"Processor": `cat /proc/cpuinfo | grep "^model name" | head -n 1 | awk -F': ' '{print $2}'`,
		"Memory":    `free -b | grep "^Mem:" | awk '{printf("%.1f GB RAM", $2/1024/1024/1024)}'`,
		"Disks":     `lsblk -d -o NAME,SIZE 2>/dev/null | tail -n +2 | tr '\n' ';'`,
		"Os":        `. /etc/os-release; echo "$PRETTY_NAME"`,
		"Kernel":    `uname -sr`,
		"Hostname":  `hostname`,
		"Timezone":  `date +%Z`,
	}

	for key, cmd := range cmds {
		out, err := sh.Command("sh", "-c", cmd)
		if err != nil {
			info[key] = ""
			continue
		}
		info[key] = strings.TrimSpace(string(out))
	}

	return info, nil
}
