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

package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

//go:generate mockgen -source logger.go -destination logger_mock.go -package logger

// Logger is responsible for logging any events.
type Logger interface {
	// Fatal is equivalent to l.Critical(fmt.Sprint()) followed by a call to os.Exit(1).
	Fatal(args ...any)
	// Fatalf is equivalent to l.Criticalf(format, args...) followed by a call to os.Exit(1).
	Fatalf(format string, args ...any)
	// Panic is equivalent to l.Critical(fmt.Sprint()) followed by a call to panic().
	Panic(args ...any)
	// Panicf is equivalent to l.Criticalf(format, args...) followed by a call to panic().
	Panicf(format string, args ...any)
	// Critical logs a message using CRITICAL as log level.
	Critical(args ...any)
	// Criticalf logs a message using CRITICAL as log level.
	Criticalf(format string, args ...any)
	// Error logs a message using ERROR as log level.
	Error(args ...any)
	// Errorf logs a message using ERROR as log level.
	Errorf(format string, args ...any)
	// Warning logs a message using WARNING as log level.
	Warning(args ...any)
	// Warningf logs a message using WARNING as log level.
	Warningf(format string, args ...any)
	// Notice logs a message using NOTICE as log level.
	Notice(args ...any)
	// Noticef logs a message using NOTICE as log level.
	Noticef(format string, args ...any)
	// Info logs a message using INFO as log level.
	Info(args ...any)
	// Infof logs a message using INFO as log level.
	Infof(format string, args ...any)
	// Debug logs a message using DEBUG as log level.
	Debug(args ...any)
	// Debugf logs a message using DEBUG as log level.
	Debugf(format string, args ...any)
	// IsEnabledFor returns true if the logger is enabled for the given level.
	IsEnabledFor(level logging.Level) bool
}

var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value:   "info",
}

const defaultLogFormat = "%{time:15:04:05.000} %{color}%{level:.4s}%{color:reset} %{module}: %{message}"

// NewLogger provides a new instance of the Logger based on the log level.
// An unknown level falls back to INFO.
func NewLogger(level string, module string) Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)

	fm := logging.MustStringFormatter(defaultLogFormat)
	fmtBackend := logging.NewBackendFormatter(backend, fm)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(lvl, "")

	logging.SetBackend(lvlBackend)

	return logging.MustGetLogger(module)
}

// ParseTime decomposes an elapsed duration into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	var hours, minutes, seconds uint32

	seconds = uint32(elapsed.Seconds())

	if seconds > 60 {
		minutes = seconds / 60
		seconds -= minutes * 60
	}

	if minutes > 60 {
		hours = minutes / 60
		minutes -= hours * 60
	}

	return hours, minutes, seconds
}
