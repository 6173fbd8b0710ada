// SPDX-License-Identifier: EPL-2.0

// Package log hands out the logrus loggers used across smplhlpr.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv turns on debug level for every logger created by GetLogger.
const DebugEnv = "SMPLHLPR_DEBUG"

// Logger is what the sampler components log through.
type Logger = logrus.FieldLogger

// GetLogger returns a new logger instance. It logs at debug level when
// SMPLHLPR_DEBUG parses as true.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func debugEnabled() bool {
	debug, err := strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		return false
	}
	return debug
}
