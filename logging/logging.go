//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package logging provides the engine's process-wide logger. The pid is
// cached once at package initialization; the logrus formatter/level setup
// runs at most once, lazily, on first use, and is idempotent under
// repeated calls but not reentrant, matching a library injected by
// LD_PRELOAD into an arbitrary host process rather than a daemon with a
// single well-defined startup.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/sysbox-exec/pathutil"
)

var (
	once   sync.Once
	logger *logrus.Logger
	pid    int
)

// EnvLogLevelKey mirrors config.EnvLogLevel without importing config:
// logging's zero-arg init reads the environment directly rather than
// through config.LogLevel, to stay usable from the cgo preload entry
// point before config is otherwise touched.
const EnvLogLevelKey = "SYSBOX_EXEC__LOG_LEVEL"

func init() {
	pid = os.Getpid()
}

func ensureInit() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.SetLevel(levelFromEnv())
	})
	return logger
}

func levelFromEnv() logrus.Level {
	v, ok := os.LookupEnv(EnvLogLevelKey)
	if !ok {
		return logrus.InfoLevel
	}
	switch pathutil.ParseInt(v, 1) {
	case 0:
		return logrus.ErrorLevel
	case 1:
		return logrus.InfoLevel
	case 2:
		return logrus.DebugLevel
	case 3, 4:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

func entry() *logrus.Entry {
	return ensureInit().WithField("pid", pid)
}

// Debugf logs at debug level.
func Debugf(format string, args ...interface{}) {
	entry().Debugf(format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...interface{}) {
	entry().Infof(format, args...)
}

// Errorf logs at error level. It never mutates or inspects errno; callers
// pass the already-formed error purely for the log line.
func Errorf(format string, args ...interface{}) {
	entry().Errorf(format, args...)
}
