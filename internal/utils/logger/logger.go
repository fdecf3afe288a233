// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogFormatJsonValue = "json"
	LogFormatTextValue = "text"
)

var (
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// SetLogLevel replaces the global logger with one writing to stderr.
func SetLogLevel(logLevelStr string, logFormat string) error {
	l, err := New(os.Stderr, logLevelStr, logFormat)
	if err != nil {
		return err
	}
	log.Logger = l
	return nil
}

// New builds a logger. The debug level adds the caller and the pid to every event.
func New(w io.Writer, logLevelStr string, logFormat string) (zerolog.Logger, error) {
	var logLevel zerolog.Level
	switch logLevelStr {
	case zerolog.LevelDebugValue:
		logLevel = zerolog.DebugLevel
	case zerolog.LevelInfoValue:
		logLevel = zerolog.InfoLevel
	case zerolog.LevelWarnValue:
		logLevel = zerolog.WarnLevel
	case zerolog.LevelErrorValue:
		logLevel = zerolog.ErrorLevel
	default:
		return zerolog.Nop(), fmt.Errorf("%q: %w", logLevelStr, ErrUnknownLogLevel)
	}

	var formatWriter io.Writer
	switch logFormat {
	case LogFormatJsonValue:
		formatWriter = w
	case LogFormatTextValue:
		formatWriter = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("%q: %w", logFormat, ErrUnknownLogFormat)
	}

	ctx := zerolog.New(formatWriter).
		Level(logLevel).
		With().
		Timestamp()
	if logLevel == zerolog.DebugLevel {
		ctx = ctx.Caller().Int("pid", os.Getpid())
	}
	return ctx.Logger(), nil
}
