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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, "debug", LogFormatJsonValue)
	require.NoError(t, err)
	l.Debug().Str("Slot", "User.Name").Msg("constraint does not apply")

	res := gjson.ParseBytes(buf.Bytes())
	assert.Equal(t, "debug", res.Get("level").String())
	assert.Equal(t, "User.Name", res.Get("Slot").String())
	assert.True(t, res.Get("pid").Exists())
	assert.True(t, res.Get("caller").Exists())

	buf.Reset()
	l, err = New(buf, "warn", LogFormatJsonValue)
	require.NoError(t, err)
	l.Info().Msg("skipped")
	assert.Empty(t, buf.String())
	l.Warn().Msg("kept")
	assert.False(t, gjson.GetBytes(buf.Bytes(), "pid").Exists())
}

func TestNew_errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", LogFormatTextValue)
	require.ErrorIs(t, err, ErrUnknownLogLevel)
	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.ErrorIs(t, err, ErrUnknownLogFormat)
	require.ErrorIs(t, SetLogLevel("info", "yaml"), ErrUnknownLogFormat)
}
