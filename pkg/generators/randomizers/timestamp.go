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

package randomizers

import (
	"fmt"
	"time"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

// TimestampLimiter keeps timestamps in [MinValue, MaxValue] with nanosecond granularity.
type TimestampLimiter struct {
	MinValue time.Time
	MaxValue time.Time
}

func NewTimestampLimiter(minValue, maxValue time.Time) (*TimestampLimiter, error) {
	if minValue.After(maxValue) {
		return nil, fmt.Errorf("min value %s is after max value %s: %w", minValue, maxValue, ErrWrongLimits)
	}
	return &TimestampLimiter{
		MinValue: minValue,
		MaxValue: maxValue,
	}, nil
}

func (l *TimestampLimiter) Limit(src *generators.Source) time.Time {
	span := l.MaxValue.Sub(l.MinValue)
	return l.MinValue.Add(time.Duration(src.Int64Between(0, int64(span))))
}

type TimestampRandomizer struct {
	src     *generators.Source
	limiter *TimestampLimiter
}

func NewTimestampRandomizer(src *generators.Source, limiter *TimestampLimiter) *TimestampRandomizer {
	return &TimestampRandomizer{
		src:     src,
		limiter: limiter,
	}
}

func (tr *TimestampRandomizer) Next() time.Time {
	return tr.limiter.Limit(tr.src)
}
