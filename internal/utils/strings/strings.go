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

package strings

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// WrapString wraps v on word boundaries. Words longer than maxLength runes are split.
func WrapString(v string, maxLength int) string {
	if maxLength <= 0 {
		return v
	}
	lines := strings.Split(wordwrap.WrapString(v, uint(maxLength)), "\n")
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		runes := []rune(line)
		for len(runes) > maxLength {
			res = append(res, string(runes[:maxLength]))
			runes = runes[maxLength:]
		}
		res = append(res, string(runes))
	}
	return strings.Join(res, "\n")
}
