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

package generators

import (
	"sync"
	"sync/atomic"

	"github.com/spaolacci/murmur3"
)

// Deriver hands out independent sources derived from a base seed. Every call to Next perturbs the
// base seed with a monotonically increasing call number and a label, so a fixed sequence of calls
// always yields the same sequence of sources.
type Deriver struct {
	seed  int64
	calls atomic.Uint64
	mu    sync.Mutex
	h     *SipHash
	buf   []byte
}

func NewDeriver(seed int64) *Deriver {
	return &Deriver{
		seed: seed,
		h:    NewSipHash(BuildBytesFromInt64(seed)),
	}
}

func (d *Deriver) Seed() int64 {
	return d.seed
}

// Next returns a fresh source for the next call.
func (d *Deriver) Next(label string) *Source {
	return NewSource(d.Derive(label, d.calls.Add(1)))
}

// Derive computes the seed for the given label and call number without advancing the call counter.
func (d *Deriver) Derive(label string, call uint64) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf = append(d.buf[:0], BuildBytesFromUint64(call)...)
	d.buf = append(d.buf, label...)
	// SipHash never fails on in-memory writes
	res, _ := d.h.Generate(d.buf)
	return BuildInt64FromBytes(res)
}

// PerturbSeed mixes a label into a seed. It is used for long-lived sources keyed by a name,
// such as per-locale providers.
func PerturbSeed(seed int64, label string) int64 {
	return seed ^ int64(murmur3.Sum64WithSeed([]byte(label), uint32(seed)))
}
