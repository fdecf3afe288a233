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

package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/greenmaskio/greenrand/pkg/constraints"
	"github.com/greenmaskio/greenrand/pkg/engine"
	"github.com/greenmaskio/greenrand/pkg/semantic"
)

const namespace = "greenrand"

// Metrics counts engine events. It implements engine.Observer.
type Metrics struct {
	// Constraint resolutions by kind and outcome
	Resolutions *prometheus.CounterVec

	// Slots generated without an applicable constraint
	Fallbacks prometheus.Counter

	// Semantic providers constructed by locale
	Providers *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the metrics in reg. A nil reg means a fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "constraint_resolutions_total",
			Help:      "Total constraint resolutions by kind and outcome",
		}, []string{"kind", "outcome"}),

		Fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Total slots generated by the semantic provider or the populator",
		}),

		Providers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "semantic_providers_constructed_total",
			Help:      "Total semantic providers constructed by locale",
		}, []string{"locale"}),

		gatherer: reg,
	}
}

func (m *Metrics) OnResolve(kind constraints.Kind, outcome engine.Outcome) {
	if m != nil {
		m.Resolutions.WithLabelValues(kind.String(), string(outcome)).Inc()
	}
}

func (m *Metrics) OnFallback(string) {
	if m != nil {
		m.Fallbacks.Inc()
	}
}

func (m *Metrics) OnProviderConstructed(locale semantic.LocaleKey) {
	if m != nil {
		m.Providers.WithLabelValues(string(locale)).Inc()
	}
}

// Sample is a single counter value with its labels rendered as name=value pairs.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot returns the current non zero counter values sorted by name.
func (m *Metrics) Snapshot() ([]Sample, error) {
	families, err := m.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	var res []Sample
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, metric := range mf.GetMetric() {
			v := metric.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			labels := make(map[string]string, len(metric.GetLabel()))
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			res = append(res, Sample{
				Name:   mf.GetName(),
				Labels: labels,
				Value:  v,
			})
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res, nil
}

var _ engine.Observer = (*Metrics)(nil)
