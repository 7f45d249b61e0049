// Copyright 2019 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports validation outcomes. Every Validator sharing a Metrics
// adds to the same series.
type Metrics struct {
	cells  *prometheus.CounterVec
	recall *prometheus.GaugeVec
}

// NewRegistry returns the pedantic registry metrics are checked against in
// tests and exposed from by the CLI.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewPedanticRegistry()
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cells: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annverify_validated_cells_total",
				Help: "Total number of validated result cells",
			},
			[]string{"index_type", "metric", "status"},
		),
		recall: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "annverify_recall_ratio",
				Help: "Recall of the last validated result against ground truth",
			},
			[]string{"index_type", "metric"},
		),
	}
}

func (m *Metrics) observe(r *Report) {
	if m == nil {
		return
	}
	for s := StatusMatch; s <= StatusMissing; s++ {
		if n := r.Count(s); n > 0 {
			m.cells.WithLabelValues(string(r.IndexType), string(r.Metric), s.String()).Add(float64(n))
		}
	}
	if r.HasRecall {
		m.recall.WithLabelValues(string(r.IndexType), string(r.Metric)).Set(r.Recall)
	}
}
