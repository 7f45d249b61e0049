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
	"fmt"
	"math"

	"github.com/codahale/hdrhistogram"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

const (
	// deviationScale stores deviations in units of 1e-9.
	deviationScale = 1e9

	// maxDeviation is the largest deviation tracked; larger ones are
	// recorded as maxDeviation.
	maxDeviation     = int64(1e6 * deviationScale)
	deviationSigFigs = 3
)

type Percentile struct {
	Name  string  `json:"name"`
	Unit  float64 `json:"unit"`
	Value float64 `json:"value"`
}

var deviationPercentile = []Percentile{
	{Name: "p50", Unit: 50},
	{Name: "p99", Unit: 99},
	{Name: "max", Unit: 100},
}

// Cell is a result cell that did not match.
type Cell struct {
	Query    int     `json:"query"`
	Rank     int     `json:"rank"`
	ID       int64   `json:"id"`
	Reported float32 `json:"reported"`
	Expected float32 `json:"expected"`
	Status   Status  `json:"status"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d) id %d: %s, reported %g expected %g", c.Query, c.Rank, c.ID, c.Status, c.Reported, c.Expected)
}

type Report struct {
	IndexType entity.IndexType  `json:"index_type"`
	Metric    entity.MetricType `json:"metric"`
	NQ        int               `json:"nq"`
	TopK      int               `json:"topk"`
	Tolerance float64           `json:"tolerance"`
	Strict    bool              `json:"strict"`

	Matched      int `json:"matched"`
	Mismatched   int `json:"mismatched"`
	InvalidIDs   int `json:"invalid_ids"`
	Incomparable int `json:"incomparable"`
	Missing      int `json:"missing"`

	Cells     []Cell       `json:"cells,omitempty"`
	Deviation []Percentile `json:"deviation,omitempty"`
	Recall    float64      `json:"recall"`
	HasRecall bool         `json:"has_recall"`

	deviation *hdrhistogram.Histogram
}

func newReport(indexType entity.IndexType, metric entity.MetricType, nq, topk int, tolerance float64) *Report {
	return &Report{
		IndexType: indexType,
		Metric:    metric,
		NQ:        nq,
		TopK:      topk,
		Tolerance: tolerance,
		deviation: hdrhistogram.New(0, maxDeviation, deviationSigFigs),
	}
}

func (r *Report) Count(s Status) int {
	switch s {
	case StatusMatch:
		return r.Matched
	case StatusMismatch:
		return r.Mismatched
	case StatusInvalidID:
		return r.InvalidIDs
	case StatusIncomparable:
		return r.Incomparable
	case StatusMissing:
		return r.Missing
	}
	return 0
}

func (r *Report) Total() int {
	return r.Matched + r.Mismatched + r.InvalidIDs + r.Incomparable + r.Missing
}

func (r *Report) add(c Cell) {
	switch c.Status {
	case StatusMatch:
		r.Matched++
	case StatusMismatch:
		r.Mismatched++
	case StatusInvalidID:
		r.InvalidIDs++
	case StatusIncomparable:
		r.Incomparable++
	case StatusMissing:
		r.Missing++
	}
	if c.Status != StatusMatch {
		r.Cells = append(r.Cells, c)
	}
}

func (r *Report) recordDeviation(d float64) {
	v := int64(math.Round(d * deviationScale))
	if v > maxDeviation || math.IsNaN(d) {
		v = maxDeviation
	}
	if r.deviation.RecordValue(v) != nil {
		r.deviation.RecordValue(maxDeviation)
	}
}

func (r *Report) finish() {
	if r.deviation.TotalCount() == 0 {
		return
	}
	r.Deviation = make([]Percentile, 0, len(deviationPercentile))
	for _, pt := range deviationPercentile {
		r.Deviation = append(r.Deviation, Percentile{
			Name:  pt.Name,
			Unit:  pt.Unit,
			Value: float64(r.deviation.ValueAtQuantile(pt.Unit)) / deviationScale,
		})
	}
}

// DeviationAt returns the q-th percentile of |reported - expected| over the
// cells that had a distance to compare.
func (r *Report) DeviationAt(q float64) float64 {
	return float64(r.deviation.ValueAtQuantile(q)) / deviationScale
}

// Passed reports whether every candidate is a base row at its reported
// distance.
func (r *Report) Passed() bool {
	return r.Mismatched == 0 && r.InvalidIDs == 0
}

// Err is non-nil only for strict index types that did not pass.
func (r *Report) Err() error {
	if !r.Strict || r.Passed() {
		return nil
	}
	code := verrors.ErrDistanceMismatch
	if r.Mismatched == 0 {
		code = verrors.ErrInvalidCandidate
	}
	e := verrors.Newf(code, "%s/%s: %d mismatched and %d invalid of %d cells",
		r.IndexType, r.Metric, r.Mismatched, r.InvalidIDs, r.Total())
	for _, c := range r.Cells {
		if c.Status.Failing() {
			e = e.WithDetail("first", c.String())
			break
		}
	}
	return e
}

func (r *Report) String() string {
	s := fmt.Sprintf("%s/%s nq=%d topk=%d: %d match, %d mismatch, %d invalid id, %d incomparable, %d missing",
		r.IndexType, r.Metric, r.NQ, r.TopK, r.Matched, r.Mismatched, r.InvalidIDs, r.Incomparable, r.Missing)
	if r.HasRecall {
		s += fmt.Sprintf(", recall %.4f", r.Recall)
	}
	return s
}
