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

// Package validator checks search results against the distance oracle.
//
// The check is advisory: an approximate index returning a candidate that is
// not the true nearest neighbor is expected. What must hold is that every
// candidate is a base row and that its reported distance equals the
// recomputed one. Only strict index types turn a violation into an error.
package validator

import (
	"math"

	"github.com/vearch/annverify/internal/distance"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"github.com/vearch/annverify/internal/pkg/log"
)

const DefaultTolerance = 1e-5

// maxLoggedCells bounds per-cell warnings for one result.
const maxLoggedCells = 10

type Validator struct {
	tolerance float64
	strict    map[entity.IndexType]bool
	metrics   *Metrics
}

type Option func(*Validator)

func WithTolerance(tolerance float64) Option {
	return func(v *Validator) {
		if tolerance >= 0 {
			v.tolerance = tolerance
		}
	}
}

// WithStrictTypes replaces the index types whose violations are errors.
func WithStrictTypes(types ...entity.IndexType) Option {
	return func(v *Validator) {
		v.strict = make(map[entity.IndexType]bool, len(types))
		for _, t := range types {
			v.strict[t] = true
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

// New returns a validator with tolerance 1e-5 where the exact index types
// are strict.
func New(opts ...Option) *Validator {
	v := &Validator{tolerance: DefaultTolerance}
	WithStrictTypes(entity.IndexFlat, entity.IndexBinFlat)(v)
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type Input struct {
	IndexType entity.IndexType
	Metric    entity.MetricType
	Result    *entity.QueryResult
	Base      *entity.Dataset
	Query     *entity.Dataset
	// GroundTruthIDs holds GroundTruthK exact neighbors per query. Recall
	// is computed only when it is set.
	GroundTruthIDs []int64
	GroundTruthK   int
}

func (v *Validator) Validate(in Input) (*Report, error) {
	if err := in.Result.Check(); err != nil {
		return nil, verrors.Wrap(verrors.ErrInvalidParam, "validate", err)
	}
	if in.Base == nil || in.Query == nil {
		return nil, verrors.MissingParam("base and query datasets")
	}
	res := in.Result
	r := newReport(in.IndexType, in.Metric, res.NQ, res.TopK, v.tolerance)
	r.Strict = v.strict[in.IndexType]

	for i := 0; i < res.NQ; i++ {
		for j := 0; j < res.TopK; j++ {
			r.add(v.check(r, in, i, j))
		}
	}
	if in.GroundTruthIDs != nil && in.GroundTruthK > 0 {
		r.Recall = Recall(res, in.GroundTruthIDs, in.GroundTruthK)
		r.HasRecall = true
	}
	r.finish()
	v.log(r)
	v.metrics.observe(r)
	return r, nil
}

func (v *Validator) check(r *Report, in Input, i, j int) Cell {
	id, reported := in.Result.At(i, j)
	c := Cell{Query: i, Rank: j, ID: id, Reported: reported, Expected: distance.Incomparable}
	switch {
	case id == -1 && distance.IsIncomparable(reported):
		c.Status = StatusMissing
		return c
	case id < 0 || id >= int64(in.Base.Rows):
		c.Status = StatusInvalidID
		return c
	}

	c.Expected = distance.Rows(in.Query, int64(i), in.Base, id, in.Metric)
	if distance.IsIncomparable(c.Expected) {
		c.Status = StatusIncomparable
		return c
	}
	dev := math.Abs(float64(reported) - float64(c.Expected))
	r.recordDeviation(dev)
	if dev > v.tolerance || math.IsNaN(dev) {
		c.Status = StatusMismatch
	}
	return c
}

func (v *Validator) log(r *Report) {
	if r.Passed() {
		log.Debugf("validated %s", r)
		return
	}
	logged := 0
	for _, c := range r.Cells {
		if !c.Status.Failing() {
			continue
		}
		if logged == maxLoggedCells {
			log.Warnf("%s/%s: more failing cells omitted", r.IndexType, r.Metric)
			break
		}
		log.Warnf("%s/%s cell %s", r.IndexType, r.Metric, c)
		logged++
	}
	log.Warnf("validated %s", r)
}

// Validate checks a result with the default strict types and no metrics.
func Validate(result *entity.QueryResult, base, query *entity.Dataset, metric entity.MetricType, tolerance float64) (*Report, error) {
	return New(WithTolerance(tolerance)).Validate(Input{
		Metric: metric,
		Result: result,
		Base:   base,
		Query:  query,
	})
}

// Recall is the mean fraction of each query's true top-k found among its
// first k candidates, with k the smaller of the two widths. Missing truth
// entries are not counted.
func Recall(result *entity.QueryResult, truth []int64, truthK int) float64 {
	k := min(result.TopK, truthK)
	if k == 0 || result.NQ == 0 {
		return 0
	}
	var sum float64
	queries := 0
	for i := 0; i < result.NQ && (i+1)*truthK <= len(truth); i++ {
		want := make(map[int64]struct{}, k)
		for _, id := range truth[i*truthK : i*truthK+k] {
			if id >= 0 {
				want[id] = struct{}{}
			}
		}
		if len(want) == 0 {
			continue
		}
		hit := 0
		for j := 0; j < k; j++ {
			id, _ := result.At(i, j)
			if _, ok := want[id]; ok {
				hit++
				delete(want, id)
			}
		}
		total := hit + len(want)
		sum += float64(hit) / float64(total)
		queries++
	}
	if queries == 0 {
		return 0
	}
	return sum / float64(queries)
}
