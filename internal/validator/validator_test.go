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
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/cbbytes"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

func floatDataset(t *testing.T, dim int, rows ...[]float32) *entity.Dataset {
	var values []float32
	for _, r := range rows {
		values = append(values, r...)
	}
	ds, err := entity.NewDataset("fakevec", entity.FloatVector, entity.MetricL2, dim, len(rows), cbbytes.FloatArrayByte(values))
	require.NoError(t, err)
	return ds
}

// base rows are at L2 distance 2, 1 and 2 from the query.
func fixture(t *testing.T) (*entity.Dataset, *entity.Dataset, *entity.QueryResult) {
	base := floatDataset(t, 2, []float32{0, 0}, []float32{1, 0}, []float32{0, 2})
	query := floatDataset(t, 2, []float32{1, 1})
	res := entity.NewQueryResult(1, 4)
	res.Set(0, 0, 1, 1)
	res.Set(0, 1, 0, 2.5)
	res.Set(0, 2, 7, 0)
	return base, query, res
}

func TestValidateCells(t *testing.T) {
	base, query, res := fixture(t)
	r, err := Validate(res, base, query, entity.MetricL2, DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Matched)
	assert.Equal(t, 1, r.Mismatched)
	assert.Equal(t, 1, r.InvalidIDs)
	assert.Equal(t, 1, r.Missing)
	assert.Equal(t, 0, r.Incomparable)
	assert.Equal(t, 4, r.Total())
	assert.False(t, r.Passed())

	require.Len(t, r.Cells, 3)
	assert.Equal(t, Cell{Query: 0, Rank: 1, ID: 0, Reported: 2.5, Expected: 2, Status: StatusMismatch}, r.Cells[0])
	assert.Equal(t, StatusInvalidID, r.Cells[1].Status)
	assert.Equal(t, StatusMissing, r.Cells[2].Status)

	assert.InDelta(t, 0.5, r.DeviationAt(100), 1e-3)
	assert.InDelta(t, 0, r.DeviationAt(0), 1e-9)
	require.Len(t, r.Deviation, 3)
	assert.Equal(t, "max", r.Deviation[2].Name)
}

func TestAllMatch(t *testing.T) {
	base, query, _ := fixture(t)
	res := entity.NewQueryResult(1, 3)
	res.Set(0, 0, 1, 1)
	res.Set(0, 1, 0, 2.000001)
	res.Set(0, 2, 2, 2)
	r, err := New(WithStrictTypes(entity.IndexFlat)).Validate(Input{
		IndexType: entity.IndexFlat,
		Metric:    entity.MetricL2,
		Result:    res,
		Base:      base,
		Query:     query,
	})
	require.NoError(t, err)
	assert.True(t, r.Passed())
	assert.True(t, r.Strict)
	assert.NoError(t, r.Err())
	assert.Empty(t, r.Cells)
}

func TestStrictness(t *testing.T) {
	base, query, res := fixture(t)
	v := New()

	r, err := v.Validate(Input{IndexType: entity.IndexHNSW, Metric: entity.MetricL2, Result: res, Base: base, Query: query})
	require.NoError(t, err)
	assert.False(t, r.Passed())
	assert.NoError(t, r.Err(), "approximate types are diagnostic")

	r, err = v.Validate(Input{IndexType: entity.IndexFlat, Metric: entity.MetricL2, Result: res, Base: base, Query: query})
	require.NoError(t, err)
	require.Error(t, r.Err())
	assert.Equal(t, verrors.ErrDistanceMismatch, verrors.GetCode(r.Err()))

	onlyInvalid := entity.NewQueryResult(1, 1)
	onlyInvalid.Set(0, 0, 3, 0)
	r, err = v.Validate(Input{IndexType: entity.IndexFlat, Metric: entity.MetricL2, Result: onlyInvalid, Base: base, Query: query})
	require.NoError(t, err)
	assert.Equal(t, verrors.ErrInvalidCandidate, verrors.GetCode(r.Err()))
}

func TestToleranceOption(t *testing.T) {
	base, query, res := fixture(t)
	r, err := New(WithTolerance(0.6)).Validate(Input{Metric: entity.MetricL2, Result: res, Base: base, Query: query})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Matched)
	assert.Equal(t, 0, r.Mismatched)
}

func TestIncomparableMetric(t *testing.T) {
	base, query, res := fixture(t)
	r, err := Validate(res, base, query, entity.MetricIP, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Incomparable)
	assert.Equal(t, 0, r.Matched)
	assert.Equal(t, 0, r.Mismatched)
}

func TestMalformedInput(t *testing.T) {
	base, query, _ := fixture(t)
	bad := &entity.QueryResult{NQ: 2, TopK: 2, IDs: []int64{1}, Distances: []float32{1}}
	_, err := Validate(bad, base, query, entity.MetricL2, DefaultTolerance)
	assert.Equal(t, verrors.ErrInvalidParam, verrors.GetCode(err))

	_, err = Validate(entity.NewQueryResult(1, 1), nil, query, entity.MetricL2, DefaultTolerance)
	assert.Equal(t, verrors.ErrMissingParam, verrors.GetCode(err))
}

func TestRecall(t *testing.T) {
	res := entity.NewQueryResult(2, 2)
	res.Set(0, 0, 1, 0)
	res.Set(0, 1, 2, 0)
	res.Set(1, 0, 5, 0)
	res.Set(1, 1, 9, 0)
	truth := []int64{1, 2, 3, 5, 4, 6}

	assert.InDelta(t, 0.75, Recall(res, truth, 3), 1e-9)
	assert.InDelta(t, 0.5, Recall(res, []int64{1, 7, -1, -1}, 2), 1e-9)
	assert.Equal(t, float64(0), Recall(res, nil, 2))
}

func TestMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewMetrics(reg)
	base, query, res := fixture(t)
	_, err := New(WithMetrics(m)).Validate(Input{
		IndexType:      entity.IndexHNSW,
		Metric:         entity.MetricL2,
		Result:         res,
		Base:           base,
		Query:          query,
		GroundTruthIDs: []int64{1, 0, 2, -1},
		GroundTruthK:   4,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.cells.WithLabelValues("HNSW", "L2", "match")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cells.WithLabelValues("HNSW", "L2", "invalid_id")))
	n, err := testutil.GatherAndCount(reg, "annverify_validated_cells_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	recall := testutil.ToFloat64(m.recall.WithLabelValues("HNSW", "L2"))
	assert.InDelta(t, 2.0/3.0, recall, 1e-9)
}

func TestStatusText(t *testing.T) {
	b, err := StatusInvalidID.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "invalid_id", string(b))
	assert.Equal(t, "status(9)", Status(9).String())
	assert.False(t, StatusMissing.Failing())
	assert.False(t, math.IsNaN(DefaultTolerance))
}
