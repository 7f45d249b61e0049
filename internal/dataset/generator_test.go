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

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/distance"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

func TestGenerateFloat(t *testing.T) {
	g := &Generator{Seed: 7}
	out, err := g.Generate(1000, entity.MetricL2, false, 0)
	require.NoError(t, err)

	assert.Equal(t, FloatField, out.Base.Field)
	assert.Equal(t, entity.FloatVector, out.Base.Type)
	assert.Equal(t, entity.MetricL2, out.Base.Metric)
	assert.Equal(t, DefaultDim, out.Base.Dim)
	assert.Equal(t, 1000, out.Base.Rows)
	assert.Len(t, out.Base.Data, 1000*DefaultDim*4)
	assert.Equal(t, DefaultNQ, out.Query.Rows)
	assert.NotEqual(t, out.Base.ID, out.Query.ID)

	require.Len(t, out.GroundTruthIDs, DefaultNQ*DefaultTopK)
	require.Len(t, out.GroundTruthDistances, DefaultNQ*DefaultTopK)
	for qi := 0; qi < out.Query.Rows; qi++ {
		row := out.GroundTruthDistances[qi*out.TopK : (qi+1)*out.TopK]
		assert.Equal(t, float32(0), row[0], "query %d is a copy of base %d", qi, qi)
		assert.IsNonDecreasing(t, row)
		for j, id := range out.GroundTruthIDs[qi*out.TopK : (qi+1)*out.TopK] {
			want := distance.Rows(out.Query, int64(qi), out.Base, id, entity.MetricL2)
			assert.InDelta(t, want, row[j], 1e-4)
		}
	}
}

func TestGenerateBinary(t *testing.T) {
	g := &Generator{Name: "bin", NQ: 3, TopK: 5}
	out, err := g.Generate(50, entity.MetricJaccard, true, 16)
	require.NoError(t, err)
	assert.Equal(t, BinaryField, out.Base.Field)
	assert.Equal(t, entity.BinaryVector, out.Base.Type)
	assert.Len(t, out.Base.Data, 50*2)
	assert.Equal(t, 3, out.Query.Rows)
	require.Len(t, out.GroundTruthIDs, 15)
	for qi := 0; qi < 3; qi++ {
		assert.Equal(t, float32(0), out.GroundTruthDistances[qi*5])
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := (&Generator{Name: "case-1"}).Generate(20, entity.MetricL2, false, 8)
	require.NoError(t, err)
	b, err := (&Generator{Seed: SeedFromName("case-1")}).Generate(20, entity.MetricL2, false, 8)
	require.NoError(t, err)
	assert.Equal(t, a.Base.Data, b.Base.Data)
	assert.Equal(t, a.GroundTruthIDs, b.GroundTruthIDs)

	c, err := (&Generator{Name: "case-2"}).Generate(20, entity.MetricL2, false, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a.Base.Data, c.Base.Data)
}

func TestGenerateSmallBase(t *testing.T) {
	out, err := (&Generator{Seed: 1}).Generate(2, entity.MetricL2, false, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Query.Rows)
	assert.Equal(t, []int64{0, 1, -1, -1, 1, 0, -1, -1}, out.GroundTruthIDs)
	assert.Equal(t, distance.Incomparable, out.GroundTruthDistances[3])
}

func TestGenerateNoGroundTruth(t *testing.T) {
	out, err := Generate(30, entity.MetricIP, false, 8)
	require.NoError(t, err)
	assert.Nil(t, out.GroundTruthIDs)
	assert.Nil(t, out.GroundTruthDistances)
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		name     string
		n        int
		metric   entity.MetricType
		isBinary bool
		dim      int
	}{
		{"zero rows", 0, entity.MetricL2, false, 8},
		{"negative dim", 10, entity.MetricL2, false, -8},
		{"binary dim", 10, entity.MetricJaccard, true, 12},
		{"float metric on binary", 10, entity.MetricL2, true, 8},
		{"binary metric on float", 10, entity.MetricJaccard, false, 8},
		{"unknown metric", 10, "COSINE", false, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Generate(c.n, c.metric, c.isBinary, c.dim)
			require.Error(t, err)
			assert.Equal(t, verrors.ErrInvalidParam, verrors.GetCode(err))
		})
	}
}
