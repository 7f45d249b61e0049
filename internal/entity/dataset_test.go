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

package entity_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/cbbytes"
)

func TestNewDataset(t *testing.T) {
	data := cbbytes.FloatArrayByte([]float32{1, 2, 3, 4, 5, 6})
	ds, err := entity.NewDataset("fakevec", entity.FloatVector, entity.MetricL2, 3, 2, data)
	require.NoError(t, err)
	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, 12, ds.RowBytes())
	assert.Equal(t, []float32{4, 5, 6}, ds.FloatRow(1))
	assert.Nil(t, ds.Row(2))
	assert.Nil(t, ds.Row(-1))

	var missing *entity.Dataset
	assert.Nil(t, missing.Row(0))
}

func TestNewDatasetRejects(t *testing.T) {
	_, err := entity.NewDataset("fakevec", entity.FloatVector, entity.MetricL2, 0, 1, nil)
	assert.Error(t, err)
	_, err = entity.NewDataset("fakebinvec", entity.BinaryVector, entity.MetricJaccard, 12, 1, make([]byte, 1))
	assert.Error(t, err)
	_, err = entity.NewDataset("fakevec", entity.FloatVector, entity.MetricL2, 2, 2, make([]byte, 12))
	assert.Error(t, err)
}

func TestBinaryDatasetRows(t *testing.T) {
	ds, err := entity.NewDataset("fakebinvec", entity.BinaryVector, entity.MetricJaccard, 16, 2, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, ds.Row(1))
	assert.Nil(t, ds.FloatRow(0))
}

func TestQueryResult(t *testing.T) {
	r := entity.NewQueryResult(2, 2)
	require.NoError(t, r.Check())
	id, dis := r.At(1, 1)
	assert.Equal(t, int64(-1), id)
	assert.Equal(t, float32(math.MaxFloat32), dis)

	r.Set(0, 0, 7, 0.5)
	r.Set(0, 1, 3, 1.5)
	r.Set(1, 0, 9, 2)
	assert.Equal(t, 2, r.Offset(1, 0))

	buf := &bytes.Buffer{}
	require.NoError(t, r.Fprint(buf))
	assert.Equal(t, "id\n7 3 \n9 -1 \n\ndist\n0.5 1.5 \n2 3.4028235e+38 \n\n", buf.String())

	r.IDs = r.IDs[:3]
	assert.Error(t, r.Check())
}

func TestOwnedBuffer(t *testing.T) {
	b := entity.NewOwnedBuffer([]byte{1, 2, 3})
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes())
	data := b.Take()
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Take())
}

func TestMapParamsSortedKeys(t *testing.T) {
	m := entity.MapParams{"z": "1", "index_type": "flat", "a": "2"}
	assert.Equal(t, []string{"a", "index_type", "z"}, m.SortedKeys())
}
