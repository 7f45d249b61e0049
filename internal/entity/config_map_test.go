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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/entity"
)

func TestConfigMapKeepsInsertionOrder(t *testing.T) {
	m := entity.NewConfigMap().
		Set("metric_type", "L2").
		Set("dim", 8).
		Set("topk", 4).
		Set("nlist", 16)
	m.Set("dim", 16)

	assert.Equal(t, []string{"metric_type", "dim", "topk", "nlist"}, m.Keys())
	v, ok := m.Get("dim")
	require.True(t, ok)
	assert.Equal(t, int64(16), v)
	assert.Equal(t, "{metric_type: L2, dim: 16, topk: 4, nlist: 16}", m.String())
}

func TestConfigMapEmpty(t *testing.T) {
	var nilMap *entity.ConfigMap
	assert.True(t, nilMap.IsEmpty())
	assert.Equal(t, 0, nilMap.Len())
	assert.True(t, entity.NewConfigMap().IsEmpty())
	assert.True(t, nilMap.Equal(entity.NewConfigMap()))
}

func TestConfigMapJSON(t *testing.T) {
	m := entity.NewConfigMap().
		Set("metric_type", "JACCARD").
		Set("topk", 4).
		Set("epsilon", 0.1).
		Set("dim", 8)

	bs, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"metric_type":"JACCARD","topk":4,"epsilon":0.1,"dim":8}`, string(bs))

	back := entity.NewConfigMap()
	require.NoError(t, back.UnmarshalJSON(bs))
	assert.True(t, m.Equal(back), "got %s", back)
}

func TestConfigMapUnmarshalRejects(t *testing.T) {
	tests := []string{
		`[1,2]`,
		`{"a":true}`,
		`{"a":{"b":1}}`,
		`{"a":`,
	}
	for _, in := range tests {
		m := entity.NewConfigMap()
		assert.Error(t, m.UnmarshalJSON([]byte(in)), in)
	}
}

func TestConfigMapClone(t *testing.T) {
	m := entity.NewConfigMap().Set("nlist", 16)
	c := m.Clone()
	c.Set("nprobe", 4)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2, c.Len())
	assert.False(t, m.Equal(c))
}
