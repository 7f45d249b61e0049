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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

func ivfpqConfig() *entity.ConfigMap {
	return entity.NewConfigMap().
		Set(entity.KeySliceSize, 4).
		Set(entity.KeyMetricType, "L2").
		Set(entity.KeyDim, 8).
		Set(entity.KeyTopK, 4).
		Set(entity.KeyNlist, 16).
		Set(entity.KeyNprobe, 4).
		Set(entity.KeyEpsilon, 0.1).
		Set("ratio", 2.0)
}

func TestEncodeConfigRoundTrip(t *testing.T) {
	cfg := ivfpqConfig()
	blob := EncodeConfig(cfg)
	require.NotEmpty(t, blob)

	kvs, err := DecodeParams(blob)
	require.NoError(t, err)
	assert.Equal(t, []entity.KeyValue{
		{Key: "SLICE_SIZE", Value: "4"},
		{Key: "metric_type", Value: "L2"},
		{Key: "dim", Value: "8"},
		{Key: "topk", Value: "4"},
		{Key: "nlist", Value: "16"},
		{Key: "nprobe", Value: "4"},
		{Key: "epsilon", Value: "0.1"},
		{Key: "ratio", Value: "2.0"},
	}, kvs)

	back, err := DecodeConfig(blob)
	require.NoError(t, err)
	assert.True(t, cfg.Equal(back), "got %s", back)
}

func TestEncodeIsDeterministic(t *testing.T) {
	assert.Equal(t, EncodeConfig(ivfpqConfig()), EncodeConfig(ivfpqConfig()))
	m := entity.MapParams{"index_type": "flat", "b": "2", "a": "1"}
	assert.Equal(t, EncodeIndexMapParams(m), EncodeIndexMapParams(m))
}

func TestEncodeIndexParamsAppendsIndexType(t *testing.T) {
	blob := EncodeIndexParams(ivfpqConfig(), entity.IndexIVFPQ)
	kvs, err := DecodeParams(blob)
	require.NoError(t, err)
	require.Len(t, kvs, 9)
	assert.Equal(t, entity.KeyValue{Key: "index_type", Value: "IVF_PQ"}, kvs[8])
}

func TestEncodeMapParamsSorted(t *testing.T) {
	blob := EncodeIndexMapParams(entity.MapParams{"index_type": "marisa", "a": "x"})
	kvs, err := DecodeParams(blob)
	require.NoError(t, err)
	assert.Equal(t, []entity.KeyValue{{Key: "a", Value: "x"}, {Key: "index_type", Value: "marisa"}}, kvs)

	tblob := EncodeTypeParams(entity.MapParams{"dim": "8"})
	tkvs, err := DecodeTypeParams(tblob)
	require.NoError(t, err)
	assert.Equal(t, []entity.KeyValue{{Key: "dim", Value: "8"}}, tkvs)
}

func TestEncodeEmpty(t *testing.T) {
	kvs, err := DecodeTypeParams(EncodeTypeParams(entity.MapParams{}))
	require.NoError(t, err)
	assert.Empty(t, kvs)
}

func TestEncodeUnrepresentablePanics(t *testing.T) {
	cfg := entity.NewConfigMap().Set("dims", []int{1, 2})
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.Equal(t, verrors.ErrEncodingFailure, verrors.GetCode(err))
	}()
	EncodeConfig(cfg)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeParams("params: {key: ")
	assert.Equal(t, verrors.ErrDecodingFailure, verrors.GetCode(err))
}

func TestFormatAndParseValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		text string
		back interface{}
	}{
		{int64(16), "16", int64(16)},
		{0.1, "0.1", 0.1},
		{200.0, "200.0", 200.0},
		{float32(0.5), "0.5", 0.5},
		{"L2", "L2", "L2"},
	}
	for _, tt := range tests {
		s, err := FormatValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.text, s)
		assert.Equal(t, tt.back, ParseValue(s))
	}
}

func TestDecodeConfigInfersNumbers(t *testing.T) {
	cfg := entity.NewConfigMap().
		Set(entity.KeyMetricType, "L2").
		Set("label", "16")
	blob := EncodeConfig(cfg)

	kvs, err := DecodeParams(blob)
	require.NoError(t, err)
	assert.Equal(t, entity.KeyValue{Key: "label", Value: "16"}, kvs[1])

	back, err := DecodeConfig(blob)
	require.NoError(t, err)
	v, ok := back.Get("label")
	require.True(t, ok)
	assert.Equal(t, int64(16), v)
	assert.False(t, cfg.Equal(back))
}

func TestFormatValue(t *testing.T) {
	for in, want := range map[interface{}]string{
		2.0:          "2.0",
		0.1:          "0.1",
		1e21:         "1e+21",
		float32(0.5): "0.5",
		16:           "16",
		"L2":         "L2",
	} {
		got, err := FormatValue(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%v", in)
	}
}
