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

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

func TestTableSerialize(t *testing.T) {
	base, err := entity.NewDataset("fakebinvec", entity.BinaryVector, entity.MetricJaccard, 16, 2, make([]byte, 4))
	require.NoError(t, err)
	table := NewTable("case", base, entity.IndexBinIVFFlat, "params {\n  key: \"nlist\"\n  value: \"16\"\n}\n")
	table.TypeParams = "type"
	table.AddField("age", INT, "params {}").AddField("name", STRING, "")

	got := &Table{}
	require.NoError(t, got.DeSerialize(table.Serialize()))
	assert.Equal(t, table, got)
	assert.Equal(t, BINARY, got.VectorsInfos[0].DataType)
	assert.Equal(t, int32(16), got.VectorsInfos[0].Dimension)
	assert.True(t, got.Fields[0].IsIndex)
	assert.False(t, got.Fields[1].IsIndex)
}

func TestTableEmpty(t *testing.T) {
	got := &Table{}
	require.NoError(t, got.DeSerialize((&Table{Name: "empty"}).Serialize()))
	assert.Equal(t, "empty", got.Name)
	assert.Empty(t, got.Fields)
	assert.Empty(t, got.VectorsInfos)
}

func TestTableGarbage(t *testing.T) {
	err := (&Table{}).DeSerialize([]byte{1})
	assert.Equal(t, verrors.ErrDecodingFailure, verrors.GetCode(err))

	err = (&Table{}).DeSerialize([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0})
	assert.Equal(t, verrors.ErrDecodingFailure, verrors.GetCode(err))
}
