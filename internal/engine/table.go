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
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

type DataType int8

const (
	INT         DataType = 0
	LONG        DataType = 1
	FLOAT       DataType = 2
	DOUBLE      DataType = 3
	STRING      DataType = 4
	VECTOR      DataType = 5
	BOOL        DataType = 6
	DATE        DataType = 7
	STRINGARRAY DataType = 8
	BINARY      DataType = 9
)

type VectorInfo struct {
	Name       string
	DataType   DataType
	IsIndex    bool
	Dimension  int32
	MetricType string
}

type FieldInfo struct {
	Name        string
	DataType    DataType
	IsIndex     bool
	IndexParams string
}

// Table describes the collection an index is built over. Field slots of the
// flatbuffers encoding:
//
//	Table:      name, fields, vectors_info, index_type, index_params, type_params
//	FieldInfo:  name, data_type, is_index, index_params
//	VectorInfo: name, data_type, is_index, dimension, metric_type
type Table struct {
	Name         string
	Fields       []FieldInfo
	VectorsInfos []VectorInfo
	IndexType    string
	IndexParams  string
	TypeParams   string
}

// NewTable describes a single vector field built from base.
func NewTable(name string, base *entity.Dataset, indexType entity.IndexType, params entity.ParameterBlob) *Table {
	dt := VECTOR
	if base.Type == entity.BinaryVector {
		dt = BINARY
	}
	return &Table{
		Name: name,
		VectorsInfos: []VectorInfo{{
			Name:       base.Field,
			DataType:   dt,
			IsIndex:    true,
			Dimension:  int32(base.Dim),
			MetricType: string(base.Metric),
		}},
		IndexType:   string(indexType),
		IndexParams: string(params),
	}
}

func (table *Table) AddField(name string, dt DataType, indexParams entity.ParameterBlob) *Table {
	table.Fields = append(table.Fields, FieldInfo{
		Name:        name,
		DataType:    dt,
		IsIndex:     indexParams != "",
		IndexParams: string(indexParams),
	})
	return table
}

func (table *Table) Serialize() []byte {
	builder := flatbuffers.NewBuilder(0)
	name := builder.CreateString(table.Name)

	fieldInfos := make([]flatbuffers.UOffsetT, len(table.Fields))
	for i := 0; i < len(table.Fields); i++ {
		field := table.Fields[i]
		fieldName := builder.CreateString(field.Name)
		fieldParams := builder.CreateString(field.IndexParams)
		builder.StartObject(4)
		builder.PrependUOffsetTSlot(0, fieldName, 0)
		builder.PrependInt8Slot(1, int8(field.DataType), 0)
		builder.PrependBoolSlot(2, field.IsIndex, false)
		builder.PrependUOffsetTSlot(3, fieldParams, 0)
		fieldInfos[i] = builder.EndObject()
	}
	fields := builder.CreateVectorOfTables(fieldInfos)

	vectorInfos := make([]flatbuffers.UOffsetT, len(table.VectorsInfos))
	for i := 0; i < len(table.VectorsInfos); i++ {
		vecInfo := table.VectorsInfos[i]
		vecName := builder.CreateString(vecInfo.Name)
		metric := builder.CreateString(vecInfo.MetricType)
		builder.StartObject(5)
		builder.PrependUOffsetTSlot(0, vecName, 0)
		builder.PrependInt8Slot(1, int8(vecInfo.DataType), 0)
		builder.PrependBoolSlot(2, vecInfo.IsIndex, false)
		builder.PrependInt32Slot(3, vecInfo.Dimension, 0)
		builder.PrependUOffsetTSlot(4, metric, 0)
		vectorInfos[i] = builder.EndObject()
	}
	vecInfos := builder.CreateVectorOfTables(vectorInfos)

	indexType := builder.CreateString(table.IndexType)
	indexParams := builder.CreateString(table.IndexParams)
	typeParams := builder.CreateString(table.TypeParams)

	builder.StartObject(6)
	builder.PrependUOffsetTSlot(0, name, 0)
	builder.PrependUOffsetTSlot(1, fields, 0)
	builder.PrependUOffsetTSlot(2, vecInfos, 0)
	builder.PrependUOffsetTSlot(3, indexType, 0)
	builder.PrependUOffsetTSlot(4, indexParams, 0)
	builder.PrependUOffsetTSlot(5, typeParams, 0)
	builder.Finish(builder.EndObject())
	return builder.FinishedBytes()
}

func slot(i int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*i)
}

func stringField(tab *flatbuffers.Table, i int) string {
	if o := flatbuffers.UOffsetT(tab.Offset(slot(i))); o != 0 {
		return tab.String(o + tab.Pos)
	}
	return ""
}

func tables(tab *flatbuffers.Table, i int) []flatbuffers.Table {
	o := flatbuffers.UOffsetT(tab.Offset(slot(i)))
	if o == 0 {
		return nil
	}
	n := tab.VectorLen(o)
	start := tab.Vector(o)
	out := make([]flatbuffers.Table, n)
	for j := 0; j < n; j++ {
		x := tab.Indirect(start + flatbuffers.UOffsetT(j)*flatbuffers.SizeUOffsetT)
		out[j] = flatbuffers.Table{Bytes: tab.Bytes, Pos: x}
	}
	return out
}

func (table *Table) DeSerialize(buffer []byte) (err error) {
	if len(buffer) < flatbuffers.SizeUOffsetT {
		return verrors.DecodingFailure("table", fmt.Errorf("buffer of %d bytes", len(buffer)))
	}
	defer func() {
		if r := recover(); r != nil {
			err = verrors.DecodingFailure("table", fmt.Errorf("%v", r))
		}
	}()

	root := &flatbuffers.Table{Bytes: buffer, Pos: flatbuffers.GetUOffsetT(buffer)}
	table.Name = stringField(root, 0)

	fields := tables(root, 1)
	table.Fields = make([]FieldInfo, len(fields))
	for i := range fields {
		f := &fields[i]
		table.Fields[i] = FieldInfo{
			Name:        stringField(f, 0),
			DataType:    DataType(f.GetInt8Slot(slot(1), 0)),
			IsIndex:     f.GetBoolSlot(slot(2), false),
			IndexParams: stringField(f, 3),
		}
	}

	vectors := tables(root, 2)
	table.VectorsInfos = make([]VectorInfo, len(vectors))
	for i := range vectors {
		v := &vectors[i]
		table.VectorsInfos[i] = VectorInfo{
			Name:       stringField(v, 0),
			DataType:   DataType(v.GetInt8Slot(slot(1), 0)),
			IsIndex:    v.GetBoolSlot(slot(2), false),
			Dimension:  v.GetInt32Slot(slot(3), 0),
			MetricType: stringField(v, 4),
		}
	}

	table.IndexType = stringField(root, 3)
	table.IndexParams = stringField(root, 4)
	table.TypeParams = stringField(root, 5)
	return nil
}
