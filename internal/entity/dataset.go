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

package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vearch/annverify/internal/pkg/cbbytes"
)

// VectorType is the element kind of a dataset row.
type VectorType int8

const (
	FloatVector VectorType = iota
	BinaryVector
)

func (t VectorType) String() string {
	if t == BinaryVector {
		return "binary_vector"
	}
	return "float_vector"
}

// Dataset is a row-major block of vectors tagged with the metric and
// dimension needed to reinterpret its raw buffer. Float rows hold Dim
// little-endian float32 values, binary rows pack Dim bits.
type Dataset struct {
	ID     string
	Field  string
	Type   VectorType
	Metric MetricType
	Dim    int
	Rows   int
	Data   []byte
}

func RowBytes(t VectorType, dim int) int {
	if t == BinaryVector {
		return cbbytes.BinaryRowBytes(dim)
	}
	return dim * 4
}

func NewDataset(field string, t VectorType, metric MetricType, dim, rows int, data []byte) (*Dataset, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dataset %s: dimension must be positive, got %d", field, dim)
	}
	if t == BinaryVector && dim%8 != 0 {
		return nil, fmt.Errorf("dataset %s: binary dimension %d is not a multiple of 8", field, dim)
	}
	if want := rows * RowBytes(t, dim); len(data) != want {
		return nil, fmt.Errorf("dataset %s: buffer has %d bytes, %d rows of dim %d need %d", field, len(data), rows, dim, want)
	}
	return &Dataset{
		ID:     uuid.NewString(),
		Field:  field,
		Type:   t,
		Metric: metric,
		Dim:    dim,
		Rows:   rows,
		Data:   data,
	}, nil
}

func (d *Dataset) RowBytes() int {
	return RowBytes(d.Type, d.Dim)
}

// Row returns the raw bytes of row i, or nil when i is not a row.
func (d *Dataset) Row(i int64) []byte {
	if d == nil || i < 0 || i >= int64(d.Rows) {
		return nil
	}
	size := int64(d.RowBytes())
	return d.Data[i*size : (i+1)*size]
}

// FloatRow decodes row i of a float dataset, nil otherwise.
func (d *Dataset) FloatRow(i int64) []float32 {
	if d == nil || d.Type != FloatVector {
		return nil
	}
	raw := d.Row(i)
	if raw == nil {
		return nil
	}
	row, _ := cbbytes.ByteToFloat32Array(raw)
	return row
}

func (d *Dataset) String() string {
	return fmt.Sprintf("%s[%s %s dim=%d rows=%d]", d.Field, d.Type, d.Metric, d.Dim, d.Rows)
}
