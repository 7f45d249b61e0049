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
	"fmt"

	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// MessageBuffer serializes msg into a buffer the caller owns.
func MessageBuffer(msg proto.Message) (entity.OwnedBuffer, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return entity.OwnedBuffer{}, verrors.EncodingFailure("message buffer", err)
	}
	return entity.NewOwnedBuffer(data), nil
}

// ScalarData is the decoded content of a ScalarField buffer. Exactly one
// slice is set.
type ScalarData struct {
	Bools   []bool
	Longs   []int64
	Doubles []float64
	Strings []string
}

func (d *ScalarData) Len() int {
	return len(d.Bools) + len(d.Longs) + len(d.Doubles) + len(d.Strings)
}

func appendAll[T any](list protoreflect.List, values []T, of func(T) protoreflect.Value) {
	for _, v := range values {
		list.Append(of(v))
	}
}

func longOf[T ~int8 | ~int16 | ~int32 | ~int64](v T) protoreflect.Value {
	return protoreflect.ValueOfInt64(int64(v))
}

// ScalarFieldMessage wraps a column of scalar values into a ScalarField
// message. Integers are widened to int64 and floats to double.
func ScalarFieldMessage(values interface{}) (proto.Message, error) {
	msg := dynamicpb.NewMessage(scalarDesc)
	fields := scalarDesc.Fields()
	switch vs := values.(type) {
	case []bool:
		appendAll(msg.Mutable(fields.ByName("bool_data")).List(), vs, protoreflect.ValueOfBool)
	case []int8:
		appendAll(msg.Mutable(fields.ByName("long_data")).List(), vs, longOf[int8])
	case []int16:
		appendAll(msg.Mutable(fields.ByName("long_data")).List(), vs, longOf[int16])
	case []int32:
		appendAll(msg.Mutable(fields.ByName("long_data")).List(), vs, longOf[int32])
	case []int64:
		appendAll(msg.Mutable(fields.ByName("long_data")).List(), vs, longOf[int64])
	case []float32:
		appendAll(msg.Mutable(fields.ByName("double_data")).List(), vs, func(f float32) protoreflect.Value {
			return protoreflect.ValueOfFloat64(float64(f))
		})
	case []float64:
		appendAll(msg.Mutable(fields.ByName("double_data")).List(), vs, protoreflect.ValueOfFloat64)
	case []string:
		appendAll(msg.Mutable(fields.ByName("string_data")).List(), vs, protoreflect.ValueOfString)
	default:
		return nil, verrors.Newf(verrors.ErrInvalidParam, "scalar field cannot hold %T", values)
	}
	return msg, nil
}

// ScalarBuffer is ScalarFieldMessage followed by MessageBuffer.
func ScalarBuffer(values interface{}) (entity.OwnedBuffer, error) {
	msg, err := ScalarFieldMessage(values)
	if err != nil {
		return entity.OwnedBuffer{}, err
	}
	return MessageBuffer(msg)
}

func DecodeScalarBuffer(data []byte) (*ScalarData, error) {
	msg := dynamicpb.NewMessage(scalarDesc)
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, verrors.DecodingFailure("scalar field", err)
	}
	fields := scalarDesc.Fields()
	out := &ScalarData{}
	var set int
	if l := msg.Get(fields.ByName("bool_data")).List(); l.Len() > 0 {
		set++
		for i := 0; i < l.Len(); i++ {
			out.Bools = append(out.Bools, l.Get(i).Bool())
		}
	}
	if l := msg.Get(fields.ByName("long_data")).List(); l.Len() > 0 {
		set++
		for i := 0; i < l.Len(); i++ {
			out.Longs = append(out.Longs, l.Get(i).Int())
		}
	}
	if l := msg.Get(fields.ByName("double_data")).List(); l.Len() > 0 {
		set++
		for i := 0; i < l.Len(); i++ {
			out.Doubles = append(out.Doubles, l.Get(i).Float())
		}
	}
	if l := msg.Get(fields.ByName("string_data")).List(); l.Len() > 0 {
		set++
		for i := 0; i < l.Len(); i++ {
			out.Strings = append(out.Strings, l.Get(i).String())
		}
	}
	if set > 1 {
		return nil, verrors.DecodingFailure("scalar field", fmt.Errorf("%d data kinds set", set))
	}
	return out, nil
}
