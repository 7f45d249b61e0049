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

// Package codec serializes parameter sets into the protobuf text format
// consumed by index builds, and scalar column data into protobuf binary
// buffers.
//
// Encoding never returns an error: a parameter set that cannot be
// represented is a programming error in the caller and panics.
package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"github.com/vearch/annverify/internal/pkg/log"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

var textOptions = prototext.MarshalOptions{Multiline: true}

// FormatValue renders a config value the way index builds expect it:
// strings verbatim, integers in decimal, floats always with a fraction or
// exponent so they read back as floats.
func FormatValue(v interface{}) (string, error) {
	switch x := v.(type) {
	case float64:
		return formatFloat(x), nil
	case float32:
		return formatFloat(float64(x)), nil
	}
	return cast.ToStringE(v)
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func newParams(md protoreflect.MessageDescriptor, kvs []entity.KeyValue) *dynamicpb.Message {
	msg := dynamicpb.NewMessage(md)
	params := md.Fields().ByName("params")
	keyField := kvDesc.Fields().ByName("key")
	valueField := kvDesc.Fields().ByName("value")
	list := msg.Mutable(params).List()
	for _, kv := range kvs {
		elem := list.NewElement()
		elem.Message().Set(keyField, protoreflect.ValueOfString(kv.Key))
		elem.Message().Set(valueField, protoreflect.ValueOfString(kv.Value))
		list.Append(elem)
	}
	return msg
}

func mustText(what string, md protoreflect.MessageDescriptor, kvs []entity.KeyValue) string {
	bs, err := textOptions.Marshal(newParams(md, kvs))
	if err != nil {
		panic(verrors.EncodingFailure(what, err))
	}
	return string(bs)
}

func configPairs(cfg *entity.ConfigMap) []entity.KeyValue {
	kvs := make([]entity.KeyValue, 0, cfg.Len()+1)
	cfg.Range(func(k string, v interface{}) bool {
		s, err := FormatValue(v)
		if err != nil {
			log.Errorf("config key %s holds %T which has no text form", k, v)
			panic(verrors.EncodingFailure("config key "+k, err))
		}
		kvs = append(kvs, entity.KeyValue{Key: k, Value: s})
		return true
	})
	return kvs
}

func mapPairs(m entity.MapParams) []entity.KeyValue {
	kvs := make([]entity.KeyValue, 0, len(m))
	for _, k := range m.SortedKeys() {
		kvs = append(kvs, entity.KeyValue{Key: k, Value: m[k]})
	}
	return kvs
}

// EncodeConfig serializes cfg in insertion order.
func EncodeConfig(cfg *entity.ConfigMap) entity.ParameterBlob {
	return entity.ParameterBlob(mustText("index params", indexDesc, configPairs(cfg)))
}

// EncodeIndexParams serializes cfg followed by an index_type entry.
func EncodeIndexParams(cfg *entity.ConfigMap, indexType entity.IndexType) entity.ParameterBlob {
	kvs := append(configPairs(cfg), entity.KeyValue{Key: entity.KeyIndexType, Value: string(indexType)})
	return entity.ParameterBlob(mustText("index params", indexDesc, kvs))
}

// EncodeIndexMapParams serializes scalar index params in key order.
func EncodeIndexMapParams(m entity.MapParams) entity.ParameterBlob {
	return entity.ParameterBlob(mustText("index params", indexDesc, mapPairs(m)))
}

// EncodeTypeParams serializes schema type params in key order.
func EncodeTypeParams(m entity.MapParams) entity.TypeParamsBlob {
	return entity.TypeParamsBlob(mustText("type params", typeDesc, mapPairs(m)))
}

func decode(what string, md protoreflect.MessageDescriptor, text string) ([]entity.KeyValue, error) {
	msg := dynamicpb.NewMessage(md)
	if err := prototext.Unmarshal([]byte(text), msg); err != nil {
		return nil, verrors.DecodingFailure(what, err)
	}
	keyField := kvDesc.Fields().ByName("key")
	valueField := kvDesc.Fields().ByName("value")
	list := msg.Get(md.Fields().ByName("params")).List()
	kvs := make([]entity.KeyValue, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		kv := list.Get(i).Message()
		kvs = append(kvs, entity.KeyValue{
			Key:   kv.Get(keyField).String(),
			Value: kv.Get(valueField).String(),
		})
	}
	return kvs, nil
}

func DecodeParams(blob entity.ParameterBlob) ([]entity.KeyValue, error) {
	return decode("index params", indexDesc, string(blob))
}

func DecodeTypeParams(blob entity.TypeParamsBlob) ([]entity.KeyValue, error) {
	return decode("type params", typeDesc, string(blob))
}

// DecodeConfig reads a blob back into a ConfigMap, parsing integers and
// floats into int64 and float64. The text format carries no value types,
// so a string value that parses as a number comes back as that number.
// Use DecodeParams when the exact strings matter.
func DecodeConfig(blob entity.ParameterBlob) (*entity.ConfigMap, error) {
	kvs, err := DecodeParams(blob)
	if err != nil {
		return nil, err
	}
	cfg := entity.NewConfigMap()
	for _, kv := range kvs {
		cfg.Set(kv.Key, ParseValue(kv.Value))
	}
	return cfg, nil
}

func ParseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
