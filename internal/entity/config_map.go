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
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/valyala/fastjson"
	"github.com/vearch/annverify/internal/pkg/vjson"
)

// ConfigMap is an insertion-ordered set of build/search parameters for one
// index type and metric. Values are int64, float64 or string.
type ConfigMap struct {
	keys   []string
	values map[string]interface{}
}

func NewConfigMap() *ConfigMap {
	return &ConfigMap{values: make(map[string]interface{})}
}

// Set stores value under key. Overwriting keeps the original position.
// Integer and float kinds are widened to int64 and float64.
func (m *ConfigMap) Set(key string, value interface{}) *ConfigMap {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = normalizeValue(value)
	return m
}

func normalizeValue(v interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

func (m *ConfigMap) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

func (m *ConfigMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *ConfigMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// IsEmpty is the unsupported-configuration signal of the catalog.
func (m *ConfigMap) IsEmpty() bool {
	return m.Len() == 0
}

func (m *ConfigMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range visits entries in insertion order until fn returns false.
func (m *ConfigMap) Range(fn func(key string, value interface{}) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

func (m *ConfigMap) Clone() *ConfigMap {
	out := NewConfigMap()
	m.Range(func(k string, v interface{}) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Equal compares keys, order and values.
func (m *ConfigMap) Equal(o *ConfigMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, k := range m.keys {
		if o.keys[i] != k || !reflect.DeepEqual(m.values[k], o.values[k]) {
			return false
		}
	}
	return true
}

func (m *ConfigMap) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	m.Range(func(k string, v interface{}) bool {
		if sb.Len() > 1 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, v)
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

func (m *ConfigMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := sonic.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := vjson.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("config key %s: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the key order of the document. Integral numbers
// decode as int64, other numbers as float64.
func (m *ConfigMap) UnmarshalJSON(bs []byte) error {
	var p fastjson.Parser
	v, err := p.ParseBytes(bs)
	if err != nil {
		return fmt.Errorf("config map json parse err: %v", err)
	}
	obj, err := v.Object()
	if err != nil {
		return fmt.Errorf("config map must be an object, got %s", v.Type().String())
	}

	out := NewConfigMap()
	var visitErr error
	obj.Visit(func(key []byte, val *fastjson.Value) {
		if visitErr != nil {
			return
		}
		name := string(key)
		switch val.Type() {
		case fastjson.TypeNumber:
			if i, err := val.Int64(); err == nil {
				out.Set(name, i)
				return
			}
			f, err := val.Float64()
			if err != nil {
				visitErr = fmt.Errorf("config key %s: %v", name, err)
				return
			}
			out.Set(name, f)
		case fastjson.TypeString:
			s, _ := val.StringBytes()
			out.Set(name, string(s))
		default:
			visitErr = fmt.Errorf("config key %s: unsupported value type %s", name, val.Type().String())
		}
	})
	if visitErr != nil {
		return visitErr
	}
	*m = *out
	return nil
}
