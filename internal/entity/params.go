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

import "sort"

// MapParams is a plain string parameter set, used for scalar index type and
// index params. Encoders walk it in ascending key order.
type MapParams map[string]string

func (m MapParams) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ScalarTestParams pairs the type params and index params of one scalar
// index variant.
type ScalarTestParams struct {
	TypeParams  MapParams
	IndexParams MapParams
}

// ParameterBlob is the text serialization of index params handed to an
// index build.
type ParameterBlob string

// TypeParamsBlob is the text serialization of schema level type params.
type TypeParamsBlob string

type KeyValue struct {
	Key   string
	Value string
}

// OwnedBuffer is a byte buffer with a single owner. Take moves the bytes
// out and leaves the buffer empty.
type OwnedBuffer struct {
	data []byte
}

func NewOwnedBuffer(data []byte) OwnedBuffer {
	return OwnedBuffer{data: data}
}

func (b *OwnedBuffer) Len() int {
	return len(b.data)
}

// Bytes borrows the content; the buffer keeps ownership.
func (b *OwnedBuffer) Bytes() []byte {
	return b.data
}

func (b *OwnedBuffer) Take() []byte {
	data := b.data
	b.data = nil
	return data
}
