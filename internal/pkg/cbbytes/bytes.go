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

package cbbytes

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FloatArrayByte packs fa as little-endian float32 values.
func FloatArrayByte(fa []float32) []byte {
	code := make([]byte, len(fa)*4)
	for i, f := range fa {
		binary.LittleEndian.PutUint32(code[i*4:], math.Float32bits(f))
	}
	return code
}

func ByteToFloat32(bytes []byte) float32 {
	bits := binary.LittleEndian.Uint32(bytes)
	return math.Float32frombits(bits)
}

func ByteToFloat32Array(bytes []byte) ([]float32, error) {
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("input bytes not a multiple of 4")
	}

	num := len(bytes) / 4

	result := make([]float32, num)
	for i := 0; i < num; i++ {
		result[i] = math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4:]))
	}
	return result, nil
}

// BinaryRowBytes is the packed size of a binary vector of dimension bits.
func BinaryRowBytes(dimension int) int {
	return dimension / 8
}

func CloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
