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

// Package distance is the brute-force oracle results are checked against.
//
// Every function returns math.MaxFloat32 instead of failing when a distance
// cannot be computed: a missing operand or a metric the oracle does not know.
// Callers compare against Incomparable to skip or flag such cells.
package distance

import (
	"math"
	"math/bits"

	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/cbbytes"
)

// Incomparable is the sentinel returned when no distance exists.
const Incomparable = float32(math.MaxFloat32)

func IsIncomparable(d float32) bool {
	return d == Incomparable
}

// L2 is the squared euclidean distance over the shorter of the two vectors.
func L2(a, b []float32) float32 {
	if a == nil || b == nil {
		return Incomparable
	}
	n := min(len(a), len(b))
	var dis float32
	for i := 0; i < n; i++ {
		d := b[i] - a[i]
		dis += d * d
	}
	return dis
}

func HammingWeight(n byte) int {
	return bits.OnesCount8(n)
}

// Jaccard compares dim bits of two packed binary vectors. Intersection and
// union are summed over all bytes and divided once. Two all-zero vectors are
// identical, so their distance is 0.
func Jaccard(a, b []byte, dim int) float32 {
	if a == nil || b == nil {
		return Incomparable
	}
	n := min(cbbytes.BinaryRowBytes(dim), len(a), len(b))
	var intersection, union int
	for i := 0; i < n; i++ {
		intersection += HammingWeight(a[i] & b[i])
		union += HammingWeight(a[i] | b[i])
	}
	if union == 0 {
		return 0
	}
	return 1 - float32(intersection)/float32(union)
}

// Distance reinterprets two raw dataset rows according to metric: float
// metrics read dim little-endian float32 values, binary metrics read dim
// packed bits.
func Distance(a, b []byte, dim int, metric entity.MetricType) float32 {
	if a == nil || b == nil {
		return Incomparable
	}
	switch metric {
	case entity.MetricL2:
		need := dim * 4
		if len(a) < need || len(b) < need {
			return Incomparable
		}
		fa, _ := cbbytes.ByteToFloat32Array(a[:need])
		fb, _ := cbbytes.ByteToFloat32Array(b[:need])
		return L2(fa, fb)
	case entity.MetricJaccard:
		return Jaccard(a, b, dim)
	default:
		return Incomparable
	}
}

// Rows looks both rows up and computes their distance; an id outside either
// dataset yields Incomparable.
func Rows(query *entity.Dataset, qi int64, base *entity.Dataset, bi int64, metric entity.MetricType) float32 {
	if query == nil || base == nil {
		return Incomparable
	}
	return Distance(query.Row(qi), base.Row(bi), base.Dim, metric)
}
