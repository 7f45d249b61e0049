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

package dataset

import (
	"math/rand/v2"
	"slices"
	"strconv"

	"golang.org/x/exp/constraints"
)

// scalarModulus bounds generated scalar values so that every kind, int8
// included, can hold them.
const scalarModulus = 126

// GenArr returns n sorted values drawn from [0, 126).
func GenArr[T constraints.Integer | constraints.Float](n int, rng *rand.Rand) []T {
	arr := make([]T, n)
	for i := range arr {
		arr[i] = T(rng.IntN(scalarModulus))
	}
	slices.Sort(arr)
	return arr
}

// GenBoolArr returns n sorted flags; a draw of zero is false.
func GenBoolArr(n int, rng *rand.Rand) []bool {
	arr := make([]bool, n)
	falses := 0
	for range arr {
		if rng.IntN(scalarModulus) == 0 {
			falses++
		}
	}
	for i := falses; i < n; i++ {
		arr[i] = true
	}
	return arr
}

// GenStrArr returns n decimal-digit strings sorted lexicographically.
func GenStrArr(n int, rng *rand.Rand) []string {
	arr := make([]string, n)
	for i := range arr {
		arr[i] = strconv.FormatInt(int64(rng.Int32()), 10)
	}
	slices.Sort(arr)
	return arr
}
