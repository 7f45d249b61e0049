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

package distance

import "sort"

// TopK selects the k smallest distances in ascending order, lower ids first
// on ties. Missing ranks are padded with id -1 and Incomparable.
func TopK(dists []float32, k int) ([]int64, []float32) {
	order := make([]int, len(dists))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return dists[order[x]] < dists[order[y]]
	})

	ids := make([]int64, k)
	out := make([]float32, k)
	for j := 0; j < k; j++ {
		if j < len(order) {
			ids[j] = int64(order[j])
			out[j] = dists[order[j]]
		} else {
			ids[j] = -1
			out[j] = Incomparable
		}
	}
	return ids, out
}
