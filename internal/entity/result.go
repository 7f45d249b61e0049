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
	"bufio"
	"fmt"
	"io"
	"math"
)

// QueryResult holds topk candidates for each of nq queries. Cell (i, j) is
// stored at i*TopK+j.
type QueryResult struct {
	NQ        int       `json:"nq" msgpack:"nq"`
	TopK      int       `json:"topk" msgpack:"topk"`
	IDs       []int64   `json:"ids" msgpack:"ids"`
	Distances []float32 `json:"distances" msgpack:"distances"`
}

// NewQueryResult returns a result whose cells are all empty (id -1 at the
// maximum distance).
func NewQueryResult(nq, topk int) *QueryResult {
	r := &QueryResult{
		NQ:        nq,
		TopK:      topk,
		IDs:       make([]int64, nq*topk),
		Distances: make([]float32, nq*topk),
	}
	for i := range r.IDs {
		r.IDs[i] = -1
		r.Distances[i] = math.MaxFloat32
	}
	return r
}

func (r *QueryResult) Offset(i, j int) int {
	return i*r.TopK + j
}

func (r *QueryResult) At(i, j int) (int64, float32) {
	o := r.Offset(i, j)
	return r.IDs[o], r.Distances[o]
}

func (r *QueryResult) Set(i, j int, id int64, dis float32) {
	o := r.Offset(i, j)
	r.IDs[o] = id
	r.Distances[o] = dis
}

// Check verifies the flat arrays match the declared shape.
func (r *QueryResult) Check() error {
	if r == nil {
		return fmt.Errorf("query result is nil")
	}
	if r.NQ < 0 || r.TopK < 0 {
		return fmt.Errorf("query result has negative shape nq=%d topk=%d", r.NQ, r.TopK)
	}
	n := r.NQ * r.TopK
	if len(r.IDs) != n || len(r.Distances) != n {
		return fmt.Errorf("query result shape nq=%d topk=%d needs %d cells, got %d ids and %d distances",
			r.NQ, r.TopK, n, len(r.IDs), len(r.Distances))
	}
	return nil
}

// Fprint writes the id grid followed by the distance grid, one query per
// line.
func (r *QueryResult) Fprint(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("id\n")
	for i := 0; i < r.NQ; i++ {
		for j := 0; j < r.TopK; j++ {
			fmt.Fprintf(bw, "%d ", r.IDs[r.Offset(i, j)])
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("\ndist\n")
	for i := 0; i < r.NQ; i++ {
		for j := 0; j < r.TopK; j++ {
			fmt.Fprintf(bw, "%g ", r.Distances[r.Offset(i, j)])
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
