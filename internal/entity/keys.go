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

// parameter names shared by the catalog, encoders and engines
const (
	KeyIndexType  = "index_type"
	KeySliceSize  = "SLICE_SIZE"
	KeyMetricType = "metric_type"
	KeyDim        = "dim"
	KeyTopK       = "topk"
	KeyDeviceID   = "gpu_id"

	KeyNlist  = "nlist"
	KeyNprobe = "nprobe"
	KeyM      = "m"
	KeyNbits  = "nbits"

	KeyKnng          = "knng"
	KeySearchLength  = "search_length"
	KeyOutDegree     = "out_degree"
	KeyCandidatePool = "candidate_pool_size"

	KeyHNSWM          = "M"
	KeyEfConstruction = "efConstruction"
	KeyEf             = "ef"
	KeyPQM            = "PQM"

	KeyNTrees  = "n_trees"
	KeySearchK = "search_k"

	KeyEdgeSize                  = "edge_size"
	KeyEpsilon                   = "epsilon"
	KeyMaxSearchEdges            = "max_search_edges"
	KeyForcedlyPrunedEdgeSize    = "forcedly_pruned_edge_size"
	KeySelectivelyPrunedEdgeSize = "selectively_pruned_edge_size"
	KeyOutgoingEdgeSize          = "outgoing_edge_size"
	KeyIncomingEdgeSize          = "incoming_edge_size"
)

// IndexFileSliceSize is the slice size, in MB, engines use when splitting
// serialized index files.
const IndexFileSliceSize = 4
