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

import "strings"

// IndexType identifies an ANN algorithm family.
type IndexType string

// MetricType identifies a distance metric.
type MetricType string

const (
	IndexFlat        IndexType = "FLAT"
	IndexIVFPQ       IndexType = "IVF_PQ"
	IndexIVFFlat     IndexType = "IVF_FLAT"
	IndexIVFSQ8      IndexType = "IVF_SQ8"
	IndexBinIVFFlat  IndexType = "BIN_IVF_FLAT"
	IndexBinFlat     IndexType = "BIN_FLAT"
	IndexNSG         IndexType = "NSG"
	IndexSPTAGKDTRNT IndexType = "SPTAG_KDT_RNT"
	IndexSPTAGBKTRNT IndexType = "SPTAG_BKT_RNT"
	IndexHNSW        IndexType = "HNSW"
	IndexAnnoy       IndexType = "ANNOY"
	IndexRHNSWFlat   IndexType = "RHNSW_FLAT"
	IndexRHNSWPQ     IndexType = "RHNSW_PQ"
	IndexRHNSWSQ     IndexType = "RHNSW_SQ"
	IndexNGTPANNG    IndexType = "NGT_PANNG"
	IndexNGTONNG     IndexType = "NGT_ONNG"
)

const (
	MetricL2       MetricType = "L2"
	MetricIP       MetricType = "IP"
	MetricJaccard  MetricType = "JACCARD"
	MetricHamming  MetricType = "HAMMING"
	MetricTanimoto MetricType = "TANIMOTO"
)

// VectorFamily separates dense float indexes from binary ones.
type VectorFamily int8

const (
	FamilyFloat VectorFamily = iota
	FamilyBinary
)

func (f VectorFamily) String() string {
	if f == FamilyBinary {
		return "binary"
	}
	return "float"
}

var indexTypes = []IndexType{
	IndexFlat, IndexIVFPQ, IndexIVFFlat, IndexIVFSQ8, IndexBinIVFFlat, IndexBinFlat,
	IndexNSG, IndexSPTAGKDTRNT, IndexSPTAGBKTRNT, IndexHNSW, IndexAnnoy,
	IndexRHNSWFlat, IndexRHNSWPQ, IndexRHNSWSQ, IndexNGTPANNG, IndexNGTONNG,
}

var metricFamilies = map[MetricType]VectorFamily{
	MetricL2:       FamilyFloat,
	MetricIP:       FamilyFloat,
	MetricJaccard:  FamilyBinary,
	MetricHamming:  FamilyBinary,
	MetricTanimoto: FamilyBinary,
}

// AllIndexTypes returns every index type the harness knows about, including
// ones that are gated behind optional features.
func AllIndexTypes() []IndexType {
	out := make([]IndexType, len(indexTypes))
	copy(out, indexTypes)
	return out
}

func (t IndexType) Known() bool {
	for _, it := range indexTypes {
		if it == t {
			return true
		}
	}
	return false
}

func (t IndexType) Family() VectorFamily {
	if strings.HasPrefix(string(t), "BIN_") {
		return FamilyBinary
	}
	return FamilyFloat
}

// Exact reports whether the index answers with the true nearest neighbors.
func (t IndexType) Exact() bool {
	return t == IndexFlat || t == IndexBinFlat
}

// HNSWLike covers the proximity graph variants sharing the M/ef knobs.
func (t IndexType) HNSWLike() bool {
	switch t {
	case IndexHNSW, IndexRHNSWFlat, IndexRHNSWPQ, IndexRHNSWSQ:
		return true
	}
	return false
}

func (m MetricType) Family() (VectorFamily, bool) {
	f, ok := metricFamilies[m]
	return f, ok
}

func (m MetricType) Known() bool {
	_, ok := metricFamilies[m]
	return ok
}

// MetricsFor lists the metrics an index family accepts, in a fixed order.
func MetricsFor(f VectorFamily) []MetricType {
	if f == FamilyBinary {
		return []MetricType{MetricJaccard, MetricHamming, MetricTanimoto}
	}
	return []MetricType{MetricL2, MetricIP}
}

// Compatible reports whether metric can be used with index type t.
func Compatible(t IndexType, m MetricType) bool {
	f, ok := m.Family()
	return ok && t.Known() && f == t.Family()
}
