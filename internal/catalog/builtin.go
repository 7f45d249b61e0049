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

package catalog

import "github.com/vearch/annverify/internal/entity"

func sliced(env Env) *entity.ConfigMap {
	return entity.NewConfigMap().
		Set(entity.KeySliceSize, entity.IndexFileSliceSize).
		Set(entity.KeyMetricType, string(env.Metric)).
		Set(entity.KeyDim, env.Dim).
		Set(entity.KeyTopK, env.TopK)
}

func withDevice(env Env, cfg *entity.ConfigMap) *entity.ConfigMap {
	if env.Features.Enabled(FeatureGPU) {
		cfg.Set(entity.KeyDeviceID, env.Features.DeviceID)
	}
	return cfg
}

func ivfpq(env Env) *entity.ConfigMap {
	return sliced(env).
		Set(entity.KeyNlist, 16).
		Set(entity.KeyNprobe, 4).
		Set(entity.KeyM, 4).
		Set(entity.KeyNbits, 8)
}

func hnsw(env Env) *entity.ConfigMap {
	return sliced(env).
		Set(entity.KeyHNSWM, 16).
		Set(entity.KeyEfConstruction, 200).
		Set(entity.KeyEf, 200)
}

func sptag(env Env) *entity.ConfigMap {
	return sliced(env).Set(entity.KeyTopK, 10)
}

func init() {
	Register(entity.IndexFlat, FeatureNone, sliced)
	Register(entity.IndexIVFPQ, FeatureNone, ivfpq)
	Register(entity.IndexIVFFlat, FeatureNone, func(env Env) *entity.ConfigMap {
		return withDevice(env, sliced(env).
			Set(entity.KeyNlist, 16).
			Set(entity.KeyNprobe, 4))
	})
	Register(entity.IndexIVFSQ8, FeatureNone, func(env Env) *entity.ConfigMap {
		return withDevice(env, sliced(env).
			Set(entity.KeyNlist, 16).
			Set(entity.KeyNprobe, 4).
			Set(entity.KeyNbits, 8))
	})
	Register(entity.IndexBinIVFFlat, FeatureNone, ivfpq)
	Register(entity.IndexBinFlat, FeatureNone, sliced)
	Register(entity.IndexNSG, FeatureNSG, func(env Env) *entity.ConfigMap {
		return entity.NewConfigMap().
			Set(entity.KeyMetricType, string(env.Metric)).
			Set(entity.KeyDim, env.Dim).
			Set(entity.KeyTopK, env.TopK).
			Set(entity.KeyNlist, 163).
			Set(entity.KeyNprobe, 8).
			Set(entity.KeyKnng, 20).
			Set(entity.KeySearchLength, 40).
			Set(entity.KeyOutDegree, 30).
			Set(entity.KeyCandidatePool, 100)
	})
	Register(entity.IndexSPTAGKDTRNT, FeatureSPTAG, sptag)
	Register(entity.IndexSPTAGBKTRNT, FeatureSPTAG, sptag)
	Register(entity.IndexHNSW, FeatureNone, hnsw)
	Register(entity.IndexAnnoy, FeatureNone, func(env Env) *entity.ConfigMap {
		return sliced(env).
			Set(entity.KeyNTrees, 4).
			Set(entity.KeySearchK, 100)
	})
	Register(entity.IndexRHNSWFlat, FeatureNone, hnsw)
	Register(entity.IndexRHNSWPQ, FeatureNone, func(env Env) *entity.ConfigMap {
		return hnsw(env).Set(entity.KeyPQM, 8)
	})
	Register(entity.IndexRHNSWSQ, FeatureNone, hnsw)
	Register(entity.IndexNGTPANNG, FeatureNGT, func(env Env) *entity.ConfigMap {
		return sliced(env).
			Set(entity.KeyEdgeSize, 10).
			Set(entity.KeyEpsilon, 0.1).
			Set(entity.KeyMaxSearchEdges, 50).
			Set(entity.KeyForcedlyPrunedEdgeSize, 60).
			Set(entity.KeySelectivelyPrunedEdgeSize, 30)
	})
	Register(entity.IndexNGTONNG, FeatureNGT, func(env Env) *entity.ConfigMap {
		return sliced(env).
			Set(entity.KeyEdgeSize, 20).
			Set(entity.KeyEpsilon, 0.1).
			Set(entity.KeyMaxSearchEdges, 50).
			Set(entity.KeyOutgoingEdgeSize, 5).
			Set(entity.KeyIncomingEdgeSize, 40)
	})
}
