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

// Package catalog holds the canonical build and search configuration of
// every index type under test.
//
// Each index type registers a builder at init. A Catalog combines the
// registry with the feature table resolved at startup; asking it for an
// index type whose feature is off, an unknown type, or a metric that does
// not fit the type's vector family yields an empty ConfigMap.
package catalog

import (
	"github.com/vearch/annverify/internal/codec"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/log"
)

const (
	DefaultDim  = 8
	DefaultTopK = 4
)

type Catalog struct {
	dim      int
	topk     int
	features FeatureSet
}

func New(dim, topk int, features FeatureSet) *Catalog {
	if dim <= 0 {
		dim = DefaultDim
	}
	if topk <= 0 {
		topk = DefaultTopK
	}
	return &Catalog{dim: dim, topk: topk, features: features}
}

var defaultCatalog = New(DefaultDim, DefaultTopK, NewFeatureSet())

// Default is the catalog with the literal test defaults and no optional
// features.
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) Dim() int {
	return c.dim
}

func (c *Catalog) TopK() int {
	return c.topk
}

func (c *Catalog) Features() FeatureSet {
	return c.features
}

// Supports reports whether GetConfig would return a non-empty map.
func (c *Catalog) Supports(indexType entity.IndexType, metric entity.MetricType) bool {
	r, ok := registry[indexType]
	if !ok || !c.features.Enabled(r.requires) {
		return false
	}
	return entity.Compatible(indexType, metric)
}

func (c *Catalog) GetConfig(indexType entity.IndexType, metric entity.MetricType) *entity.ConfigMap {
	if !c.Supports(indexType, metric) {
		log.Debugf("catalog has no config for index type %s with metric %s", indexType, metric)
		return entity.NewConfigMap()
	}
	return registry[indexType].build(Env{
		Metric:   metric,
		Dim:      c.dim,
		TopK:     c.topk,
		Features: c.features,
	})
}

// IndexTypes lists the enabled index types in registration order.
func (c *Catalog) IndexTypes() []entity.IndexType {
	var out []entity.IndexType
	for _, t := range order {
		if c.features.Enabled(registry[t].requires) {
			out = append(out, t)
		}
	}
	return out
}

type Pair struct {
	IndexType entity.IndexType
	Metric    entity.MetricType
}

// Pairs enumerates every supported index type and metric combination.
func (c *Catalog) Pairs() []Pair {
	var out []Pair
	for _, t := range c.IndexTypes() {
		for _, m := range entity.MetricsFor(t.Family()) {
			out = append(out, Pair{IndexType: t, Metric: m})
		}
	}
	return out
}

// GenerateParams returns the type params and index params blobs of an index
// build. The index params carry the config followed by index_type. Both are
// empty-config blobs when the pair is unsupported.
func (c *Catalog) GenerateParams(indexType entity.IndexType, metric entity.MetricType) (entity.TypeParamsBlob, entity.ParameterBlob) {
	typeParams := codec.EncodeTypeParams(entity.MapParams{})
	return typeParams, codec.EncodeIndexParams(c.GetConfig(indexType, metric), indexType)
}

func GetConfig(indexType entity.IndexType, metric entity.MetricType) *entity.ConfigMap {
	return defaultCatalog.GetConfig(indexType, metric)
}

func GenerateParams(indexType entity.IndexType, metric entity.MetricType) (entity.TypeParamsBlob, entity.ParameterBlob) {
	return defaultCatalog.GenerateParams(indexType, metric)
}
