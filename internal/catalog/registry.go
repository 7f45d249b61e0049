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

import (
	"fmt"

	"github.com/vearch/annverify/internal/entity"
)

// Env is what a builder sees when producing a config.
type Env struct {
	Metric   entity.MetricType
	Dim      int
	TopK     int
	Features FeatureSet
}

// Builder produces the config of one index type.
type Builder func(env Env) *entity.ConfigMap

type registration struct {
	indexType entity.IndexType
	requires  Feature
	build     Builder
}

var (
	registry = make(map[entity.IndexType]registration)
	order    []entity.IndexType
)

// Register adds an index type to the catalog. It is called from init
// functions only; registering a type twice panics.
func Register(indexType entity.IndexType, requires Feature, build Builder) {
	if _, ok := registry[indexType]; ok {
		panic(fmt.Sprintf("catalog: index type %s registered twice", indexType))
	}
	registry[indexType] = registration{indexType: indexType, requires: requires, build: build}
	order = append(order, indexType)
}

// Requires reports the feature an index type is gated on.
func Requires(indexType entity.IndexType) (Feature, bool) {
	r, ok := registry[indexType]
	return r.requires, ok
}
