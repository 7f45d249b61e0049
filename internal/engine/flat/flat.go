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

// Package flat is an exact brute-force Index. It scores every base row with
// the distance oracle, so its results are the reference approximate
// engines are compared to.
package flat

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
	"github.com/vearch/annverify/internal/codec"
	"github.com/vearch/annverify/internal/distance"
	"github.com/vearch/annverify/internal/engine"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"github.com/vearch/annverify/internal/pkg/log"
)

var (
	_ engine.Index        = (*Index)(nil)
	_ engine.TableCreator = (*Index)(nil)
)

type Index struct {
	table  *engine.Table
	base   *entity.Dataset
	metric entity.MetricType
	dim    int
}

func New() *Index {
	return &Index{}
}

// Factory opens a flat index whatever the requested type.
func Factory(indexType entity.IndexType) (engine.Index, error) {
	log.Debugf("flat reference index stands in for %s", indexType)
	return New(), nil
}

func (idx *Index) CreateTable(ctx context.Context, buffer []byte) error {
	table := &engine.Table{}
	if err := table.DeSerialize(buffer); err != nil {
		return err
	}
	if len(table.VectorsInfos) != 1 {
		return verrors.Newf(verrors.ErrEngine, "table %s has %d vector fields, want 1", table.Name, len(table.VectorsInfos))
	}
	idx.table = table
	return nil
}

// Build reads metric_type and dim from params. A dim that disagrees with
// the base dataset, or with the table when one was created, is an error.
func (idx *Index) Build(ctx context.Context, base *entity.Dataset, params entity.ParameterBlob) error {
	if err := ctx.Err(); err != nil {
		return verrors.EngineError("build", err)
	}
	if base == nil {
		return verrors.MissingParam("base dataset")
	}
	cfg, err := codec.DecodeConfig(params)
	if err != nil {
		return err
	}
	metric, ok := cfg.Get(entity.KeyMetricType)
	if !ok {
		return verrors.MissingParam(entity.KeyMetricType)
	}
	dim := base.Dim
	if v, ok := cfg.Get(entity.KeyDim); ok {
		if dim, err = cast.ToIntE(v); err != nil {
			return verrors.Wrap(verrors.ErrInvalidParam, entity.KeyDim, err)
		}
	}
	if dim != base.Dim {
		return verrors.Newf(verrors.ErrEngine, "params dim %d, dataset %s", dim, base)
	}
	if idx.table != nil {
		vi := idx.table.VectorsInfos[0]
		if int(vi.Dimension) != dim || vi.Name != base.Field {
			return verrors.Newf(verrors.ErrEngine, "table field %s dim %d, dataset %s", vi.Name, vi.Dimension, base)
		}
	}
	idx.base = base
	idx.metric = entity.MetricType(cast.ToString(metric))
	idx.dim = dim
	log.Debugf("flat index built over %s with %s", base, idx.metric)
	return nil
}

func (idx *Index) Search(ctx context.Context, query *entity.Dataset, k int) (*entity.QueryResult, error) {
	if idx.base == nil {
		return nil, verrors.EngineError("search", fmt.Errorf("index not built"))
	}
	if query == nil {
		return nil, verrors.MissingParam("query dataset")
	}
	if k <= 0 {
		return nil, verrors.Newf(verrors.ErrInvalidParam, "topk must be positive, got %d", k)
	}
	if query.Dim != idx.dim || query.Type != idx.base.Type {
		return nil, verrors.Newf(verrors.ErrEngine, "query %s does not match base %s", query, idx.base)
	}

	res := entity.NewQueryResult(query.Rows, k)
	dists := make([]float32, idx.base.Rows)
	for qi := 0; qi < query.Rows; qi++ {
		if err := ctx.Err(); err != nil {
			return nil, verrors.EngineError("search", err)
		}
		for bi := range dists {
			dists[bi] = distance.Rows(query, int64(qi), idx.base, int64(bi), idx.metric)
		}
		ids, ds := distance.TopK(dists, k)
		for j := range ids {
			res.Set(qi, j, ids[j], ds[j])
		}
	}
	return res, nil
}
