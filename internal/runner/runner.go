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

// Package runner drives one verification case end to end: catalog config,
// param encoding, data generation, index build and search, validation.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vearch/annverify/internal/catalog"
	"github.com/vearch/annverify/internal/codec"
	"github.com/vearch/annverify/internal/dataset"
	"github.com/vearch/annverify/internal/engine"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"github.com/vearch/annverify/internal/pkg/errutil"
	"github.com/vearch/annverify/internal/pkg/log"
	"github.com/vearch/annverify/internal/validator"
)

const (
	DefaultNB = 1000
	DefaultNQ = 10

	DatasetTTL = 10 * time.Minute
)

// Case names one index type and metric to verify. Zero sizes take the
// runner defaults; a zero Dim or TopK takes the catalog's.
type Case struct {
	Name      string            `json:"name"`
	IndexType entity.IndexType  `json:"index_type"`
	Metric    entity.MetricType `json:"metric"`
	Binary    bool              `json:"binary"`
	NB        int               `json:"nb"`
	NQ        int               `json:"nq"`
	Dim       int               `json:"dim"`
	TopK      int               `json:"topk"`
	Seed      uint64            `json:"seed"`
}

func (c Case) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s/%s", c.IndexType, c.Metric)
}

// Outcome is what one run produced.
type Outcome struct {
	RunID  string               `json:"run_id"`
	Case   Case                 `json:"case"`
	Params entity.ParameterBlob `json:"params"`
	Result *entity.QueryResult  `json:"result"`
	Report *validator.Report    `json:"report"`
}

type Runner struct {
	catalog   *catalog.Catalog
	validator *validator.Validator
	factory   engine.Factory
	datasets  *cache.Cache
}

func New(cat *catalog.Catalog, v *validator.Validator, factory engine.Factory) *Runner {
	if cat == nil {
		cat = catalog.Default()
	}
	if v == nil {
		v = validator.New()
	}
	return &Runner{
		catalog:   cat,
		validator: v,
		factory:   factory,
		datasets:  cache.New(DatasetTTL, 2*DatasetTTL),
	}
}

// Cases lists one case per enabled index type and metric pair.
func Cases(cat *catalog.Catalog, nb, nq int, seed uint64) []Case {
	var cases []Case
	for _, p := range cat.Pairs() {
		cases = append(cases, Case{
			IndexType: p.IndexType,
			Metric:    p.Metric,
			Binary:    p.IndexType.Family() == entity.FamilyBinary,
			NB:        nb,
			NQ:        nq,
			Seed:      seed,
		})
	}
	return cases
}

type prepared struct {
	c      Case
	params entity.ParameterBlob
	topk   int
	data   *dataset.Generated
}

func (r *Runner) catalogFor(c Case) *catalog.Catalog {
	if (c.Dim == 0 || c.Dim == r.catalog.Dim()) && (c.TopK == 0 || c.TopK == r.catalog.TopK()) {
		return r.catalog
	}
	return catalog.New(c.Dim, c.TopK, r.catalog.Features())
}

func (r *Runner) prepare(c Case) (*prepared, error) {
	if c.NB <= 0 {
		c.NB = DefaultNB
	}
	if c.NQ <= 0 {
		c.NQ = DefaultNQ
	}
	cat := r.catalogFor(c)
	c.Dim = cat.Dim()

	cfg := cat.GetConfig(c.IndexType, c.Metric)
	if cfg.IsEmpty() {
		return nil, verrors.UnsupportedConfiguration(string(c.IndexType), string(c.Metric))
	}
	binary := c.IndexType.Family() == entity.FamilyBinary
	if c.Binary != binary {
		return nil, verrors.Newf(verrors.ErrInvalidParam, "%s is not a %s index", c.IndexType, familyName(c.Binary))
	}
	field := dataset.FloatField
	if binary {
		field = dataset.BinaryField
	}
	if _, err := entity.NewIndex(field, c.IndexType, cfg); err != nil {
		return nil, err
	}

	topkValue, _ := cfg.Get(entity.KeyTopK)
	topk, err := cast.ToIntE(topkValue)
	if err != nil {
		return nil, verrors.Wrap(verrors.ErrInvalidParam, entity.KeyTopK, err)
	}
	c.TopK = topk

	data, err := r.generate(c, binary)
	if err != nil {
		return nil, err
	}
	return &prepared{
		c:      c,
		params: codec.EncodeIndexParams(cfg, c.IndexType),
		topk:   topk,
		data:   data,
	}, nil
}

// generate memoizes datasets per case shape. Cached datasets are shared
// and must not be written to.
func (r *Runner) generate(c Case, binary bool) (*dataset.Generated, error) {
	key := fmt.Sprintf("%s|%s|%d|%d|%d|%d|%d", c, c.Metric, c.Seed, c.NB, c.NQ, c.Dim, c.TopK)
	if v, ok := r.datasets.Get(key); ok {
		log.Debugf("dataset cache hit for %s", key)
		return v.(*dataset.Generated), nil
	}
	gen := &dataset.Generator{Name: c.String(), Seed: c.Seed, NQ: c.NQ, TopK: c.TopK}
	data, err := gen.Generate(c.NB, c.Metric, binary, c.Dim)
	if err != nil {
		return nil, err
	}
	r.datasets.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

func familyName(binary bool) string {
	if binary {
		return entity.FamilyBinary.String()
	}
	return entity.FamilyFloat.String()
}

func (r *Runner) validate(p *prepared, res *entity.QueryResult) (*validator.Report, error) {
	return r.validator.Validate(validator.Input{
		IndexType:      p.c.IndexType,
		Metric:         p.c.Metric,
		Result:         res,
		Base:           p.data.Base,
		Query:          p.data.Query,
		GroundTruthIDs: p.data.GroundTruthIDs,
		GroundTruthK:   p.data.TopK,
	})
}

// Run builds and searches a fresh index for c. The returned error is
// non-nil when the case could not run, or when the report fails a strict
// index type; the outcome is returned in the latter case too.
func (r *Runner) Run(ctx context.Context, c Case) (*Outcome, error) {
	if r.factory == nil {
		return nil, verrors.MissingParam("engine factory")
	}
	p, err := r.prepare(c)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log.Infof("run %s: %s over %s", runID, p.c, p.data.Base)

	idx, err := r.factory(p.c.IndexType)
	if err != nil {
		return nil, verrors.EngineError("open", err)
	}
	if tc, ok := idx.(engine.TableCreator); ok {
		table := engine.NewTable(runID, p.data.Base, p.c.IndexType, p.params)
		table.TypeParams = string(codec.EncodeTypeParams(entity.MapParams{}))
		if err := tc.CreateTable(ctx, table.Serialize()); err != nil {
			return nil, verrors.EngineError("create table", err)
		}
	}
	if err := idx.Build(ctx, p.data.Base, p.params); err != nil {
		return nil, verrors.EngineError("build", err)
	}
	res, err := idx.Search(ctx, p.data.Query, p.topk)
	if err != nil {
		return nil, verrors.EngineError("search", err)
	}

	report, err := r.validate(p, res)
	if err != nil {
		return nil, err
	}
	log.Infof("run %s: %s", runID, report)
	out := &Outcome{RunID: runID, Case: p.c, Params: p.params, Result: res, Report: report}
	return out, report.Err()
}

// Check validates a result produced elsewhere for c, regenerating the same
// datasets from the case seed.
func (r *Runner) Check(ctx context.Context, c Case, res *entity.QueryResult) (*validator.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.prepare(c)
	if err != nil {
		return nil, err
	}
	report, err := r.validate(p, res)
	if err != nil {
		return nil, err
	}
	return report, report.Err()
}

// RunAll runs every case in order and keeps going past failures. Outcomes
// are returned for every case that produced a report; the error collects
// one entry per failed case.
func (r *Runner) RunAll(ctx context.Context, cases []Case) ([]*Outcome, error) {
	merr := &errutil.MultiError{}
	var outs []*Outcome
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			merr.Append(err)
			break
		}
		out, err := r.Run(ctx, c)
		if out != nil {
			outs = append(outs, out)
		}
		if err != nil {
			merr.Append(errors.Wrap(err, c.String()))
		}
	}
	if merr.Len() > 0 {
		log.Warnf("%d of %d cases failed", merr.Len(), len(cases))
	}
	return outs, merr.ErrorOrNil()
}
