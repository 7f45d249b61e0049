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

// Package dataset synthesizes base and query vectors together with their
// exact nearest neighbors.
package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/spaolacci/murmur3"
	"github.com/vearch/annverify/internal/distance"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/cbbytes"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"github.com/vearch/annverify/internal/pkg/log"
	"github.com/viterin/vek/vek32"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultDim  = 8
	DefaultNQ   = 10
	DefaultTopK = 4

	FloatField  = "fakevec"
	BinaryField = "fakebinvec"
)

// SeedFromName derives a stable seed so that a named case regenerates the
// same vectors on every run.
func SeedFromName(name string) uint64 {
	return murmur3.Sum64([]byte(name))
}

func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// Generator produces datasets. A zero Seed is replaced by SeedFromName(Name),
// zero NQ and TopK by their defaults.
type Generator struct {
	Name string
	Seed uint64
	NQ   int
	TopK int
}

type Generated struct {
	Base  *entity.Dataset
	Query *entity.Dataset
	// Row i of the ground truth holds the TopK exact neighbors of query i.
	// Both slices are nil when the oracle cannot rank the metric.
	GroundTruthIDs       []int64
	GroundTruthDistances []float32
	TopK                 int
}

func (g *Generator) seed() uint64 {
	if g.Seed != 0 {
		return g.Seed
	}
	return SeedFromName(g.Name)
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

// Generate builds n base rows of the given dimension (DefaultDim when zero).
// Queries are copies of the first NQ base rows, so each query's nearest
// neighbor is itself.
func (g *Generator) Generate(n int, metric entity.MetricType, isBinary bool, dim int) (*Generated, error) {
	if dim == 0 {
		dim = DefaultDim
	}
	if n <= 0 {
		return nil, verrors.Newf(verrors.ErrInvalidParam, "row count must be positive, got %d", n)
	}
	if dim < 0 {
		return nil, verrors.Newf(verrors.ErrInvalidParam, "dimension must be positive, got %d", dim)
	}
	family, ok := metric.Family()
	if !ok {
		return nil, verrors.InvalidParam(fmt.Sprintf("metric_type %s", metric))
	}
	vt, field := entity.FloatVector, FloatField
	if isBinary {
		vt, field = entity.BinaryVector, BinaryField
		if dim%8 != 0 {
			return nil, verrors.Newf(verrors.ErrInvalidParam, "binary dimension %d is not a multiple of 8", dim)
		}
	}
	if (family == entity.FamilyBinary) != isBinary {
		return nil, verrors.Newf(verrors.ErrInvalidParam, "metric %s does not apply to %s vectors", metric, vt)
	}

	rng := NewRand(g.seed())
	var data []byte
	if isBinary {
		data = binaryRows(rng, n, dim)
	} else {
		data = floatRows(rng, n, dim)
	}
	base, err := entity.NewDataset(field, vt, metric, dim, n, data)
	if err != nil {
		return nil, verrors.Wrap(verrors.ErrInvalidParam, "generate base", err)
	}

	nq := min(orDefault(g.NQ, DefaultNQ), n)
	qdata := cbbytes.CloneBytes(data[:nq*base.RowBytes()])
	query, err := entity.NewDataset(field, vt, metric, dim, nq, qdata)
	if err != nil {
		return nil, verrors.Wrap(verrors.ErrInvalidParam, "generate query", err)
	}

	out := &Generated{Base: base, Query: query, TopK: orDefault(g.TopK, DefaultTopK)}
	out.GroundTruthIDs, out.GroundTruthDistances = GroundTruth(base, query, metric, out.TopK)
	log.Debugf("generated %s and %s with seed %d", base, query, g.seed())
	return out, nil
}

func floatRows(rng *rand.Rand, n, dim int) []byte {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	values := make([]float32, n*dim)
	for i := range values {
		values[i] = float32(normal.Rand())
	}
	return cbbytes.FloatArrayByte(values)
}

func binaryRows(rng *rand.Rand, n, dim int) []byte {
	data := make([]byte, n*cbbytes.BinaryRowBytes(dim))
	for i := range data {
		data[i] = byte(rng.Uint32())
	}
	return data
}

// GroundTruth ranks every base row against every query row. Metrics the
// oracle cannot compute yield nil slices.
func GroundTruth(base, query *entity.Dataset, metric entity.MetricType, k int) ([]int64, []float32) {
	var rank func(qi int64) []float32
	switch metric {
	case entity.MetricL2:
		rank = func(qi int64) []float32 {
			q := query.FloatRow(qi)
			dists := make([]float32, base.Rows)
			for bi := range dists {
				diff := vek32.Sub(q, base.FloatRow(int64(bi)))
				dists[bi] = vek32.Dot(diff, diff)
			}
			return dists
		}
	case entity.MetricJaccard:
		rank = func(qi int64) []float32 {
			dists := make([]float32, base.Rows)
			for bi := range dists {
				dists[bi] = distance.Rows(query, qi, base, int64(bi), metric)
			}
			return dists
		}
	default:
		log.Debugf("no ground truth for metric %s", metric)
		return nil, nil
	}

	ids := make([]int64, 0, query.Rows*k)
	dists := make([]float32, 0, query.Rows*k)
	for qi := 0; qi < query.Rows; qi++ {
		rowIDs, rowDists := distance.TopK(rank(int64(qi)), k)
		ids = append(ids, rowIDs...)
		dists = append(dists, rowDists...)
	}
	return ids, dists
}

// Generate runs a Generator seeded from the metric, family and shape.
func Generate(n int, metric entity.MetricType, isBinary bool, dim int) (*Generated, error) {
	g := &Generator{Name: fmt.Sprintf("%s/%t/%d/%d", metric, isBinary, dim, n)}
	return g.Generate(n, metric, isBinary, dim)
}
