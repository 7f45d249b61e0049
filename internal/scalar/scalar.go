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

// Package scalar enumerates the scalar index variants exercised for each
// kind of scalar field value.
package scalar

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/vearch/annverify/internal/codec"
	"github.com/vearch/annverify/internal/dataset"
	"github.com/vearch/annverify/internal/entity"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
)

type ValueKind int8

const (
	Bool ValueKind = iota
	Int8
	Int16
	Int32
	Int64
	Float
	Double
	String
)

var kindNames = [...]string{
	Bool:   "bool",
	Int8:   "int8",
	Int16:  "int16",
	Int32:  "int32",
	Int64:  "int64",
	Float:  "float",
	Double: "double",
	String: "string",
}

func (k ValueKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

func AllKinds() []ValueKind {
	return []ValueKind{Bool, Int8, Int16, Int32, Int64, Float, Double, String}
}

func ParseValueKind(name string) (ValueKind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return ValueKind(i), nil
		}
	}
	return 0, verrors.InvalidParam("scalar kind " + name)
}

type Family int8

const (
	FamilyArithmetic Family = iota
	FamilyBoolean
	FamilyString
)

func (k ValueKind) Family() Family {
	switch k {
	case Bool:
		return FamilyBoolean
	case String:
		return FamilyString
	}
	return FamilyArithmetic
}

const (
	IndexInverted = "inverted_index"
	IndexFlat     = "flat"
	IndexMarisa   = "marisa"
)

func variant(indexType string) entity.ScalarTestParams {
	return entity.ScalarTestParams{
		TypeParams:  entity.MapParams{},
		IndexParams: entity.MapParams{entity.KeyIndexType: indexType},
	}
}

// GenParams lists the index variants built for a field of the given kind.
// Booleans and numbers share the inverted and flat variants, strings get a
// marisa trie.
func GenParams(kind ValueKind) []entity.ScalarTestParams {
	if kind.Family() == FamilyString {
		return []entity.ScalarTestParams{variant(IndexMarisa)}
	}
	return []entity.ScalarTestParams{variant(IndexInverted), variant(IndexFlat)}
}

// GetIndexTypes lists the index types looped over for a kind. It is not
// derived from GenParams: non-string kinds only loop over the inverted
// index.
func GetIndexTypes(kind ValueKind) []string {
	if kind.Family() == FamilyString {
		return []string{IndexMarisa}
	}
	return []string{IndexInverted}
}

// GenValues draws n sorted values of the kind's Go type.
func GenValues(kind ValueKind, n int, rng *rand.Rand) interface{} {
	switch kind {
	case Bool:
		return dataset.GenBoolArr(n, rng)
	case Int8:
		return dataset.GenArr[int8](n, rng)
	case Int16:
		return dataset.GenArr[int16](n, rng)
	case Int32:
		return dataset.GenArr[int32](n, rng)
	case Int64:
		return dataset.GenArr[int64](n, rng)
	case Float:
		return dataset.GenArr[float32](n, rng)
	case Double:
		return dataset.GenArr[float64](n, rng)
	case String:
		return dataset.GenStrArr(n, rng)
	}
	return nil
}

// Case is one scalar index variant ready to hand to an index build.
type Case struct {
	Kind        ValueKind
	Params      entity.ScalarTestParams
	TypeParams  entity.TypeParamsBlob
	IndexParams entity.ParameterBlob
	Values      entity.OwnedBuffer
}

// Cases builds every variant of GenParams(kind) over n generated values.
// Each case owns its own serialized copy of the values.
func Cases(kind ValueKind, n int, rng *rand.Rand) ([]Case, error) {
	values := GenValues(kind, n, rng)
	if values == nil {
		return nil, verrors.InvalidParam("scalar kind " + kind.String())
	}
	params := GenParams(kind)
	cases := make([]Case, 0, len(params))
	for _, p := range params {
		buf, err := codec.ScalarBuffer(values)
		if err != nil {
			return nil, err
		}
		cases = append(cases, Case{
			Kind:        kind,
			Params:      p,
			TypeParams:  codec.EncodeTypeParams(p.TypeParams),
			IndexParams: codec.EncodeIndexMapParams(p.IndexParams),
			Values:      buf,
		})
	}
	return cases, nil
}

// PrintMapParam writes type params then index params as "k: <k>, v: <v>"
// lines, each map in key order.
func PrintMapParam(w io.Writer, tp entity.ScalarTestParams) {
	for _, m := range []entity.MapParams{tp.TypeParams, tp.IndexParams} {
		for _, k := range m.SortedKeys() {
			fmt.Fprintf(w, "k: %s, v: %s\n", k, m[k])
		}
	}
}

func PrintMapParams(w io.Writer, tps []entity.ScalarTestParams) {
	for _, tp := range tps {
		PrintMapParam(w, tp)
	}
}
