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
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
	verrors "github.com/vearch/annverify/internal/pkg/errors"
	"github.com/vearch/annverify/internal/pkg/vjson"
)

var (
	MinNlist          = 1
	MaxNlist          = 262144
	MinHNSWM          = 8
	MaxHNSWM          = 96
	MinEfConstruction = 16
	MaxEfConstruction = 1024
)

// Index describes one vector index build request: the vector field it
// covers, the algorithm and its params rendered as JSON.
type Index struct {
	Name   string          `json:"name"`
	Type   IndexType       `json:"type,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

func NewIndex(name string, indexType IndexType, cfg *ConfigMap) (*Index, error) {
	params, err := vjson.Marshal(cfg)
	if err != nil {
		return nil, verrors.EncodingFailure("index params", err)
	}
	index := &Index{Name: name, Type: indexType, Params: params}
	if err := index.Validate(); err != nil {
		return nil, err
	}
	return index, nil
}

// Config decodes Params keeping their order.
func (index *Index) Config() (*ConfigMap, error) {
	cfg := NewConfigMap()
	if len(index.Params) == 0 {
		return cfg, nil
	}
	if err := cfg.UnmarshalJSON(index.Params); err != nil {
		return nil, verrors.Wrapf(verrors.ErrInvalidParam, err, "index params:%s", index.Params)
	}
	return cfg, nil
}

func (index *Index) UnmarshalJSON(bs []byte) error {
	if len(bs) == 0 {
		return fmt.Errorf("index json.Unmarshal err: empty json")
	}
	tempIndex := &struct {
		Name   string          `json:"name,omitempty"`
		Type   IndexType       `json:"type,omitempty"`
		Params json.RawMessage `json:"params,omitempty"`
	}{}
	if err := vjson.Unmarshal(bs, tempIndex); err != nil {
		return verrors.Wrapf(verrors.ErrInvalidParam, err, "index json.Unmarshal err")
	}
	tmp := Index{Name: tempIndex.Name, Type: tempIndex.Type, Params: tempIndex.Params}
	if err := tmp.Validate(); err != nil {
		return err
	}
	*index = tmp
	return nil
}

func intParam(cfg *ConfigMap, key string) (int, bool, error) {
	v, ok := cfg.Get(key)
	if !ok {
		return 0, false, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, true, verrors.Newf(verrors.ErrInvalidParam, "index params %s:%v is not an integer", key, v)
	}
	return i, true, nil
}

func checkRange(indexType IndexType, key string, v, lo, hi int) error {
	if v < lo || v > hi {
		return verrors.Newf(verrors.ErrInvalidParam, "%s index params %s:%d should in [%d, %d]", indexType, key, v, lo, hi)
	}
	return nil
}

// Validate checks the params are usable by the index type: known type and
// metric, matching vector family, sane dimension and topk, and the per
// family ranges.
func (index *Index) Validate() error {
	if index.Type == "" {
		return verrors.New(verrors.ErrMissingParam, "index type is null")
	}
	if !index.Type.Known() {
		return verrors.Newf(verrors.ErrInvalidParam, "index type not support: %s", index.Type)
	}
	cfg, err := index.Config()
	if err != nil {
		return err
	}

	metric, ok := cfg.Get(KeyMetricType)
	if !ok {
		return verrors.MissingParam(KeyMetricType)
	}
	mt := MetricType(cast.ToString(metric))
	if !mt.Known() {
		return verrors.Newf(verrors.ErrInvalidParam, "index params metric_type not support: %s", mt)
	}
	if !Compatible(index.Type, mt) {
		return verrors.Newf(verrors.ErrInvalidParam, "index type %s is a %s index, metric_type %s does not apply",
			index.Type, index.Type.Family(), mt)
	}

	dim, ok, err := intParam(cfg, KeyDim)
	if err != nil {
		return err
	}
	if !ok || dim <= 0 {
		return verrors.Newf(verrors.ErrInvalidParam, "index params dim should be positive")
	}
	if index.Type.Family() == FamilyBinary && dim%8 != 0 {
		return verrors.Newf(verrors.ErrInvalidParam, "binary index dim:%d should be a multiple of 8", dim)
	}
	topk, ok, err := intParam(cfg, KeyTopK)
	if err != nil {
		return err
	}
	if !ok || topk <= 0 {
		return verrors.Newf(verrors.ErrInvalidParam, "index params topk should be positive")
	}

	nlist, hasNlist, err := intParam(cfg, KeyNlist)
	if err != nil {
		return err
	}
	if hasNlist {
		if err := checkRange(index.Type, KeyNlist, nlist, MinNlist, MaxNlist); err != nil {
			return err
		}
	}
	nprobe, hasNprobe, err := intParam(cfg, KeyNprobe)
	if err != nil {
		return err
	}
	if hasNprobe && hasNlist && nprobe > nlist {
		return verrors.Newf(verrors.ErrInvalidParam, "%s nprobe:[%d] should less than nlist:[%d]", index.Type, nprobe, nlist)
	}

	if index.Type.HNSWLike() {
		if m, ok, err := intParam(cfg, KeyHNSWM); err != nil {
			return err
		} else if ok {
			if err := checkRange(index.Type, KeyHNSWM, m, MinHNSWM, MaxHNSWM); err != nil {
				return err
			}
		}
		if ef, ok, err := intParam(cfg, KeyEfConstruction); err != nil {
			return err
		} else if ok {
			if err := checkRange(index.Type, KeyEfConstruction, ef, MinEfConstruction, MaxEfConstruction); err != nil {
				return err
			}
		}
	}
	return nil
}
