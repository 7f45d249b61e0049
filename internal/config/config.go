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

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/vearch/annverify/internal/catalog"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/log"
)

var single *Config

// Conf return the single instance of config
func Conf() *Config {
	if single == nil {
		return Default()
	}
	return single
}

var (
	versionOnce  sync.Once
	buildVersion = "0.0"
	buildTime    = "0"
	commitID     = "xxxxx"
)

// SetConfigVersion set the version, time and commit id of build
func SetConfigVersion(bv, bt, ci string) {
	versionOnce.Do(func() {
		buildVersion = bv
		buildTime = bt
		commitID = ci
	})
}

func GetBuildVersion() string {
	return buildVersion
}
func GetBuildTime() string {
	return buildTime
}
func GetCommitID() string {
	return commitID
}

const (
	DefaultNB        = 1000
	DefaultNQ        = 10
	DefaultTolerance = 1e-5
)

type Config struct {
	Global     *GlobalCfg     `toml:"global,omitempty" json:"global"`
	Dataset    *DatasetCfg    `toml:"dataset,omitempty" json:"dataset"`
	Search     *SearchCfg     `toml:"search,omitempty" json:"search"`
	Features   *FeaturesCfg   `toml:"features,omitempty" json:"features"`
	Validation *ValidationCfg `toml:"validation,omitempty" json:"validation"`
}

type GlobalCfg struct {
	Level string `toml:"level,omitempty" json:"level"`
}

type DatasetCfg struct {
	NB   int    `toml:"nb,omitempty" json:"nb"`
	NQ   int    `toml:"nq,omitempty" json:"nq"`
	Dim  int    `toml:"dim,omitempty" json:"dim"`
	Seed uint64 `toml:"seed,omitempty" json:"seed"`
}

type SearchCfg struct {
	TopK      int     `toml:"topk,omitempty" json:"topk"`
	Tolerance float64 `toml:"tolerance,omitempty" json:"tolerance"`
}

// FeaturesCfg switches the optional index families of the engine under test.
type FeaturesCfg struct {
	GPU      bool `toml:"gpu" json:"gpu"`
	DeviceID int  `toml:"device_id" json:"device_id"`
	NSG      bool `toml:"nsg" json:"nsg"`
	SPTAG    bool `toml:"sptag" json:"sptag"`
	NGT      bool `toml:"ngt" json:"ngt"`
}

type ValidationCfg struct {
	StrictTypes []string `toml:"strict_types" json:"strict_types"`
}

func Default() *Config {
	return &Config{
		Global: &GlobalCfg{Level: "info"},
		Dataset: &DatasetCfg{
			NB:  DefaultNB,
			NQ:  DefaultNQ,
			Dim: catalog.DefaultDim,
		},
		Search: &SearchCfg{
			TopK:      catalog.DefaultTopK,
			Tolerance: DefaultTolerance,
		},
		Features: &FeaturesCfg{},
		Validation: &ValidationCfg{
			StrictTypes: []string{string(entity.IndexFlat), string(entity.IndexBinFlat)},
		},
	}
}

func InitConfig(path string) error {
	conf := Default()
	if err := LoadConfig(conf, path); err != nil {
		return err
	}
	single = conf
	log.SetLevel(conf.Global.Level)
	return nil
}

// LoadConfig decodes path over conf; sections absent from the file keep
// the values already in conf.
func LoadConfig(conf *Config, path string) error {
	if len(path) == 0 {
		return errors.New("config path is empty")
	}
	if _, err := toml.DecodeFile(path, conf); err != nil {
		return errors.Wrapf(err, "decode config [%s]", path)
	}
	return conf.Validate()
}

func Parse(data string) (*Config, error) {
	conf := Default()
	if _, err := toml.Decode(data, conf); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	d := Default()
	if c.Global == nil {
		c.Global = d.Global
	}
	if c.Dataset == nil {
		c.Dataset = d.Dataset
	}
	if c.Search == nil {
		c.Search = d.Search
	}
	if c.Features == nil {
		c.Features = d.Features
	}
	if c.Validation == nil {
		c.Validation = d.Validation
	}

	if c.Dataset.NB <= 0 || c.Dataset.NQ <= 0 {
		return fmt.Errorf("dataset nb and nq need gt 0, got nb=%d nq=%d", c.Dataset.NB, c.Dataset.NQ)
	}
	if c.Dataset.Dim <= 0 {
		return fmt.Errorf("dataset dim need gt 0, got %d", c.Dataset.Dim)
	}
	if c.Search.TopK <= 0 {
		return fmt.Errorf("search topk need gt 0, got %d", c.Search.TopK)
	}
	if c.Search.Tolerance < 0 {
		return fmt.Errorf("search tolerance can not be negative, got %g", c.Search.Tolerance)
	}
	if c.Features.DeviceID < 0 {
		return fmt.Errorf("features device_id can not be negative, got %d", c.Features.DeviceID)
	}
	for _, t := range c.Validation.StrictTypes {
		if !entity.IndexType(strings.ToUpper(t)).Known() {
			return fmt.Errorf("validation strict_types has unknown index type %s", t)
		}
	}
	return nil
}

// FeatureSet resolves the enabled optional index families.
func (c *Config) FeatureSet() catalog.FeatureSet {
	var fs []catalog.Feature
	f := c.Features
	if f == nil {
		return catalog.NewFeatureSet()
	}
	if f.GPU {
		fs = append(fs, catalog.FeatureGPU)
	}
	if f.NSG {
		fs = append(fs, catalog.FeatureNSG)
	}
	if f.SPTAG {
		fs = append(fs, catalog.FeatureSPTAG)
	}
	if f.NGT {
		fs = append(fs, catalog.FeatureNGT)
	}
	return catalog.NewFeatureSet(fs...).WithDevice(f.DeviceID)
}

func (c *Config) Catalog() *catalog.Catalog {
	return catalog.New(c.Dataset.Dim, c.Search.TopK, c.FeatureSet())
}

func (c *Config) StrictTypes() []entity.IndexType {
	out := make([]entity.IndexType, 0, len(c.Validation.StrictTypes))
	for _, t := range c.Validation.StrictTypes {
		out = append(out, entity.IndexType(strings.ToUpper(t)))
	}
	return out
}
