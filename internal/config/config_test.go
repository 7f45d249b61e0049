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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearch/annverify/internal/catalog"
	"github.com/vearch/annverify/internal/entity"
)

const sample = `
[global]
level = "debug"

[dataset]
nb = 500
nq = 5
dim = 16
seed = 42

[search]
topk = 8
tolerance = 0.001

[features]
gpu = true
device_id = 1
ngt = true

[validation]
strict_types = ["flat"]
`

func TestParse(t *testing.T) {
	conf, err := Parse(sample)
	require.NoError(t, err)
	assert.Equal(t, "debug", conf.Global.Level)
	assert.Equal(t, &DatasetCfg{NB: 500, NQ: 5, Dim: 16, Seed: 42}, conf.Dataset)
	assert.Equal(t, 8, conf.Search.TopK)
	assert.InDelta(t, 0.001, conf.Search.Tolerance, 1e-12)
	assert.Equal(t, []entity.IndexType{entity.IndexFlat}, conf.StrictTypes())

	fs := conf.FeatureSet()
	assert.True(t, fs.Enabled(catalog.FeatureGPU))
	assert.True(t, fs.Enabled(catalog.FeatureNGT))
	assert.False(t, fs.Enabled(catalog.FeatureNSG))
	assert.Equal(t, 1, fs.DeviceID)

	c := conf.Catalog()
	assert.Equal(t, 16, c.Dim())
	assert.Equal(t, 8, c.TopK())
	assert.False(t, c.GetConfig(entity.IndexNGTPANNG, entity.MetricL2).IsEmpty())
}

func TestDefaultsKeepMissingSections(t *testing.T) {
	conf, err := Parse("[search]\ntopk = 2\n")
	require.NoError(t, err)
	assert.Equal(t, 2, conf.Search.TopK)
	assert.Equal(t, DefaultNB, conf.Dataset.NB)
	assert.Equal(t, catalog.DefaultDim, conf.Dataset.Dim)
	assert.Equal(t, []entity.IndexType{entity.IndexFlat, entity.IndexBinFlat}, conf.StrictTypes())
	assert.Empty(t, conf.FeatureSet().List())
}

func TestInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"nb":      "[dataset]\nnb = -1\n",
		"topk":    "[search]\ntopk = -4\n",
		"tol":     "[search]\ntolerance = -0.5\n",
		"device":  "[features]\ndevice_id = -1\n",
		"strict":  "[validation]\nstrict_types = [\"NOPE\"]\n",
		"garbage": "[dataset\n",
	} {
		_, err := Parse(data)
		assert.Error(t, err, name)
	}
}

func TestInitConfig(t *testing.T) {
	assert.Error(t, LoadConfig(Default(), ""))
	assert.Error(t, InitConfig(filepath.Join(t.TempDir(), "missing.toml")))

	path := filepath.Join(t.TempDir(), "annverify.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	require.NoError(t, InitConfig(path))
	t.Cleanup(func() { single = nil })
	assert.Equal(t, 500, Conf().Dataset.NB)
}

func TestSampleConfig(t *testing.T) {
	conf := Default()
	require.NoError(t, LoadConfig(conf, filepath.Join("..", "..", "conf", "annverify.toml")))
	assert.Equal(t, Default(), conf)
}
