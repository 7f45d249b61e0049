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

import "strings"

// Feature names an optional capability some index families depend on.
type Feature string

const (
	FeatureNone  Feature = ""
	FeatureGPU   Feature = "gpu"
	FeatureNSG   Feature = "nsg"
	FeatureSPTAG Feature = "sptag"
	FeatureNGT   Feature = "ngt"
)

// FeatureSet is the capability table resolved once at startup.
type FeatureSet struct {
	enabled  map[Feature]bool
	DeviceID int
}

func NewFeatureSet(features ...Feature) FeatureSet {
	fs := FeatureSet{enabled: make(map[Feature]bool, len(features))}
	for _, f := range features {
		fs.enabled[f] = true
	}
	return fs
}

// ParseFeatures builds a set from names such as "nsg,ngt".
func ParseFeatures(names string) FeatureSet {
	var features []Feature
	for _, name := range strings.Split(names, ",") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			features = append(features, Feature(name))
		}
	}
	return NewFeatureSet(features...)
}

func (fs FeatureSet) Enabled(f Feature) bool {
	return f == FeatureNone || fs.enabled[f]
}

func (fs FeatureSet) WithDevice(id int) FeatureSet {
	out := NewFeatureSet(fs.List()...)
	out.DeviceID = id
	return out
}

func (fs FeatureSet) List() []Feature {
	var out []Feature
	for _, f := range []Feature{FeatureGPU, FeatureNSG, FeatureSPTAG, FeatureNGT} {
		if fs.enabled[f] {
			out = append(out, f)
		}
	}
	return out
}
