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

package vjson

import (
	"github.com/vearch/annverify/internal/pkg/log"
)

// ToJsonString renders obj for log lines, returning "" when it cannot.
func ToJsonString(obj interface{}) string {
	bytes, err := Marshal(obj)
	if err != nil {
		log.Error(err.Error())
		return ""
	}
	return string(bytes)
}
