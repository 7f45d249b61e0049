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

package validator

import "fmt"

// Status classifies one (query, rank) cell of a search result.
type Status int8

const (
	StatusMatch Status = iota
	// StatusMismatch: the reported distance is not the recomputed one.
	StatusMismatch
	// StatusInvalidID: the candidate id is not a row of the base dataset.
	StatusInvalidID
	// StatusIncomparable: the oracle has no distance for the cell.
	StatusIncomparable
	// StatusMissing: the engine returned fewer than topk candidates.
	StatusMissing
)

var statusNames = [...]string{
	StatusMatch:        "match",
	StatusMismatch:     "mismatch",
	StatusInvalidID:    "invalid_id",
	StatusIncomparable: "incomparable",
	StatusMissing:      "missing",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Failing reports whether the status breaks the contract of an exact index.
func (s Status) Failing() bool {
	return s == StatusMismatch || s == StatusInvalidID
}
