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

// Package engine defines the index build and search capability under
// verification and the table descriptor handed to engines that want one.
package engine

import (
	"context"

	"github.com/vearch/annverify/internal/entity"
)

// Index is an index implementation under test. Build is called once with
// the base vectors and the serialized index params, then Search any
// number of times.
type Index interface {
	Build(ctx context.Context, base *entity.Dataset, params entity.ParameterBlob) error
	Search(ctx context.Context, query *entity.Dataset, k int) (*entity.QueryResult, error)
}

// TableCreator is implemented by engines that take a serialized Table
// before Build.
type TableCreator interface {
	CreateTable(ctx context.Context, table []byte) error
}

// Factory opens a fresh index for one case.
type Factory func(indexType entity.IndexType) (Index, error)
