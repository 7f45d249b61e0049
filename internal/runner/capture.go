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

package runner

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vmihailenco/msgpack"
)

// MsgpackCodec encodes capture files. Field names follow the json tags.
type MsgpackCodec struct{}

func (c *MsgpackCodec) Decode(data []byte, i interface{}) error {
	return msgpack.NewDecoder(bytes.NewBuffer(data)).UseJSONTag(true).Decode(i)
}

func (c *MsgpackCodec) Encode(i interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := msgpack.NewEncoder(&buf).UseCompactEncoding(true).UseJSONTag(true).Encode(i)
	return buf.Bytes(), err
}

var captureCodec = &MsgpackCodec{}

// SaveResult writes res to path so that a later Check can validate it.
func SaveResult(path string, res *entity.QueryResult) error {
	if err := res.Check(); err != nil {
		return errors.Wrap(err, "save result")
	}
	data, err := captureCodec.Encode(res)
	if err != nil {
		return errors.Wrapf(err, "encode result for [%s]", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write result [%s]", path)
	}
	return nil
}

func LoadResult(path string) (*entity.QueryResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read result [%s]", path)
	}
	res := &entity.QueryResult{}
	if err := captureCodec.Decode(data, res); err != nil {
		return nil, errors.Wrapf(err, "decode result [%s]", path)
	}
	if err := res.Check(); err != nil {
		return nil, errors.Wrapf(err, "result [%s]", path)
	}
	return res, nil
}
