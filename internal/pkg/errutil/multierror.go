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

package errutil

import (
	"fmt"
	"strings"
)

// ErrorFormat renders the collected errors of a MultiError.
type ErrorFormat func(es []error) string

// MultilineFormat puts every error on its own line under a count header.
func MultilineFormat(es []error) string {
	if len(es) == 1 {
		return es[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(es))
	for _, e := range es {
		b.WriteString("\n -- ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Combine flattens errs into one MultiError, skipping nils.
func Combine(errs ...error) *MultiError {
	merr := &MultiError{}
	merr.Append(errs...)
	return merr
}

// MultiError collects the failures of a verification run so every case
// is attempted before the run reports.
type MultiError struct {
	errors []error
	Format ErrorFormat
}

func (me *MultiError) Errors() []error {
	if me == nil {
		return nil
	}
	return me.errors
}

func (me *MultiError) Len() int {
	return len(me.Errors())
}

func (me *MultiError) Append(errs ...error) {
	for _, e := range errs {
		if e == nil {
			continue
		}
		switch e := e.(type) {
		case *MultiError:
			me.errors = append(me.errors, e.Errors()...)
		default:
			me.errors = append(me.errors, e)
		}
	}
}

// ErrorOrNil returns me when it holds errors and a nil error otherwise.
func (me *MultiError) ErrorOrNil() error {
	if me == nil || len(me.errors) == 0 {
		return nil
	}
	return me
}

func (me *MultiError) Error() string {
	if me == nil || len(me.errors) == 0 {
		return ""
	}
	fn := me.Format
	if fn == nil {
		fn = MultilineFormat
	}
	return fn(me.errors)
}

// Unwrap lets errors.Is and errors.As look through every collected error.
func (me *MultiError) Unwrap() []error {
	return me.Errors()
}
