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

package log

import (
	"fmt"
	golog "log"
	"os"

	"go.uber.org/atomic"
)

type Level int8

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelCodes = [...]string{
	DEBUG: "[DEBUG] ",
	INFO:  "[INFO] ",
	WARN:  "[WARN] ",
	ERROR: "[ERROR] ",
}

var std = NewGoLog(golog.New(os.Stderr, "", golog.Lshortfile|golog.LstdFlags), INFO)

// GoLog writes through the standard library logger with a level prefix.
type GoLog struct {
	*golog.Logger
	level atomic.Int32
}

func NewGoLog(lg *golog.Logger, l Level) *GoLog {
	g := &GoLog{Logger: lg}
	g.setLevel(l)
	return g
}

func (g *GoLog) setLevel(l Level) {
	g.level.Store(int32(l))
}

func (g *GoLog) enabled(l Level) bool {
	return Level(g.level.Load()) <= l
}

func (g *GoLog) Flush() {
}

func (g *GoLog) IsDebugEnabled() bool {
	return g.enabled(DEBUG)
}

func (g *GoLog) IsInfoEnabled() bool {
	return g.enabled(INFO)
}

func (g *GoLog) IsWarnEnabled() bool {
	return g.enabled(WARN)
}

func (g *GoLog) Debugf(format string, args ...any) {
	g.writef(DEBUG, format, args...)
}

func (g *GoLog) Infof(format string, args ...any) {
	g.writef(INFO, format, args...)
}

func (g *GoLog) Warnf(format string, args ...any) {
	g.writef(WARN, format, args...)
}

func (g *GoLog) Errorf(format string, args ...any) {
	g.writef(ERROR, format, args...)
}

func (g *GoLog) Panicf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.writef(ERROR, "%s", msg)
	panic(msg)
}

func (g *GoLog) Debug(args ...any) {
	g.write(DEBUG, args...)
}

func (g *GoLog) Info(args ...any) {
	g.write(INFO, args...)
}

func (g *GoLog) Warn(args ...any) {
	g.write(WARN, args...)
}

func (g *GoLog) Error(args ...any) {
	g.write(ERROR, args...)
}

// write keeps the vearch convention that a leading string argument with
// more values following it is a format.
func (g *GoLog) write(l Level, args ...any) {
	if len(args) > 1 {
		if format, ok := args[0].(string); ok {
			g.writef(l, format, args[1:]...)
			return
		}
	}
	g.writef(l, "%s", fmt.Sprint(args...))
}

func (g *GoLog) writef(l Level, format string, args ...any) {
	if !g.enabled(l) {
		return
	}
	if len(args) == 0 {
		_ = g.Output(4, levelCodes[l]+format)
		return
	}
	_ = g.Output(4, fmt.Sprintf(levelCodes[l]+format, args...))
}
