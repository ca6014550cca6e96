/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging holds the shared logger construction and verbosity levels used across the module.
package logging

import (
	"github.com/go-logr/logr"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Verbosity levels passed to logr's V(). Per-packet events sit at TRACE so that the hot path is silent by default.
const (
	DEFAULT = 2
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

// atomicLevel is shared between InitLogging calls so the level can be adjusted after the global logger is installed.
var atomicLevel = uberzap.NewAtomicLevelAt(zapcore.InfoLevel)

// InitLogging installs a zap-backed logger as the controller-runtime global logger and returns it.
// A level set in opts overrides the shared atomic level.
func InitLogging(opts *zap.Options) logr.Logger {
	if opts.Level != nil {
		switch lvl := opts.Level.(type) {
		case uberzap.AtomicLevel:
			atomicLevel.SetLevel(lvl.Level())
		case zapcore.Level:
			atomicLevel.SetLevel(lvl)
		}
	}
	logger := zap.New(zap.UseFlagOptions(opts), zap.Level(atomicLevel), zap.RawZapOpts(uberzap.AddCaller()))
	log.SetLogger(logger)
	return logger
}

// NewTestLogger creates a new Zap logger using the dev mode, with every verbosity level enabled.
func NewTestLogger() logr.Logger {
	return zap.New(
		zap.UseDevMode(true),
		zap.Level(uberzap.NewAtomicLevelAt(zapcore.Level(-1*TRACE))),
		zap.RawZapOpts(uberzap.AddCaller()),
	)
}
