// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package craft provides the per-invocation context shared by extensions and plugins.
package craft

import (
	"os"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/env"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context provides contextually aware functions for extension and plugin authors.
type Context struct {
	projectRoot string
	debug       bool
	logger      *zap.SugaredLogger
}

// ContextOption configures NewContext.
type ContextOption func(ctx *Context)

// WithProjectRoot sets the directory holding the project sources and rockcraft.yaml.
func WithProjectRoot(root string) ContextOption {
	return func(ctx *Context) {
		ctx.projectRoot = root
	}
}

// WithDebug forces debug logging on or off, overriding ROCKCRAFT_DEBUG.
func WithDebug(debug bool) ContextOption {
	return func(ctx *Context) {
		ctx.debug = debug
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *zap.Logger) ContextOption {
	return func(ctx *Context) {
		ctx.logger = l.Sugar()
	}
}

// NewContext creates a context. The project root defaults to the working directory.
func NewContext(opts ...ContextOption) *Context {
	ctx := &Context{}
	debug, err := env.IsDebugMode()
	ctx.debug = debug
	for _, o := range opts {
		o(ctx)
	}
	if ctx.logger == nil {
		ctx.logger = newLogger(ctx.debug)
	}
	if err != nil {
		ctx.Warnf("Failed to parse env var %s: %v", env.DebugMode, err)
	}
	if ctx.projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			ctx.Warnf("Failed to determine working directory: %v", err)
			wd = "."
		}
		ctx.projectRoot = wd
	}
	return ctx
}

func newLogger(debug bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.TimeKey = ""
	encoder.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.Lock(os.Stderr), level)
	return zap.New(core).Sugar()
}

// ProjectRoot returns the root folder of the project.
func (ctx *Context) ProjectRoot() string {
	return ctx.projectRoot
}

// Debug returns whether debug logging is enabled.
func (ctx *Context) Debug() bool {
	return ctx.debug
}

// Logf emits an informational logging line.
func (ctx *Context) Logf(format string, args ...interface{}) {
	ctx.logger.Infof(format, args...)
}

// Debugf emits a logging line if the debug flag is set.
func (ctx *Context) Debugf(format string, args ...interface{}) {
	if !ctx.debug {
		return
	}
	ctx.logger.Debugf(format, args...)
}

// Warnf emits a logging line for warnings.
func (ctx *Context) Warnf(format string, args ...interface{}) {
	ctx.logger.Warnf(format, args...)
}

// Sync flushes buffered log entries.
func (ctx *Context) Sync() {
	// stderr does not support fsync on every platform; the error carries no information.
	_ = ctx.logger.Sync()
}
