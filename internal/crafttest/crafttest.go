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

// Package crafttest contains utilities for testing code that uses the `craft` package.
package crafttest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type config struct {
	files map[string]string
	debug bool
}

// Option is a type for test context options.
type Option func(cfg *config)

// WithFiles writes files, keyed by project relative path, into the project root.
func WithFiles(files map[string]string) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithDebug enables debug logging.
func WithDebug() Option {
	return func(cfg *config) {
		cfg.debug = true
	}
}

// Logs holds the entries logged through a test context.
type Logs struct {
	*observer.ObservedLogs
}

// Contains reports whether any logged message at level contains substr.
func (l Logs) Contains(level zapcore.Level, substr string) bool {
	for _, e := range l.FilterLevelExact(level).All() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// NewContext returns a context rooted in a fresh temporary directory and the logs it records.
func NewContext(t *testing.T, opts ...Option) (*craft.Context, Logs) {
	t.Helper()
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	root := t.TempDir()
	for name, content := range cfg.files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := craft.NewContext(craft.WithProjectRoot(root), craft.WithDebug(cfg.debug), craft.WithLogger(zap.New(core)))
	return ctx, Logs{logs}
}

// MustParseManifest parses manifest content, failing the test on error.
func MustParseManifest(t *testing.T, content string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(content))
	if err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}
	return m
}

// UnsetEnv removes the named variables for the duration of the test.
func UnsetEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		// t.Setenv restores the original value when the test ends.
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("unsetting %s: %v", name, err)
		}
	}
}
