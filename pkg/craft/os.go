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

package craft

import (
	"os"
	"path/filepath"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
)

// ProjectPath joins elem onto the project root. Absolute paths are returned unchanged.
func (ctx *Context) ProjectPath(elem ...string) string {
	path := filepath.Join(elem...)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ctx.projectRoot, path)
}

// FileExists returns true if a file exists at the path joined by elem, relative to the project root.
func (ctx *Context) FileExists(elem ...string) (bool, error) {
	path := ctx.ProjectPath(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, buildererror.Errorf(buildererror.StatusInternal, "stat %q: %v", path, err)
	}
	return true, nil
}

// ReadFile is a pass through for os.ReadFile(...) relative to the project root.
func (ctx *Context) ReadFile(elem ...string) ([]byte, error) {
	path := ctx.ProjectPath(elem...)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, buildererror.Errorf(buildererror.StatusInternal, "reading file %q: %v", path, err)
	}
	return data, nil
}

// MkdirAll is a pass through for os.MkdirAll(...) and returns any error with proper user / system attribution
func (ctx *Context) MkdirAll(path string, perm os.FileMode) error {
	ctx.Debugf("Creating directory %q", path)
	if err := os.MkdirAll(path, perm); err != nil {
		return buildererror.Errorf(buildererror.StatusInternal, "creating %s: %v", path, err)
	}
	return nil
}

// WriteFile is a pass through for os.WriteFile(...) and returns any error with proper user / system attribution
func (ctx *Context) WriteFile(filename string, data []byte, perm os.FileMode) error {
	ctx.Debugf("Writing %d bytes to %q", len(data), filename)
	if err := os.WriteFile(filename, data, perm); err != nil {
		return buildererror.Errorf(buildererror.StatusInternal, "writing file %q: %v", filename, err)
	}
	return nil
}

// Glob is a pass through for filepath.Glob(...) relative to the project root.
func (ctx *Context) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(ctx.ProjectPath(pattern))
	if err != nil {
		return nil, buildererror.Errorf(buildererror.StatusInternal, "finding files with pattern %q: %v", pattern, err)
	}
	return matches, nil
}
