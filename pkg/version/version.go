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

// Package version reports the version of the rockcraft-java tooling.
package version

import (
	"fmt"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/Masterminds/semver"
)

// Name is the command name.
const Name = "rockcraft-java"

// Version is overridden at build time with -ldflags "-X github.com/GoogleCloudPlatform/rockcraft-java/pkg/version.Version=<version>".
var Version = "0.1.0-dev"

// Semver parses Version.
func Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", Version, err)
	}
	return v, nil
}

// String returns the command name and the canonical form of Version.
// It fails when Version is not a semantic version.
func String() (string, error) {
	v, err := Semver()
	if err != nil {
		return "", buildererror.InternalErrorf("invalid build version: %v", err)
	}
	return fmt.Sprintf("%s %s", Name, v.String()), nil
}
