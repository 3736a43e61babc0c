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

// Package java contains Java helpers shared by the Java extensions and plugins.
package java

import (
	"fmt"
	"strconv"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/Masterminds/semver"
)

const (
	// DefaultVersion is the OpenJDK feature release used when none is requested.
	DefaultVersion = 21

	// minJLinkVersion is the first release shipping jlink and jdeps --print-module-deps.
	minJLinkVersion = ">= 9"
)

// JDKPackage returns the Ubuntu package providing the full JDK for version.
func JDKPackage(version int) string {
	return fmt.Sprintf("openjdk-%d-jdk", version)
}

// HeadlessJDKPackage returns the Ubuntu package providing the headless JDK for version.
func HeadlessJDKPackage(version int) string {
	return fmt.Sprintf("openjdk-%d-jdk-headless", version)
}

// JVMDir returns the JVM directory for version relative to the install root.
// The target architecture is left for the build environment to expand.
func JVMDir(version int) string {
	return fmt.Sprintf("usr/lib/jvm/java-%d-openjdk-${CRAFT_TARGET_ARCH}", version)
}

// CheckJLinkVersion returns an invalid-argument error when version predates jlink.
func CheckJLinkVersion(version int) error {
	c, err := semver.NewConstraint(minJLinkVersion)
	if err != nil {
		return buildererror.InternalErrorf("parsing constraint %q: %v", minJLinkVersion, err)
	}
	v, err := semver.NewVersion(strconv.Itoa(version))
	if err != nil {
		return buildererror.UserErrorf("invalid Java version %d: %v", version, err)
	}
	if !c.Check(v) {
		return buildererror.Errorf(buildererror.StatusInvalidArgument, "Java version %d does not provide jlink, want version %s", version, minJLinkVersion)
	}
	return nil
}
