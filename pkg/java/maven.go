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

package java

import (
	"encoding/xml"
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
)

const (
	springBootGroupID      = "org.springframework.boot"
	springBootMavenPlugin  = "spring-boot-maven-plugin"
	springBootStarterMatch = "spring-boot-starter"
)

// MavenProject is the root struct that contains the unmarshalled pom.xml.
type MavenProject struct {
	Parent       MavenDependency   `xml:"parent"`
	GroupID      string            `xml:"groupId"`
	ArtifactID   string            `xml:"artifactId"`
	Version      string            `xml:"version"`
	Packaging    string            `xml:"packaging"`
	JavaVersion  string            `xml:"properties>java.version"`
	Plugins      []MavenPlugin     `xml:"build>plugins>plugin"`
	Dependencies []MavenDependency `xml:"dependencies>dependency"`
}

// MavenPlugin describes plugins defined in the pom.xml.
type MavenPlugin struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

// MavenDependency describes a dependency in the pom.xml.
type MavenDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// ParsePomFile unmarshals the provided pom.xml into a MavenProject.
func ParsePomFile(pomFile []byte) (*MavenProject, error) {
	var proj MavenProject
	if err := xml.Unmarshal(pomFile, &proj); err != nil {
		return nil, buildererror.UserErrorf("parsing pom.xml: %v", err)
	}

	return &proj, nil
}

// SpringBootPluginDefined reports whether the spring-boot-maven-plugin is declared.
func (p *MavenProject) SpringBootPluginDefined() bool {
	for _, plugin := range p.Plugins {
		if plugin.GroupID == springBootGroupID && plugin.ArtifactID == springBootMavenPlugin {
			return true
		}
	}
	return false
}

// SpringBootStarterDefined reports whether a Spring Boot starter is the parent or a dependency.
func (p *MavenProject) SpringBootStarterDefined() bool {
	if strings.Contains(p.Parent.ArtifactID, springBootStarterMatch) {
		return true
	}
	for _, dependency := range p.Dependencies {
		if strings.Contains(dependency.ArtifactID, springBootStarterMatch) {
			return true
		}
	}
	return false
}
