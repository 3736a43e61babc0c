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
	"embed"
	"testing"

	"github.com/google/go-cmp/cmp"
)

//go:embed testdata/*
var testData embed.FS

func TestParseValidPom(t *testing.T) {
	tests := []struct {
		path string
		want MavenProject
	}{
		{
			path: "testdata/spring_boot_project.xml",
			want: MavenProject{
				Parent: MavenDependency{
					GroupID:    "org.springframework.boot",
					ArtifactID: "spring-boot-starter-parent",
					Version:    "3.3.0",
				},
				GroupID:     "com.example",
				ArtifactID:  "demo",
				Version:     "0.0.1-SNAPSHOT",
				JavaVersion: "21",
				Plugins: []MavenPlugin{
					{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-maven-plugin"},
				},
				Dependencies: []MavenDependency{
					{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-starter-web"},
				},
			},
		},
		{
			path: "testdata/plain_project.xml",
			want: MavenProject{
				GroupID:    "com.example",
				ArtifactID: "tool",
				Version:    "1.0",
				Packaging:  "jar",
				Plugins: []MavenPlugin{
					{GroupID: "org.apache.maven.plugins", ArtifactID: "maven-jar-plugin"},
				},
				Dependencies: []MavenDependency{
					{GroupID: "com.google.guava", ArtifactID: "guava", Version: "33.0.0-jre"},
				},
			},
		},
		{
			path: "testdata/empty_project.xml",
			want: MavenProject{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			pomFile, err := testData.ReadFile(tc.path)
			if err != nil {
				t.Fatalf("Unable to find pom file %s, %v", tc.path, err)
			}

			got, err := ParsePomFile(pomFile)
			if err != nil {
				t.Fatalf("ParsePomFile failed to parse pom.xml: %v", err)
			}

			if diff := cmp.Diff(tc.want, *got); diff != "" {
				t.Errorf("ParsePomFile(%s) mismatch (-want +got):\n%s", tc.path, diff)
			}
		})
	}
}

func TestParseInvalidPom(t *testing.T) {
	tests := []string{
		"testdata/invalid_project.xml",
		"testdata/empty_file.xml",
	}

	for _, tc := range tests {
		t.Run(tc, func(t *testing.T) {
			pomFile, err := testData.ReadFile(tc)
			if err != nil {
				t.Fatalf("Unable to find pom file %s, %v", tc, err)
			}

			if _, err := ParsePomFile(pomFile); err == nil {
				t.Errorf("ParsePomFile succeeded for invalid pom: %s, want error", tc)
			}
		})
	}
}

func TestSpringBootDetection(t *testing.T) {
	tests := []struct {
		name        string
		project     MavenProject
		wantPlugin  bool
		wantStarter bool
	}{
		{
			name: "plugin and starter dependency",
			project: MavenProject{
				Plugins:      []MavenPlugin{{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-maven-plugin"}},
				Dependencies: []MavenDependency{{ArtifactID: "spring-boot-starter-web"}},
			},
			wantPlugin:  true,
			wantStarter: true,
		},
		{
			name:        "starter parent only",
			project:     MavenProject{Parent: MavenDependency{ArtifactID: "spring-boot-starter-parent"}},
			wantStarter: true,
		},
		{
			name: "plugin with another group",
			project: MavenProject{
				Plugins: []MavenPlugin{{GroupID: "com.example", ArtifactID: "spring-boot-maven-plugin"}},
			},
		},
		{
			name: "plain project",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.project.SpringBootPluginDefined(); got != tc.wantPlugin {
				t.Errorf("SpringBootPluginDefined() = %t, want %t", got, tc.wantPlugin)
			}
			if got := tc.project.SpringBootStarterDefined(); got != tc.wantStarter {
				t.Errorf("SpringBootStarterDefined() = %t, want %t", got, tc.wantStarter)
			}
		})
	}
}
