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

package extensions

import (
	"strings"
	"testing"

	"github.com/GoogleCloudPlatform/rockcraft-java/internal/crafttest"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/config"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/env"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap/zapcore"
)

const (
	springBootInput = `
name: springboot
base: ubuntu@24.04
platforms:
  amd64: {}
extensions: [spring-boot-framework]
`
	springBootPom = `<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
  </parent>
</project>`
)

func springBootWant(t *testing.T, installApp *manifest.Part) *manifest.Manifest {
	t.Helper()
	want := crafttest.MustParseManifest(t, `
name: springboot
base: ubuntu@24.04
platforms:
  amd64: {}
run_user: _daemon_
`)
	want.Parts = map[string]*manifest.Part{
		"spring-boot-framework/install-app": installApp,
		"spring-boot-framework/runtime": {
			Plugin:       "jlink",
			After:        []string{"spring-boot-framework/install-app"},
			Source:       "https://github.com/vpa1977/chisel-releases",
			SourceType:   "git",
			SourceBranch: "24.04-openjdk-21-jre-headless",
		},
	}
	return want
}

func TestApplySpringBoot(t *testing.T) {
	mavenPart := &manifest.Part{
		Plugin:        "nil",
		Source:        ".",
		SourceType:    "local",
		BuildPackages: []string{"default-jdk", "maven"},
		OverrideBuild: "\n                        maven package\n                        mkdir -p ${CRAFT_PART_INSTALL}/jar\n                        find ${CRAFT_PART_BUILD}/ -iname \"*.jar\" -exec ln {} ${CRAFT_PART_INSTALL}/jar \\;\n                        craftctl default\n                    ",
	}
	gradlePart := &manifest.Part{
		Plugin:        "nil",
		Source:        ".",
		SourceType:    "local",
		BuildPackages: []string{"default-jdk"},
		OverrideBuild: "\n                        ./gradlew jar --no-daemon\n                        mkdir -p ${CRAFT_PART_INSTALL}/jar\n                        find ${CRAFT_PART_BUILD}/ -iname \"*.jar\" -exec ln {} ${CRAFT_PART_INSTALL}/jar \\;\n                        craftctl default\n                    ",
	}
	testCases := []struct {
		name  string
		files map[string]string
		want  *manifest.Part
	}{
		{
			name:  "maven",
			files: map[string]string{"pom.xml": springBootPom},
			want:  mavenPart,
		},
		{
			name:  "gradle",
			files: map[string]string{"gradlew": "#!/bin/sh"},
			want:  gradlePart,
		},
		{
			name:  "pom.xml takes precedence",
			files: map[string]string{"pom.xml": springBootPom, "gradlew": "#!/bin/sh"},
			want:  mavenPart,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(env.EnableExperimentalExtensions, "1")
			ctx, _ := crafttest.NewContext(t, crafttest.WithFiles(tc.files))

			got, err := Apply(ctx, config.Default(), crafttest.MustParseManifest(t, springBootInput))
			if err != nil {
				t.Fatalf("Apply() got error: %v", err)
			}
			if diff := cmp.Diff(springBootWant(t, tc.want), got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpringBootInstallAppCommands(t *testing.T) {
	testCases := []struct {
		file string
		want string
	}{
		{file: "pom.xml", want: "maven package"},
		{file: "gradlew", want: "./gradlew jar --no-daemon"},
	}
	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			ctx, _ := crafttest.NewContext(t, crafttest.WithFiles(map[string]string{tc.file: "<project/>"}))
			parts, err := newSpringBootFramework(ctx, config.Default(), &manifest.Manifest{}).PartsSnippet()
			if err != nil {
				t.Fatalf("PartsSnippet() got error: %v", err)
			}
			if got := parts["spring-boot-framework/install-app"].OverrideBuild; !strings.Contains(got, tc.want) {
				t.Errorf("install-app override-build = %q, want substring %q", got, tc.want)
			}
		})
	}
}

func TestSpringBootMissingProject(t *testing.T) {
	t.Setenv(env.EnableExperimentalExtensions, "1")
	ctx, _ := crafttest.NewContext(t, crafttest.WithFiles(map[string]string{"somefile": "random text"}))

	_, err := Apply(ctx, config.Default(), crafttest.MustParseManifest(t, springBootInput))
	wantExtensionError(t, err, "missing pom.xml or gradlew file", "/reference/extensions/spring-boot-framework")
}

func TestSpringBootKeepsUserParts(t *testing.T) {
	t.Setenv(env.EnableExperimentalExtensions, "1")
	ctx, _ := crafttest.NewContext(t, crafttest.WithFiles(map[string]string{"gradlew": "#!/bin/sh"}))
	m := crafttest.MustParseManifest(t, springBootInput+`
parts:
  spring-boot-framework/install-app:
    plugin: gradle
    source: .
    gradle-parameters: bootJar
  spring-boot-framework/runtime:
    plugin: jlink
    jlink-java-version: 17
`)

	got, err := Apply(ctx, config.Default(), m)
	if err != nil {
		t.Fatalf("Apply() got error: %v", err)
	}
	if diff := cmp.Diff(m.Parts, got.Parts, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Apply() changed user parts (-want +got):\n%s", diff)
	}
}

func TestSpringBootPartialUserParts(t *testing.T) {
	ctx, _ := crafttest.NewContext(t, crafttest.WithFiles(map[string]string{"pom.xml": springBootPom}))
	m := crafttest.MustParseManifest(t, "parts:\n  spring-boot-framework/install-app:\n    plugin: maven\n")

	parts, err := newSpringBootFramework(ctx, config.Default(), m).PartsSnippet()
	if err != nil {
		t.Fatalf("PartsSnippet() got error: %v", err)
	}
	if _, ok := parts["spring-boot-framework/install-app"]; ok {
		t.Errorf("PartsSnippet() synthesized a user-declared install-app part")
	}
	if _, ok := parts["spring-boot-framework/runtime"]; !ok {
		t.Errorf("PartsSnippet() did not synthesize the runtime part")
	}
}

func TestSpringBootPomWarnings(t *testing.T) {
	testCases := []struct {
		name     string
		pom      string
		wantWarn string
	}{
		{
			name:     "not a spring boot project",
			pom:      "<project><artifactId>tool</artifactId></project>",
			wantWarn: "Did not find a spring-boot-starter or spring-boot-maven-plugin in pom.xml",
		},
		{
			name:     "unparseable pom",
			pom:      "<project>",
			wantWarn: "Found pom.xml but failed to parse it",
		},
		{
			name: "spring boot project",
			pom:  springBootPom,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, logs := crafttest.NewContext(t, crafttest.WithFiles(map[string]string{"pom.xml": tc.pom}))
			root, err := newSpringBootFramework(ctx, config.Default(), &manifest.Manifest{}).RootSnippet()
			if err != nil {
				t.Fatalf("RootSnippet() got error: %v", err)
			}
			if root.RunUser != "_daemon_" {
				t.Errorf("RootSnippet().RunUser = %q, want _daemon_", root.RunUser)
			}
			warnings := logs.FilterLevelExact(zapcore.WarnLevel).Len()
			if tc.wantWarn == "" {
				if warnings != 0 {
					t.Errorf("got %d warnings, want none: %v", warnings, logs.All())
				}
				return
			}
			if !logs.Contains(zapcore.WarnLevel, tc.wantWarn) {
				t.Errorf("missing warning %q, got %v", tc.wantWarn, logs.All())
			}
		})
	}
}
