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
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/config"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/java"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
)

const (
	// SpringBootFrameworkName is the registered name of the spring-boot-framework extension.
	SpringBootFrameworkName = "spring-boot-framework"

	springBootDocSlug    = docSlug + "/spring-boot-framework"
	springBootInstallApp = SpringBootFrameworkName + "/install-app"
	springBootRuntime    = SpringBootFrameworkName + "/runtime"

	pomXML  = "pom.xml"
	gradlew = "gradlew"

	mavenInstallApp = `
                        maven package
                        mkdir -p ${CRAFT_PART_INSTALL}/jar
                        find ${CRAFT_PART_BUILD}/ -iname "*.jar" -exec ln {} ${CRAFT_PART_INSTALL}/jar \;
                        craftctl default
                    `
	gradleInstallApp = `
                        ./gradlew jar --no-daemon
                        mkdir -p ${CRAFT_PART_INSTALL}/jar
                        find ${CRAFT_PART_BUILD}/ -iname "*.jar" -exec ln {} ${CRAFT_PART_INSTALL}/jar \;
                        craftctl default
                    `
)

// springBootFramework builds a Maven or Gradle Spring Boot project and links a trimmed runtime for it.
type springBootFramework struct {
	ctx *craft.Context
	cfg *config.Config
	m   *manifest.Manifest
}

func newSpringBootFramework(ctx *craft.Context, cfg *config.Config, m *manifest.Manifest) Extension {
	return &springBootFramework{ctx: ctx, cfg: cfg, m: m}
}

func (e *springBootFramework) SupportedBases() []string {
	return ubuntuNobleBases
}

func (e *springBootFramework) Experimental(string) bool {
	return true
}

func (e *springBootFramework) RootSnippet() (*manifest.Manifest, error) {
	maven, gradle, err := e.projectFiles()
	if err != nil {
		return nil, err
	}
	if !maven && !gradle {
		return nil, buildererror.ExtensionError(springBootDocSlug, "missing pom.xml or gradlew file")
	}
	if maven {
		e.checkPom()
	}
	return &manifest.Manifest{RunUser: daemonUser}, nil
}

func (e *springBootFramework) PartSnippet() (*manifest.Part, error) {
	return nil, nil
}

func (e *springBootFramework) PartsSnippet() (map[string]*manifest.Part, error) {
	parts := map[string]*manifest.Part{}
	if !e.m.HasPart(springBootInstallApp) {
		p, err := e.installAppPart()
		if err != nil {
			return nil, err
		}
		if p != nil {
			parts[springBootInstallApp] = p
		}
	}
	if !e.m.HasPart(springBootRuntime) {
		parts[springBootRuntime] = &manifest.Part{
			Plugin:       "jlink",
			After:        []string{springBootInstallApp},
			Source:       e.cfg.Chisel.Repository,
			SourceType:   "git",
			SourceBranch: e.cfg.Chisel.SpringBootBranch,
		}
	}
	return parts, nil
}

func (e *springBootFramework) installAppPart() (*manifest.Part, error) {
	maven, gradle, err := e.projectFiles()
	if err != nil {
		return nil, err
	}
	switch {
	case maven:
		return &manifest.Part{
			Plugin:        "nil",
			Source:        ".",
			SourceType:    "local",
			BuildPackages: []string{"default-jdk", "maven"},
			OverrideBuild: mavenInstallApp,
		}, nil
	case gradle:
		return &manifest.Part{
			Plugin:        "nil",
			Source:        ".",
			SourceType:    "local",
			BuildPackages: []string{"default-jdk"},
			OverrideBuild: gradleInstallApp,
		}, nil
	}
	return nil, nil
}

func (e *springBootFramework) projectFiles() (maven, gradle bool, err error) {
	maven, err = e.ctx.FileExists(pomXML)
	if err != nil {
		return false, false, err
	}
	gradle, err = e.ctx.FileExists(gradlew)
	if err != nil {
		return false, false, err
	}
	return maven, gradle, nil
}

// checkPom warns when pom.xml does not look like a Spring Boot project. It never fails.
func (e *springBootFramework) checkPom() {
	content, err := e.ctx.ReadFile(pomXML)
	if err != nil {
		e.ctx.Warnf("Failed to read %s: %v", pomXML, err)
		return
	}
	project, err := java.ParsePomFile(content)
	if err != nil {
		e.ctx.Warnf("Found %s but failed to parse it: %v", pomXML, err)
		return
	}
	if !project.SpringBootStarterDefined() && !project.SpringBootPluginDefined() {
		e.ctx.Warnf("Did not find a spring-boot-starter or spring-boot-maven-plugin in %s", pomXML)
		return
	}
	e.ctx.Debugf("Detected Spring Boot in %s", pomXML)
}
