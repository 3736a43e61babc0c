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
	// JavaRuntimeName is the registered name of the java-runtime extension.
	JavaRuntimeName = "java-runtime"

	javaRuntimeImagePart        = JavaRuntimeName + "/java-runtime-image"
	javaRuntimeDependenciesPart = JavaRuntimeName + "/java-runtime-dependencies"

	defaultServiceName   = "service"
	statsdExporter       = "statsd-exporter"
	statsdExporterCmd    = "/bin/statsd_exporter --statsd.mapping-config=/statsd-mapping.conf --statsd.listen-udp=localhost:9125 --statsd.listen-tcp=localhost:9125"
	daemonUser           = "_daemon_"
	javaLauncher         = "/opt/java/bin/java"
	javaRuntimeChiselCut = "chisel cut --release ./ --root ${CRAFT_PART_INSTALL} base-files_base openjdk-21-jre-headless_core"
)

var ubuntuNobleBases = []string{"bare", "ubuntu@24.04", "ubuntu:24.04"}

// javaRuntime runs a jar as a Pebble service next to a statsd exporter.
type javaRuntime struct {
	ctx *craft.Context
	cfg *config.Config
	m   *manifest.Manifest
}

func newJavaRuntime(ctx *craft.Context, cfg *config.Config, m *manifest.Manifest) Extension {
	return &javaRuntime{ctx: ctx, cfg: cfg, m: m}
}

func (e *javaRuntime) SupportedBases() []string {
	return ubuntuNobleBases
}

func (e *javaRuntime) Experimental(string) bool {
	return true
}

func (e *javaRuntime) RootSnippet() (*manifest.Manifest, error) {
	svc := e.m.JavaRuntimeService
	if svc == nil || svc.Jar == "" {
		e.ctx.Debugf("No %s/service jar configured", JavaRuntimeName)
		return nil, nil
	}
	name := svc.Name
	if name == "" {
		name = defaultServiceName
	}
	if name == statsdExporter {
		return nil, buildererror.ExtensionError(docSlug, "service name %q is reserved by the %s extension", name, JavaRuntimeName)
	}

	return &manifest.Manifest{
		RunUser: daemonUser,
		Services: map[string]*manifest.Service{
			name: {
				Override: "replace",
				Startup:  "enabled",
				Command:  javaLauncher + " -jar " + svc.Jar,
				After:    []string{statsdExporter},
				User:     daemonUser,
			},
			statsdExporter: {
				Override: "merge",
				Command:  statsdExporterCmd,
				Summary:  "statsd exporter service",
				Startup:  "enabled",
				User:     daemonUser,
			},
		},
	}, nil
}

func (e *javaRuntime) PartSnippet() (*manifest.Part, error) {
	return nil, nil
}

func (e *javaRuntime) PartsSnippet() (map[string]*manifest.Part, error) {
	return map[string]*manifest.Part{
		javaRuntimeImagePart: {
			Plugin:        "nil",
			BuildPackages: []string{java.JDKPackage(java.DefaultVersion)},
			OverrideBuild: "jlink --add-modules ALL-MODULE-PATH --output ${CRAFT_PART_INSTALL}/opt/java",
		},
		javaRuntimeDependenciesPart: {
			Plugin:        "nil",
			Source:        e.cfg.Chisel.Repository,
			SourceType:    "git",
			SourceBranch:  e.cfg.Chisel.JavaRuntimeBranch,
			OverrideBuild: javaRuntimeChiselCut,
		},
	}, nil
}
