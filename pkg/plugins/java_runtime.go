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

package plugins

import (
	"encoding/json"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/java"
)

const (
	// JavaRuntimeName is the registered name of the java-runtime plugin.
	JavaRuntimeName = "java-runtime"

	javaRuntimeChiselCut = "chisel cut --release ./ --root ${CRAFT_PART_INSTALL} base-files_base openjdk-21-jre-headless_security"
)

type javaRuntimeProperties struct {
	Source     string   `json:"source"`
	SourceType string   `json:"source-type"`
	Jars       []string `json:"java-runtime-jars"`
}

// javaRuntime links a runtime for the jars staged under ${CRAFT_STAGE}/jars.
// The part source is a chisel-releases checkout providing the security slice.
type javaRuntime struct {
	props javaRuntimeProperties
}

func newJavaRuntime(ctx *craft.Context, info PartInfo, data []byte) (Plugin, error) {
	var props javaRuntimeProperties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, buildererror.InternalErrorf("decoding java-runtime properties: %v", err)
	}
	if len(props.Jars) == 0 {
		ctx.Debugf("Part %q processes every jar under ${CRAFT_STAGE}/jars", info.Name)
	}
	return &javaRuntime{props: props}, nil
}

func (p *javaRuntime) BuildPackages() []string {
	return sorted(java.HeadlessJDKPackage(java.DefaultVersion), "ca-certificates-java")
}

func (p *javaRuntime) BuildSnaps() []string {
	return nil
}

func (p *javaRuntime) BuildEnvironment() map[string]string {
	return map[string]string{}
}

func (p *javaRuntime) BuildCommands() ([]string, error) {
	return java.RuntimeImage{
		Version:   java.DefaultVersion,
		Jars:      p.props.Jars,
		SearchDir: "${CRAFT_STAGE}/jars",
		PreLink:   []string{javaRuntimeChiselCut},
	}.Commands(), nil
}
