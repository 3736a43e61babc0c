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

// JLinkName is the registered name of the jlink plugin.
const JLinkName = "jlink"

type jlinkProperties struct {
	JavaVersion int      `json:"jlink-java-version"`
	Jars        []string `json:"jlink-jars"`
}

// jlink links a runtime for the given jars, or every staged jar, with a chosen OpenJDK release.
type jlink struct {
	props jlinkProperties
}

func newJLink(_ *craft.Context, _ PartInfo, data []byte) (Plugin, error) {
	props := jlinkProperties{JavaVersion: java.DefaultVersion}
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, buildererror.InternalErrorf("decoding jlink properties: %v", err)
	}
	if err := java.CheckJLinkVersion(props.JavaVersion); err != nil {
		return nil, err
	}
	return &jlink{props: props}, nil
}

func (p *jlink) BuildPackages() []string {
	return sorted(java.JDKPackage(p.props.JavaVersion))
}

func (p *jlink) BuildSnaps() []string {
	return nil
}

func (p *jlink) BuildEnvironment() map[string]string {
	return map[string]string{}
}

func (p *jlink) BuildCommands() ([]string, error) {
	jars := make([]string, 0, len(p.props.Jars))
	for _, jar := range p.props.Jars {
		jars = append(jars, "${CRAFT_STAGE}/"+jar)
	}
	return java.RuntimeImage{
		Version:   p.props.JavaVersion,
		Jars:      jars,
		SearchDir: "${CRAFT_STAGE}",
	}.Commands(), nil
}
