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
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/java"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/proxy"
)

const (
	// GradleName is the registered name of the gradle plugin.
	GradleName = "gradle"

	defaultGradleParameters = "jar --no-daemon"
	exportJavaHome          = "export JAVA_HOME=$(dirname $(dirname $(readlink -f /usr/bin/java)))"
	mkdirInstallJars        = "mkdir -p ${CRAFT_PART_INSTALL}/jars"
)

type gradleProperties struct {
	Source     string `json:"source"`
	Parameters string `json:"gradle-parameters"`
	UseWrapper bool   `json:"gradle-use-wrapper"`
}

// gradle builds jars with gradle, or the project's wrapper, and links them into ${CRAFT_PART_INSTALL}/jars.
type gradle struct {
	ctx   *craft.Context
	props gradleProperties
}

func newGradle(ctx *craft.Context, _ PartInfo, data []byte) (Plugin, error) {
	props := gradleProperties{UseWrapper: true}
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, buildererror.InternalErrorf("decoding gradle properties: %v", err)
	}
	return &gradle{ctx: ctx, props: props}, nil
}

func (p *gradle) BuildPackages() []string {
	return sorted(java.HeadlessJDKPackage(java.DefaultVersion))
}

func (p *gradle) BuildSnaps() []string {
	return []string{"gradle"}
}

func (p *gradle) BuildEnvironment() map[string]string {
	return map[string]string{}
}

func (p *gradle) BuildCommands() ([]string, error) {
	cmd := []string{"gradle"}
	if p.props.UseWrapper {
		cmd = []string{"./gradlew"}
	}
	proxyArgs, err := proxy.GradleProxyArgs()
	if err != nil {
		return nil, buildererror.UserErrorf("resolving proxy settings: %v", err)
	}
	if len(proxyArgs) > 0 {
		p.ctx.Debugf("Passing %d proxy properties to gradle", len(proxyArgs))
	}
	cmd = append(cmd, proxyArgs...)

	params := p.props.Parameters
	if params == "" {
		params = defaultGradleParameters
	}
	cmd = append(cmd, params)

	return []string{
		exportJavaHome,
		strings.Join(cmd, " "),
		mkdirInstallJars,
		`find ${CRAFT_PART_BUILD}/build/libs -iname "*.jar" -exec ln {} ${CRAFT_PART_INSTALL}/jars \;`,
	}, nil
}
