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
	"os"
	"path/filepath"
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/java"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/proxy"
)

// MavenName is the registered name of the maven plugin.
const MavenName = "maven"

type mavenProperties struct {
	Source     string   `json:"source"`
	Parameters []string `json:"maven-parameters"`
}

// maven runs mvn package and links the jars under target/ into ${CRAFT_PART_INSTALL}/jars.
type maven struct {
	ctx   *craft.Context
	info  PartInfo
	props mavenProperties
}

func newMaven(ctx *craft.Context, info PartInfo, data []byte) (Plugin, error) {
	var props mavenProperties
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, buildererror.InternalErrorf("decoding maven properties: %v", err)
	}
	return &maven{ctx: ctx, info: info, props: props}, nil
}

func (p *maven) BuildPackages() []string {
	return sorted("maven", java.JDKPackage(java.DefaultVersion))
}

func (p *maven) BuildSnaps() []string {
	return nil
}

func (p *maven) BuildEnvironment() map[string]string {
	return map[string]string{}
}

// BuildCommands writes the proxy settings file when a proxy is configured.
func (p *maven) BuildCommands() ([]string, error) {
	cmd := []string{"mvn", "package"}
	if proxy.InUse(os.LookupEnv) {
		path, err := p.writeSettings()
		if err != nil {
			return nil, err
		}
		cmd = append(cmd, "-s", path)
	}
	cmd = append(cmd, p.props.Parameters...)

	return []string{
		strings.Join(cmd, " "),
		mkdirInstallJars,
		`find ${CRAFT_PART_BUILD}/target -iname "*.jar" -exec ln {} ${CRAFT_PART_INSTALL}/jars \;`,
	}, nil
}

func (p *maven) writeSettings() (string, error) {
	if p.info.BuildDir == "" {
		return "", buildererror.InternalErrorf("part %q has no build directory for the maven settings file", p.info.Name)
	}
	settings, err := proxy.FromEnv()
	if err != nil {
		return "", buildererror.UserErrorf("resolving proxy settings: %v", err)
	}
	content, err := proxy.MavenSettings(settings)
	if err != nil {
		return "", buildererror.InternalErrorf("%v", err)
	}
	path := filepath.Join(p.info.BuildDir, ".parts", ".m2", "settings.xml")
	if err := p.ctx.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := p.ctx.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	p.ctx.Logf("Wrote maven proxy settings to %s", path)
	return path, nil
}
