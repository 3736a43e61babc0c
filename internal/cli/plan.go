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

package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/plugins"
	"gopkg.in/yaml.v2"
)

// Plan is what a part's plugin contributes to the build.
type Plan struct {
	Part             string            `json:"part" yaml:"part"`
	Plugin           string            `json:"plugin" yaml:"plugin"`
	BuildPackages    []string          `json:"build-packages" yaml:"build-packages"`
	BuildSnaps       []string          `json:"build-snaps" yaml:"build-snaps"`
	BuildEnvironment map[string]string `json:"build-environment" yaml:"build-environment"`
	Commands         []string          `json:"commands" yaml:"commands"`
}

// PlanCmd prints the plugin plan of a part of the expanded manifest.
type PlanCmd struct {
	ProjectFlags `embed:""`

	Part     string `required:"" help:"Part to plan."`
	BuildDir string `type:"path" help:"Build directory of the part. Defaults to <project-dir>/parts/<part>/build."`
	Format   string `enum:"yaml,json,script" default:"yaml" help:"Output format: yaml, json or script."`
}

// Run executes the plan command.
func (c *PlanCmd) Run(g *Globals) error {
	ctx, m, err := g.expandedManifest(c.ProjectFlags)
	if err != nil {
		return err
	}
	part, ok := m.Parts[c.Part]
	if !ok {
		return buildererror.UserErrorf("part %q is not defined in %s", c.Part, c.File)
	}
	buildDir := c.BuildDir
	if buildDir == "" {
		buildDir = ctx.ProjectPath("parts", c.Part, "build")
	}
	p, err := plugins.New(ctx, plugins.PartInfo{Name: c.Part, BuildDir: filepath.Clean(buildDir)}, part)
	if err != nil {
		return err
	}
	commands, err := p.BuildCommands()
	if err != nil {
		return err
	}
	plan := Plan{
		Part:             c.Part,
		Plugin:           part.Plugin,
		BuildPackages:    p.BuildPackages(),
		BuildSnaps:       p.BuildSnaps(),
		BuildEnvironment: p.BuildEnvironment(),
		Commands:         commands,
	}
	if plan.Plugin == "" {
		plan.Plugin = c.Part
	}

	out, err := plan.format(c.Format)
	if err != nil {
		return err
	}
	_, err = g.Out.Write(out)
	return err
}

func (p Plan) format(format string) ([]byte, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, buildererror.InternalErrorf("marshalling plan: %v", err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, buildererror.InternalErrorf("marshalling plan: %v", err)
		}
		return append(data, '\n'), nil
	case "script":
		return []byte(p.script()), nil
	}
	return nil, buildererror.UserErrorf("unknown plan format %q", format)
}

// script renders the plan as the shell script the build step runs.
func (p Plan) script() string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\nset -euo pipefail\n")
	keys := make([]string, 0, len(p.BuildEnvironment))
	for k := range p.BuildEnvironment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "export %s=\"%s\"\n", k, p.BuildEnvironment[k])
	}
	for _, cmd := range p.Commands {
		b.WriteString(cmd)
		b.WriteString("\n")
	}
	return b.String()
}
