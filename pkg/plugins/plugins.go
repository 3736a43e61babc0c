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

// Package plugins defines the build plugins that turn a part into packages and shell commands.
package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Plugin reports what a part needs to build and the commands that build it.
// Commands run in order in the part's build directory, with CRAFT_PART_INSTALL,
// CRAFT_PART_BUILD, CRAFT_STAGE and CRAFT_TARGET_ARCH set by the build environment.
type Plugin interface {
	BuildPackages() []string
	BuildSnaps() []string
	BuildEnvironment() map[string]string
	BuildCommands() ([]string, error)
}

// PartInfo identifies the part a plugin builds.
type PartInfo struct {
	Name string
	// BuildDir is the part's build directory on the host.
	BuildDir string
}

type factory func(ctx *craft.Context, info PartInfo, properties []byte) (Plugin, error)

// definition ties a plugin name to its property schema and constructor.
type definition struct {
	// keys are taken from the part in addition to those prefixed with "<name>-".
	keys    []string
	newFunc factory

	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var registry = map[string]*definition{}

func register(name string, d *definition) {
	if _, ok := registry[name]; ok {
		panic("plugin " + name + " registered twice")
	}
	registry[name] = d
}

func init() {
	register(GradleName, &definition{keys: []string{"source"}, newFunc: newGradle})
	register(MavenName, &definition{keys: []string{"source"}, newFunc: newMaven})
	register(JavaRuntimeName, &definition{keys: []string{"source", "source-type"}, newFunc: newJavaRuntime})
	register(JLinkName, &definition{newFunc: newJLink})
	register(NilName, &definition{newFunc: newNil})
}

// Names returns the registered plugin names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New validates the part's properties and returns the plugin that builds it.
// A part without a plugin key uses the plugin named like the part.
func New(ctx *craft.Context, info PartInfo, part *manifest.Part) (Plugin, error) {
	name := part.Plugin
	if name == "" {
		name = info.Name
	}
	d, ok := registry[name]
	if !ok {
		return nil, buildererror.Errorf(buildererror.StatusNotFound, "plugin %q for part %q is not registered", name, info.Name)
	}
	props, err := d.properties(name, part)
	if err != nil {
		return nil, buildererror.Errorf(buildererror.StatusInvalidArgument, "invalid properties for part %q using plugin %q: %v", info.Name, name, err)
	}
	ctx.Debugf("Part %q properties for plugin %q: %s", info.Name, name, props)
	p, err := d.newFunc(ctx, info, props)
	if err != nil {
		return nil, fmt.Errorf("creating plugin %q for part %q: %w", name, info.Name, err)
	}
	return p, nil
}

func sorted(items ...string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
