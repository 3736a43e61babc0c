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

// Package manifest models rockcraft.yaml and the snippets extensions merge into it.
package manifest

import (
	"fmt"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"gopkg.in/yaml.v2"
)

// FileName is the manifest file at the project root.
const FileName = "rockcraft.yaml"

// Manifest is the declarative image and build description.
type Manifest struct {
	Name        string                 `yaml:"name,omitempty"`
	Title       string                 `yaml:"title,omitempty"`
	Summary     string                 `yaml:"summary,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Version     string                 `yaml:"version,omitempty"`
	License     string                 `yaml:"license,omitempty"`
	Base        string                 `yaml:"base,omitempty"`
	BuildBase   string                 `yaml:"build-base,omitempty"`
	Platforms   map[string]interface{} `yaml:"platforms,omitempty"`
	RunUser     string                 `yaml:"run_user,omitempty"`
	Services    map[string]*Service    `yaml:"services,omitempty"`
	Parts       map[string]*Part       `yaml:"parts,omitempty"`
	Extensions  []string               `yaml:"extensions,omitempty"`

	// JavaRuntimeService configures the service added by the java-runtime extension.
	JavaRuntimeService *JavaRuntimeService `yaml:"java-runtime/service,omitempty"`

	// Extra holds keys this package does not model.
	Extra map[string]interface{} `yaml:",inline"`
}

// JavaRuntimeService is the java-runtime/service section.
type JavaRuntimeService struct {
	Jar  string `yaml:"jar,omitempty"`
	Name string `yaml:"name,omitempty"`
}

// Service is a Pebble service definition.
type Service struct {
	Override    string            `yaml:"override,omitempty"`
	Command     string            `yaml:"command,omitempty"`
	Summary     string            `yaml:"summary,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Startup     string            `yaml:"startup,omitempty"`
	After       []string          `yaml:"after,omitempty"`
	Before      []string          `yaml:"before,omitempty"`
	Requires    []string          `yaml:"requires,omitempty"`
	User        string            `yaml:"user,omitempty"`
	Group       string            `yaml:"group,omitempty"`
	WorkingDir  string            `yaml:"working-dir,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`

	Extra map[string]interface{} `yaml:",inline"`
}

// Part is a unit of build work. Plugin specific properties live in Extra.
type Part struct {
	Plugin           string              `yaml:"plugin,omitempty"`
	Source           string              `yaml:"source,omitempty"`
	SourceType       string              `yaml:"source-type,omitempty"`
	SourceBranch     string              `yaml:"source-branch,omitempty"`
	SourceTag        string              `yaml:"source-tag,omitempty"`
	SourceSubdir     string              `yaml:"source-subdir,omitempty"`
	After            []string            `yaml:"after,omitempty"`
	BuildPackages    []string            `yaml:"build-packages,omitempty"`
	BuildSnaps       []string            `yaml:"build-snaps,omitempty"`
	StagePackages    []string            `yaml:"stage-packages,omitempty"`
	BuildEnvironment []map[string]string `yaml:"build-environment,omitempty"`
	OverrideBuild    string              `yaml:"override-build,omitempty"`
	OverrideStage    string              `yaml:"override-stage,omitempty"`
	OverridePrime    string              `yaml:"override-prime,omitempty"`
	Stage            []string            `yaml:"stage,omitempty"`
	Prime            []string            `yaml:"prime,omitempty"`

	Extra map[string]interface{} `yaml:",inline"`
}

// Parse unmarshals manifest content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, buildererror.UserErrorf("parsing %s: %v", FileName, err)
	}
	return &m, nil
}

// Load reads and parses the manifest at the project root. An empty name selects FileName.
func Load(ctx *craft.Context, name string) (*Manifest, error) {
	if name == "" {
		name = FileName
	}
	data, err := ctx.ReadFile(name)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	ctx.Debugf("Loaded manifest %q with %d parts", m.Name, len(m.Parts))
	return m, nil
}

// Marshal returns the YAML form of the manifest.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, buildererror.InternalErrorf("marshalling manifest: %v", err)
	}
	return data, nil
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() (*Manifest, error) {
	var c Manifest
	if err := roundTrip(m, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ToMap returns the manifest as a generic map with string keys at every level.
func (m *Manifest) ToMap() (map[string]interface{}, error) {
	return toMap(m)
}

// ToMap returns the part as a generic map with string keys at every level.
func (p *Part) ToMap() (map[string]interface{}, error) {
	return toMap(p)
}

// HasPart reports whether a part with the given name is declared.
func (m *Manifest) HasPart(name string) bool {
	_, ok := m.Parts[name]
	return ok
}

func roundTrip(in, out interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return buildererror.InternalErrorf("marshalling %T: %v", in, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return buildererror.InternalErrorf("unmarshalling %T: %v", out, err)
	}
	return nil
}

func toMap(in interface{}) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := roundTrip(in, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]interface{}{}, nil
	}
	return Normalize(raw).(map[string]interface{}), nil
}

// Normalize converts the map[interface{}]interface{} values produced by yaml.v2 into map[string]interface{}.
func Normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}
