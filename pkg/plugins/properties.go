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
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
	"github.com/santhosh-tekuri/jsonschema/v5"
	yamlv2 "gopkg.in/yaml.v2"
	"sigs.k8s.io/yaml"
)

//go:embed schema/*.json
var schemaFS embed.FS

// ExtractProperties returns the part properties owned by plugin: keys prefixed
// with "<plugin>-" and any of keys.
func ExtractProperties(data map[string]interface{}, plugin string, keys ...string) map[string]interface{} {
	prefix := plugin + "-"
	out := map[string]interface{}{}
	for k, v := range data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
			continue
		}
		for _, key := range keys {
			if k == key {
				out[k] = v
			}
		}
	}
	return out
}

func (d *definition) loadSchema(name string) (*jsonschema.Schema, error) {
	d.once.Do(func() {
		content, err := schemaFS.ReadFile("schema/" + name + ".json")
		if err != nil {
			d.err = fmt.Errorf("reading schema for %s: %w", name, err)
			return
		}
		url := "file:///schema/" + name + ".json"
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(url, bytes.NewReader(content)); err != nil {
			d.err = fmt.Errorf("adding schema for %s: %w", name, err)
			return
		}
		d.schema, d.err = compiler.Compile(url)
	})
	return d.schema, d.err
}

// properties extracts and validates the plugin's properties from part, returning them as JSON.
func (d *definition) properties(name string, part *manifest.Part) ([]byte, error) {
	sch, err := d.loadSchema(name)
	if err != nil {
		return nil, err
	}
	data, err := part.ToMap()
	if err != nil {
		return nil, err
	}
	content, err := yamlv2.Marshal(ExtractProperties(data, name, d.keys...))
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}
	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, fmt.Errorf("convert yaml to json: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var document interface{}
	if err := dec.Decode(&document); err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return nil, err
	}
	return jsonData, nil
}
