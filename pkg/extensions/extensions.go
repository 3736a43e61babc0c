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

// Package extensions expands extension directives in a manifest into parts and services.
package extensions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/config"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/env"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/manifest"
)

const docSlug = "/reference/extensions"

// Extension contributes snippets to a manifest.
type Extension interface {
	// SupportedBases lists the bases the extension can be applied to.
	SupportedBases() []string
	// Experimental reports whether the extension is experimental on base.
	Experimental(base string) bool
	// RootSnippet is merged into the top level of the manifest.
	RootSnippet() (*manifest.Manifest, error)
	// PartSnippet is merged into every part already in the manifest.
	PartSnippet() (*manifest.Part, error)
	// PartsSnippet holds parts added to the manifest. Names must be prefixed with "<extension>/".
	PartsSnippet() (map[string]*manifest.Part, error)
}

// Factory constructs an extension for a private copy of the manifest.
type Factory func(ctx *craft.Context, cfg *config.Config, m *manifest.Manifest) Extension

var registry = map[string]Factory{}

func register(name string, f Factory) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("extension %q registered twice", name))
	}
	registry[name] = f
}

func init() {
	register(JavaRuntimeName, newJavaRuntime)
	register(SpringBootFrameworkName, newSpringBootFramework)
}

// Names returns the registered extension names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, buildererror.ExtensionError(docSlug, "extension %q does not exist", name)
	}
	return f, nil
}

// Apply returns a copy of m with every declared extension applied in sorted order.
// The extensions key is removed from the result.
func Apply(ctx *craft.Context, cfg *config.Config, m *manifest.Manifest) (*manifest.Manifest, error) {
	out, err := m.Clone()
	if err != nil {
		return nil, err
	}
	if len(out.Extensions) == 0 {
		return out, nil
	}
	names := append([]string{}, out.Extensions...)
	sort.Strings(names)
	out.Extensions = nil

	for _, name := range names {
		f, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		snapshot, err := out.Clone()
		if err != nil {
			return nil, err
		}
		ext := f(ctx, cfg, snapshot)
		if err := validate(ctx, name, ext, out); err != nil {
			return nil, err
		}
		if err := apply(out, ext); err != nil {
			return nil, fmt.Errorf("applying extension %q: %w", name, err)
		}
		ctx.Debugf("Applied extension %q", name)
	}
	return out, nil
}

func validate(ctx *craft.Context, name string, ext Extension, m *manifest.Manifest) error {
	base := m.Base
	if base == "" {
		base = m.BuildBase
	}
	supported := false
	for _, b := range ext.SupportedBases() {
		if b == base {
			supported = true
			break
		}
	}
	if !supported {
		return buildererror.ExtensionError(docSlug, "extension %q does not support base: %q", name, base)
	}

	parts, err := ext.PartsSnippet()
	if err != nil {
		return err
	}
	var invalid []string
	for partName := range parts {
		if !strings.HasPrefix(partName, name+"/") {
			invalid = append(invalid, partName)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return buildererror.ExtensionError(docSlug, "extension has invalid part names: %q. Format is <extension-name>/<part-name>", invalid)
	}

	if ext.Experimental(base) {
		if !env.ExperimentalExtensionsEnabled() {
			return buildererror.ExtensionError(docSlug, "extension is experimental: %q", name)
		}
		ctx.Warnf("*EXPERIMENTAL* extension %q enabled", name)
	}
	return nil
}

func apply(m *manifest.Manifest, ext Extension) error {
	root, err := ext.RootSnippet()
	if err != nil {
		return err
	}
	if root != nil {
		if err := m.ApplyRoot(root); err != nil {
			return err
		}
	}

	part, err := ext.PartSnippet()
	if err != nil {
		return err
	}
	if part != nil {
		for name, p := range m.Parts {
			if p == nil {
				p = &manifest.Part{}
				m.Parts[name] = p
			}
			if err := p.Apply(part); err != nil {
				return err
			}
		}
	}

	parts, err := ext.PartsSnippet()
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}
	if m.Parts == nil {
		m.Parts = map[string]*manifest.Part{}
	}
	for name, p := range parts {
		if m.HasPart(name) {
			continue
		}
		m.Parts[name] = p
	}
	return nil
}
