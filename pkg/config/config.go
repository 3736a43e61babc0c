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

// Package config holds the pinned external sources referenced by the Java extensions and plugins.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/buildererror"
	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/env"
)

const (
	// DefaultChiselRepository hosts the chisel slice definitions for the OpenJDK runtimes.
	DefaultChiselRepository = "https://github.com/vpa1977/chisel-releases"
	// DefaultJavaRuntimeBranch is the slice branch cut by the java-runtime extension.
	DefaultJavaRuntimeBranch = "24.04-openjdk-21-slice"
	// DefaultSpringBootBranch is the slice branch cut by the spring-boot-framework extension.
	DefaultSpringBootBranch = "24.04-openjdk-21-jre-headless"
)

// Config is the set of pinned sources.
type Config struct {
	Chisel Chisel `toml:"chisel"`
}

// Chisel describes where chisel-releases checkouts come from.
type Chisel struct {
	Repository        string `toml:"repository"`
	JavaRuntimeBranch string `toml:"java-runtime-branch"`
	SpringBootBranch  string `toml:"spring-boot-branch"`
}

// Default returns the built-in pinned sources.
func Default() *Config {
	return &Config{
		Chisel: Chisel{
			Repository:        DefaultChiselRepository,
			JavaRuntimeBranch: DefaultJavaRuntimeBranch,
			SpringBootBranch:  DefaultSpringBootBranch,
		},
	}
}

// Parse decodes TOML content on top of the defaults. Keys left unset keep their default.
func Parse(content string) (*Config, error) {
	cfg := Default()
	meta, err := toml.Decode(content, cfg)
	if err != nil {
		return nil, buildererror.UserErrorf("parsing config: %v", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, buildererror.UserErrorf("unknown config keys: %v", undecoded)
	}
	return cfg, nil
}

// Load reads the config file at path. An empty path falls back to $ROCKCRAFT_JAVA_CONFIG, then to the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(env.ConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, buildererror.UserErrorf("reading config %q: %v", path, err)
	}
	cfg, err := Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}
