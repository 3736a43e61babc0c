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

import "github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"

// NilName is the registered name of the nil plugin.
const NilName = "nil"

// nilPlugin does nothing. Parts using it build through override-build.
type nilPlugin struct{}

func newNil(*craft.Context, PartInfo, []byte) (Plugin, error) {
	return nilPlugin{}, nil
}

func (nilPlugin) BuildPackages() []string {
	return nil
}

func (nilPlugin) BuildSnaps() []string {
	return nil
}

func (nilPlugin) BuildEnvironment() map[string]string {
	return map[string]string{}
}

func (nilPlugin) BuildCommands() ([]string, error) {
	return nil, nil
}
