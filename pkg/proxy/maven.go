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

package proxy

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/settings.xml.tmpl
var templateFS embed.FS

var (
	settingsOnce sync.Once
	settingsTmpl *template.Template
	settingsErr  error
)

func loadSettingsTemplate() (*template.Template, error) {
	settingsOnce.Do(func() {
		settingsTmpl, settingsErr = template.New("settings.xml.tmpl").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/settings.xml.tmpl")
	})
	return settingsTmpl, settingsErr
}

// MavenSettings renders a Maven settings.xml configuring one proxy per entry in s.
func MavenSettings(s *Settings) ([]byte, error) {
	tmpl, err := loadSettingsTemplate()
	if err != nil {
		return nil, fmt.Errorf("loading settings.xml template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return nil, fmt.Errorf("rendering settings.xml: %w", err)
	}
	return buf.Bytes(), nil
}
