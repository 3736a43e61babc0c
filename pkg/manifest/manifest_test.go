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

package manifest

import (
	"testing"

	"github.com/GoogleCloudPlatform/rockcraft-java/pkg/craft"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
)

func mustParse(t *testing.T, content string) *Manifest {
	t.Helper()
	m, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() got error: %v", err)
	}
	return m
}

func TestLoad(t *testing.T) {
	ctx := craft.NewContext(craft.WithProjectRoot("testdata"), craft.WithLogger(zap.NewNop()))
	m, err := Load(ctx, "")
	if err != nil {
		t.Fatalf("Load() got error: %v", err)
	}

	if m.Name != "petclinic" || m.Base != "ubuntu@24.04" || m.Version != "0.1" {
		t.Errorf("Load() scalar fields = %q %q %q", m.Name, m.Base, m.Version)
	}
	if diff := cmp.Diff(&JavaRuntimeService{Jar: "/jars/petclinic.jar", Name: "petclinic"}, m.JavaRuntimeService); diff != "" {
		t.Errorf("JavaRuntimeService mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"java-runtime"}, m.Extensions); diff != "" {
		t.Errorf("Extensions mismatch (-want +got):\n%s", diff)
	}
	wantPart := &Part{
		Plugin:           "maven",
		Source:           ".",
		BuildEnvironment: []map[string]string{{"JAVA_OPTS": "-Xmx1g"}},
		Extra:            map[string]interface{}{"maven-parameters": []interface{}{"-DskipTests"}},
	}
	if diff := cmp.Diff(wantPart, m.Parts["petclinic"]); diff != "" {
		t.Errorf("part mismatch (-want +got):\n%s", diff)
	}
	if got := m.Services["petclinic"].Environment["SERVER_PORT"]; got != "8080" {
		t.Errorf("service environment SERVER_PORT = %q, want 8080", got)
	}
	if _, ok := m.Extra["package-repositories"]; !ok {
		t.Errorf("Extra = %v, want package-repositories preserved", m.Extra)
	}
}

func TestLoadMissing(t *testing.T) {
	ctx := craft.NewContext(craft.WithProjectRoot(t.TempDir()), craft.WithLogger(zap.NewNop()))
	if _, err := Load(ctx, ""); err == nil {
		t.Errorf("Load() got nil error for missing manifest")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("parts: [")); err == nil {
		t.Errorf("Parse() got nil error for invalid YAML")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	ctx := craft.NewContext(craft.WithProjectRoot("testdata"), craft.WithLogger(zap.NewNop()))
	m, err := Load(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal() got error: %v", err)
	}
	got := mustParse(t, string(data))
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	m := mustParse(t, `
name: app
parts:
  app:
    plugin: gradle
    build-packages: [git]
`)
	c, err := m.Clone()
	if err != nil {
		t.Fatalf("Clone() got error: %v", err)
	}
	c.Parts["app"].BuildPackages[0] = "curl"
	c.Name = "other"

	if m.Parts["app"].BuildPackages[0] != "git" || m.Name != "app" {
		t.Errorf("modifying the clone changed the original: %+v", m)
	}
}

func TestHasPart(t *testing.T) {
	m := mustParse(t, "parts:\n  app:\n    plugin: nil\n")
	if !m.HasPart("app") {
		t.Errorf("HasPart(app) = false, want true")
	}
	if m.HasPart("other") {
		t.Errorf("HasPart(other) = true, want false")
	}
}

func TestToMap(t *testing.T) {
	p := &Part{
		Plugin: "jlink",
		Extra:  map[string]interface{}{"jlink-jars": []interface{}{"jars/app.jar"}, "jlink-java-version": 17},
	}
	got, err := p.ToMap()
	if err != nil {
		t.Fatalf("ToMap() got error: %v", err)
	}
	want := map[string]interface{}{
		"plugin":             "jlink",
		"jlink-jars":         []interface{}{"jars/app.jar"},
		"jlink-java-version": 17,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	in := map[interface{}]interface{}{
		"a": []interface{}{map[interface{}]interface{}{1: "one"}},
	}
	want := map[string]interface{}{
		"a": []interface{}{map[string]interface{}{"1": "one"}},
	}
	if diff := cmp.Diff(want, Normalize(in)); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

var equateEmpty = cmpopts.EquateEmpty()
