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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJLinkBuildCommands(t *testing.T) {
	p := mustNewPlugin(t, PartInfo{Name: "runtime"}, "    plugin: jlink\n")
	got, err := p.BuildCommands()
	if err != nil {
		t.Fatalf("BuildCommands() got error: %v", err)
	}
	want := []string{
		`PROCESS_JARS=$(find ${CRAFT_STAGE} -type f -name "*.jar")`,
		"mkdir -p ${CRAFT_PART_BUILD}/tmp",
		"(cd ${CRAFT_PART_BUILD}/tmp && for jar in ${PROCESS_JARS}; do jar xvf ${jar}; done;)",
		`CPATH=$(find ${CRAFT_PART_BUILD}/tmp -type f -name "*.jar")`,
		"CPATH=$(echo ${CPATH}:. | sed s'/[[:space:]]/:/'g)",
		"echo ${CPATH}",
		`if [ "x${PROCESS_JARS}" != "x" ]; then deps=$(jdeps --class-path=${CPATH} -q --recursive --ignore-missing-deps --print-module-deps --multi-release 21 ${PROCESS_JARS}); else deps=java.base; fi`,
		"INSTALL_ROOT=${CRAFT_PART_INSTALL}/usr/lib/jvm/java-21-openjdk-${CRAFT_TARGET_ARCH}/",
		"rm -rf ${INSTALL_ROOT} && jlink --add-modules ${deps} --output ${INSTALL_ROOT}",
		"(cd ${CRAFT_PART_INSTALL} && mkdir -p usr/bin && ln -s --relative usr/lib/jvm/java-21-openjdk-${CRAFT_TARGET_ARCH}/bin/java usr/bin/)",
		"mkdir -p ${CRAFT_PART_INSTALL}/etc/ssl/certs/java/",
		"cp /etc/ssl/certs/java/cacerts ${CRAFT_PART_INSTALL}/etc/ssl/certs/java/cacerts",
		"cd ${CRAFT_PART_INSTALL}",
		"rm -f usr/lib/jvm/java-21-openjdk-${CRAFT_TARGET_ARCH}/lib/security/cacerts",
		"ln -s --relative etc/ssl/certs/java/cacerts usr/lib/jvm/java-21-openjdk-${CRAFT_TARGET_ARCH}/lib/security/cacerts",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildCommands() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"openjdk-21-jdk"}, p.BuildPackages()); diff != "" {
		t.Errorf("BuildPackages() mismatch (-want +got):\n%s", diff)
	}
}

func TestJLinkVersionAndJars(t *testing.T) {
	p := mustNewPlugin(t, PartInfo{Name: "runtime"}, "    plugin: jlink\n    jlink-java-version: 17\n    jlink-jars: [jars/app.jar, jars/lib.jar]\n")
	got, err := p.BuildCommands()
	if err != nil {
		t.Fatalf("BuildCommands() got error: %v", err)
	}

	checks := map[int]string{
		0:  `PROCESS_JARS="${CRAFT_STAGE}/jars/app.jar ${CRAFT_STAGE}/jars/lib.jar"`,
		6:  `if [ "x${PROCESS_JARS}" != "x" ]; then deps=$(jdeps --class-path=${CPATH} -q --recursive --ignore-missing-deps --print-module-deps --multi-release 17 ${PROCESS_JARS}); else deps=java.base; fi`,
		7:  "INSTALL_ROOT=${CRAFT_PART_INSTALL}/usr/lib/jvm/java-17-openjdk-${CRAFT_TARGET_ARCH}/",
		9:  "(cd ${CRAFT_PART_INSTALL} && mkdir -p usr/bin && ln -s --relative usr/lib/jvm/java-17-openjdk-${CRAFT_TARGET_ARCH}/bin/java usr/bin/)",
		14: "ln -s --relative etc/ssl/certs/java/cacerts usr/lib/jvm/java-17-openjdk-${CRAFT_TARGET_ARCH}/lib/security/cacerts",
	}
	for i, want := range checks {
		if got[i] != want {
			t.Errorf("BuildCommands()[%d] = %q, want %q", i, got[i], want)
		}
	}
	if diff := cmp.Diff([]string{"openjdk-17-jdk"}, p.BuildPackages()); diff != "" {
		t.Errorf("BuildPackages() mismatch (-want +got):\n%s", diff)
	}
}
