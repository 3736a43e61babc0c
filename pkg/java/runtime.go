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

package java

import (
	"fmt"
	"strings"
)

// RuntimeImage describes a trimmed Java runtime assembled by jdeps and jlink.
type RuntimeImage struct {
	// Version is the OpenJDK feature release, e.g. 21.
	Version int
	// Jars are processed verbatim when set.
	Jars []string
	// SearchDir is scanned for *.jar files when Jars is empty.
	SearchDir string
	// PreLink runs after the install root is chosen and before jlink.
	PreLink []string
}

// Commands returns the shell commands that build the runtime image into ${CRAFT_PART_INSTALL}.
func (r RuntimeImage) Commands() []string {
	jvm := JVMDir(r.Version)

	var commands []string
	if len(r.Jars) > 0 {
		commands = append(commands, fmt.Sprintf("PROCESS_JARS=%q", strings.Join(r.Jars, " ")))
	} else {
		commands = append(commands, fmt.Sprintf(`PROCESS_JARS=$(find %s -type f -name "*.jar")`, r.SearchDir))
	}

	// Extract the jars so that nested dependency jars join the class path.
	commands = append(commands,
		"mkdir -p ${CRAFT_PART_BUILD}/tmp",
		"(cd ${CRAFT_PART_BUILD}/tmp && for jar in ${PROCESS_JARS}; do jar xvf ${jar}; done;)",
		`CPATH=$(find ${CRAFT_PART_BUILD}/tmp -type f -name "*.jar")`,
		"CPATH=$(echo ${CPATH}:. | sed s'/[[:space:]]/:/'g)",
		"echo ${CPATH}",
		fmt.Sprintf(`if [ "x${PROCESS_JARS}" != "x" ]; then deps=$(jdeps --class-path=${CPATH} -q --recursive --ignore-missing-deps --print-module-deps --multi-release %d ${PROCESS_JARS}); else deps=java.base; fi`, r.Version),
		fmt.Sprintf("INSTALL_ROOT=${CRAFT_PART_INSTALL}/%s/", jvm),
	)
	commands = append(commands, r.PreLink...)
	commands = append(commands,
		"rm -rf ${INSTALL_ROOT} && jlink --add-modules ${deps} --output ${INSTALL_ROOT}",
		fmt.Sprintf("(cd ${CRAFT_PART_INSTALL} && mkdir -p usr/bin && ln -s --relative %s/bin/java usr/bin/)", jvm),
		"mkdir -p ${CRAFT_PART_INSTALL}/etc/ssl/certs/java/",
		"cp /etc/ssl/certs/java/cacerts ${CRAFT_PART_INSTALL}/etc/ssl/certs/java/cacerts",
		"cd ${CRAFT_PART_INSTALL}",
		fmt.Sprintf("rm -f %s/lib/security/cacerts", jvm),
		fmt.Sprintf("ln -s --relative etc/ssl/certs/java/cacerts %s/lib/security/cacerts", jvm),
	)
	return commands
}
