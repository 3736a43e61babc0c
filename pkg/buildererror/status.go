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

package buildererror

import "fmt"

// Status classifies an Error. Values follow the canonical google.rpc.Code numbering.
type Status int

// Statuses used by extensions and plugins. All are attributed to the user except StatusInternal.
const (
	StatusOk                 Status = 0
	StatusUnknown            Status = 2
	StatusInvalidArgument    Status = 3
	StatusNotFound           Status = 5
	StatusFailedPrecondition Status = 9
	StatusInternal           Status = 13
)

var statusNames = map[Status]string{
	StatusOk:                 "OK",
	StatusUnknown:            "UNKNOWN",
	StatusInvalidArgument:    "INVALID_ARGUMENT",
	StatusNotFound:           "NOT_FOUND",
	StatusFailedPrecondition: "FAILED_PRECONDITION",
	StatusInternal:           "INTERNAL",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(%d)", int(s))
}

// UserAttributed reports whether a failure with this status is caused by the project being built.
func (s Status) UserAttributed() bool {
	return s != StatusInternal
}
