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

// Package buildererror provides the structured error returned by extensions and plugins.
package buildererror

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	errorIDLength = 8

	// DocsBaseURL is prepended to an error's DocSlug to form a documentation link.
	DocsBaseURL = "https://documentation.ubuntu.com/rockcraft/en/latest"
)

// ID is a short error code passed to the user for supportability.
type ID string

// Error is a structured extension or plugin error.
type Error struct {
	Status  Status `json:"canonicalCode"`
	ID      ID     `json:"errorId,omitempty"`
	Message string `json:"errorMessage"`
	// DocSlug is the documentation path explaining how to resolve the error, e.g. "/reference/extensions/spring-boot-framework".
	DocSlug string `json:"docSlug,omitempty"`
}

func (e *Error) Error() string {
	if e.ID == "" {
		return e.Message
	}
	return fmt.Sprintf("%s [id:%s]", e.Message, e.ID)
}

// DocURL returns the full documentation link for the error, or "" when it has no DocSlug.
func (e *Error) DocURL() string {
	if e.DocSlug == "" {
		return ""
	}
	return DocsBaseURL + e.DocSlug
}

// Errorf constructs an Error.
func Errorf(status Status, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Status:  status,
		ID:      GenerateErrorID(msg),
		Message: msg,
	}
}

// InternalErrorf constructs an Error with status StatusInternal.
func InternalErrorf(format string, args ...interface{}) *Error {
	return Errorf(StatusInternal, format, args...)
}

// UserErrorf constructs an Error with status StatusUnknown (user-attributed).
func UserErrorf(format string, args ...interface{}) *Error {
	return Errorf(StatusUnknown, format, args...)
}

// ExtensionError constructs the error raised while applying a manifest extension.
// The message is reported verbatim, without an error ID.
func ExtensionError(docSlug, format string, args ...interface{}) *Error {
	return &Error{
		Status:  StatusFailedPrecondition,
		Message: fmt.Sprintf(format, args...),
		DocSlug: docSlug,
	}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// GenerateErrorID creates a short hash from the provided parts.
func GenerateErrorID(parts ...string) ID {
	h := sha256.New()
	for _, p := range parts {
		io.WriteString(h, p)
	}
	result := fmt.Sprintf("%x", h.Sum(nil))

	// Truncated to stay readable in logs.
	return ID(strings.ToLower(result[:errorIDLength]))
}
