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

// MergeProperty merges an extension-provided value into an existing one.
// An empty existing value is replaced. Lists are concatenated extension first,
// with duplicates removed when every item is a string. Maps merge key by key.
// Any other non-empty existing value is kept.
func MergeProperty(existing, extension interface{}) interface{} {
	if isEmpty(existing) {
		return extension
	}
	switch e := existing.(type) {
	case []interface{}:
		ext, ok := extension.([]interface{})
		if !ok {
			return existing
		}
		merged := append(append([]interface{}{}, ext...), e...)
		if allStrings(merged) {
			return dedupe(merged)
		}
		return merged
	case map[string]interface{}:
		ext, ok := extension.(map[string]interface{})
		if !ok {
			return existing
		}
		for k, v := range ext {
			e[k] = MergeProperty(e[k], v)
		}
		return e
	}
	return existing
}

// ApplyRoot merges a root snippet into the manifest.
func (m *Manifest) ApplyRoot(snippet *Manifest) error {
	var merged Manifest
	if err := mergeInto(m, snippet, &merged); err != nil {
		return err
	}
	*m = merged
	return nil
}

// Apply merges a part snippet into the part.
func (p *Part) Apply(snippet *Part) error {
	var merged Part
	if err := mergeInto(p, snippet, &merged); err != nil {
		return err
	}
	*p = merged
	return nil
}

func mergeInto(existingValue, snippet, out interface{}) error {
	existing, err := toMap(existingValue)
	if err != nil {
		return err
	}
	ext, err := toMap(snippet)
	if err != nil {
		return err
	}
	for k, v := range ext {
		existing[k] = MergeProperty(existing[k], v)
	}
	return roundTrip(existing, out)
}

func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case float64:
		return t == 0
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

func allStrings(items []interface{}) bool {
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

func dedupe(items []interface{}) []interface{} {
	seen := make(map[interface{}]bool, len(items))
	var out []interface{}
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
