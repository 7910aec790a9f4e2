/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package langtag

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed subtag-registry.json
var embeddedSubtagRegistry []byte

//go:embed extensions-registry.json
var embeddedExtensionsRegistry []byte

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// Default returns the Registry built from the embedded IANA registry
// snapshot, loading and caching it on first call. Callers that need a
// newer registry snapshot should use Load or LoadZip instead; Default
// exists so a caller with no external registry feed can still parse
// and validate tags out of the box.
func Default() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = Load(
			bytes.NewReader(embeddedSubtagRegistry),
			bytes.NewReader(embeddedExtensionsRegistry),
		)
	})
	return defaultRegistry, defaultRegistryErr
}

// NewDefaultParser returns a Parser bound to the embedded default
// Registry (Default).
func NewDefaultParser() (*Parser, error) {
	reg, err := Default()
	if err != nil {
		return nil, err
	}
	return NewParser(reg), nil
}
