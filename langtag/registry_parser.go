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
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// registryDocument is the on-the-wire shape of both the language subtag
// registry and the language tag extensions registry JSON documents
// (spec Section 6, "Registry data").
type registryDocument struct {
	FileDate string          `json:"fileDate"`
	Entries  json.RawMessage `json:"entries"`
}

// LoadSubtagRegistry parses the language subtag registry JSON document
// (`{fileDate, entries: [Record, ...]}`) from r and merges it into reg.
// Calling it on a zero-value *Registry bootstraps Records and
// Extensions.
func LoadSubtagRegistry(reg *Registry, r io.Reader) error {
	reg.ensureMaps()

	var doc registryDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("langtag: decoding subtag registry: %w", err)
	}
	var entries []Record
	if len(doc.Entries) > 0 {
		if err := json.Unmarshal(doc.Entries, &entries); err != nil {
			return fmt.Errorf("langtag: decoding subtag registry entries: %w", err)
		}
	}

	reg.FileDate = doc.FileDate
	for _, entry := range entries {
		addRecord(reg, entry)
	}
	return nil
}

// LoadExtensionsRegistry parses the language tag extensions registry
// JSON document and merges it into reg.
func LoadExtensionsRegistry(reg *Registry, r io.Reader) error {
	reg.ensureMaps()

	var doc registryDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("langtag: decoding extensions registry: %w", err)
	}
	var entries []ExtensionRecord
	if len(doc.Entries) > 0 {
		if err := json.Unmarshal(doc.Entries, &entries); err != nil {
			return fmt.Errorf("langtag: decoding extensions registry entries: %w", err)
		}
	}

	reg.ExtensionsFileDate = doc.FileDate
	for _, entry := range entries {
		reg.Extensions[strings.ToLower(entry.Identifier)] = entry
	}
	return nil
}

// Load builds a Registry from the two JSON documents described in the
// specification's external interfaces section.
func Load(subtagRegistry, extensionsRegistry io.Reader) (*Registry, error) {
	reg := &Registry{}
	reg.ensureMaps()
	if err := LoadSubtagRegistry(reg, subtagRegistry); err != nil {
		return nil, err
	}
	if extensionsRegistry != nil {
		if err := LoadExtensionsRegistry(reg, extensionsRegistry); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadZip builds a Registry from a ZIP archive containing the two
// registry JSON files, matched by filename suffix. This is the only
// place the core touches archive/zip, and only as a decode step over
// bytes the caller already read - no file or network IO happens here.
func LoadZip(zr *zip.Reader) (*Registry, error) {
	reg := &Registry{}
	reg.ensureMaps()

	for _, f := range zr.File {
		switch {
		case strings.HasSuffix(f.Name, "subtag-registry.json"):
			if err := readZipEntry(f, func(r io.Reader) error { return LoadSubtagRegistry(reg, r) }); err != nil {
				return nil, err
			}
		case strings.HasSuffix(f.Name, "extensions-registry.json"):
			if err := readZipEntry(f, func(r io.Reader) error { return LoadExtensionsRegistry(reg, r) }); err != nil {
				return nil, err
			}
		}
	}
	if len(reg.Records) == 0 {
		return nil, fmt.Errorf("langtag: zip archive contains no subtag-registry.json")
	}
	return reg, nil
}

func readZipEntry(f *zip.File, fn func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("langtag: opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	return fn(rc)
}

func (r *Registry) ensureMaps() {
	if r.Records == nil {
		r.Records = make(map[string]Record)
	}
	if r.Extensions == nil {
		r.Extensions = make(map[string]ExtensionRecord)
	}
}

// addRecord indexes a single decoded Record under its registry key,
// mirroring the partitioning rules of Section 4.A: subtag-shaped
// entries key on "{type}:{lowercased-subtag}"; grandfathered and
// redundant entries key on the lowercased whole tag.
func addRecord(reg *Registry, rec Record) {
	if rec.Subtag != "" {
		reg.Records[subtagKey(Kind(rec.Type), rec.Subtag)] = rec
		return
	}
	if rec.Tag != "" {
		reg.Records[tagKey(rec.Tag)] = rec
	}
}
