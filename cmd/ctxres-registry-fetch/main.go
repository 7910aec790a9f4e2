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

// Command ctxres-registry-fetch validates a local IANA language subtag
// registry (JSON pair or ZIP bundle) and writes a JSON manifest
// describing it. It performs no network IO of its own: the registry
// documents must already be on disk.
package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jplu/ctxres/langtag"
)

// manifest is the report ctxres-registry-fetch writes after validating a
// registry snapshot: when it was produced, how many records each
// partition holds, and a build stamp unique to this invocation.
type manifest struct {
	BuildID            string         `json:"buildId"`
	FileDate           string         `json:"fileDate"`
	ExtensionsFileDate string         `json:"extensionsFileDate"`
	RecordsByType      map[string]int `json:"recordsByType"`
	ExtensionCount     int            `json:"extensionCount"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		subtagPath     string
		extensionsPath string
		zipPath        string
		out            string
	)

	cmd := &cobra.Command{
		Use:   "ctxres-registry-fetch",
		Short: "Validate a local IANA registry snapshot and write a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(newLogger(), subtagPath, extensionsPath, zipPath, out)
		},
	}
	cmd.Flags().StringVar(&subtagPath, "subtag-registry", "", "path to the language subtag registry JSON file")
	cmd.Flags().StringVar(&extensionsPath, "extensions-registry", "", "path to the extensions registry JSON file")
	cmd.Flags().StringVar(&zipPath, "zip", "", "path to a ZIP bundle containing both registry JSON files")
	cmd.Flags().StringVar(&out, "out", "manifest.json", "path to write the manifest to")
	return cmd
}

// newLogger builds this one CLI tool's structured logger, giving it
// leveled, structured output while the core library remains
// logging-free (spec.md §1 names logging as an external collaborator).
func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(logger *zap.Logger, subtagPath, extensionsPath, zipPath, out string) error {
	defer logger.Sync() //nolint:errcheck

	reg, err := loadRegistry(subtagPath, extensionsPath, zipPath)
	if err != nil {
		logger.Error("failed to load registry", zap.Error(err))
		return err
	}
	logger.Info("registry loaded",
		zap.Int("records", len(reg.Records)),
		zap.Int("extensions", len(reg.Extensions)))

	m := buildManifest(reg)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	logger.Info("manifest written", zap.String("path", out), zap.String("buildId", m.BuildID))
	return nil
}

func loadRegistry(subtagPath, extensionsPath, zipPath string) (*langtag.Registry, error) {
	if zipPath != "" {
		data, err := os.ReadFile(zipPath)
		if err != nil {
			return nil, fmt.Errorf("read zip: %w", err)
		}
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		return langtag.LoadZip(zr)
	}

	if subtagPath == "" || extensionsPath == "" {
		return langtag.Default()
	}

	subtagFile, err := os.Open(subtagPath)
	if err != nil {
		return nil, fmt.Errorf("open subtag registry: %w", err)
	}
	defer subtagFile.Close()

	extensionsFile, err := os.Open(extensionsPath)
	if err != nil {
		return nil, fmt.Errorf("open extensions registry: %w", err)
	}
	defer extensionsFile.Close()

	return langtag.Load(subtagFile, extensionsFile)
}

func buildManifest(reg *langtag.Registry) manifest {
	counts := make(map[string]int)
	for _, rec := range reg.Records {
		counts[rec.Type]++
	}
	return manifest{
		BuildID:            uuid.New().String(),
		FileDate:           reg.FileDate,
		ExtensionsFileDate: reg.ExtensionsFileDate,
		RecordsByType:      counts,
		ExtensionCount:     len(reg.Extensions),
	}
}
