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

// Command ctxres-lint loads a resource tree and reports, for a given
// context, which candidate each resource id would resolve to.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jplu/ctxres/importer"
	"github.com/jplu/ctxres/langtag"
	"github.com/jplu/ctxres/qualifier"
	"github.com/jplu/ctxres/resolve"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		root       string
		contextArg string
	)

	cmd := &cobra.Command{
		Use:   "ctxres-lint",
		Short: "Import a resource tree and report how each resource resolves for a context",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, root, contextArg)
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "resource tree root to import")
	cmd.Flags().StringVar(&contextArg, "context", "",
		`context entries, e.g. "language=en-US|territory=US"`)
	return cmd
}

func run(cmd *cobra.Command, root, contextArg string) error {
	qualifiers := defaultQualifiers()

	catalog, errs := importer.Import(os.DirFS(root), ".", qualifiers)
	for _, e := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), "import:", e)
	}

	ctx := parseContext(contextArg)
	for id, cd := range catalog {
		scored := resolve.Score(cd, ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d candidate(s) match\n", id, len(scored))
		for i, sc := range scored {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%d] score=%.3f\n", i, sc.Score)
		}
	}
	return nil
}

// parseContext decodes a "qualifier=value|qualifier=value" command-line
// argument into a resolve.Context. It is deliberately local to this
// command rather than a core package function: the core never parses
// command-line syntax.
func parseContext(s string) resolve.Context {
	ctx := resolve.Context{}
	if s == "" {
		return ctx
	}
	for _, pair := range strings.Split(s, "|") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		ctx[name] = value
	}
	return ctx
}

// defaultQualifiers registers the qualifier set a bare resource tree is
// assumed to use when the caller supplies none of its own: language and
// territory, the two BCP-47-backed dimensions every catalog needs.
func defaultQualifiers() *qualifier.Registry {
	reg := qualifier.NewRegistry()

	tags, err := langtag.Default()
	if err != nil {
		// The embedded registry snapshot always parses; a failure here
		// means the binary itself is broken, not the resource tree.
		panic(err)
	}

	language, _ := qualifier.NewQualifier("language",
		qualifier.NewLanguageType(tags, langtag.Valid, langtag.Preferred),
		qualifier.WithTokenIsOptional(true), qualifier.WithDefaultPriority(10))
	reg.GetOrAdd(language)

	territory, _ := qualifier.NewQualifier("territory", qualifier.NewTerritoryType(),
		qualifier.WithTokenIsOptional(true), qualifier.WithDefaultPriority(5))
	reg.GetOrAdd(territory)
	return reg
}
