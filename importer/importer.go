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

// Package importer walks a resource tree (Section 4.K) and builds a
// Catalog: one ConcreteDecision per resource id, its candidates keyed by
// the conditions its directory and file name encode.
package importer

import (
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/decision"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/internal/jsonvalue"
	"github.com/jplu/ctxres/qualifier"
	"github.com/jplu/ctxres/resolve"
)

// Catalog maps a resource id to the ConcreteDecision materializing its
// candidates, most-specific first.
type Catalog map[string]*decision.ConcreteDecision[resolve.Entry]

// partialMember and mergeMember are the reserved top-level object keys a
// resource file may carry to mark itself partial and select its merge
// method (Section 4.K does not name a wire syntax for this; ctxres
// reserves these two keys rather than inventing a parallel file-naming
// convention alongside the condition group already owned by the base
// name).
const (
	partialMember = "$partial"
	mergeMember   = "$merge"
)

// Import walks root inside fsys, importing every ".json" file it finds
// as one candidate of the resource id its base name names. Conditions
// are accumulated from directory segments and from the base name's
// comma-separated condition group; same-resource-id entries discovered
// at different paths merge into one Catalog entry, each path becoming
// one of its ConcreteDecision's candidates.
//
// Import never aborts the walk: a per-file failure (an unregistered
// qualifier, a malformed condition token, a condition set colliding
// with a sibling candidate) is recorded in the returned error slice and
// that file is skipped, so one bad entry cannot hide the rest of a
// catalog. Non-".json" files are recorded as informational
// errs.Skipped entries.
func Import(fsys fs.FS, root string, qualifiers *qualifier.Registry) (Catalog, []error) {
	type collected struct {
		resourceID string
		candidate  decision.ConcreteCandidate[resolve.Entry]
	}

	var (
		all    []collected
		errOut []error
	)

	walkErr := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			errOut = append(errOut, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel := relativePath(root, p)
		if !strings.HasSuffix(rel, ".json") {
			errOut = append(errOut, errs.New(errs.Skipped, "not a JSON resource file", rel))
			return nil
		}

		parsed, err := parsePath(rel, qualifiers)
		if err != nil {
			errOut = append(errOut, err)
			return nil
		}

		set, err := condition.NewConditionSet(parsed.conditions)
		if err != nil {
			errOut = append(errOut, err)
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			errOut = append(errOut, err)
			return nil
		}

		entry, err := decodeEntry(data)
		if err != nil {
			errOut = append(errOut, err)
			return nil
		}

		all = append(all, collected{
			resourceID: parsed.resourceID,
			candidate:  decision.ConcreteCandidate[resolve.Entry]{ConditionSet: set, Value: entry},
		})
		return nil
	})
	if walkErr != nil {
		errOut = append(errOut, walkErr)
	}

	byResource := make(map[string][]decision.ConcreteCandidate[resolve.Entry])
	setKeys := make(map[string]map[string]struct{})
	var order []string
	for _, c := range all {
		if _, seen := byResource[c.resourceID]; !seen {
			order = append(order, c.resourceID)
			setKeys[c.resourceID] = make(map[string]struct{})
		}
		key := c.candidate.ConditionSet.Key()
		if _, dup := setKeys[c.resourceID][key]; dup {
			errOut = append(errOut, errs.New(errs.KeyCollision, "condition set already used by a sibling candidate", c.resourceID))
			continue
		}
		setKeys[c.resourceID][key] = struct{}{}
		byResource[c.resourceID] = append(byResource[c.resourceID], c.candidate)
	}

	catalog := make(Catalog, len(order))
	for _, id := range order {
		// One registry per resource: the abstract-decision skeleton is
		// still reused call-to-call for a given resource, but two
		// unrelated resources that happen to declare the same
		// condition-set shape must never collide with each other.
		cd, err := decision.NewConcreteDecision(decision.NewRegistry(), byResource[id])
		if err != nil {
			errOut = append(errOut, err)
			continue
		}
		catalog[id] = cd
	}

	return catalog, errOut
}

// decodeEntry parses a resource file's JSON content into a resolve.Entry,
// extracting and stripping the reserved $partial/$merge members if
// present.
func decodeEntry(data []byte) (resolve.Entry, error) {
	var v jsonvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return resolve.Entry{}, errs.New(errs.NotWellFormed, "resource file is not valid JSON: "+err.Error(), "")
	}

	members, isObject := v.AsObject()
	if !isObject {
		return resolve.Entry{Value: v}, nil
	}

	entry := resolve.Entry{MergeMethod: resolve.MergeAugment}
	kept := make([]jsonvalue.Member, 0, len(members))
	for _, m := range members {
		switch m.Key {
		case partialMember:
			if b, ok := m.Value.AsBool(); ok {
				entry.IsPartial = b
			}
		case mergeMember:
			if s, ok := m.Value.AsString(); ok {
				entry.MergeMethod = resolve.MergeMethod(s)
			}
		default:
			kept = append(kept, m)
		}
	}
	entry.Value = jsonvalue.Object(kept)
	return entry, nil
}

// relativePath returns p with root's prefix removed, in slash form.
func relativePath(root, p string) string {
	rel := strings.TrimPrefix(p, root)
	rel = strings.TrimPrefix(rel, "/")
	return path.Clean(rel)
}
