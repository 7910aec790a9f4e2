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

package importer

import (
	"path"
	"strconv"
	"strings"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/qualifier"
)

// parsedPath is one resource file's decoded location: the resource id
// taken from the base filename, and the conditions accumulated from its
// directory segments and its comma-separated condition group (Section 6).
type parsedPath struct {
	resourceID string
	conditions []*condition.Condition
}

// parsePath decodes a catalog-relative, slash-separated path (directory
// segments plus a ".json" base filename) into a resourceID and its
// Conditions. Directory segments are parsed as "qualifier=value"; a bare
// segment without "=" is matched against the registry's
// TokenIsOptional qualifiers in registration order, the first whose
// type accepts the segment as a condition value winning.
func parsePath(p string, qualifiers *qualifier.Registry) (parsedPath, error) {
	dir, base := path.Split(p)
	segments := strings.FieldsFunc(dir, func(r rune) bool { return r == '/' })

	var conds []*condition.Condition
	for _, seg := range segments {
		c, err := parseSegment(seg, qualifiers)
		if err != nil {
			return parsedPath{}, err
		}
		conds = append(conds, c)
	}

	resourceID, tokens, err := parseBaseName(base)
	if err != nil {
		return parsedPath{}, err
	}
	for _, tok := range tokens {
		c, err := parseConditionToken(tok, qualifiers)
		if err != nil {
			return parsedPath{}, err
		}
		conds = append(conds, c)
	}

	return parsedPath{resourceID: resourceID, conditions: conds}, nil
}

// parseBaseName strips the ".json" extension and splits the remainder
// on the first "." into a resource id and its comma-separated condition
// tokens (absent when the base name carries no condition group at all,
// e.g. "button.json").
func parseBaseName(base string) (resourceID string, tokens []string, err error) {
	if !strings.HasSuffix(base, ".json") {
		return "", nil, errs.New(errs.Skipped, "not a JSON resource file", base)
	}
	trimmed := strings.TrimSuffix(base, ".json")
	if trimmed == "" {
		return "", nil, errs.New(errs.NotWellFormed, "resource file name is empty", base)
	}

	id, rest, hasRest := strings.Cut(trimmed, ".")
	if id == "" {
		return "", nil, errs.New(errs.NotWellFormed, "resource id must not be empty", base)
	}
	if !hasRest || rest == "" {
		return id, nil, nil
	}
	return id, strings.Split(rest, ","), nil
}

// parseSegment decodes one directory segment into a Condition.
func parseSegment(seg string, qualifiers *qualifier.Registry) (*condition.Condition, error) {
	if name, value, ok := strings.Cut(seg, "="); ok {
		if !qualifier.ValidateName(name) {
			return nil, errs.New(errs.NotWellFormed, "qualifier name must match [A-Za-z_][A-Za-z0-9_-]*", name)
		}
		q, err := qualifiers.MustGet(name)
		if err != nil {
			return nil, err
		}
		return condition.New(q, value, q.DefaultPriority())
	}
	return matchOptionalToken(seg, qualifiers)
}

// parseConditionToken decodes one "qualifier=value" or
// "qualifier=value;priority=N" member of a base filename's condition
// group into a Condition.
func parseConditionToken(tok string, qualifiers *qualifier.Registry) (*condition.Condition, error) {
	body, priority, err := splitPriorityOverride(tok)
	if err != nil {
		return nil, err
	}
	name, value, ok := strings.Cut(body, "=")
	if !ok {
		return nil, errs.New(errs.NotWellFormed, "condition token must be qualifier=value", tok)
	}
	if !qualifier.ValidateName(name) {
		return nil, errs.New(errs.NotWellFormed, "qualifier name must match [A-Za-z_][A-Za-z0-9_-]*", name)
	}
	q, err := qualifiers.MustGet(name)
	if err != nil {
		return nil, err
	}
	if priority == nil {
		return condition.New(q, value, q.DefaultPriority())
	}
	return condition.New(q, value, *priority)
}

// splitPriorityOverride pulls an optional ";priority=N" suffix off tok,
// an importer-only extension to the condition token grammar (Section
// 4.K) letting a file path override a qualifier's DefaultPriority.
func splitPriorityOverride(tok string) (body string, priority *int, err error) {
	body, suffix, ok := strings.Cut(tok, ";priority=")
	if !ok {
		return tok, nil, nil
	}
	n, perr := strconv.Atoi(suffix)
	if perr != nil {
		return "", nil, errs.New(errs.NotWellFormed, "priority override must be an integer", tok)
	}
	return body, &n, nil
}

// matchOptionalToken finds the first TokenIsOptional qualifier, in
// registration order, whose type accepts seg as a condition value.
func matchOptionalToken(seg string, qualifiers *qualifier.Registry) (*condition.Condition, error) {
	for _, q := range qualifiers.All() {
		if !q.TokenIsOptional() {
			continue
		}
		if q.Type().IsValidConditionValue(seg) {
			return condition.New(q, seg, q.DefaultPriority())
		}
	}
	return nil, errs.New(errs.NotWellFormed, "bare path segment matches no token-optional qualifier", seg)
}
