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

package qualifier

import (
	"math"

	"github.com/jplu/ctxres/internal/errs"
)

// defaultHierarchyDecay is the per-depth score multiplier
// LiteralHierarchyType applies when a condition token is found d levels
// above a context token in its ancestor chain. Section 4.G leaves the
// exact constant implementation-free, only requiring it be fixed and
// monotonic in depth; 0.5 halves the score per level, matching the
// coarsest useful granularity for a handful of hierarchy levels.
const defaultHierarchyDecay = 0.5

// color is a DFS visitation marker used by the build-time cycle check.
type color int

const (
	white color = iota
	grey
	black
)

// LiteralHierarchyType implements the "literalHierarchy" qualifier
// type: a DAG-free tree of literal tokens (Section 4.G). When values is
// non-empty the hierarchy is closed and only its members are valid;
// when empty it is open and any non-empty token is valid, with unknown
// tokens scoring NoMatch rather than failing.
type LiteralHierarchyType struct {
	values   map[string]struct{}
	parentOf map[string]string
	decay    float64
}

// NewLiteralHierarchyType builds a LiteralHierarchyType from values (nil
// or empty for open mode) and parentOf, the token->parent map. It fails
// with errs.NotRegistered if a parent references a token outside a
// non-empty values set, and with errs.CircularReference if parentOf
// contains a cycle.
func NewLiteralHierarchyType(values []string, parentOf map[string]string) (*LiteralHierarchyType, error) {
	closed := make(map[string]struct{}, len(values))
	for _, v := range values {
		closed[lowerToken(v)] = struct{}{}
	}
	normalizedParents := make(map[string]string, len(parentOf))
	for child, parent := range parentOf {
		normalizedParents[lowerToken(child)] = lowerToken(parent)
	}

	if len(closed) > 0 {
		for child, parent := range normalizedParents {
			if _, ok := closed[child]; !ok {
				return nil, errs.New(errs.NotRegistered, "literal hierarchy parent link references an unknown child token", child)
			}
			if _, ok := closed[parent]; !ok {
				return nil, errs.New(errs.NotRegistered, "literal hierarchy parent link references an unknown parent token", parent)
			}
		}
	}

	if err := checkNoCycles(normalizedParents); err != nil {
		return nil, err
	}

	return &LiteralHierarchyType{values: closed, parentOf: normalizedParents, decay: defaultHierarchyDecay}, nil
}

func checkNoCycles(parentOf map[string]string) error {
	marks := make(map[string]color, len(parentOf))
	var visit func(node string) error
	visit = func(node string) error {
		switch marks[node] {
		case black:
			return nil
		case grey:
			return errs.New(errs.CircularReference, "literal hierarchy parent links form a cycle", node)
		}
		marks[node] = grey
		if parent, ok := parentOf[node]; ok {
			if err := visit(parent); err != nil {
				return err
			}
		}
		marks[node] = black
		return nil
	}
	for node := range parentOf {
		if err := visit(node); err != nil {
			return err
		}
	}
	return nil
}

func (t *LiteralHierarchyType) Name() TypeName { return TypeLiteralHierarchy }

// isOpen reports whether this hierarchy has no enumerated value set.
func (t *LiteralHierarchyType) isOpen() bool { return len(t.values) == 0 }

func (t *LiteralHierarchyType) IsValidConditionValue(v string) bool {
	if v == "" {
		return false
	}
	if t.isOpen() {
		return true
	}
	_, ok := t.values[lowerToken(v)]
	return ok
}

func (t *LiteralHierarchyType) IsValidContextValue(v string) bool {
	return t.IsValidConditionValue(v)
}

func (t *LiteralHierarchyType) Match(conditionValue, contextValue string) float64 {
	cond, ctx := lowerToken(conditionValue), lowerToken(contextValue)
	if cond == ctx {
		return PerfectMatch
	}

	depth := 1
	score := PerfectMatch
	for node := ctx; ; depth++ {
		parent, ok := t.parentOf[node]
		if !ok {
			return NoMatch
		}
		score = PerfectMatch * math.Pow(t.decay, float64(depth))
		if parent == cond {
			return score
		}
		node = parent
	}
}

func lowerToken(s string) string { return normalizeToken(s) }
