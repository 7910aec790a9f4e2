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

package decision

import (
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/internal/errs"
)

// ConcreteCandidate pairs a condition set with the resource value
// attached to it, in whatever order the caller discovered them.
type ConcreteCandidate[T any] struct {
	ConditionSet *condition.ConditionSet
	Value        T
}

// ConcreteDecision materializes one resource's values over the shared
// candidate ordering of an AbstractDecision (Section 4.I).
type ConcreteDecision[T any] struct {
	abstract *AbstractDecision
	values   []T
	key      string
}

// NewConcreteDecision locates or inserts the AbstractDecision matching
// candidates' condition sets in registry, then materializes values[i]
// for each of the abstract decision's candidates in order. It fails
// with errs.KeyCollision if two candidates share a condition set, with
// errs.Internal if the candidate list cannot bijectively map onto the
// abstract decision's condition-set sequence (a mismatched count after
// deduplication), and with errs.KeyCollision if registry has already
// seen a concrete decision over the same condition sets with a
// different value (Section 8.6). Scope one registry per resource: the
// latter check is keyed by the abstract decision alone, so sharing a
// registry across unrelated resources that happen to declare the same
// condition-set shape would raise false collisions between them.
func NewConcreteDecision[T any](registry *Registry, candidates []ConcreteCandidate[T]) (*ConcreteDecision[T], error) {
	sets := make([]*condition.ConditionSet, len(candidates))
	for i, c := range candidates {
		sets[i] = c.ConditionSet
	}
	abstract := registry.GetOrAdd(sets)

	byKey := make(map[string]T, len(candidates))
	for _, c := range candidates {
		key := c.ConditionSet.Key()
		if _, dup := byKey[key]; dup {
			return nil, errs.New(errs.KeyCollision, "two concrete decision candidates share a condition set", key)
		}
		byKey[key] = c.Value
	}
	if len(byKey) != len(abstract.candidates) {
		return nil, errs.New(errs.Internal, "candidates do not bijectively map onto the abstract decision's condition sets", "")
	}

	values := make([]T, len(abstract.candidates))
	for i, cand := range abstract.candidates {
		v, ok := byKey[cand.conditionSet.Key()]
		if !ok {
			return nil, errs.New(errs.Internal, "candidates do not bijectively map onto the abstract decision's condition sets", cand.conditionSet.Key())
		}
		values[i] = v
	}

	hash, err := valuesHash(values)
	if err != nil {
		return nil, errs.New(errs.Internal, "concrete decision values could not be marshaled for hashing", err.Error())
	}
	key := fmt.Sprintf("%s|%08x", abstract.key, hash)

	if prior, seen := registry.concreteValues[abstract.key]; seen && prior != key {
		return nil, errs.New(errs.KeyCollision, "a concrete decision was re-inserted under the same conditions with a differing value", abstract.key)
	}
	registry.concreteValues[abstract.key] = key

	return &ConcreteDecision[T]{abstract: abstract, values: values, key: key}, nil
}

// valuesHash folds crc32 over the JSON encoding of each value, in the
// abstract decision's candidate order (Section 3:
// "abstractKey | crc32(json(v1),...,json(vn))").
func valuesHash[T any](values []T) (uint32, error) {
	h := crc32.NewIEEE()
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return 0, err
		}
		if _, err := h.Write(b); err != nil {
			return 0, err
		}
	}
	return h.Sum32(), nil
}

// Abstract returns the decision's shared skeleton.
func (d *ConcreteDecision[T]) Abstract() *AbstractDecision { return d.abstract }

// Values returns the resource values in the abstract decision's
// most-specific-first candidate order.
func (d *ConcreteDecision[T]) Values() []T { return d.values }

// Key returns the concrete decision's content address: the abstract
// decision's key joined with a crc32 fold of the JSON-encoded values in
// candidate order (Section 3). Two ConcreteDecisions built from the
// same (abstract, values) pair always share this key; the same
// conditions re-inserted with a differing value are rejected with
// errs.KeyCollision at construction (Section 8.6) rather than silently
// producing a colliding key.
func (d *ConcreteDecision[T]) Key() string { return d.key }
