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

// Package collector implements the validating-collector pattern used by
// both the condition and decision packages: canonical-by-key insertion,
// a late-bound integer index that may be set exactly once, and an
// idempotent getOrAdd. It replaces the mutable "Collectible mixin" of
// the source implementation with a value type owned exclusively by the
// collector, matching Design Note "Collector Collectible pattern".
package collector

import "github.com/jplu/ctxres/internal/errs"

// unindexed is the sentinel Index value for an entity that has not yet
// been assigned a position by its owning Collector.
const unindexed = -1

// Collectible is the state every entry in a Collector carries: a stable
// content-address Key and a one-shot Index. NewCollectible returns an
// unindexed value (the zero value reads as indexed at 0); SetIndex is
// the only way to transition to indexed, and it fails if called a
// second time with a different value.
type Collectible[K comparable] struct {
	key   K
	index int
}

// NewCollectible wraps a key as a freshly constructed, unindexed
// collectible.
func NewCollectible[K comparable](key K) Collectible[K] {
	return Collectible[K]{key: key, index: unindexed}
}

// Key returns the content-address key.
func (c Collectible[K]) Key() K { return c.key }

// Index returns the assigned index, or (0, false) if unindexed.
func (c Collectible[K]) Index() (int, bool) {
	if c.index == unindexed {
		return 0, false
	}
	return c.index, true
}

// SetIndex assigns i as the collectible's index. It is a one-shot
// Constructed -> Indexed(i) transition: calling it again with a
// different value fails with errs.IndexAlreadySet; calling it again
// with the same value is a no-op success, matching getOrAdd's need to
// re-assert an existing index idempotently.
func (c *Collectible[K]) SetIndex(i int) error {
	if c.index != unindexed && c.index != i {
		return errs.New(errs.IndexAlreadySet, "collectible index already set", "")
	}
	c.index = i
	return nil
}

// Entry pairs a Collectible's bookkeeping with the caller's own payload
// type T, so a Collector can hand back the full indexed entity.
type Entry[K comparable, T any] struct {
	Collectible[K]
	Value T
}

// Collector is a generic, append-only, content-addressed store.
// Indices are assigned strictly in first-insertion order and are
// immutable afterward; two Collectors that insert the same set of keys
// in the same order produce identical indices, which the catalog
// invariants in the specification rely on.
type Collector[K comparable, T any] struct {
	order   []*Entry[K, T]
	byKey   map[K]*Entry[K, T]
}

// NewCollector creates an empty Collector.
func NewCollector[K comparable, T any]() *Collector[K, T] {
	return &Collector[K, T]{byKey: make(map[K]*Entry[K, T])}
}

// GetOrAdd returns the existing entry for key if present (ignoring
// value, per the idempotent-getOrAdd invariant), otherwise inserts
// value under key at the next index.
func (c *Collector[K, T]) GetOrAdd(key K, value T) *Entry[K, T] {
	if existing, ok := c.byKey[key]; ok {
		return existing
	}
	entry := &Entry[K, T]{Collectible: NewCollectible(key), Value: value}
	_ = entry.SetIndex(len(c.order))
	c.order = append(c.order, entry)
	c.byKey[key] = entry
	return entry
}

// Get looks up an entry by key without inserting.
func (c *Collector[K, T]) Get(key K) (*Entry[K, T], bool) {
	e, ok := c.byKey[key]
	return e, ok
}

// At returns the entry at the given index.
func (c *Collector[K, T]) At(index int) (*Entry[K, T], bool) {
	if index < 0 || index >= len(c.order) {
		return nil, false
	}
	return c.order[index], true
}

// Len returns the number of entries collected so far.
func (c *Collector[K, T]) Len() int { return len(c.order) }

// All returns the collected entries in insertion (index) order. The
// returned slice must not be mutated by the caller.
func (c *Collector[K, T]) All() []*Entry[K, T] { return c.order }
