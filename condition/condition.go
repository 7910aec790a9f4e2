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

// Package condition implements the Condition and ConditionSet
// collectors of Section 4.H: a single qualifier=value@priority
// condition, and the sorted, deduplicated sets of conditions a
// candidate resource value is attached to.
package condition

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hash/crc32"

	"github.com/jplu/ctxres/internal/collector"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/qualifier"
)

// Condition is one qualifier/value/priority triple. Its Key is
// content-addressed, per Section 4.H: "{qualifier.name}={value}@{priority}".
type Condition struct {
	qualifier *qualifier.Qualifier
	value     string
	priority  int
}

// New builds a Condition, failing with errs.InvalidConditionValue if
// value is not acceptable to q's qualifier type.
func New(q *qualifier.Qualifier, value string, priority int) (*Condition, error) {
	if !q.Type().IsValidConditionValue(value) {
		return nil, errs.New(errs.InvalidConditionValue, "qualifier type rejected condition value", value)
	}
	return &Condition{qualifier: q, value: value, priority: priority}, nil
}

// Key returns the content address "{qualifier.name}={value}@{priority}".
func (c *Condition) Key() string {
	return fmt.Sprintf("%s=%s@%s", c.qualifier.Name(), c.value, strconv.Itoa(c.priority))
}

// Qualifier returns the condition's qualifier.
func (c *Condition) Qualifier() *qualifier.Qualifier { return c.qualifier }

// Value returns the condition value.
func (c *Condition) Value() string { return c.value }

// Priority returns the condition's priority.
func (c *Condition) Priority() int { return c.priority }

// ConditionSet is a validated, canonically ordered set of Conditions:
// sorted by (priority desc, qualifier.name asc), with at most one
// condition per qualifier (Section 4.H).
type ConditionSet struct {
	conditions []*Condition
	key        string
}

// NewConditionSet builds a ConditionSet from conditions, sorting them
// canonically and failing with errs.DuplicateQualifier if two
// conditions name the same qualifier.
func NewConditionSet(conditions []*Condition) (*ConditionSet, error) {
	sorted := append([]*Condition(nil), conditions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].priority != sorted[j].priority {
			return sorted[i].priority > sorted[j].priority
		}
		return sorted[i].qualifier.Name() < sorted[j].qualifier.Name()
	})

	seen := make(map[string]struct{}, len(sorted))
	keys := make([]string, len(sorted))
	for i, c := range sorted {
		name := c.qualifier.Name()
		if _, dup := seen[name]; dup {
			return nil, errs.New(errs.DuplicateQualifier, "two conditions in one set name the same qualifier", name)
		}
		seen[name] = struct{}{}
		keys[i] = c.Key()
	}

	joined := strings.Join(keys, "+")
	key := fmt.Sprintf("%08x", crc32.ChecksumIEEE([]byte(joined)))
	return &ConditionSet{conditions: sorted, key: key}, nil
}

// Key returns the set's content address: the crc32 of its members'
// keys joined with "+".
func (s *ConditionSet) Key() string { return s.key }

// Conditions returns the set's members in canonical order.
func (s *ConditionSet) Conditions() []*Condition { return s.conditions }

// Len returns the number of conditions in the set.
func (s *ConditionSet) Len() int { return len(s.conditions) }

// Compare orders two ConditionSets element-wise by member key; on an
// equal-prefix tie the longer set sorts first (Section 4.H, "Collector's
// compare on sets"). It returns a value usable the way strings.Compare
// is: negative if a sorts before b, positive if after, zero if equal.
func Compare(a, b *ConditionSet) int {
	n := len(a.conditions)
	if len(b.conditions) < n {
		n = len(b.conditions)
	}
	for i := 0; i < n; i++ {
		ak, bk := a.conditions[i].Key(), b.conditions[i].Key()
		if ak != bk {
			return strings.Compare(ak, bk)
		}
	}
	if len(a.conditions) != len(b.conditions) {
		if len(a.conditions) > len(b.conditions) {
			return -1
		}
		return 1
	}
	return 0
}

// Registry is the content-addressed collector of ConditionSets.
type Registry struct {
	collector *collector.Collector[string, *ConditionSet]
}

// NewRegistry returns an empty ConditionSet Registry.
func NewRegistry() *Registry {
	return &Registry{collector: collector.NewCollector[string, *ConditionSet]()}
}

// GetOrAdd inserts set under its key if not already present, returning
// the registered ConditionSet.
func (r *Registry) GetOrAdd(set *ConditionSet) *ConditionSet {
	return r.collector.GetOrAdd(set.key, set).Value
}

// Get looks up a ConditionSet by key.
func (r *Registry) Get(key string) (*ConditionSet, bool) {
	entry, ok := r.collector.Get(key)
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// Len returns the number of registered condition sets.
func (r *Registry) Len() int { return r.collector.Len() }
