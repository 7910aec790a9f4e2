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

// Package decision implements the AbstractDecision and ConcreteDecision
// collectors of Section 4.I: the shared, condition-set-keyed skeleton
// of a resource's candidate ordering, and the per-resource values laid
// over it.
package decision

import (
	"sort"
	"strings"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/internal/collector"
)

// Candidate is one slot in an AbstractDecision's sorted sequence: the
// ConditionSet it requires, and its ordinal position.
type Candidate struct {
	conditionSet *condition.ConditionSet
	value        int
}

// ConditionSet returns the candidate's required condition set.
func (c *Candidate) ConditionSet() *condition.ConditionSet { return c.conditionSet }

// Value returns the candidate's ordinal (its index within the abstract
// decision's candidate sequence).
func (c *Candidate) Value() int { return c.value }

// AbstractDecision is the shape of a decision independent of any
// particular resource's values: a most-specific-first sequence of
// Candidates, one per distinct ConditionSet (Section 4.I).
type AbstractDecision struct {
	candidates []*Candidate
	key        string
}

// NewAbstractDecision sorts conditionSets descending by condition.Compare
// and wraps each into a Candidate whose value is its ordinal. The key
// is the concatenation of the sorted sets' keys, so two calls with the
// same multiset of condition sets - in any input order - produce an
// identical key and candidate ordering.
func NewAbstractDecision(conditionSets []*condition.ConditionSet) *AbstractDecision {
	sorted := append([]*condition.ConditionSet(nil), conditionSets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return condition.Compare(sorted[i], sorted[j]) < 0
	})

	candidates := make([]*Candidate, len(sorted))
	keys := make([]string, len(sorted))
	for i, cs := range sorted {
		candidates[i] = &Candidate{conditionSet: cs, value: i}
		keys[i] = cs.Key()
	}

	return &AbstractDecision{candidates: candidates, key: strings.Join(keys, "")}
}

// Key returns the decision's content address.
func (d *AbstractDecision) Key() string { return d.key }

// Candidates returns the decision's candidates, most-specific first.
func (d *AbstractDecision) Candidates() []*Candidate { return d.candidates }

// Len returns the number of candidates.
func (d *AbstractDecision) Len() int { return len(d.candidates) }

// Registry is the content-addressed collector of AbstractDecisions. It
// pre-seeds two canonical entries (Section 4.I): index 0 is the empty
// decision (no candidates at all), index 1 is the default-only decision
// (a single candidate requiring the empty condition set).
type Registry struct {
	collector *collector.Collector[string, *AbstractDecision]
	// concreteValues tracks, per AbstractDecision key, the value-hash of
	// the one ConcreteDecision built over it so far (Section 3 "two
	// semantically equal entities share the same index"; Section 8.6).
	// Scope this Registry to one resource at a time (one per resource id)
	// so that two unrelated resources sharing a condition-set shape never
	// collide here - only re-inserting the same conditions with a
	// different value within the same scope does.
	concreteValues map[string]string
}

// NewRegistry returns a Registry with its two canonical entries
// pre-seeded.
func NewRegistry() *Registry {
	r := &Registry{
		collector:      collector.NewCollector[string, *AbstractDecision](),
		concreteValues: make(map[string]string),
	}

	empty := NewAbstractDecision(nil)
	r.collector.GetOrAdd(empty.key, empty)

	emptySet, err := condition.NewConditionSet(nil)
	if err != nil {
		// NewConditionSet(nil) can only fail on a qualifier collision,
		// which an empty input can never produce.
		panic(err)
	}
	defaultOnly := NewAbstractDecision([]*condition.ConditionSet{emptySet})
	r.collector.GetOrAdd(defaultOnly.key, defaultOnly)

	return r
}

// GetOrAdd builds the AbstractDecision for conditionSets and returns
// the registered instance, reusing any existing entry with the same
// key.
func (r *Registry) GetOrAdd(conditionSets []*condition.ConditionSet) *AbstractDecision {
	ad := NewAbstractDecision(conditionSets)
	return r.collector.GetOrAdd(ad.key, ad).Value
}

// Empty returns the registry's pre-seeded empty decision (index 0).
func (r *Registry) Empty() *AbstractDecision {
	entry, _ := r.collector.At(0)
	return entry.Value
}

// DefaultOnly returns the registry's pre-seeded default-only decision
// (index 1).
func (r *Registry) DefaultOnly() *AbstractDecision {
	entry, _ := r.collector.At(1)
	return entry.Value
}

// Len returns the number of registered abstract decisions.
func (r *Registry) Len() int { return r.collector.Len() }
