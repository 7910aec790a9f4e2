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
	"encoding/json"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/decision"
	"github.com/jplu/ctxres/internal/jsonvalue"
	"github.com/jplu/ctxres/qualifier"
	"github.com/jplu/ctxres/resolve"
)

// wireCondition is the Catalog JSON shape's per-condition member
// (spec.md Section 6, "Catalog JSON shape").
type wireCondition struct {
	Qualifier string `json:"qualifier"`
	Value     string `json:"value"`
	Priority  *int   `json:"priority,omitempty"`
}

// wireCandidate is the Catalog JSON shape's per-candidate member.
type wireCandidate struct {
	Conditions  []wireCondition `json:"conditions"`
	Value       jsonvalue.Value `json:"value"`
	IsPartial   bool            `json:"isPartial,omitempty"`
	MergeMethod string          `json:"mergeMethod,omitempty"`
}

// MarshalJSON renders the catalog as a mapping from resource id to its
// candidates' wire shape, most-specific candidate first.
func (c Catalog) MarshalJSON() ([]byte, error) {
	wire := make(map[string][]wireCandidate, len(c))
	for id, cd := range c {
		candidates := cd.Abstract().Candidates()
		values := cd.Values()
		out := make([]wireCandidate, len(candidates))
		for i, cand := range candidates {
			out[i] = toWireCandidate(cand.ConditionSet(), values[i])
		}
		wire[id] = out
	}
	return json.Marshal(wire)
}

func toWireCandidate(set *condition.ConditionSet, entry resolve.Entry) wireCandidate {
	conds := make([]wireCondition, set.Len())
	for i, c := range set.Conditions() {
		priority := c.Priority()
		conds[i] = wireCondition{Qualifier: c.Qualifier().Name(), Value: c.Value(), Priority: &priority}
	}
	return wireCandidate{
		Conditions:  conds,
		Value:       entry.Value,
		IsPartial:   entry.IsPartial,
		MergeMethod: string(entry.MergeMethod),
	}
}

// Decode parses a Catalog JSON document back into a Catalog. It is a
// package-level function rather than Catalog's UnmarshalJSON because
// reconstructing each Condition's *qualifier.Qualifier requires resolving
// the wire form's qualifier name against the same qualifier.Registry the
// catalog was produced with - context encoding/json.Unmarshaler's
// interface has no room to carry, so round-tripping asks for it
// explicitly instead of silently failing closed over an unresolved
// name.
func Decode(data []byte, qualifiers *qualifier.Registry) (Catalog, error) {
	var wire map[string][]wireCandidate
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	catalog := make(Catalog, len(wire))
	for id, candidates := range wire {
		concrete := make([]decision.ConcreteCandidate[resolve.Entry], len(candidates))
		for i, wc := range candidates {
			set, entry, err := fromWireCandidate(wc, qualifiers)
			if err != nil {
				return nil, err
			}
			concrete[i] = decision.ConcreteCandidate[resolve.Entry]{ConditionSet: set, Value: entry}
		}
		// One registry per resource - see importer.go's Import for why.
		cd, err := decision.NewConcreteDecision(decision.NewRegistry(), concrete)
		if err != nil {
			return nil, err
		}
		catalog[id] = cd
	}
	return catalog, nil
}

func fromWireCandidate(wc wireCandidate, qualifiers *qualifier.Registry) (*condition.ConditionSet, resolve.Entry, error) {
	conds := make([]*condition.Condition, len(wc.Conditions))
	for i, wcond := range wc.Conditions {
		q, err := qualifiers.MustGet(wcond.Qualifier)
		if err != nil {
			return nil, resolve.Entry{}, err
		}
		priority := 0
		if wcond.Priority != nil {
			priority = *wcond.Priority
		} else {
			priority = q.DefaultPriority()
		}
		c, err := condition.New(q, wcond.Value, priority)
		if err != nil {
			return nil, resolve.Entry{}, err
		}
		conds[i] = c
	}
	set, err := condition.NewConditionSet(conds)
	if err != nil {
		return nil, resolve.Entry{}, err
	}

	mergeMethod := resolve.MergeAugment
	if wc.MergeMethod != "" {
		mergeMethod = resolve.MergeMethod(wc.MergeMethod)
	}
	entry := resolve.Entry{Value: wc.Value, IsPartial: wc.IsPartial, MergeMethod: mergeMethod}
	return set, entry, nil
}
