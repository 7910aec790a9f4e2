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

// Package resolve implements the matching engine of Section 4.J: it
// scores a ConcreteDecision's candidates against a runtime Context and,
// on request, folds the surviving partial candidates into one merged
// value.
package resolve

import (
	"sort"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/decision"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/internal/jsonvalue"
)

// MergeMethod selects how a partial candidate's value folds into the
// accumulated result (Section 4.J step 3).
type MergeMethod string

const (
	// MergeAugment deep-merges objects member by member, overlay winning
	// on key collision; an array or scalar overlay replaces the
	// accumulated value outright. It is the default when MergeMethod is
	// the zero value.
	MergeAugment MergeMethod = "augment"
	// MergeReplace overwrites the accumulated result outright.
	MergeReplace MergeMethod = "replace"
)

// Entry is one resource candidate's payload: its value, whether it is
// partial (folded by Resolve into the best-scoring candidate's value
// when it ranks below it), and how it folds if so.
type Entry struct {
	Value       jsonvalue.Value
	IsPartial   bool
	MergeMethod MergeMethod
}

// Context is a runtime snapshot of qualifier name -> context value,
// e.g. {"language": "en-US", "platform": "ios"}.
type Context map[string]string

// ScoredCandidate is one candidate that scored above zero, in the
// output order of Score: highest score first, ties broken by the
// candidate's position in the abstract decision.
type ScoredCandidate struct {
	Index int
	Score float64
	Entry Entry
}

// Score implements Section 4.J steps 1-2: it scores every candidate of
// d against ctx and returns those scoring above zero, sorted by
// (score desc, candidate order asc).
func Score(d *decision.ConcreteDecision[Entry], ctx Context) []ScoredCandidate {
	abstract := d.Abstract()
	values := d.Values()

	var scored []ScoredCandidate
	for i, cand := range abstract.Candidates() {
		score := scoreConditionSet(cand.ConditionSet(), ctx)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredCandidate{Index: i, Score: score, Entry: values[i]})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Index < scored[j].Index
	})
	return scored
}

// scoreConditionSet multiplies each condition's match score, a missing
// context entry falling back to the qualifier's default value or
// failing the whole candidate if none is configured.
func scoreConditionSet(set *condition.ConditionSet, ctx Context) float64 {
	score := 1.0
	for _, cond := range set.Conditions() {
		ctxValue, ok := ctx[cond.Qualifier().Name()]
		if !ok {
			dv, hasDefault := cond.Qualifier().DefaultValue()
			if !hasDefault {
				return 0
			}
			ctxValue = dv
		}
		m := cond.Qualifier().Type().Match(cond.Value(), ctxValue)
		if m <= 0 {
			return 0
		}
		score *= m
	}
	return score
}

// Resolve implements Section 4.J step 3-4: it scores d's candidates
// against ctx and, if merge is true, folds every subsequent partial
// candidate's value into the best candidate's, in score order, until a
// non-object/array value stops the fold (scalars short-circuit). If no
// candidate scores above zero, it falls back to d's default-only
// candidate (the one requiring the empty condition set) if present,
// else fails with errs.NotFound.
func Resolve(d *decision.ConcreteDecision[Entry], ctx Context, merge bool) (jsonvalue.Value, error) {
	scored := Score(d, ctx)
	if len(scored) == 0 {
		return defaultOnlyValue(d)
	}

	result := scored[0].Entry.Value
	if !merge {
		return result, nil
	}

	for _, sc := range scored[1:] {
		if !sc.Entry.IsPartial {
			continue
		}
		if k := result.Kind(); k != jsonvalue.KindObject && k != jsonvalue.KindArray {
			break
		}
		switch sc.Entry.MergeMethod {
		case MergeReplace:
			result = sc.Entry.Value
		default:
			result = jsonvalue.Merge(result, sc.Entry.Value)
		}
	}
	return result, nil
}

func defaultOnlyValue(d *decision.ConcreteDecision[Entry]) (jsonvalue.Value, error) {
	values := d.Values()
	for i, cand := range d.Abstract().Candidates() {
		if cand.ConditionSet().Len() == 0 {
			return values[i].Value, nil
		}
	}
	return jsonvalue.Value{}, errs.New(errs.NotFound, "no candidate matched the context and no default is present", "")
}
