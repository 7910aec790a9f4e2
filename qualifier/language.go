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
	"strings"

	"github.com/jplu/ctxres/langtag"
)

// LanguageType implements the "language" qualifier type: it validates
// values as BCP 47 tags and scores matches by §4.E similarity. A
// context value may be a comma-separated list, in which case Match
// returns the best similarity across the list (Section 4.G).
type LanguageType struct {
	registry      *langtag.Registry
	validity      langtag.Validity
	normalization langtag.Normalization
}

// NewLanguageType builds a LanguageType bound to reg, validating and
// normalizing parsed tags to the given levels.
func NewLanguageType(reg *langtag.Registry, validity langtag.Validity, normalization langtag.Normalization) *LanguageType {
	return &LanguageType{registry: reg, validity: validity, normalization: normalization}
}

func (t *LanguageType) Name() TypeName { return TypeLanguage }

func (t *LanguageType) parse(v string) (*langtag.LanguageTag, error) {
	return langtag.New(t.registry, v,
		langtag.WithValidity(t.validity),
		langtag.WithNormalization(t.normalization))
}

func (t *LanguageType) IsValidConditionValue(v string) bool {
	_, err := t.parse(v)
	return err == nil
}

func (t *LanguageType) IsValidContextValue(v string) bool {
	for _, part := range splitContextList(v) {
		if _, err := t.parse(part); err != nil {
			return false
		}
	}
	return len(splitContextList(v)) > 0
}

func (t *LanguageType) Match(conditionValue, contextValue string) float64 {
	cond, err := t.parse(conditionValue)
	if err != nil {
		return NoMatch
	}
	best := langtag.TierNone
	for _, part := range splitContextList(contextValue) {
		ctx, err := t.parse(part)
		if err != nil {
			continue
		}
		if tier := langtag.Similarity(t.registry, cond, ctx); tier > best {
			best = tier
		}
	}
	return best.Value()
}

// splitContextList splits a comma-list context value per Section 4.G,
// trimming surrounding whitespace from each entry and dropping empties.
func splitContextList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
