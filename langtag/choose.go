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

package langtag

import "sort"

// Filter selects which matches Choose keeps per available tag
// (Section 4.F).
type Filter int

const (
	// FilterBest keeps only the top similarity tier per available tag.
	// This is also the default when Filter is the zero value.
	FilterBest Filter = iota
	// FilterAll is a synonym of FilterBest (Section 4.F step 4: "if
	// `all` default (best)"; Section 9 forbids inventing a third
	// semantics for it), kept distinct so callers can express "all" by
	// name.
	FilterAll
	// FilterNone keeps every desired/available pairing with similarity
	// above TierNone, without collapsing to the top tier per available
	// tag.
	FilterNone
)

// Use selects whether Choose emits the matched available tag or the
// desired tag that matched it.
type Use int

const (
	UseAvailableLanguage Use = iota
	UseDesiredLanguage
)

// ChooseOptions configures Choose (Section 4.F).
type ChooseOptions struct {
	Filter           Filter
	UltimateFallback string
	Use              Use
}

type chooseMatch struct {
	desiredIndex   int
	availableIndex int
	tier           Tier
	desiredTag     string
	availableTag   string
}

// Choose orders available against desired, returning the tags from
// available (or UltimateFallback) best satisfying desired, in desired
// order (Section 4.F).
func Choose(reg *Registry, desired, available []*LanguageTag, opts ChooseOptions) ([]string, error) {
	var matches []chooseMatch
	for di, d := range desired {
		for ai, a := range available {
			tier := Similarity(reg, d, a)
			if tier <= TierNone {
				continue
			}
			matches = append(matches, chooseMatch{
				desiredIndex:   di,
				availableIndex: ai,
				tier:           tier,
				desiredTag:     d.String(),
				availableTag:   a.String(),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].desiredIndex != matches[j].desiredIndex {
			return matches[i].desiredIndex < matches[j].desiredIndex
		}
		if matches[i].tier != matches[j].tier {
			return matches[i].tier > matches[j].tier
		}
		return matches[i].availableIndex < matches[j].availableIndex
	})

	if opts.Filter != FilterNone {
		matches = bestPerAvailable(matches)
	}

	results := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		out := m.availableTag
		if opts.Use == UseDesiredLanguage {
			out = m.desiredTag
		}
		if _, dup := seen[out]; dup {
			continue
		}
		seen[out] = struct{}{}
		results = append(results, out)
	}

	if len(results) == 0 && opts.UltimateFallback != "" {
		return []string{opts.UltimateFallback}, nil
	}
	return results, nil
}

// bestPerAvailable keeps, for each distinct available tag, only its
// highest-tier match, preserving the stable sort's relative order.
func bestPerAvailable(matches []chooseMatch) []chooseMatch {
	bestTier := make(map[string]Tier, len(matches))
	for _, m := range matches {
		if cur, ok := bestTier[m.availableTag]; !ok || m.tier > cur {
			bestTier[m.availableTag] = m.tier
		}
	}
	out := matches[:0:0]
	for _, m := range matches {
		if m.tier == bestTier[m.availableTag] {
			out = append(out, m)
		}
	}
	return out
}
