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

import "testing"

func mustTag(t *testing.T, reg *Registry, tag string) *LanguageTag {
	t.Helper()
	lt, err := New(reg, tag)
	if err != nil {
		t.Fatalf("New(%q): %v", tag, err)
	}
	return lt
}

func TestSimilarityScenarios(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	cases := []struct {
		name string
		a, b string
		want Tier
	}{
		{"exact match", "en-US", "en-US", TierExact},
		{"unrelated present regions are siblings", "en-US", "en-GB", TierSibling},
		{"related regions favor the affinity's preferred member", "en-GB", "en-CA", TierPreferredAffinity},
		{"missing region against an unrelated one is neutral", "en-AU", "en", TierNeutralRegion},
		{"different primary language never matches", "en-US", "fr-FR", TierNone},
		{"world region is always exact", "en-001", "en-GB", TierExact},
		{"macro-region containment", "en-US", "en-021", TierMacroRegion},
		{"implicit suppress-script is compatible with the explicit form", "ja", "ja-Jpan", TierExact},
		{"und against itself is undetermined", "und", "und", TierUndetermined},
			{"und matches any other primary language's undetermined form", "und", "en-US", TierUndetermined},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			a, b := mustTag(t, reg, c.a), mustTag(t, reg, c.b)
			if got := Similarity(reg, a, b); got != c.want {
				t.Errorf("Similarity(%q, %q) = %s, want %s", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestSimilarityIsCommutative(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	pairs := [][2]string{
		{"en-US", "en-GB"}, {"en-GB", "en-CA"}, {"en-AU", "en"},
		{"zh-Hans-CN", "zh-Hant-TW"}, {"de-1996", "de-AT"},
	}
	for _, p := range pairs {
		a, b := mustTag(t, reg, p[0]), mustTag(t, reg, p[1])
		if Similarity(reg, a, b) != Similarity(reg, b, a) {
			t.Errorf("Similarity(%q, %q) is not commutative", p[0], p[1])
		}
	}
}

func TestSimilarityOfATagWithItselfIsExact(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	for _, tag := range []string{"en", "en-US", "zh-Hans-CN-u-co-phonebk", "de-1996"} {
		lt := mustTag(t, reg, tag)
		if got := Similarity(reg, lt, lt); got != TierExact {
			t.Errorf("Similarity(%q, %q) = %s, want exact", tag, tag, got)
		}
	}
}
