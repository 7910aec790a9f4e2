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

func mustTags(t *testing.T, reg *Registry, tags ...string) []*LanguageTag {
	t.Helper()
	out := make([]*LanguageTag, len(tags))
	for i, tag := range tags {
		out[i] = mustTag(t, reg, tag)
	}
	return out
}

func TestChoosePrefersHighestTierAvailableTag(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	desired := mustTags(t, reg, "en-GB")
	available := mustTags(t, reg, "en-CA", "en-US", "fr-FR")

	got, err := Choose(reg, desired, available, ChooseOptions{Filter: FilterBest})
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(got) == 0 || got[0] != "en-CA" {
		t.Errorf("Choose() = %v, want en-CA first (preferredAffinity beats sibling)", got)
	}
}

func TestChooseFallsBackToUltimateFallback(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	desired := mustTags(t, reg, "fr-FR")
	available := mustTags(t, reg, "de-DE")

	got, err := Choose(reg, desired, available, ChooseOptions{UltimateFallback: "en-US"})
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(got) != 1 || got[0] != "en-US" {
		t.Errorf("Choose() = %v, want the ultimate fallback alone", got)
	}
}

func TestChooseUseDesiredLanguage(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	desired := mustTags(t, reg, "en-GB")
	available := mustTags(t, reg, "en-US")

	got, err := Choose(reg, desired, available, ChooseOptions{Use: UseDesiredLanguage})
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(got) != 1 || got[0] != "en-GB" {
		t.Errorf("Choose() with UseDesiredLanguage = %v, want [en-GB]", got)
	}
}
