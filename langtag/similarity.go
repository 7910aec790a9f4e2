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

import "strings"

// Tier is a named similarity level drawn from the fixed total order of
// Section 4.E: None < Undetermined < Sibling < Region < MacroRegion <
// NeutralRegion < PreferredRegion < Affinity < PreferredAffinity <
// Variant < Exact.
type Tier int

const (
	TierNone Tier = iota
	TierUndetermined
	TierSibling
	TierRegion
	TierMacroRegion
	TierNeutralRegion
	TierPreferredRegion
	TierAffinity
	TierPreferredAffinity
	TierVariant
	TierExact
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierUndetermined:
		return "undetermined"
	case TierSibling:
		return "sibling"
	case TierRegion:
		return "region"
	case TierMacroRegion:
		return "macroRegion"
	case TierNeutralRegion:
		return "neutralRegion"
	case TierPreferredRegion:
		return "preferredRegion"
	case TierAffinity:
		return "affinity"
	case TierPreferredAffinity:
		return "preferredAffinity"
	case TierVariant:
		return "variant"
	case TierExact:
		return "exact"
	default:
		return "unknown"
	}
}

// Value maps a Tier onto the [0,1] range the similarity matcher's
// component contract advertises, scaling linearly by tier ordinal.
func (t Tier) Value() float64 {
	return float64(t) / float64(TierExact)
}

func minTier(a, b Tier) Tier {
	if a < b {
		return a
	}
	return b
}

// Similarity computes the Section 4.E similarity tier between a and b
// against reg, which supplies suppress-script lookups. It is
// commutative and reaches TierExact when no compared dimension differs;
// a world region ("001") on either side, and a script omitted on one
// side that is the language's suppress-script on the other, count as
// no difference.
func Similarity(reg *Registry, a, b *LanguageTag) Tier {
	as, bs := a.Subtags(), b.Subtags()

	langA, langB := strings.ToLower(as.PrimaryLanguage), strings.ToLower(bs.PrimaryLanguage)
	if langA != langB {
		if langA == "und" || langB == "und" {
			return TierUndetermined
		}
		return TierNone
	}

	tier := TierExact
	if langA == "und" {
		tier = minTier(tier, TierUndetermined)
	}

	if len(as.Extlangs) != len(bs.Extlangs) {
		return TierNone
	}
	for i := range as.Extlangs {
		if !strings.EqualFold(as.Extlangs[i], bs.Extlangs[i]) {
			return TierNone
		}
	}

	if !scriptsCompatible(reg, langA, as.Script, bs.Script) {
		return TierNone
	}

	tier = minTier(tier, regionSimilarity(langA, as.Region, bs.Region))

	if !sameStringSetFold(as.Variants, bs.Variants) {
		tier = minTier(tier, TierRegion)
	}

	if !sameExtensions(as.Extensions, bs.Extensions) || !sameStringSetFold(as.PrivateUse, bs.PrivateUse) {
		tier = minTier(tier, TierVariant)
	}

	return tier
}

// scriptsCompatible implements step 4: scripts match outright, or one
// side is absent and the other equals the primary language's
// suppress-script (so e.g. "ja" and "ja-Jpan" are compatible).
func scriptsCompatible(reg *Registry, lang, scriptA, scriptB string) bool {
	if strings.EqualFold(scriptA, scriptB) {
		return true
	}
	if scriptA != "" && scriptB != "" {
		return false
	}
	present := scriptA
	if present == "" {
		present = scriptB
	}
	rec, ok := reg.TryGet(KindLanguage, lang)
	return ok && rec.SuppressScript != "" && strings.EqualFold(rec.SuppressScript, present)
}

// regionSimilarity implements step 5.
func regionSimilarity(lang, regionA, regionB string) Tier {
	if strings.EqualFold(regionA, regionB) {
		return TierExact
	}

	if regionA == "" || regionB == "" {
		present := regionA
		if present == "" {
			present = regionB
		}
		if present == worldRegion {
			return TierExact
		}
		if entry, ok := affinityFor(lang); ok && strings.EqualFold(entry.Preferred, present) {
			return TierPreferredRegion
		}
		return TierNeutralRegion
	}

	if strings.EqualFold(regionA, worldRegion) || strings.EqualFold(regionB, worldRegion) {
		return TierExact
	}
	if isMacroRegionOf(regionA, regionB) || isMacroRegionOf(regionB, regionA) {
		return TierMacroRegion
	}

	entry, ok := affinityFor(lang)
	if !ok {
		return TierSibling
	}
	if containsRegion(entry.Related, regionA) && containsRegion(entry.Related, regionB) {
		if strings.EqualFold(entry.Preferred, regionA) || strings.EqualFold(entry.Preferred, regionB) {
			return TierPreferredAffinity
		}
		return TierAffinity
	}
	return TierSibling
}

func sameStringSetFold(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameExtensions(a, b []Extension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if toLowerByte(a[i].Singleton) != toLowerByte(b[i].Singleton) {
			return false
		}
		if !sameStringSetFold(a[i].Subtags, b[i].Subtags) {
			return false
		}
	}
	return true
}
