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

import (
	"strings"

	"github.com/jplu/ctxres/internal/errs"
)

// Normalization is one of the two normalization levels of Section 4.D,
// forming the total order None < Canonical < Preferred.
type Normalization int

const (
	NoNormalization Normalization = iota
	Canonical
	Preferred
)

// String renders a Normalization the way the specification names it.
func (n Normalization) String() string {
	switch n {
	case NoNormalization:
		return "none"
	case Canonical:
		return "canonical"
	case Preferred:
		return "preferred"
	default:
		return "unknown"
	}
}

// Normalizer applies one normalization level to a parsed tag.
type Normalizer func(reg *Registry, subtags Subtags) (Subtags, error)

// ChooseNormalizer returns the Normalizer for requested, unless current
// already meets or exceeds it.
func ChooseNormalizer(requested, current Normalization) (Normalizer, bool) {
	if current >= requested {
		return nil, false
	}
	switch requested {
	case Preferred:
		return normalizePreferred, true
	default:
		return normalizeCanonicalOnly, true
	}
}

func normalizeCanonicalOnly(_ *Registry, s Subtags) (Subtags, error) { return s, nil }

// Render assembles the canonical string form of s, applying the
// mechanical casing rules of the canonical normalization level
// (Section 4.D) as it writes: language and extlang lower, script
// title-case, region upper, variant lower, extension subtags lower,
// private-use lower. This is unconditional - even a bare Parse with no
// requested normalization renders through this function, which is why
// render(parse(t)) == canonicalize(t) holds for every parseable tag
// (Section 8).
func Render(s Subtags) string {
	if s.Grandfathered != "" {
		return strings.ToLower(s.Grandfathered)
	}
	var b strings.Builder
	if len(s.PrivateUse) > 0 && s.PrimaryLanguage == "" {
		b.WriteByte('x')
		for _, p := range s.PrivateUse {
			b.WriteByte('-')
			b.WriteString(strings.ToLower(p))
		}
		return b.String()
	}

	b.WriteString(strings.ToLower(s.PrimaryLanguage))
	for _, e := range s.Extlangs {
		b.WriteByte('-')
		b.WriteString(strings.ToLower(e))
	}
	if s.Script != "" {
		b.WriteByte('-')
		writeTitleCase(&b, s.Script)
	}
	if s.Region != "" {
		b.WriteByte('-')
		b.WriteString(strings.ToUpper(s.Region))
	}
	for _, v := range s.Variants {
		b.WriteByte('-')
		b.WriteString(strings.ToLower(v))
	}
	for _, ext := range s.Extensions {
		b.WriteByte('-')
		b.WriteByte(toLowerByte(ext.Singleton))
		for _, sub := range ext.Subtags {
			b.WriteByte('-')
			b.WriteString(strings.ToLower(sub))
		}
	}
	if len(s.PrivateUse) > 0 {
		b.WriteString("-x")
		for _, p := range s.PrivateUse {
			b.WriteByte('-')
			b.WriteString(strings.ToLower(p))
		}
	}
	return b.String()
}

// normalizePreferred implements Section 4.D's "preferred" level on top
// of whatever canonical casing Render will apply afterward.
func normalizePreferred(reg *Registry, s Subtags) (Subtags, error) {
	if s.Grandfathered != "" {
		if rec, ok := reg.lookupTag(s.Grandfathered); ok && rec.PreferredValue != "" {
			return Parse(reg, rec.PreferredValue)
		}
		return s, nil
	}
	if len(s.PrivateUse) > 0 && s.PrimaryLanguage == "" {
		return s, nil
	}

	s = absorbPreferredExtlang(reg, s)
	s = substituteDeprecated(reg, s)
	s = suppressImplicitScript(reg, s)
	s.Variants = dedupeStrings(s.Variants)

	if err := checkNoDuplicateSingleton(s.Extensions); err != nil {
		return Subtags{}, err
	}
	return s, nil
}

// absorbPreferredExtlang replaces a leading extlang with its preferred
// primary-language substitute when the extlang record's prefix matches
// the current primary language, per the "absorbing the extlang" rule.
func absorbPreferredExtlang(reg *Registry, s Subtags) Subtags {
	if len(s.Extlangs) == 0 {
		return s
	}
	rec, ok := reg.TryGet(KindExtlang, s.Extlangs[0])
	if !ok || rec.PreferredValue == "" || !prefixListContains(rec.Prefix, s.PrimaryLanguage) {
		return s
	}
	s.PrimaryLanguage = rec.PreferredValue
	s.Extlangs = s.Extlangs[1:]
	return s
}

// substituteDeprecated replaces every subtag that carries a
// preferredValue in the registry with that preferred form.
func substituteDeprecated(reg *Registry, s Subtags) Subtags {
	replace := func(kind Kind, subtag string) string {
		if subtag == "" {
			return subtag
		}
		if rec, ok := reg.TryGet(kind, subtag); ok && rec.PreferredValue != "" {
			return rec.PreferredValue
		}
		return subtag
	}

	s.PrimaryLanguage = replace(KindLanguage, s.PrimaryLanguage)
	s.Script = replace(KindScript, s.Script)
	s.Region = replace(KindRegion, s.Region)
	for i, v := range s.Variants {
		s.Variants[i] = replace(KindVariant, v)
	}
	return s
}

// suppressImplicitScript drops a script subtag that matches the
// primary language's registered suppress-script.
func suppressImplicitScript(reg *Registry, s Subtags) Subtags {
	if s.Script == "" {
		return s
	}
	rec, ok := reg.TryGet(KindLanguage, s.PrimaryLanguage)
	if ok && rec.SuppressScript != "" && strings.EqualFold(rec.SuppressScript, s.Script) {
		s.Script = ""
	}
	return s
}

func dedupeStrings(items []string) []string {
	if len(items) < 2 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		lower := strings.ToLower(item)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, item)
	}
	return out
}

func checkNoDuplicateSingleton(exts []Extension) error {
	seen := make(map[byte]struct{}, len(exts))
	for _, ext := range exts {
		lower := toLowerByte(ext.Singleton)
		if _, ok := seen[lower]; ok {
			return errs.New(errs.NotStrictlyValid, "extension singletons collide after preferred normalization", string(lower))
		}
		seen[lower] = struct{}{}
	}
	return nil
}
