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

import "github.com/jplu/ctxres/internal/errs"

// IsWellFormed reports whether raw satisfies the syntactic shape of the
// given subtag Kind (Section 4.A): language is 2-3 or 5-8 ASCII
// letters; extlang is 3 letters; script is 4 letters; region is 2
// letters or 3 digits; variant is 5-8 alphanumeric, or 4 characters
// starting with a digit.
func IsWellFormed(kind Kind, raw string) bool {
	n := len(raw)
	switch kind {
	case KindLanguage:
		return isAlphabetic(raw) && ((n >= 2 && n <= 3) || (n >= 5 && n <= 8))
	case KindExtlang:
		return n == extlangLen && isAlphabetic(raw)
	case KindScript:
		return n == scriptLen && isAlphabetic(raw)
	case KindRegion:
		return (n == regionAlphaLen && isAlphabetic(raw)) || (n == regionNumericLen && isNumeric(raw))
	case KindVariant:
		if n == minVariantLenDigit && isDigit(raw[0]) && isAlphanumeric(raw) {
			return true
		}
		return n >= minVariantLenAlpha && n <= maxSubtagLen && isAlphanumeric(raw)
	default:
		return false
	}
}

// ToCanonical returns the registry's canonical casing for raw within
// kind, or - when raw is not registered - the syntactically
// case-normalized form (the mechanical casing rules of the
// Normalizer's canonical level). It fails with errs.NotWellFormed if
// raw does not even satisfy the kind's syntax.
func (r *Registry) ToCanonical(kind Kind, raw string) (string, error) {
	if !IsWellFormed(kind, raw) {
		return "", errs.New(errs.NotWellFormed, "subtag is not well-formed for its kind", raw)
	}
	if rec, ok := r.lookupSubtag(kind, raw); ok && rec.Subtag != "" {
		return rec.Subtag, nil
	}
	return canonicalCase(kind, raw), nil
}

// ToValidCanonical is like ToCanonical but fails with
// errs.NotRegistered if raw is not present in the registry partition
// for kind.
func (r *Registry) ToValidCanonical(kind Kind, raw string) (Record, error) {
	if !IsWellFormed(kind, raw) {
		return Record{}, errs.New(errs.NotWellFormed, "subtag is not well-formed for its kind", raw)
	}
	rec, ok := r.lookupSubtag(kind, raw)
	if !ok {
		return Record{}, errs.New(errs.NotRegistered, "subtag is not registered", raw)
	}
	return rec, nil
}

// TryGet performs case-insensitive canonicalization then an exact
// registry match, returning the record if raw is registered under kind.
func (r *Registry) TryGet(kind Kind, raw string) (Record, bool) {
	return r.lookupSubtag(kind, raw)
}

// canonicalCase applies the mechanical (non-registry) casing rule for
// a subtag of the given kind.
func canonicalCase(kind Kind, raw string) string {
	switch kind {
	case KindScript:
		var b []byte
		b = append(b, toUpperByte(raw[0]))
		for i := 1; i < len(raw); i++ {
			b = append(b, toLowerByte(raw[i]))
		}
		return string(b)
	case KindRegion:
		return toUpperASCII(raw)
	default:
		return toLowerASCII(raw)
	}
}

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func toLowerASCII(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = toLowerByte(s[i])
	}
	return string(out)
}

func toUpperASCII(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = toUpperByte(s[i])
	}
	return string(out)
}
