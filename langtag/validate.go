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

// Validity is one of the three escalating validation levels of Section
// 4.C, forming the total order WellFormed < Valid < StrictlyValid.
type Validity int

const (
	WellFormed Validity = iota
	Valid
	StrictlyValid
)

// String renders a Validity the way the specification names it.
func (v Validity) String() string {
	switch v {
	case WellFormed:
		return "wellFormed"
	case Valid:
		return "valid"
	case StrictlyValid:
		return "strictlyValid"
	default:
		return "unknown"
	}
}

// Validator checks a parsed tag against one validation level.
type Validator func(reg *Registry, tag string, subtags Subtags) error

// ChooseValidator returns the Validator for requested, unless current
// already meets or exceeds it, in which case it returns (nil, false) -
// there is nothing left to check.
func ChooseValidator(requested, current Validity) (Validator, bool) {
	if current >= requested {
		return nil, false
	}
	switch requested {
	case Valid:
		return validateValid, true
	case StrictlyValid:
		return validateStrictlyValid, true
	default:
		return validateWellFormed, true
	}
}

// validateWellFormed is a no-op: reaching a Subtags value at all means
// Parse already confirmed well-formedness.
func validateWellFormed(_ *Registry, _ string, _ Subtags) error { return nil }

// validateValid implements Section 4.C's "valid" level: every subtag
// must exist in the registry.
func validateValid(reg *Registry, tag string, s Subtags) error {
	if s.Grandfathered != "" {
		return nil
	}
	if s.PrimaryLanguage != "" {
		if _, ok := reg.TryGet(KindLanguage, s.PrimaryLanguage); !ok {
			return errs.New(errs.NotRegistered, "primary language is not registered", s.PrimaryLanguage)
		}
	}
	for _, e := range s.Extlangs {
		if _, ok := reg.TryGet(KindExtlang, e); !ok {
			return errs.New(errs.NotRegistered, "extlang is not registered", e)
		}
	}
	if s.Script != "" {
		if _, ok := reg.TryGet(KindScript, s.Script); !ok {
			return errs.New(errs.NotRegistered, "script is not registered", s.Script)
		}
	}
	if s.Region != "" {
		if _, ok := reg.TryGet(KindRegion, s.Region); !ok {
			return errs.New(errs.NotRegistered, "region is not registered", s.Region)
		}
	}
	for _, v := range s.Variants {
		if _, ok := reg.TryGet(KindVariant, v); !ok {
			return errs.New(errs.NotRegistered, "variant is not registered", v)
		}
	}
	return nil
}

// validateStrictlyValid implements Section 4.C's "strictlyValid" level:
// valid, plus prefix and duplication constraints.
func validateStrictlyValid(reg *Registry, tag string, s Subtags) error {
	if err := validateValid(reg, tag, s); err != nil {
		return err
	}

	for _, e := range s.Extlangs {
		rec, ok := reg.TryGet(KindExtlang, e)
		if !ok || len(rec.Prefix) == 0 {
			continue
		}
		if !prefixListContains(rec.Prefix, s.PrimaryLanguage) {
			return errs.New(errs.NotStrictlyValid, "extlang prefix does not match the primary language", e)
		}
	}

	seenVariants := make(map[string]struct{}, len(s.Variants))
	precedingLower := strings.ToLower(s.PrimaryLanguage)
	if s.Script != "" {
		precedingLower += "-" + strings.ToLower(s.Script)
	}
	if s.Region != "" {
		precedingLower += "-" + strings.ToLower(s.Region)
	}
	for _, v := range s.Variants {
		lower := strings.ToLower(v)
		if _, dup := seenVariants[lower]; dup {
			return errs.New(errs.NotStrictlyValid, "the same variant subtag appears more than once", v)
		}
		seenVariants[lower] = struct{}{}

		rec, ok := reg.TryGet(KindVariant, v)
		if !ok || len(rec.Prefix) == 0 {
			continue
		}
		if !prefixListContainsTag(rec.Prefix, precedingLower) {
			return errs.New(errs.NotStrictlyValid, "variant prefix does not match the preceding subtags", v)
		}
		precedingLower += "-" + lower
	}

	seenSingletons := make(map[byte]struct{}, len(s.Extensions))
	for _, ext := range s.Extensions {
		if _, dup := seenSingletons[ext.Singleton]; dup {
			return errs.New(errs.NotStrictlyValid, "the same extension singleton appears more than once", string(ext.Singleton))
		}
		seenSingletons[ext.Singleton] = struct{}{}
	}
	return nil
}

// prefixListContains reports whether any prefix in prefixes names lang
// as one of its hyphen-separated components (the extlang prefix rule:
// the registry lists bare language prefixes).
func prefixListContains(prefixes []string, lang string) bool {
	lowerLang := strings.ToLower(lang)
	for _, p := range prefixes {
		for _, part := range strings.Split(p, "-") {
			if strings.ToLower(part) == lowerLang {
				return true
			}
		}
	}
	return false
}

// prefixListContainsTag reports whether any prefix in prefixes equals,
// case-insensitively, the dash-joined sequence of subtags preceding a
// variant.
func prefixListContainsTag(prefixes []string, precedingLower string) bool {
	for _, p := range prefixes {
		if strings.ToLower(p) == precedingLower {
			return true
		}
	}
	return false
}

// Validate runs every level up to and including level against tag,
// returning the first failure encountered.
func Validate(reg *Registry, tag string, subtags Subtags, level Validity) error {
	for _, lvl := range []Validity{WellFormed, Valid, StrictlyValid} {
		if lvl > level {
			break
		}
		validator, ok := ChooseValidator(lvl, lvl-1)
		if !ok {
			continue
		}
		if err := validator(reg, tag, subtags); err != nil {
			return err
		}
	}
	return nil
}
