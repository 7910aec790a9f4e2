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

// Package langtag implements the BCP 47 language tag engine: parsing,
// three-level validation, two-level normalization, similarity scoring
// and chooser matching against a registered IANA subtag registry.
package langtag

import "encoding/json"

// options collects the Option values a caller supplies to New or
// Parser.Parse.
type options struct {
	validity      Validity
	normalization Normalization
}

// Option configures the validation and normalization levels New
// attempts to achieve.
type Option func(*options)

// WithValidity requests that New fail unless tag satisfies level.
// The default, if omitted, is WellFormed.
func WithValidity(level Validity) Option {
	return func(o *options) { o.validity = level }
}

// WithNormalization requests that New normalize tag to level before
// returning it. The default, if omitted, is NoNormalization.
func WithNormalization(level Normalization) Option {
	return func(o *options) { o.normalization = level }
}

// LanguageTag is an immutable composite of a canonical string form, the
// parsed Subtags, and the validity and normalization levels actually
// achieved when it was constructed (Section 3).
type LanguageTag struct {
	tag           string
	subtags       Subtags
	validity      Validity
	normalization Normalization
}

// New parses tag against reg, validating and normalizing it to the
// levels requested by opts. With no options, it only requires tag to
// be well-formed and applies no normalization beyond the canonical
// mechanical casing Render always performs.
func New(reg *Registry, tag string, opts ...Option) (*LanguageTag, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	subtags, err := Parse(reg, tag)
	if err != nil {
		return nil, err
	}
	if err := Validate(reg, tag, subtags, o.validity); err != nil {
		return nil, err
	}

	achieved := NoNormalization
	if o.normalization > NoNormalization {
		if normalizer, ok := ChooseNormalizer(o.normalization, NoNormalization); ok {
			subtags, err = normalizer(reg, subtags)
			if err != nil {
				return nil, err
			}
		}
		achieved = o.normalization
	}

	return &LanguageTag{
		tag:           Render(subtags),
		subtags:       subtags,
		validity:      o.validity,
		normalization: achieved,
	}, nil
}

// String returns the canonical string form.
func (t *LanguageTag) String() string { return t.tag }

// Subtags returns the parsed components.
func (t *LanguageTag) Subtags() Subtags { return t.subtags }

// Validity reports the validation level this tag was confirmed to
// satisfy when it was constructed.
func (t *LanguageTag) Validity() Validity { return t.validity }

// Normalization reports the normalization level applied when this tag
// was constructed.
func (t *LanguageTag) Normalization() Normalization { return t.normalization }

// PrimaryLanguage returns the primary language subtag, empty for a
// private-use-only tag.
func (t *LanguageTag) PrimaryLanguage() string { return t.subtags.PrimaryLanguage }

// Extlangs returns the extended language subtags, if any.
func (t *LanguageTag) Extlangs() []string { return t.subtags.Extlangs }

// Script returns the script subtag, if present.
func (t *LanguageTag) Script() string { return t.subtags.Script }

// Region returns the region subtag, if present.
func (t *LanguageTag) Region() string { return t.subtags.Region }

// Variants returns the variant subtags, if any.
func (t *LanguageTag) Variants() []string { return t.subtags.Variants }

// Extensions returns the extension sequences, if any.
func (t *LanguageTag) Extensions() []Extension { return t.subtags.Extensions }

// PrivateUse returns the private-use subtags, if any.
func (t *LanguageTag) PrivateUse() []string { return t.subtags.PrivateUse }

// IsGrandfathered reports whether this tag is one of the fixed
// grandfathered or redundant whole-tag registrations.
func (t *LanguageTag) IsGrandfathered() bool { return t.subtags.Grandfathered != "" }

// IsPrivateUse reports whether this tag consists solely of a
// private-use sequence ("x-...").
func (t *LanguageTag) IsPrivateUse() bool {
	return t.subtags.PrimaryLanguage == "" && t.subtags.Grandfathered == "" && len(t.subtags.PrivateUse) > 0
}

// MarshalJSON renders the tag as its canonical string form.
func (t *LanguageTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.tag)
}

// Parser binds a Registry so callers can construct LanguageTag values
// without threading reg through every call site.
type Parser struct {
	Registry *Registry
}

// NewParser returns a Parser bound to reg.
func NewParser(reg *Registry) *Parser {
	return &Parser{Registry: reg}
}

// Parse constructs a LanguageTag against the Parser's bound registry.
func (p *Parser) Parse(tag string, opts ...Option) (*LanguageTag, error) {
	return New(p.Registry, tag, opts...)
}
