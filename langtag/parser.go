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

// BCP 47 constants governing subtag shape (Section 4.B).
const (
	maxSubtagLen        = 8 // A subtag may be eight characters at maximum.
	maxExtlangs         = 3 // RFC 5646 Section 2.2.2 allows up to three extlangs.
	scriptLen           = 4
	regionAlphaLen      = 2
	regionNumericLen    = 3
	extlangLen          = 3
	shortPrimaryLangLen = 3 // A primary language this long or shorter may take an extlang.
	minVariantLenAlpha  = 5
	minVariantLenDigit  = 4
)

// Extension represents one extension sequence in a tag, e.g. the
// "u-co-phonebk" in "en-u-co-phonebk".
type Extension struct {
	Singleton byte
	Subtags   []string
}

// Subtags is the structured, parsed representation of a tag (Section 3,
// "Subtags"). Exactly one of PrimaryLanguage, Grandfathered, or (for a
// private-use-only tag) a non-empty PrivateUse anchors the tag; a tag
// with a PrimaryLanguage may also carry a PrivateUse tail.
type Subtags struct {
	PrimaryLanguage string
	Extlangs        []string
	Script          string
	Region          string
	Variants        []string
	Extensions      []Extension
	PrivateUse      []string
	Grandfathered   string
}

// Parse splits tag into its component Subtags per the RFC 5646 grammar
// (Section 4.B). It performs no registry membership checks beyond the
// one special case the grammar itself requires: a whole-tag
// grandfathered match, which pre-empts normal decomposition. reg may be
// nil, in which case no tag is ever treated as grandfathered.
func Parse(reg *Registry, tag string) (Subtags, error) {
	if tag == "" {
		return Subtags{}, errs.New(errs.NotWellFormed, "language tag must not be empty", tag)
	}
	for i := 0; i < len(tag); i++ {
		if !isLangtagByte(tag[i]) {
			return Subtags{}, errs.New(errs.NotWellFormed, "tag contains a character outside [A-Za-z0-9-]", tag)
		}
	}

	if _, ok := reg.lookupTag(tag); ok {
		return Subtags{Grandfathered: strings.ToLower(tag)}, nil
	}

	subtags := strings.Split(tag, "-")
	if len(subtags) > 1 && subtags[len(subtags)-1] == "" {
		return Subtags{}, errs.New(errs.NotWellFormed, "tag must not end with a trailing hyphen", tag)
	}
	for _, s := range subtags {
		if s == "" {
			return Subtags{}, errs.New(errs.NotWellFormed, "tag must not contain an empty subtag", tag)
		}
		if len(s) > maxSubtagLen {
			return Subtags{}, errs.New(errs.NotWellFormed, "a subtag may be eight characters at maximum", s)
		}
	}

	if strings.EqualFold(subtags[0], "x") {
		priv, err := parsePrivateUse(subtags[1:])
		if err != nil {
			return Subtags{}, err
		}
		return Subtags{PrivateUse: priv}, nil
	}

	p := &tagParser{subtags: subtags}
	if err := p.parse(); err != nil {
		return Subtags{}, err
	}
	return p.result(), nil
}

// tagParser walks an already-split, non-grandfathered, non-private-use
// subtag list and fills in a Subtags value. Each step function reads
// from cur, advances it, and records what it consumed in the parser's
// own fields; result assembles those fields into a Subtags value.
type tagParser struct {
	subtags []string
	cur     int

	primaryLanguage string
	extlangs        []string
	script          string
	region          string
	variants        []string
	extensions      []Extension
	privateUse      []string
}

func (p *tagParser) result() Subtags {
	return Subtags{
		PrimaryLanguage: p.primaryLanguage,
		Extlangs:        p.extlangs,
		Script:          p.script,
		Region:          p.region,
		Variants:        p.variants,
		Extensions:      p.extensions,
		PrivateUse:      p.privateUse,
	}
}

func (p *tagParser) peek() (string, bool) {
	if p.cur >= len(p.subtags) {
		return "", false
	}
	return p.subtags[p.cur], true
}

func (p *tagParser) parse() error {
	lang, ok := p.peek()
	if !ok || !IsWellFormed(KindLanguage, lang) {
		return errs.New(errs.NotWellFormed, "a primary language subtag is required", strings.Join(p.subtags, "-"))
	}
	p.primaryLanguage = lang
	p.cur++

	if len(lang) <= shortPrimaryLangLen {
		if err := p.parseExtlangs(); err != nil {
			return err
		}
	}
	if err := p.parseScript(); err != nil {
		return err
	}
	if err := p.parseRegion(); err != nil {
		return err
	}
	if err := p.parseVariants(); err != nil {
		return err
	}
	if err := p.parseExtensions(); err != nil {
		return err
	}
	return p.parsePrivateUseTail()
}

func (p *tagParser) parseExtlangs() error {
	for len(p.extlangs) < maxExtlangs {
		s, ok := p.peek()
		if !ok || !IsWellFormed(KindExtlang, s) {
			return nil
		}
		p.extlangs = append(p.extlangs, s)
		p.cur++
	}
	return nil
}

func (p *tagParser) parseScript() error {
	s, ok := p.peek()
	if !ok || !IsWellFormed(KindScript, s) {
		return nil
	}
	p.script = s
	p.cur++
	return nil
}

func (p *tagParser) parseRegion() error {
	s, ok := p.peek()
	if !ok || !IsWellFormed(KindRegion, s) {
		return nil
	}
	p.region = s
	p.cur++
	return nil
}

// parseVariants accumulates every variant-shaped subtag in sequence.
// Duplicate variants are syntactically well-formed; rejecting them is
// the strictly-valid Validator's job (Section 4.C), not the parser's.
func (p *tagParser) parseVariants() error {
	for {
		s, ok := p.peek()
		if !ok || !IsWellFormed(KindVariant, s) {
			return nil
		}
		p.variants = append(p.variants, s)
		p.cur++
	}
}

// parseExtensions accumulates extension sequences. A repeated singleton
// is syntactically well-formed and is rejected only by the
// strictly-valid Validator, matching parseVariants above.
func (p *tagParser) parseExtensions() error {
	for {
		s, ok := p.peek()
		if !ok || len(s) != 1 || strings.EqualFold(s, "x") {
			return nil
		}
		singleton := lowerByte(s[0])
		p.cur++

		var values []string
		for {
			v, ok := p.peek()
			if !ok || len(v) < 2 || len(v) > maxSubtagLen || !isAlphanumeric(v) {
				break
			}
			values = append(values, v)
			p.cur++
		}
		if len(values) == 0 {
			return errs.New(errs.NotWellFormed, "an extension must contain at least one subtag", string(singleton))
		}
		p.extensions = append(p.extensions, Extension{Singleton: singleton, Subtags: values})
	}
}

func (p *tagParser) parsePrivateUseTail() error {
	s, ok := p.peek()
	if !ok {
		return nil
	}
	if !strings.EqualFold(s, "x") {
		return errs.New(errs.NotWellFormed, "unexpected subtag", s)
	}
	p.cur++
	priv, err := parsePrivateUse(p.subtags[p.cur:])
	if err != nil {
		return err
	}
	p.privateUse = priv
	return nil
}

func parsePrivateUse(subtags []string) ([]string, error) {
	if len(subtags) == 0 {
		return nil, errs.New(errs.NotWellFormed, "a private-use 'x' singleton must be followed by at least one subtag", "x")
	}
	for _, s := range subtags {
		if len(s) == 0 || len(s) > maxSubtagLen || !isAlphanumeric(s) {
			return nil, errs.New(errs.NotWellFormed, "invalid private-use subtag", s)
		}
	}
	return subtags, nil
}

func lowerByte(b byte) byte { return toLowerByte(b) }
