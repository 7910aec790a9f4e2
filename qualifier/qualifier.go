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
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jplu/ctxres/internal/collector"
	"github.com/jplu/ctxres/internal/errs"
)

// nameRE is the qualifier name grammar of Section 6's token syntax:
// [A-Za-z_][A-Za-z0-9_-]*.
var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// validate is the single validator.New() instance every package that
// checks qualifier-name-shaped strings shares, rather than each package
// hand-rolling its own regexp check. nameValidator registers the
// "qualifiername" tag once, lazily, so packages that only import
// qualifier for its types never pay for it.
var (
	validate         = validator.New()
	registerNameOnce sync.Once
)

func nameValidator() *validator.Validate {
	registerNameOnce.Do(func() {
		_ = validate.RegisterValidation("qualifiername", func(fl validator.FieldLevel) bool {
			return nameRE.MatchString(fl.Field().String())
		})
	})
	return validate
}

type nameInput struct {
	Name string `validate:"required,qualifiername"`
}

// ValidateName reports whether name matches the qualifier name grammar,
// using the shared go-playground/validator instance rather than a bare
// regexp match at each call site.
func ValidateName(name string) bool {
	return nameValidator().Struct(nameInput{Name: name}) == nil
}

// Qualifier names one condition/context dimension: its Type governs how
// values are validated and matched, DefaultValue is substituted for a
// missing context entry at match time (Section 4.J), TokenIsOptional
// allows a resource path segment to encode just the value, without a
// "qualifier=" prefix (Section 6), and DefaultPriority seeds a
// Condition's priority when the importer's file-tree encoding does not
// override it.
type Qualifier struct {
	name            string
	qType           Type
	defaultValue    string
	tokenIsOptional bool
	defaultPriority int
}

// Config collects the Option values a caller supplies to NewQualifier.
type Config struct {
	DefaultValue    string
	TokenIsOptional bool
	DefaultPriority int
}

// Option configures a Qualifier's optional fields, following the
// Option func(*Config) pattern used throughout ctxres.
type Option func(*Config)

// WithDefaultValue sets the value substituted for a missing context
// entry during decision scoring.
func WithDefaultValue(v string) Option { return func(c *Config) { c.DefaultValue = v } }

// WithTokenIsOptional allows a resource path segment to encode just
// this qualifier's value, without a "name=" prefix.
func WithTokenIsOptional(optional bool) Option {
	return func(c *Config) { c.TokenIsOptional = optional }
}

// WithDefaultPriority sets the priority a Condition on this qualifier
// receives when not otherwise specified.
func WithDefaultPriority(priority int) Option {
	return func(c *Config) { c.DefaultPriority = priority }
}

// NewQualifier builds a Qualifier, failing with errs.NotWellFormed if
// name does not match the qualifier name grammar.
func NewQualifier(name string, qType Type, opts ...Option) (*Qualifier, error) {
	if !ValidateName(name) {
		return nil, errs.New(errs.NotWellFormed, "qualifier name must match [A-Za-z_][A-Za-z0-9_-]*", name)
	}
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Qualifier{
		name:            name,
		qType:           qType,
		defaultValue:    cfg.DefaultValue,
		tokenIsOptional: cfg.TokenIsOptional,
		defaultPriority: cfg.DefaultPriority,
	}, nil
}

// Name returns the qualifier's name, used as its registry key and as
// the "{qualifier.name}" half of a condition key (Section 4.H).
func (q *Qualifier) Name() string { return q.name }

// Type returns the qualifier's value-matching behavior.
func (q *Qualifier) Type() Type { return q.qType }

// DefaultValue returns the value substituted for a missing context
// entry during decision scoring, and whether one was configured.
func (q *Qualifier) DefaultValue() (string, bool) { return q.defaultValue, q.defaultValue != "" }

// TokenIsOptional reports whether a resource path segment for this
// qualifier may omit the "name=" prefix and encode only the value.
func (q *Qualifier) TokenIsOptional() bool { return q.tokenIsOptional }

// DefaultPriority returns the priority a Condition on this qualifier
// receives when the caller does not specify one explicitly.
func (q *Qualifier) DefaultPriority() int { return q.defaultPriority }

// Registry is the content-addressed collector of Qualifiers a resource
// catalog is built against, keyed by name.
type Registry struct {
	collector *collector.Collector[string, *Qualifier]
}

// NewRegistry returns an empty qualifier Registry.
func NewRegistry() *Registry {
	return &Registry{collector: collector.NewCollector[string, *Qualifier]()}
}

// GetOrAdd inserts q under its name if not already present, returning
// the registered Qualifier (the existing one on a name collision, per
// the collector's idempotent getOrAdd contract).
func (r *Registry) GetOrAdd(q *Qualifier) *Qualifier {
	return r.collector.GetOrAdd(q.name, q).Value
}

// Get looks up a Qualifier by name.
func (r *Registry) Get(name string) (*Qualifier, bool) {
	entry, ok := r.collector.Get(name)
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// MustGet looks up a Qualifier by name, returning errs.UnknownQualifier
// if name is not registered.
func (r *Registry) MustGet(name string) (*Qualifier, error) {
	q, ok := r.Get(name)
	if !ok {
		return nil, errs.New(errs.UnknownQualifier, "qualifier name is not registered", name)
	}
	return q, nil
}

// Len returns the number of registered qualifiers.
func (r *Registry) Len() int { return r.collector.Len() }

// All returns every registered Qualifier in insertion order.
func (r *Registry) All() []*Qualifier {
	entries := r.collector.All()
	out := make([]*Qualifier, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}
