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

package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/decision"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/internal/jsonvalue"
	"github.com/jplu/ctxres/qualifier"
	"github.com/jplu/ctxres/resolve"
)

func mustQualifierWithDefault(t *testing.T, name, def string) *qualifier.Qualifier {
	t.Helper()
	opts := []qualifier.Option{}
	if def != "" {
		opts = append(opts, qualifier.WithDefaultValue(def))
	}
	q, err := qualifier.NewQualifier(name, qualifier.NewLiteralType(), opts...)
	require.NoError(t, err)
	return q
}

func mustSet(t *testing.T, conds ...*condition.Condition) *condition.ConditionSet {
	t.Helper()
	set, err := condition.NewConditionSet(conds)
	require.NoError(t, err)
	return set
}

func objValue(t *testing.T, key, val string) jsonvalue.Value {
	t.Helper()
	return jsonvalue.Object([]jsonvalue.Member{{Key: key, Value: jsonvalue.String(val)}})
}

func TestScoreRanksHigherSpecificityFirst(t *testing.T) {
	t.Parallel()
	platform := mustQualifierWithDefault(t, "platform", "")
	theme := mustQualifierWithDefault(t, "theme", "")

	condPlatformIOS, err := condition.New(platform, "ios", 1)
	require.NoError(t, err)
	condThemeDark, err := condition.New(theme, "dark", 1)
	require.NoError(t, err)

	specific := mustSet(t, condPlatformIOS, condThemeDark)
	general := mustSet(t, condPlatformIOS)

	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[resolve.Entry]{
		{ConditionSet: general, Value: resolve.Entry{Value: objValue(t, "v", "general")}},
		{ConditionSet: specific, Value: resolve.Entry{Value: objValue(t, "v", "specific")}},
	})
	require.NoError(t, err)

	scored := resolve.Score(cd, resolve.Context{"platform": "ios", "theme": "dark"})
	require.Len(t, scored, 2)
	v, _ := scored[0].Entry.Value.Get("v")
	s, _ := v.AsString()
	assert.Equal(t, "specific", s)
}

func TestScoreFallsBackToQualifierDefaultValue(t *testing.T) {
	t.Parallel()
	theme := mustQualifierWithDefault(t, "theme", "light")
	condThemeLight, err := condition.New(theme, "light", 0)
	require.NoError(t, err)
	set := mustSet(t, condThemeLight)

	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[resolve.Entry]{
		{ConditionSet: set, Value: resolve.Entry{Value: jsonvalue.String("light-theme")}},
	})
	require.NoError(t, err)

	scored := resolve.Score(cd, resolve.Context{})
	require.Len(t, scored, 1, "a missing context entry should fall back to the qualifier's default value")
}

func TestScoreFailsWithoutDefaultWhenContextMissing(t *testing.T) {
	t.Parallel()
	theme := mustQualifierWithDefault(t, "theme", "")
	condThemeDark, err := condition.New(theme, "dark", 0)
	require.NoError(t, err)
	set := mustSet(t, condThemeDark)

	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[resolve.Entry]{
		{ConditionSet: set, Value: resolve.Entry{Value: jsonvalue.String("dark-theme")}},
	})
	require.NoError(t, err)

	scored := resolve.Score(cd, resolve.Context{})
	assert.Empty(t, scored)
}

func TestEmptyDecisionNeverScores(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision[resolve.Entry](reg, nil)
	require.NoError(t, err)

	_, err = resolve.Resolve(cd, resolve.Context{"anything": "goes"}, false)
	require.Error(t, err)
	var structured *errs.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, errs.NotFound, structured.Kind)
}

func TestResolveFallsBackToDefaultOnlyCandidate(t *testing.T) {
	t.Parallel()
	theme := mustQualifierWithDefault(t, "theme", "")
	condThemeDark, err := condition.New(theme, "dark", 0)
	require.NoError(t, err)
	specific := mustSet(t, condThemeDark)
	empty := mustSet(t)

	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[resolve.Entry]{
		{ConditionSet: specific, Value: resolve.Entry{Value: jsonvalue.String("dark-theme")}},
		{ConditionSet: empty, Value: resolve.Entry{Value: jsonvalue.String("fallback")}},
	})
	require.NoError(t, err)

	got, err := resolve.Resolve(cd, resolve.Context{"theme": "light"}, false)
	require.NoError(t, err)
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "fallback", s)
}

func TestResolveMergesPartialCandidatesUntilScalar(t *testing.T) {
	t.Parallel()
	platform := mustQualifierWithDefault(t, "platform", "")
	theme := mustQualifierWithDefault(t, "theme", "")

	condPlatformIOS, err := condition.New(platform, "ios", 1)
	require.NoError(t, err)
	condThemeDark, err := condition.New(theme, "dark", 1)
	require.NoError(t, err)

	specific := mustSet(t, condPlatformIOS, condThemeDark)
	general := mustSet(t, condPlatformIOS)
	empty := mustSet(t)

	base := jsonvalue.Object([]jsonvalue.Member{
		{Key: "color", Value: jsonvalue.String("blue")},
		{Key: "size", Value: jsonvalue.String("M")},
	})
	overlay := jsonvalue.Object([]jsonvalue.Member{
		{Key: "color", Value: jsonvalue.String("black")},
	})

	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[resolve.Entry]{
		{ConditionSet: specific, Value: resolve.Entry{Value: base}},
		{ConditionSet: general, Value: resolve.Entry{Value: overlay, IsPartial: true, MergeMethod: resolve.MergeAugment}},
		{ConditionSet: empty, Value: resolve.Entry{Value: jsonvalue.String("fallback")}},
	})
	require.NoError(t, err)

	got, err := resolve.Resolve(cd, resolve.Context{"platform": "ios", "theme": "dark"}, true)
	require.NoError(t, err)

	color, _ := got.Get("color")
	colorStr, _ := color.AsString()
	assert.Equal(t, "black", colorStr, "the partial overlay should win on key collision")

	size, ok := got.Get("size")
	require.True(t, ok, "a key only present in the base should survive the merge")
	sizeStr, _ := size.AsString()
	assert.Equal(t, "M", sizeStr)
}

func TestResolveWithoutMergeReturnsTopCandidateOnly(t *testing.T) {
	t.Parallel()
	platform := mustQualifierWithDefault(t, "platform", "")
	condPlatformIOS, err := condition.New(platform, "ios", 1)
	require.NoError(t, err)
	specific := mustSet(t, condPlatformIOS)
	empty := mustSet(t)

	reg := decision.NewRegistry()
	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[resolve.Entry]{
		{ConditionSet: specific, Value: resolve.Entry{Value: jsonvalue.String("specific"), IsPartial: true}},
		{ConditionSet: empty, Value: resolve.Entry{Value: jsonvalue.String("fallback")}},
	})
	require.NoError(t, err)

	got, err := resolve.Resolve(cd, resolve.Context{"platform": "ios"}, false)
	require.NoError(t, err)
	s, _ := got.AsString()
	assert.Equal(t, "specific", s)
}
