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

package decision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/decision"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/qualifier"
)

func mustQualifier(t *testing.T, name string) *qualifier.Qualifier {
	t.Helper()
	q, err := qualifier.NewQualifier(name, qualifier.NewLiteralType())
	require.NoError(t, err)
	return q
}

func mustSet(t *testing.T, pairs ...[2]string) *condition.ConditionSet {
	t.Helper()
	var conds []*condition.Condition
	for _, p := range pairs {
		q := mustQualifier(t, p[0])
		c, err := condition.New(q, p[1], 0)
		require.NoError(t, err)
		conds = append(conds, c)
	}
	set, err := condition.NewConditionSet(conds)
	require.NoError(t, err)
	return set
}

func TestRegistryPreSeedsEmptyAndDefaultOnly(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	assert.Equal(t, 0, reg.Empty().Len())
	assert.Equal(t, 1, reg.DefaultOnly().Len())
	assert.Equal(t, 0, reg.DefaultOnly().Candidates()[0].ConditionSet().Len())
}

func TestAbstractDecisionOrderIndependentKey(t *testing.T) {
	t.Parallel()
	platformIOS := mustSet(t, [2]string{"platform", "ios"})
	themeDark := mustSet(t, [2]string{"theme", "dark"})

	a := decision.NewAbstractDecision([]*condition.ConditionSet{platformIOS, themeDark})
	b := decision.NewAbstractDecision([]*condition.ConditionSet{themeDark, platformIOS})

	assert.Equal(t, a.Key(), b.Key())
	require.Equal(t, a.Len(), b.Len())
	for i := range a.Candidates() {
		assert.Equal(t, a.Candidates()[i].ConditionSet().Key(), b.Candidates()[i].ConditionSet().Key())
	}
}

func TestRegistryGetOrAddIsIdempotent(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	platformIOS := mustSet(t, [2]string{"platform", "ios"})

	first := reg.GetOrAdd([]*condition.ConditionSet{platformIOS})
	second := reg.GetOrAdd([]*condition.ConditionSet{platformIOS})
	assert.Same(t, first, second)
}

func TestConcreteDecisionKeyIncludesValues(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	platformIOS := mustSet(t, [2]string{"platform", "ios"})

	cd, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[string]{
		{ConditionSet: platformIOS, Value: "dark-mode.json"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dark-mode.json"}, cd.Values())
	assert.NotEqual(t, cd.Abstract().Key(), cd.Key(), "Key must fold in the values, not just the abstract shape")

	otherReg := decision.NewRegistry()
	otherValue, err := decision.NewConcreteDecision(otherReg, []decision.ConcreteCandidate[string]{
		{ConditionSet: mustSet(t, [2]string{"platform", "ios"}), Value: "light-mode.json"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, cd.Key(), otherValue.Key(), "differing values over the same conditions must produce differing keys")
}

func TestConcreteDecisionRejectsDuplicateConditionSet(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	platformIOS := mustSet(t, [2]string{"platform", "ios"})
	samePlatformIOS := mustSet(t, [2]string{"platform", "ios"})

	_, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[string]{
		{ConditionSet: platformIOS, Value: "a"},
		{ConditionSet: samePlatformIOS, Value: "b"},
	})
	require.Error(t, err)
	var structured *errs.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, errs.KeyCollision, structured.Kind)
}

func TestSameAbstractAndValuesProduceIdenticalKey(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	platformIOS := mustSet(t, [2]string{"platform", "ios"})

	cd1, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[string]{
		{ConditionSet: platformIOS, Value: "a"},
	})
	require.NoError(t, err)
	cd2, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[string]{
		{ConditionSet: mustSet(t, [2]string{"platform", "ios"}), Value: "a"},
	})
	require.NoError(t, err)
	assert.Equal(t, cd1.Key(), cd2.Key())
}

func TestConcreteDecisionCollidesOnDifferingValueUnderSameConditions(t *testing.T) {
	t.Parallel()
	reg := decision.NewRegistry()
	homeCA := mustSet(t, [2]string{"home", "CA"})

	_, err := decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[string]{
		{ConditionSet: homeCA, Value: "a"},
	})
	require.NoError(t, err)

	_, err = decision.NewConcreteDecision(reg, []decision.ConcreteCandidate[string]{
		{ConditionSet: mustSet(t, [2]string{"home", "CA"}), Value: "b"},
	})
	require.Error(t, err)
	var structured *errs.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, errs.KeyCollision, structured.Kind)
}
