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

package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/ctxres/condition"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/qualifier"
)

func mustQualifier(t *testing.T, name string) *qualifier.Qualifier {
	t.Helper()
	q, err := qualifier.NewQualifier(name, qualifier.NewLiteralType())
	require.NoError(t, err)
	return q
}

func TestConditionKeyFormat(t *testing.T) {
	t.Parallel()
	q := mustQualifier(t, "platform")
	c, err := condition.New(q, "ios", 3)
	require.NoError(t, err)
	assert.Equal(t, "platform=ios@3", c.Key())
}

func TestConditionRejectsInvalidValue(t *testing.T) {
	t.Parallel()
	q := mustQualifier(t, "platform")
	_, err := condition.New(q, "", 0)
	require.Error(t, err)
	var structured *errs.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, errs.InvalidConditionValue, structured.Kind)
}

func TestConditionSetSortsByPriorityThenName(t *testing.T) {
	t.Parallel()
	platform := mustQualifier(t, "platform")
	theme := mustQualifier(t, "theme")
	region := mustQualifier(t, "region")

	cPlatform, err := condition.New(platform, "ios", 1)
	require.NoError(t, err)
	cTheme, err := condition.New(theme, "dark", 5)
	require.NoError(t, err)
	cRegion, err := condition.New(region, "us", 5)
	require.NoError(t, err)

	set, err := condition.NewConditionSet([]*condition.Condition{cPlatform, cTheme, cRegion})
	require.NoError(t, err)

	got := set.Conditions()
	require.Len(t, got, 3)
	assert.Equal(t, "region", got[0].Qualifier().Name())
	assert.Equal(t, "theme", got[1].Qualifier().Name())
	assert.Equal(t, "platform", got[2].Qualifier().Name())
}

func TestConditionSetRejectsDuplicateQualifier(t *testing.T) {
	t.Parallel()
	platform := mustQualifier(t, "platform")
	c1, err := condition.New(platform, "ios", 0)
	require.NoError(t, err)
	c2, err := condition.New(platform, "android", 0)
	require.NoError(t, err)

	_, err = condition.NewConditionSet([]*condition.Condition{c1, c2})
	require.Error(t, err)
	var structured *errs.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, errs.DuplicateQualifier, structured.Kind)
}

func TestConditionSetKeyIsOrderIndependent(t *testing.T) {
	t.Parallel()
	platform := mustQualifier(t, "platform")
	theme := mustQualifier(t, "theme")
	cPlatform, err := condition.New(platform, "ios", 1)
	require.NoError(t, err)
	cTheme, err := condition.New(theme, "dark", 1)
	require.NoError(t, err)

	a, err := condition.NewConditionSet([]*condition.Condition{cPlatform, cTheme})
	require.NoError(t, err)
	b, err := condition.NewConditionSet([]*condition.Condition{cTheme, cPlatform})
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())
}

func TestCompareLongerSetWinsOnEqualPrefix(t *testing.T) {
	t.Parallel()
	platform := mustQualifier(t, "platform")
	theme := mustQualifier(t, "theme")
	cPlatform, err := condition.New(platform, "ios", 1)
	require.NoError(t, err)
	cTheme, err := condition.New(theme, "dark", 1)
	require.NoError(t, err)

	short, err := condition.NewConditionSet([]*condition.Condition{cPlatform})
	require.NoError(t, err)
	long, err := condition.NewConditionSet([]*condition.Condition{cPlatform, cTheme})
	require.NoError(t, err)

	assert.Negative(t, condition.Compare(long, short), "a longer set with an identical prefix should sort first")
	assert.Positive(t, condition.Compare(short, long))
}
