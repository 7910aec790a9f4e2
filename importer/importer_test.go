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

package importer_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplu/ctxres/importer"
	"github.com/jplu/ctxres/internal/errs"
	"github.com/jplu/ctxres/qualifier"
	"github.com/jplu/ctxres/resolve"
)

func testQualifiers(t *testing.T) *qualifier.Registry {
	t.Helper()
	reg := qualifier.NewRegistry()

	platform, err := qualifier.NewQualifier("platform", qualifier.NewLiteralType(),
		qualifier.WithTokenIsOptional(true), qualifier.WithDefaultPriority(1))
	require.NoError(t, err)
	reg.GetOrAdd(platform)

	theme, err := qualifier.NewQualifier("theme", qualifier.NewLiteralType(), qualifier.WithDefaultPriority(2))
	require.NoError(t, err)
	reg.GetOrAdd(theme)

	return reg
}

func TestImportBuildsOneDecisionPerResource(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"resources/button.json":                {Data: []byte(`{"label":"OK"}`)},
		"resources/ios/button.theme=dark.json": {Data: []byte(`{"label":"OK","color":"black"}`)},
		"resources/android/button.json":        {Data: []byte(`{"label":"OK (android)"}`)},
		"resources/readme.txt":                 {Data: []byte("not json")},
	}

	catalog, errList := importer.Import(fsys, "resources", testQualifiers(t))

	var skipped int
	for _, e := range errList {
		var structured *errs.Error
		if errors.As(e, &structured) && structured.Kind == errs.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 1, skipped)

	require.Contains(t, catalog, "button")
	cd := catalog["button"]
	assert.Equal(t, 3, cd.Abstract().Len())
}

func TestImportHonorsPriorityOverride(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"resources/card.theme=dark;priority=9.json": {Data: []byte(`{"label":"dark card"}`)},
	}

	catalog, errList := importer.Import(fsys, "resources", testQualifiers(t))
	require.Empty(t, errList)
	require.Contains(t, catalog, "card")

	cand := catalog["card"].Abstract().Candidates()[0]
	conds := cand.ConditionSet().Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, 9, conds[0].Priority())
}

func TestImportMatchesBareSegmentToOptionalToken(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"resources/mobile/banner.json": {Data: []byte(`{"label":"mobile banner"}`)},
	}

	catalog, errList := importer.Import(fsys, "resources", testQualifiers(t))
	require.Empty(t, errList)
	require.Contains(t, catalog, "banner")

	conds := catalog["banner"].Abstract().Candidates()[0].ConditionSet().Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, "platform", conds[0].Qualifier().Name())
	assert.Equal(t, "mobile", conds[0].Value())
}

func TestImportExtractsPartialAndMergeMethod(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"resources/panel.theme=dark.json": {Data: []byte(`{"$partial":true,"$merge":"replace","color":"black"}`)},
	}

	catalog, errList := importer.Import(fsys, "resources", testQualifiers(t))
	require.Empty(t, errList)

	entry := catalog["panel"].Values()[0]
	assert.True(t, entry.IsPartial)
	assert.Equal(t, resolve.MergeReplace, entry.MergeMethod)
	_, hasPartialMember := entry.Value.Get("$partial")
	assert.False(t, hasPartialMember, "reserved members should be stripped from the stored value")
}

func TestCatalogRoundTripsThroughJSON(t *testing.T) {
	t.Parallel()
	qualifiers := testQualifiers(t)
	fsys := fstest.MapFS{
		"resources/button.theme=dark.json": {Data: []byte(`{"label":"OK"}`)},
	}
	catalog, errList := importer.Import(fsys, "resources", qualifiers)
	require.Empty(t, errList)

	data, err := catalog.MarshalJSON()
	require.NoError(t, err)

	decoded, err := importer.Decode(data, qualifiers)
	require.NoError(t, err)
	require.Contains(t, decoded, "button")
	assert.Equal(t, catalog["button"].Key(), decoded["button"].Key())
}
