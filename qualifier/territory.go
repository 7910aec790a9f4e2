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
	"strings"

	"github.com/jplu/ctxres/langtag"
)

// worldToken is the literal alias a context value may spell out instead
// of the UN M49 world region code "001".
const worldToken = "world"

// TerritoryType implements the "territory" qualifier type: ISO 3166
// region codes with macro-region hierarchy (Section 4.G).
type TerritoryType struct{}

// NewTerritoryType returns a TerritoryType. It holds no state: the
// macro-region graph it consults is the static one langtag embeds.
func NewTerritoryType() *TerritoryType { return &TerritoryType{} }

func (t *TerritoryType) Name() TypeName { return TypeTerritory }

func (t *TerritoryType) IsValidConditionValue(v string) bool {
	return langtag.IsWellFormed(langtag.KindRegion, v)
}

func (t *TerritoryType) IsValidContextValue(v string) bool {
	return isWorldToken(v) || langtag.IsWellFormed(langtag.KindRegion, v)
}

func (t *TerritoryType) Match(conditionValue, contextValue string) float64 {
	if !t.IsValidConditionValue(conditionValue) || !t.IsValidContextValue(contextValue) {
		return NoMatch
	}
	if isWorldToken(contextValue) || langtag.IsWorldRegion(contextValue) {
		return langtag.TierNeutralRegion.Value()
	}
	if strings.EqualFold(conditionValue, contextValue) {
		return PerfectMatch
	}
	if langtag.IsMacroRegionOf(conditionValue, contextValue) {
		return langtag.TierMacroRegion.Value()
	}
	return NoMatch
}

func isWorldToken(v string) bool { return strings.EqualFold(v, worldToken) }
