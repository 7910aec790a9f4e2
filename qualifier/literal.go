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

// LiteralType implements the "literal" qualifier type: case-insensitive
// exact string equality, with no registry or hierarchy behind it
// (Section 4.G).
type LiteralType struct{}

// NewLiteralType returns a LiteralType.
func NewLiteralType() *LiteralType { return &LiteralType{} }

func (t *LiteralType) Name() TypeName { return TypeLiteral }

func (t *LiteralType) IsValidConditionValue(v string) bool { return v != "" }

func (t *LiteralType) IsValidContextValue(v string) bool { return v != "" }

func (t *LiteralType) Match(conditionValue, contextValue string) float64 {
	if normalizeToken(conditionValue) == normalizeToken(contextValue) {
		return PerfectMatch
	}
	return NoMatch
}
