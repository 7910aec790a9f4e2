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

// Package qualifier implements the four qualifier types of Section 4.G
// (language, territory, literal, literalHierarchy) and the Qualifier /
// Registry collectors of Section 4.H that name them.
package qualifier

// Match scores, per Section 4.G: Match returns a float in [0,1], 0
// meaning no match and 1 an exact one.
const (
	NoMatch      = 0.0
	PerfectMatch = 1.0
)

// TypeName identifies one of the four qualifier type kinds.
type TypeName string

const (
	TypeLanguage         TypeName = "language"
	TypeTerritory        TypeName = "territory"
	TypeLiteral          TypeName = "literal"
	TypeLiteralHierarchy TypeName = "literalHierarchy"
)

// Type is the behavior every qualifier type must supply (Section 4.G).
type Type interface {
	// Name identifies which of the four type kinds this is.
	Name() TypeName
	// IsValidConditionValue reports whether v is an acceptable
	// condition-side value for this type.
	IsValidConditionValue(v string) bool
	// IsValidContextValue reports whether v is an acceptable
	// context-side value, which for some types may be a comma-list.
	IsValidContextValue(v string) bool
	// Match scores a condition value against a context value in
	// [0,1]. Callers must validate both sides first; an implementation
	// may return NoMatch for invalid input rather than panic.
	Match(conditionValue, contextValue string) float64
}
