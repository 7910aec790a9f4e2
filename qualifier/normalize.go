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
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldCaser folds case the locale-independent way, for resource literal
// tokens that are free-form user strings rather than BCP-47's
// ASCII-only subtags (which continue to use langtag's byte-level
// strings.ToLower/EqualFold).
var foldCaser = cases.Fold()

// normalizeToken puts s into NFC so visually identical but differently
// composed Unicode tokens (a precomposed vs. combining-mark accented
// character) compare equal, then case-folds it.
func normalizeToken(s string) string {
	return foldCaser.String(norm.NFC.String(s))
}
