// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Code generated by "stringer -type=InlineKind -output=inline_kind_string.go"; edit with care.

package markdown

import "strconv"

func (k InlineKind) String() string {
	switch k {
	case TextKind:
		return "TextKind"
	case EmphasisKind:
		return "EmphasisKind"
	case StrongKind:
		return "StrongKind"
	case CodeSpanKind:
		return "CodeSpanKind"
	case LinkKind:
		return "LinkKind"
	case ImageKind:
		return "ImageKind"
	case LineBreakKind:
		return "LineBreakKind"
	case RawHTMLKind:
		return "RawHTMLKind"
	default:
		return "InlineKind(" + strconv.Itoa(int(k)) + ")"
	}
}
