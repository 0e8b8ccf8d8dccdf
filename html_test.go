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

package markdown

import "testing"

func TestEscapeHTMLString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`<a href="x">'y'</a> & z`, `&lt;a href=&quot;x&quot;&gt;&#39;y&#39;&lt;/a&gt; &amp; z`},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := escapeHTMLString(test.input); got != test.want {
			t.Errorf("escapeHTMLString(%q) = %q; want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/url", "/url"},
		{`/url"with"quotes`, "/url%22with%22quotes"},
		{"/café", "/caf%C3%A9"},
		{"/already%20encoded", "/already%20encoded"},
		{"/100%", "/100%25"},
	}
	for _, test := range tests {
		if got := NormalizeURL(test.input); got != test.want {
			t.Errorf("NormalizeURL(%q) = %q; want %q", test.input, got, test.want)
		}
	}
}

func TestMatchHTMLBlockStart(t *testing.T) {
	tests := []struct {
		line     string
		wantCond int
		wantOK   bool
	}{
		{"<!-- comment", 2, true},
		{"<?php", 3, true},
		{"<!DOCTYPE html>", 4, true},
		{"<![CDATA[", 5, true},
		{"<script>", 1, true},
		{"<pre>", 1, true},
		{"<div>", 6, true},
		{"<div", 6, true},
		{"<custom-tag>", 0, false},
		{"plain text", 0, false},
	}
	for _, test := range tests {
		cond, ok := matchHTMLBlockStart(test.line)
		if ok != test.wantOK || (ok && cond != test.wantCond) {
			t.Errorf("matchHTMLBlockStart(%q) = %d, %v; want %d, %v", test.line, cond, ok, test.wantCond, test.wantOK)
		}
	}
}

func TestMatchInlineHTMLTag(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
	}{
		{"<a href=\"x\">", true},
		{"<a/>", true},
		{"</a>", true},
		{"<!-- c -->", true},
		{"<?pi?>", true},
		{"<![CDATA[x]]>", true},
		{"<not closed", false},
		{"plain", false},
	}
	for _, test := range tests {
		_, ok := matchInlineHTMLTag(test.input)
		if ok != test.wantOK {
			t.Errorf("matchInlineHTMLTag(%q) ok = %v; want %v", test.input, ok, test.wantOK)
		}
	}
}
