// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obfuscator implements a primitive identifier renamer for
// JavaScript.
//
// It is not a parser. Declarations are found with regular expressions and
// every whole-word occurrence of a declared name is replaced, including
// occurrences in strings, comments, property accesses and object keys.
// Scopes are not tracked: equal names in different functions get the same
// replacement.
package obfuscator

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const ident = `[a-zA-Z_$][a-zA-Z0-9_$]*`

var (
	declRx   = regexp.MustCompile(`\b(?:var|let|const|function)\s+(` + ident + `)`)
	paramsRx = regexp.MustCompile(`\bfunction\s*(?:` + ident + `)?\s*\(([^)]*)\)`)
	identRx  = regexp.MustCompile(`^` + ident + `$`)
)

// Candidates returns a sorted list of names declared in src
// with var, let, const or function, and of parameters of
// function expressions and declarations. Reserved words are excluded.
func Candidates(src string) []string {
	set := make(map[string]struct{})
	add := func(name string) {
		if name == "" || IsReserved(name) {
			return
		}
		set[name] = struct{}{}
	}
	for _, m := range declRx.FindAllStringSubmatch(src, -1) {
		add(m[1])
	}
	for _, m := range paramsRx.FindAllStringSubmatch(src, -1) {
		for _, p := range strings.Split(m[1], ",") {
			p = strings.TrimSpace(p)
			// Skip defaults, rest parameters and destructuring.
			if !identRx.MatchString(p) {
				continue
			}
			add(p)
		}
	}
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ReplacementName returns a short name for the identifier with the given rank:
// _a, _b, ..., _z, _a1, _b1, ..., _z1, _a2 and so on.
func ReplacementName(i int) string {
	name := "_" + string(alphabet[i%len(alphabet)])
	if i >= len(alphabet) {
		name += strconv.Itoa(i / len(alphabet))
	}
	return name
}

// Map maps original identifiers to their replacements.
type Map map[string]string

// NewMap assigns replacement names to candidates by their position.
func NewMap(candidates []string) Map {
	m := make(Map, len(candidates))
	for i, c := range candidates {
		m[c] = ReplacementName(i)
	}
	return m
}

// Apply replaces every whole-word occurrence of keys of m in src
// with their replacements. It returns src unchanged if m is empty.
func (m Map) Apply(src string) string {
	if len(m) == 0 {
		return src
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Strings(keys)
	rx := regexp.MustCompile(`\b(?:` + strings.Join(keys, "|") + `)\b`)
	return rx.ReplaceAllStringFunc(src, func(s string) string {
		if r, ok := m[s]; ok {
			return r
		}
		return s
	})
}

// Obfuscate renames identifiers declared in src and returns
// the result along with the map that was used.
func Obfuscate(src string) (string, Map) {
	m := NewMap(Candidates(src))
	return m.Apply(src), m
}
