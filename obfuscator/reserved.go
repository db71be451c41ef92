// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obfuscator

// jsKeywords are ECMAScript reserved words, including future
// and strict mode reserved words.
var jsKeywords = []string{
	"await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "enum", "export",
	"extends", "false", "finally", "for", "function", "if", "implements",
	"import", "in", "instanceof", "interface", "let", "new", "null",
	"package", "private", "protected", "public", "return", "static",
	"super", "switch", "this", "throw", "true", "try", "typeof", "var",
	"void", "while", "with", "yield", "async", "of", "get", "set",
}

// scriptKeywords is the keyword list of the scripting language the
// build script was first written in. These words are reserved
// too, so that renaming produces the same output as before.
var scriptKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
}

// globals are well-known browser objects and built-ins.
var globals = []string{
	// Platform.
	"window", "document", "console", "navigator", "location", "history",
	"screen", "localStorage", "sessionStorage", "fetch", "alert",
	"confirm", "prompt", "setTimeout", "setInterval", "clearTimeout",
	"clearInterval", "requestAnimationFrame", "cancelAnimationFrame",
	"addEventListener", "removeEventListener", "self", "globalThis",
	"XMLHttpRequest", "Event", "CustomEvent", "Element", "HTMLElement",
	"Node", "URL", "URLSearchParams",
	// Built-ins.
	"Object", "Array", "String", "Number", "Boolean", "Symbol", "Function",
	"Date", "Math", "JSON", "RegExp", "Promise", "Map", "Set", "WeakMap",
	"WeakSet", "Proxy", "Reflect", "Error", "TypeError", "RangeError",
	"SyntaxError", "BigInt", "Intl", "parseInt", "parseFloat", "isNaN",
	"isFinite", "encodeURIComponent", "decodeURIComponent", "encodeURI",
	"decodeURI", "undefined", "NaN", "Infinity", "arguments", "eval",
	// Analytics.
	"gtag", "dataLayer",
}

var reserved = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, list := range [][]string{jsKeywords, scriptKeywords, globals} {
		for _, w := range list {
			m[w] = struct{}{}
		}
	}
	return m
}()

// IsReserved returns true if word must never be renamed.
func IsReserved(word string) bool {
	_, ok := reserved[word]
	return ok
}
