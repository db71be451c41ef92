// Copyright 2013 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package utils contains utility functions.
package utils

import (
	"crypto/sha256"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v1"
)

// UnmarshallYAMLFile reads YAML file and unmarshalls it into data.
func UnmarshallYAMLFile(filename string, data interface{}) error {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, data)
}

// Hash returns an SHA256 hash of the given string.
func Hash(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// TemplatedHash replaces ":hash" in template with hexadecimal characters of
// the hash of the input string and returns the result.
func TemplatedHash(template string, input []byte) string {
	// 10 bytes of hash is enough to avoid accidental collisions.
	hs := NoVowelsHexEncode(Hash(input)[:10])
	return strings.Replace(template, ":hash", hs, -1)
}

// NoVowelsHexEncode returns bytes encoded in a hex-like encoding which
// doesn't use vowels.
//
// This is useful to avoid producing substrings, such as "ad", that
// may be blocked by ad-blockers.
func NoVowelsHexEncode(b []byte) string {
	const hextable = "0123456789vbcdzf"
	dst := make([]byte, len(b)*2)
	for i, v := range b {
		dst[i*2] = hextable[v>>4]
		dst[i*2+1] = hextable[v&0x0f]
	}
	return string(dst)
}
