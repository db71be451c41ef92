// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

// `obfuscate` renames declared identifiers to short names.

import (
	"github.com/dchest/assetmin/obfuscator"
)

func init() {
	Register("obfuscate", func(args []string) (Filter, error) {
		return Obfuscate(0), nil
	})
}

type Obfuscate int

func (f Obfuscate) Name() string { return "obfuscate" }

func (f Obfuscate) Apply(s string) (out string, err error) {
	out, _ = obfuscator.Obfuscate(s)
	return out, nil
}
