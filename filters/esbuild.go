// Copyright 2024 Dmitry Chestnykh. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filters

// `esbuild` strips whitespace and comments and simplifies syntax with
// esbuild. Identifiers are kept; use `obfuscate` for renaming.

import (
	"errors"

	"github.com/evanw/esbuild/pkg/api"
)

func init() {
	Register("esbuild", func(args []string) (Filter, error) {
		return ESBuild(0), nil
	})
}

type ESBuild int

func (f ESBuild) Name() string { return "esbuild" }

func (f ESBuild) Apply(s string) (out string, err error) {
	result := api.Transform(s, api.TransformOptions{
		Loader:           api.LoaderJS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
	})
	if len(result.Errors) > 0 {
		return "", errors.New(result.Errors[0].Text)
	}
	return string(result.Code), nil
}
